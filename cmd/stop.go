package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop <name>",
	Short: "Stop a sandbox without removing it",
	Args:  cobra.ExactArgs(1),
	RunE:  runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	l, err := launcher()
	if err != nil {
		return err
	}

	id := resolveTarget(args[0])
	logInfo("Stopping sandbox %s...", id.Slug)

	if err := l.Stop(context.Background(), id); err != nil {
		return err
	}

	logSuccess("Stopped sandbox %s", id.Slug)
	return nil
}
