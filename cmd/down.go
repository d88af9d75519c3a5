package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/denlabs/den/internal/sandbox"
)

var downCmd = &cobra.Command{
	Use:   "down <name>",
	Short: "Stop and remove a sandbox",
	Long: `Stop and remove a sandbox and its api-logger sidecar.

The workspace and home volumes survive so the next "den up" recovers the
checkout and the assistant's home directory. Pass --volumes to remove
them too; the shared api-log volume is never removed.`,
	Args: cobra.ExactArgs(1),
	RunE: runDown,
}

var downVolumes bool

func init() {
	downCmd.Flags().BoolVar(&downVolumes, "volumes", false, "Also remove the project's workspace and home volumes")
	rootCmd.AddCommand(downCmd)
}

func runDown(cmd *cobra.Command, args []string) error {
	l, err := launcher()
	if err != nil {
		return err
	}

	id := resolveTarget(args[0])
	logInfo("Removing sandbox %s...", id.Slug)

	opts := sandbox.DownOptions{RemoveVolumes: downVolumes}
	if err := l.Down(context.Background(), id, opts); err != nil {
		return err
	}

	logSuccess("Removed sandbox %s", id.Slug)
	return nil
}
