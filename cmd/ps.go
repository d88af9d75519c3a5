package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/denlabs/den/internal/health"
	"github.com/denlabs/den/internal/identity"
	"github.com/denlabs/den/internal/runtime"
)

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "List all sandboxes",
	RunE:  runPs,
}

func init() {
	rootCmd.AddCommand(psCmd)
}

func runPs(cmd *cobra.Command, args []string) error {
	l, err := launcher()
	if err != nil {
		return err
	}

	infos, err := l.List(context.Background())
	if err != nil {
		return err
	}

	if len(infos) == 0 {
		logInfo("No sandboxes found. Create one with: den up")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVARIANT\tSTATUS\tUPTIME\tPORT\tSOURCE")
	fmt.Fprintln(w, "----\t-------\t------\t------\t----\t------")

	for _, info := range infos {
		uptime := "-"
		if info.Status == runtime.StatusRunning {
			uptime = health.Since(info.StartedAt)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			info.Identity.Slug,
			info.Identity.Variant,
			formatStatus(info.Status),
			uptime,
			info.Identity.Port(identity.ServiceCodeServer),
			info.Identity.RawSource)
	}

	return w.Flush()
}

func formatStatus(status runtime.ContainerStatus) string {
	switch status {
	case runtime.StatusRunning:
		return "✓ running"
	case runtime.StatusStopped:
		return "● stopped"
	default:
		return string(status)
	}
}
