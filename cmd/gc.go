package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/denlabs/den/internal/sandbox"
)

var gcForce bool

var gcCmd = &cobra.Command{
	Use:   "gc",
	Short: "Garbage collect orphaned sandbox resources",
	Long: `Reconciles the container runtime against den's naming scheme and removes
resources whose sandbox is gone.

Without --force, prints what would be removed (dry run).
With --force, destroys orphaned containers and removes orphaned volumes.

Detects:
  - api-logger containers whose sandbox no longer exists
  - workspace and home volumes whose sandbox no longer exists

The shared api-log volume is never collected.`,
	RunE: runGC,
}

func init() {
	gcCmd.Flags().BoolVar(&gcForce, "force", false, "Actually remove orphaned resources (default is dry run)")
	rootCmd.AddCommand(gcCmd)
}

func runGC(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	l, err := launcher()
	if err != nil {
		return err
	}

	orphans, err := l.Orphans(ctx)
	if err != nil {
		return err
	}

	if len(orphans) == 0 {
		logInfo("No orphaned resources found")
		return nil
	}

	if !gcForce {
		printGCDryRun(orphans)
		return nil
	}

	removed, err := l.RemoveOrphans(ctx, orphans)
	if err != nil {
		return err
	}

	logSuccess("Garbage collection complete (%d removed)", removed)
	return nil
}

func printGCDryRun(orphans []sandbox.Orphan) {
	fmt.Println("Dry run (use --force to actually clean up):")
	fmt.Println()

	for _, o := range orphans {
		fmt.Printf("  %-9s %s (%s)\n", o.Kind, o.Name, o.Reason)
	}
}
