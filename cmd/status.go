package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/denlabs/den/internal/health"
	"github.com/denlabs/den/internal/identity"
	"github.com/denlabs/den/internal/runtime"
)

var statusCmd = &cobra.Command{
	Use:   "status <name>",
	Short: "Show detailed status of a sandbox",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	l, err := launcher()
	if err != nil {
		return err
	}

	id := resolveTarget(args[0])
	st, err := l.Status(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("Sandbox: %s\n", id.Slug)
	fmt.Printf("Variant: %s\n", id.Variant)
	fmt.Printf("Source: %s\n", id.RawSource)
	if id.Host != identity.HostUnknown {
		fmt.Printf("Host: %s\n", id.Host)
	}
	fmt.Println()

	fmt.Println("Ports:")
	for _, svc := range identity.Services() {
		fmt.Printf("  %-12s %d\n", svc, id.Port(svc))
	}
	fmt.Println()

	fmt.Println("Containers:")
	fmt.Printf("  %-28s %s\n", st.Names.Container, containerState(st.Sandbox))
	fmt.Printf("  %-28s %s\n", st.Names.APILoggerContainer, containerState(st.Logger))
	fmt.Println()

	fmt.Println("Volumes:")
	fmt.Printf("  %-28s %s\n", st.Names.WorkspaceVolume, boolStatus(st.WorkspaceVolume))
	fmt.Printf("  %-28s %s\n", st.Names.HomeVolume, boolStatus(st.HomeVolume))
	fmt.Println()

	checker := health.NewChecker(application.Runtime)
	result := checker.Check(ctx, id)

	fmt.Println("Health:")
	fmt.Printf("  Sandbox: %s\n", boolStatus(result.SandboxRunning))
	if result.SandboxRunning {
		fmt.Printf("  Uptime: %s\n", result.Uptime)
		fmt.Printf("  Logger: %s\n", boolStatus(result.LoggerHealthy))
	}

	return nil
}

func containerState(info *runtime.ContainerInfo) string {
	if info == nil || info.Status == runtime.StatusNotFound {
		return "absent"
	}
	return string(info.Status)
}

func boolStatus(b bool) string {
	if b {
		return "✓"
	}
	return "✗"
}
