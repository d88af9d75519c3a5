package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/denlabs/den/internal/identity"
	"github.com/denlabs/den/internal/port"
)

var portsCmd = &cobra.Command{
	Use:   "ports [source]",
	Short: "Print the resolved identity and its derived ports",
	Long: `Resolve a project source and print everything den derives from it: the
slug, host classification, the four service ports, and the runtime
resource names. Ports already bound on this host are marked.

Resolution is pure, so this works whether or not the sandbox exists.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPorts,
}

func init() {
	rootCmd.AddCommand(portsCmd)
}

func runPorts(cmd *cobra.Command, args []string) error {
	var id identity.Identity
	if len(args) == 0 {
		id = currentIdentity()
	} else {
		id = resolveTarget(args[0])
	}

	busy := map[identity.Service]bool{}
	for _, svc := range port.BusyServices(id) {
		busy[svc] = true
	}

	fmt.Printf("Project: %s\n", id.Slug)
	fmt.Printf("Source: %s\n", id.RawSource)
	fmt.Printf("Host: %s\n", id.Host)
	fmt.Printf("Variant: %s\n", id.Variant)
	fmt.Printf("Base port: %d\n", id.BasePort)
	fmt.Println()

	fmt.Println("Ports:")
	for _, svc := range identity.Services() {
		marker := ""
		if busy[svc] {
			marker = "  (in use)"
		}
		fmt.Printf("  %-12s %d%s\n", svc, id.Port(svc), marker)
	}
	fmt.Println()

	names := id.Names()
	fmt.Println("Resources:")
	fmt.Printf("  %-12s %s\n", "sandbox", names.Container)
	fmt.Printf("  %-12s %s\n", "api-logger", names.APILoggerContainer)
	fmt.Printf("  %-12s %s\n", "workspace", names.WorkspaceVolume)
	fmt.Printf("  %-12s %s\n", "home", names.HomeVolume)

	return nil
}
