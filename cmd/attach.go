package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/denlabs/den/internal/identity"
	"github.com/denlabs/den/internal/logging"
	"github.com/denlabs/den/internal/sandbox"
	"github.com/denlabs/den/internal/tui"
)

var attachCmd = &cobra.Command{
	Use:   "attach [name-or-source]",
	Short: "Attach to a sandbox's assistant session",
	Long: `Attach to the assistant CLI running in a sandbox. The current process is
replaced by the exec, so detaching means exiting the assistant.

With no argument and a terminal, an interactive picker lists all known
sandboxes. Without a terminal the same list is printed as plain text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAttach,
}

func init() {
	rootCmd.AddCommand(attachCmd)
}

func runAttach(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	l, err := launcher()
	if err != nil {
		return err
	}

	if len(args) > 0 {
		return attachTo(ctx, l, resolveTarget(args[0]))
	}

	infos, err := l.List(ctx)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		logInfo("No sandboxes found. Create one with: den up")
		return nil
	}

	pickerInfos := make([]sandbox.Info, len(infos))
	for i, info := range infos {
		pickerInfos[i] = *info
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(tui.SimplePicker(pickerInfos))
		return nil
	}

	result, err := tui.RunPicker(pickerInfos)
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	logging.Debug("picker result", "action", result.Action)

	switch result.Action {
	case tui.ActionAttach:
		if result.Sandbox != nil {
			return attachTo(ctx, l, result.Sandbox.Identity)
		}
	case tui.ActionStart:
		if result.Sandbox != nil {
			id := result.Sandbox.Identity
			if err := l.Start(ctx, id); err != nil {
				return err
			}
			logSuccess("Sandbox %s started", id.Slug)
		}
	case tui.ActionQuit:
	}

	return nil
}

// attachTo starts a stopped sandbox before attaching, so picking a
// stopped entry just works.
func attachTo(ctx context.Context, l *sandbox.Launcher, id identity.Identity) error {
	running, err := application.Runtime.IsRunning(ctx, id.Names().Container)
	if err == nil && !running {
		logInfo("Starting sandbox %s...", id.Slug)
		if err := l.Start(ctx, id); err != nil {
			return err
		}
	}

	return l.Attach(ctx, id, nil)
}
