package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/denlabs/den/internal/errors"
)

var execCmd = &cobra.Command{
	Use:   "exec <name> -- <command>",
	Short: "Execute a command in a sandbox",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExec,
}

var execInteractive bool

func init() {
	execCmd.Flags().BoolVarP(&execInteractive, "interactive", "i", false, "Attach the terminal to the command")
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	// Everything after -- is the command; exactly the name comes before.
	dash := cmd.ArgsLenAtDash()
	if dash != 1 || dash >= len(args) {
		return errors.ValidationError("usage: den exec <name> -- <command>")
	}
	name := args[0]
	command := args[dash:]

	l, err := launcher()
	if err != nil {
		return err
	}

	id := resolveTarget(name)
	result, err := l.Exec(context.Background(), id, command, execInteractive)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}

	fmt.Print(result.Stdout)
	fmt.Fprint(os.Stderr, result.Stderr)
	if result.ExitCode != 0 {
		return errors.New(result.ExitCode, fmt.Sprintf("command exited with status %d", result.ExitCode))
	}
	return nil
}
