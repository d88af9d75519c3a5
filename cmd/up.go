package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/denlabs/den/internal/identity"
	"github.com/denlabs/den/internal/logging"
)

var upCmd = &cobra.Command{
	Use:   "up [source]",
	Short: "Create or recover the project sandbox",
	Long: `Create the sandbox for a project, or recover it when one already exists.

The source can be a local path (bind mounted into the sandbox), a remote
repository URL (cloned into a volume on first start), or a bare name
(empty volume). With no argument, the current directory is the project.

Once the sandbox is running, up attaches to the assistant session unless
--detach is given or stdin is not a terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUp,
}

var upDetach bool

func init() {
	upCmd.Flags().BoolVarP(&upDetach, "detach", "d", false, "Do not attach after the sandbox is up")
	rootCmd.AddCommand(upCmd)
}

func runUp(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	l, err := launcher()
	if err != nil {
		return err
	}

	project := resolveProject(args)
	logging.Debug("bringing sandbox up", "source", project.Source, "dir", project.Dir)

	result, err := l.Up(ctx, project)
	if err != nil {
		return err
	}

	id := result.Identity
	switch {
	case result.Created:
		logSuccess("Sandbox %s created", id.Slug)
	case result.Recovered:
		logSuccess("Sandbox %s recovered", id.Slug)
	default:
		logInfo("Sandbox %s already running", id.Slug)
	}

	fmt.Printf("  code-server: http://localhost:%d\n", id.Port(identity.ServiceCodeServer))
	if result.LoggerRunning {
		fmt.Printf("  api-logger:  http://localhost:%d\n", id.Port(identity.ServiceAPILogger))
	}

	if upDetach || !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Printf("  Attach: den attach %s\n", id.Slug)
		return nil
	}

	return l.Attach(ctx, id, nil)
}
