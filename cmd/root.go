package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/denlabs/den/internal/app"
	"github.com/denlabs/den/internal/config"
	"github.com/denlabs/den/internal/errors"
	"github.com/denlabs/den/internal/logging"
	"github.com/denlabs/den/internal/workspace"
)

var (
	verbose    bool
	jsonOutput bool

	flagBasePort int
	flagVariant  string
	flagImage    string
	flagRuntime  string
	flagName     string
	flagNoLogger bool
)

// application is assembled once per invocation by the root hook. Tests
// inject their own instance before running a command.
var application *app.App

var rootCmd = &cobra.Command{
	Use:   "den",
	Short: "Per-project sandboxed dev containers for AI coding assistants",
	Long: `den runs one sandboxed development container per project and wires an AI
coding assistant into it.

All state lives in the container runtime: every container and volume den
creates carries den labels, and every name and port is derived from the
project identity. Running den twice for the same project always lands on
the same sandbox.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(verbose, jsonOutput, os.Stderr)
		if application != nil {
			return nil
		}

		flags := config.Flags{
			BasePort: flagBasePort,
			Variant:  flagVariant,
			Image:    flagImage,
			Runtime:  flagRuntime,
			Name:     flagName,
			NoLogger: flagNoLogger,
		}
		cfg, err := config.Load(flags, config.GlobalPath(), workspace.Detect(".").Dir)
		if err != nil {
			return errors.ConfigError("failed to load configuration", err)
		}

		application, err = app.New(app.WithConfig(cfg))
		return err
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().IntVar(&flagBasePort, "base-port", 0, "Base port the host port set is derived from")
	rootCmd.PersistentFlags().StringVar(&flagVariant, "variant", "", "Assistant variant (claude or codex)")
	rootCmd.PersistentFlags().StringVar(&flagImage, "image", "", "Sandbox container image")
	rootCmd.PersistentFlags().StringVar(&flagRuntime, "runtime", "", "Container runtime (docker, podman or auto)")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", "", "Override the name the project slug derives from")
	rootCmd.PersistentFlags().BoolVar(&flagNoLogger, "no-logger", false, "Do not run the api-logger sidecar")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)
