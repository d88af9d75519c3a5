package app

import (
	"github.com/denlabs/den/internal/audit"
	"github.com/denlabs/den/internal/config"
	"github.com/denlabs/den/internal/errors"
	"github.com/denlabs/den/internal/logging"
	"github.com/denlabs/den/internal/runtime"
	"github.com/denlabs/den/internal/sandbox"
	"github.com/denlabs/den/internal/token"
)

// App holds the wired dependencies for one den invocation. The command
// layer builds exactly one App per run and passes it down; nothing is
// stored in package globals.
type App struct {
	Config  *config.Config
	Runtime runtime.Runtime
	Auditor *audit.Logger
	Tokens  token.Provider
}

// Option configures an App.
type Option func(*App)

// WithConfig sets the resolved configuration.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithRuntime sets a custom container runtime.
func WithRuntime(rt runtime.Runtime) Option {
	return func(a *App) {
		a.Runtime = rt
	}
}

// WithAuditor sets a custom audit logger.
func WithAuditor(l *audit.Logger) Option {
	return func(a *App) {
		a.Auditor = l
	}
}

// WithTokens sets a custom token provider.
func WithTokens(p token.Provider) Option {
	return func(a *App) {
		a.Tokens = p
	}
}

// New wires an App. Anything not injected is built from the configuration.
// A missing container runtime is tolerated here so runtime-free commands
// still work; Launcher surfaces the error for the ones that need it.
func New(opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}

	if a.Config == nil {
		cfg, err := config.Load(config.Flags{}, config.GlobalPath(), "")
		if err != nil {
			return nil, err
		}
		a.Config = cfg
	}

	if a.Runtime == nil {
		rt, err := runtime.New(a.Config.Runtime)
		if err != nil {
			logging.Debug("no container runtime available", "error", err)
		} else {
			a.Runtime = rt
		}
	}

	if a.Auditor == nil {
		a.Auditor = audit.NewLogger(config.EventsDir(a.Config.DataDir))
	}

	if a.Tokens == nil {
		a.Tokens = token.NewCLI()
	}

	return a, nil
}

// Launcher returns a sandbox launcher for this App, or an error when no
// container runtime is available.
func (a *App) Launcher() (*sandbox.Launcher, error) {
	if a.Runtime == nil {
		return nil, errors.RuntimeMissing(nil)
	}
	return sandbox.NewLauncher(a.Config, a.Runtime, a.Auditor, a.Tokens), nil
}
