package cmd

import (
	"os"
	"strings"

	"github.com/denlabs/den/internal/identity"
	"github.com/denlabs/den/internal/sandbox"
	"github.com/denlabs/den/internal/workspace"
)

// launcher returns the sandbox launcher, failing when no container
// runtime is available.
func launcher() (*sandbox.Launcher, error) {
	return application.Launcher()
}

// resolveProject determines the project a command acts on. No argument
// means the current directory; remote URLs and bare names have no host
// directory and end up volume-backed.
func resolveProject(args []string) workspace.Project {
	if len(args) == 0 {
		return workspace.Detect(".")
	}
	arg := args[0]
	if identity.IsRemoteURL(arg) {
		return workspace.Project{Source: arg}
	}
	if isPathArg(arg) {
		return workspace.Detect(arg)
	}
	return workspace.Project{Source: arg}
}

// resolveTarget turns a name-or-source argument into an identity. Paths go
// through workspace detection so "den status ." matches what "den up"
// derived from the same checkout. Names and URLs resolve as given; the
// name override from the local project config does not apply to them, so a
// .den.yaml in the current directory cannot capture other projects.
func resolveTarget(arg string) identity.Identity {
	cfg := application.Config
	if isPathArg(arg) {
		return cfg.ResolveIdentity(workspace.Detect(arg).Source)
	}
	return identity.Resolve(arg, cfg.Variant, cfg.BasePort)
}

// currentIdentity resolves the project in the current directory.
func currentIdentity() identity.Identity {
	return application.Config.ResolveIdentity(workspace.Detect(".").Source)
}

// isPathArg reports whether a command argument denotes a filesystem path
// rather than a sandbox name or URL.
func isPathArg(arg string) bool {
	if arg == "." || arg == ".." ||
		strings.HasPrefix(arg, "./") || strings.HasPrefix(arg, "../") ||
		strings.HasPrefix(arg, "/") {
		return true
	}
	info, err := os.Stat(arg)
	return err == nil && info.IsDir()
}
