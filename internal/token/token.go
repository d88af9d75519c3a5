// Package token obtains GitHub credentials for sandboxes through the gh CLI.
//
// Sandboxes never see the host's gh config. Instead the launcher asks the
// host's gh for a short-lived token and injects it as GH_TOKEN, so revoking
// access is a host-side operation.
package token

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/denlabs/den/internal/errors"
)

// Provider supplies GitHub credentials.
type Provider interface {
	// Status returns a human-readable description of the current auth state.
	Status(ctx context.Context) (string, error)

	// Token returns the active GitHub token.
	Token(ctx context.Context) (string, error)

	// Refresh re-runs the auth flow, requesting the given additional scopes.
	Refresh(ctx context.Context, scopes ...string) error
}

// CLI implements Provider by shelling out to the gh command.
type CLI struct {
	// Command is the gh binary name, normally "gh".
	Command string
}

// NewCLI returns a Provider backed by the gh binary.
func NewCLI() *CLI {
	return &CLI{Command: "gh"}
}

func (c *CLI) run(ctx context.Context, args ...string) (string, error) {
	if _, err := exec.LookPath(c.Command); err != nil {
		return "", errors.TokenError(
			fmt.Sprintf("%s not found in PATH (install from https://cli.github.com)", c.Command), err)
	}

	cmd := exec.CommandContext(ctx, c.Command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		return "", errors.TokenError(fmt.Sprintf("%s %s failed: %s", c.Command, args[0], msg), err)
	}

	return stdout.String(), nil
}

// Status runs gh auth status. gh prints status to stderr, so stderr is folded
// into the result.
func (c *CLI) Status(ctx context.Context) (string, error) {
	if _, err := exec.LookPath(c.Command); err != nil {
		return "", errors.TokenError(
			fmt.Sprintf("%s not found in PATH (install from https://cli.github.com)", c.Command), err)
	}

	cmd := exec.CommandContext(ctx, c.Command, "auth", "status")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", errors.TokenError(fmt.Sprintf("not logged in to GitHub: %s", strings.TrimSpace(string(output))), err)
	}
	return strings.TrimSpace(string(output)), nil
}

// Token runs gh auth token and returns the trimmed token.
func (c *CLI) Token(ctx context.Context) (string, error) {
	output, err := c.run(ctx, "auth", "token")
	if err != nil {
		return "", err
	}

	token := strings.TrimSpace(output)
	if token == "" {
		return "", errors.TokenError("gh returned an empty token (run: gh auth login)", nil)
	}
	return token, nil
}

// Refresh runs gh auth refresh, requesting each scope with -s.
func (c *CLI) Refresh(ctx context.Context, scopes ...string) error {
	args := []string{"auth", "refresh"}
	for _, scope := range scopes {
		args = append(args, "-s", scope)
	}

	if _, err := exec.LookPath(c.Command); err != nil {
		return errors.TokenError(
			fmt.Sprintf("%s not found in PATH (install from https://cli.github.com)", c.Command), err)
	}

	// Refresh is interactive (device-code flow), so it owns the terminal.
	cmd := exec.CommandContext(ctx, c.Command, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.TokenError("gh auth refresh failed", err)
	}
	return nil
}

var _ Provider = (*CLI)(nil)
