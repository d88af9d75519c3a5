// Package workspace inspects the project directory that a sandbox is
// launched from.
package workspace

import (
	"os/exec"
	"path/filepath"
	"strings"
)

// Project describes the host directory a sandbox wraps.
type Project struct {
	// Dir is the absolute project directory. For git repositories this is
	// the repository toplevel, so nested invocations resolve identically.
	Dir string

	// Source is the string fed into identity resolution: the origin remote
	// URL when one exists, otherwise Dir.
	Source string

	// Branch is the checked-out branch, or "" outside a git repository.
	Branch string
}

// Detect inspects dir and returns the project description. Detection is
// best-effort: a plain directory is a valid project, so Detect never fails.
func Detect(dir string) Project {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}

	p := Project{Dir: abs, Source: abs}

	if !IsRepo(abs) {
		return p
	}

	if root, err := Root(abs); err == nil {
		p.Dir = root
		p.Source = root
	}
	if url, err := OriginURL(p.Dir); err == nil && url != "" {
		p.Source = url
	}
	if branch, err := CurrentBranch(p.Dir); err == nil {
		p.Branch = branch
	}

	return p
}

// IsRepo reports whether dir is inside a git working tree.
func IsRepo(dir string) bool {
	cmd := exec.Command("git", "-C", dir, "rev-parse", "--is-inside-work-tree")
	output, err := cmd.Output()
	return err == nil && strings.TrimSpace(string(output)) == "true"
}

// Root returns the toplevel directory of the repository containing dir.
func Root(dir string) (string, error) {
	cmd := exec.Command("git", "-C", dir, "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// OriginURL returns the URL of the origin remote, or "" if the repository
// has no origin remote.
func OriginURL(dir string) (string, error) {
	cmd := exec.Command("git", "-C", dir, "remote", "get-url", "origin")
	output, err := cmd.Output()
	if err != nil {
		// A repo without an origin remote is normal for fresh projects.
		return "", nil
	}
	return strings.TrimSpace(string(output)), nil
}

// CurrentBranch returns the checked-out branch name. Detached HEAD states
// report the literal "HEAD".
func CurrentBranch(dir string) (string, error) {
	cmd := exec.Command("git", "-C", dir, "rev-parse", "--abbrev-ref", "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}
