package runtime

import (
	"fmt"
	"os/exec"

	"github.com/denlabs/den/internal/logging"
)

// RuntimeType identifies which container runtime to use
type RuntimeType string

const (
	RuntimeDocker RuntimeType = "docker"
	RuntimePodman RuntimeType = "podman"
	RuntimeAuto   RuntimeType = "auto"
)

// ParseType parses a runtime name from configuration. Empty input means
// auto-detection.
func ParseType(s string) (RuntimeType, error) {
	switch RuntimeType(s) {
	case "", RuntimeAuto:
		return RuntimeAuto, nil
	case RuntimeDocker:
		return RuntimeDocker, nil
	case RuntimePodman:
		return RuntimePodman, nil
	default:
		return "", fmt.Errorf("unknown runtime %q (supported: docker, podman, auto)", s)
	}
}

// Detect determines which container runtime is available on the system.
// Podman is preferred for rootless operation.
func Detect() (RuntimeType, error) {
	if _, err := exec.LookPath("podman"); err == nil {
		logging.Debug("detected podman")
		return RuntimePodman, nil
	}

	if _, err := exec.LookPath("docker"); err == nil {
		logging.Debug("detected docker")
		return RuntimeDocker, nil
	}

	return "", fmt.Errorf("no supported container runtime found (tried: podman, docker)")
}

// New creates a new Runtime for the named backend. An empty name or "auto"
// auto-detects the best available runtime.
func New(name string) (Runtime, error) {
	runtimeType, err := ParseType(name)
	if err != nil {
		return nil, err
	}

	if runtimeType == RuntimeAuto {
		detected, err := Detect()
		if err != nil {
			return nil, err
		}
		runtimeType = detected
	}

	logging.Debug("creating runtime", "type", runtimeType)

	if _, err := exec.LookPath(string(runtimeType)); err != nil {
		return nil, fmt.Errorf("%s not found in PATH: %w", runtimeType, err)
	}

	return &DockerRuntime{Command: string(runtimeType)}, nil
}

// Available returns a list of available runtimes on this system
func Available() []RuntimeType {
	var available []RuntimeType

	if _, err := exec.LookPath("podman"); err == nil {
		available = append(available, RuntimePodman)
	}

	if _, err := exec.LookPath("docker"); err == nil {
		available = append(available, RuntimeDocker)
	}

	return available
}
