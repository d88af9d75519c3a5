// Package runtime defines the container runtime interface for den.
// This abstraction wraps the docker and podman CLIs and enables
// comprehensive testing through mocking.
package runtime

import (
	"context"
	"io"
)

// ContainerStatus represents the state of a container
type ContainerStatus string

const (
	StatusRunning  ContainerStatus = "running"
	StatusStopped  ContainerStatus = "stopped"
	StatusNotFound ContainerStatus = "not-found"
	StatusUnknown  ContainerStatus = "unknown"
)

// ContainerInfo holds information about a container
type ContainerInfo struct {
	Name      string
	Status    ContainerStatus
	StartedAt string
	IPAddress string
	Labels    map[string]string
}

// ExecResult holds the result of executing a command in a container
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// CreateOptions holds options for creating a container.
// Names are used verbatim; callers derive them beforehand.
type CreateOptions struct {
	Name         string
	Image        string
	Hostname     string
	Command      []string          // container command; empty keeps the image default
	Volumes      map[string]string // volume name -> container path
	BindMounts   map[string]string // host path -> container path
	PublishPorts map[int]int       // host port -> container port, bound to loopback
	Env          []string          // KEY=VALUE entries
	Labels       map[string]string
	Network      string
	Workdir      string
	ExtraArgs    []string // backend-specific arguments
	Start        bool     // start immediately after creation
}

// ExecOptions holds options for executing a command in a container
type ExecOptions struct {
	User        string    // User to run as
	WorkingDir  string    // Working directory
	Env         []string  // Environment variables
	Stdin       io.Reader // Standard input
	Interactive bool      // Allocate a TTY
}

// Runtime is the interface that container backends must implement.
// All methods should be safe for concurrent use.
type Runtime interface {
	// Name returns the runtime identifier (e.g., "docker", "podman")
	Name() string

	// Create creates a new container but does not start it unless
	// opts.Start is set
	Create(ctx context.Context, opts CreateOptions) error

	// Start starts an existing container
	Start(ctx context.Context, name string) error

	// Stop stops a running container
	Stop(ctx context.Context, name string) error

	// Destroy stops and removes a container
	Destroy(ctx context.Context, name string) error

	// IsRunning checks if a container is currently running
	IsRunning(ctx context.Context, name string) (bool, error)

	// Status returns detailed status of a container, including its labels
	Status(ctx context.Context, name string) (*ContainerInfo, error)

	// Exec executes a command inside a container
	Exec(ctx context.Context, name string, command []string, opts ExecOptions) (*ExecResult, error)

	// ExecInteractive executes a command with an interactive TTY
	// This replaces the current process (uses syscall.Exec)
	ExecInteractive(ctx context.Context, name string, command []string, opts ExecOptions) error

	// List returns all den-managed containers
	List(ctx context.Context) ([]*ContainerInfo, error)

	// EnsureVolume creates a named volume if it does not already exist
	EnsureVolume(ctx context.Context, name string, labels map[string]string) error

	// RemoveVolume removes a named volume. Missing volumes are not an error
	RemoveVolume(ctx context.Context, name string) error

	// ListVolumes returns the names of all den-managed volumes
	ListVolumes(ctx context.Context) ([]string, error)

	// EnsureNetwork creates a network if it does not already exist
	EnsureNetwork(ctx context.Context, name string) error
}
