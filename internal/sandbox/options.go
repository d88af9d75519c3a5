package sandbox

import (
	"github.com/denlabs/den/internal/identity"
	"github.com/denlabs/den/internal/runtime"
	"github.com/denlabs/den/internal/workspace"
)

// UpResult describes what Up did for a project.
type UpResult struct {
	// Identity is the resolved project identity.
	Identity identity.Identity

	// Names holds the derived resource names.
	Names identity.Names

	// Project is the inspected host project.
	Project workspace.Project

	// Created is true when a new container was created.
	Created bool

	// Recovered is true when an existing stopped container was restarted.
	Recovered bool

	// LoggerRunning is true when the api-logger sidecar is up.
	LoggerRunning bool
}

// DownOptions configures sandbox teardown.
type DownOptions struct {
	// RemoveVolumes also removes the project's workspace and home volumes.
	// The shared log volume is never removed.
	RemoveVolumes bool
}

// Info summarizes one managed sandbox, reconstructed from container labels.
type Info struct {
	Identity  identity.Identity
	Names     identity.Names
	Status    runtime.ContainerStatus
	StartedAt string
	IPAddress string
}

// ProjectStatus is the detailed view of one project's resources.
type ProjectStatus struct {
	Identity identity.Identity
	Names    identity.Names

	// Sandbox and Logger report container state; StatusNotFound means the
	// container does not exist.
	Sandbox *runtime.ContainerInfo
	Logger  *runtime.ContainerInfo

	// WorkspaceVolume and HomeVolume report volume existence.
	WorkspaceVolume bool
	HomeVolume      bool
}

// Orphan is a leftover resource that gc can remove: an api-logger sidecar
// whose sandbox is gone, or a project volume whose sandbox is gone.
type Orphan struct {
	// Kind is "container" or "volume".
	Kind string

	// Name is the resource name.
	Name string

	// Reason explains why the resource is considered orphaned.
	Reason string
}
