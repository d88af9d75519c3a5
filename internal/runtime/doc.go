// Package runtime provides a unified interface for container runtimes.
//
// Supported runtimes:
//   - docker: Docker containers (Linux, macOS, Windows)
//   - podman: Podman containers, preferred when available (rootless)
//
// Runtime selection is automatic based on available tools, or explicit via
// configuration. Both backends are driven through their CLIs; den never
// links a daemon client library.
//
// # Runtime Interface
//
// The Runtime interface defines operations common to both backends:
//   - Create, Start, Stop, Destroy: Container lifecycle
//   - IsRunning, Status: Container state queries
//   - Exec, ExecInteractive: Command execution inside containers
//   - List: Enumerate den-managed containers
//   - EnsureVolume, RemoveVolume, ListVolumes: Volume lifecycle
//   - EnsureNetwork: Shared network setup
//
// # Labels
//
// Every container and volume den creates carries den.* labels (see
// labels.go). The runtime's state, reached through these labels, is the
// only durable record of what den manages: List and ListVolumes filter on
// den.managed=true, and Status surfaces the labels so callers can
// reconstruct a sandbox's identity without any local metadata store.
//
// # Mock Runtime
//
// For testing, use NewMockRuntime() to create a mock implementation that
// can be seeded with containers and volumes, configured with errors, and
// used to verify calls.
package runtime
