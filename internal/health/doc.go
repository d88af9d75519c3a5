// Package health probes the operational state of a project's sandbox.
//
// A sandbox is checked in layers: the sandbox container must be running,
// its api-logger sidecar must be running, and the sidecar's health
// endpoint must answer on the derived host port. The layers reduce to a
// single Status:
//
//	StatusHealthy   - sandbox and logger running, health endpoint answers
//	StatusUnhealthy - logger running but its endpoint does not answer
//	StatusNoLogger  - sandbox running without a logger sidecar
//	StatusStopped   - sandbox container not running
//
// Probes are on-demand only; den runs no background monitoring.
package health
