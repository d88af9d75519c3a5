// Package sandbox orchestrates den's per-project development sandboxes.
//
// A sandbox is a long-running container wired to a project: the checkout
// mounted or cloned at /workspace, a persistent home volume, derived port
// mappings, and an api-logger sidecar proxying the assistant's API
// traffic on a shared network. No state is kept on the host; everything
// needed to find and manage a sandbox is reconstructed from container
// labels, so sandboxes survive den upgrades and removals.
package sandbox
