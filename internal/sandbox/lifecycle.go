package sandbox

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/denlabs/den/internal/audit"
	"github.com/denlabs/den/internal/errors"
	"github.com/denlabs/den/internal/identity"
	"github.com/denlabs/den/internal/logging"
	"github.com/denlabs/den/internal/runtime"
)

// Orphan kinds.
const (
	OrphanContainer = "container"
	OrphanVolume    = "volume"
)

// Start starts a stopped sandbox without creating anything. A running
// sandbox is a no-op; a missing one is an error.
func (l *Launcher) Start(ctx context.Context, id identity.Identity) error {
	names := id.Names()

	info, err := l.rt.Status(ctx, names.Container)
	if err != nil {
		return errors.ContainerFailed("inspect", err)
	}
	switch info.Status {
	case runtime.StatusRunning:
		return nil
	case runtime.StatusNotFound:
		return errors.SandboxNotFound(id.Slug)
	}

	if err := l.rt.Start(ctx, names.Container); err != nil {
		l.logEvent(audit.EventError, id.Slug, "start failed")
		return errors.ContainerFailed("start", err)
	}
	l.logEvent(audit.EventStart, id.Slug, "")

	if !l.cfg.DisableLogger {
		if err := l.ensureLogger(ctx, id, names); err != nil {
			logging.Warn("api logger not started", "error", err)
		}
	}

	return nil
}

// Stop stops the project's sandbox. The api-logger sidecar is stopped
// alongside it, best-effort.
func (l *Launcher) Stop(ctx context.Context, id identity.Identity) error {
	names := id.Names()

	info, err := l.rt.Status(ctx, names.Container)
	if err != nil {
		return errors.ContainerFailed("inspect", err)
	}
	if info.Status == runtime.StatusNotFound {
		return errors.SandboxNotFound(id.Slug)
	}

	if info.Status == runtime.StatusRunning {
		if err := l.rt.Stop(ctx, names.Container); err != nil {
			return errors.ContainerFailed("stop", err)
		}
	}
	l.logEvent(audit.EventStop, id.Slug, "")

	if running, err := l.rt.IsRunning(ctx, names.APILoggerContainer); err == nil && running {
		if err := l.rt.Stop(ctx, names.APILoggerContainer); err != nil {
			logging.Warn("failed to stop api logger", "container", names.APILoggerContainer, "error", err)
		}
	}

	return nil
}

// Down destroys the sandbox and its api-logger sidecar. With
// opts.RemoveVolumes the workspace and home volumes go too; the shared
// log volume always survives.
func (l *Launcher) Down(ctx context.Context, id identity.Identity, opts DownOptions) error {
	names := id.Names()

	info, err := l.rt.Status(ctx, names.Container)
	if err != nil {
		return errors.ContainerFailed("inspect", err)
	}
	existed := info.Status != runtime.StatusNotFound

	if !existed && !opts.RemoveVolumes {
		return errors.SandboxNotFound(id.Slug)
	}

	if existed {
		if err := l.rt.Destroy(ctx, names.Container); err != nil {
			return errors.ContainerFailed("destroy", err)
		}
	}

	if err := l.rt.Destroy(ctx, names.APILoggerContainer); err != nil {
		logging.Warn("failed to remove api logger", "container", names.APILoggerContainer, "error", err)
	}

	if opts.RemoveVolumes {
		for _, volume := range []string{names.WorkspaceVolume, names.HomeVolume} {
			if err := l.rt.RemoveVolume(ctx, volume); err != nil {
				logging.Warn("failed to remove volume", "volume", volume, "error", err)
			}
		}
	}

	details := ""
	if opts.RemoveVolumes {
		details = "volumes removed"
	}
	l.logEvent(audit.EventDestroy, id.Slug, details)

	return nil
}

// List returns every managed sandbox, reconstructed from container labels
// and sorted by slug.
func (l *Launcher) List(ctx context.Context) ([]*Info, error) {
	containers, err := l.rt.List(ctx)
	if err != nil {
		return nil, errors.ContainerFailed("list", err)
	}

	var infos []*Info
	for _, c := range containers {
		if c.Labels[runtime.RoleLabel] != runtime.RoleSandbox {
			continue
		}
		id := IdentityFromLabels(c.Labels)
		infos = append(infos, &Info{
			Identity:  id,
			Names:     id.Names(),
			Status:    c.Status,
			StartedAt: c.StartedAt,
			IPAddress: c.IPAddress,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Identity.Slug < infos[j].Identity.Slug
	})
	return infos, nil
}

// Status reports the full resource state for one project: both containers
// and both volumes.
func (l *Launcher) Status(ctx context.Context, id identity.Identity) (*ProjectStatus, error) {
	names := id.Names()

	sandbox, err := l.rt.Status(ctx, names.Container)
	if err != nil {
		return nil, errors.ContainerFailed("inspect", err)
	}
	logger, err := l.rt.Status(ctx, names.APILoggerContainer)
	if err != nil {
		return nil, errors.ContainerFailed("inspect", err)
	}

	volumes, err := l.rt.ListVolumes(ctx)
	if err != nil {
		return nil, errors.ContainerFailed("list volumes", err)
	}
	have := make(map[string]bool, len(volumes))
	for _, v := range volumes {
		have[v] = true
	}

	return &ProjectStatus{
		Identity:        id,
		Names:           names,
		Sandbox:         sandbox,
		Logger:          logger,
		WorkspaceVolume: have[names.WorkspaceVolume],
		HomeVolume:      have[names.HomeVolume],
	}, nil
}

// Orphans scans managed resources for leftovers from partial teardowns:
// api-logger sidecars whose sandbox container is gone, and project volumes
// whose sandbox container is gone. The shared log volume is never reported.
func (l *Launcher) Orphans(ctx context.Context) ([]Orphan, error) {
	containers, err := l.rt.List(ctx)
	if err != nil {
		return nil, errors.ContainerFailed("list", err)
	}

	sandboxes := make(map[string]bool)
	for _, c := range containers {
		if c.Labels[runtime.RoleLabel] != runtime.RoleSandbox {
			continue
		}
		if slug := containerSlug(c); slug != "" {
			sandboxes[slug] = true
		}
	}

	var orphans []Orphan
	for _, c := range containers {
		if c.Labels[runtime.RoleLabel] != runtime.RoleAPILogger {
			continue
		}
		slug := containerSlug(c)
		if slug == "" || sandboxes[slug] {
			continue
		}
		orphans = append(orphans, Orphan{
			Kind:   OrphanContainer,
			Name:   c.Name,
			Reason: fmt.Sprintf("no sandbox for project %q", slug),
		})
	}

	volumes, err := l.rt.ListVolumes(ctx)
	if err != nil {
		return nil, errors.ContainerFailed("list volumes", err)
	}
	for _, name := range volumes {
		if name == identity.SharedLogVolume {
			continue
		}
		slug, _, ok := identity.SlugFromVolume(name)
		if !ok || sandboxes[slug] {
			continue
		}
		orphans = append(orphans, Orphan{
			Kind:   OrphanVolume,
			Name:   name,
			Reason: fmt.Sprintf("no sandbox for project %q", slug),
		})
	}

	sort.Slice(orphans, func(i, j int) bool {
		if orphans[i].Kind != orphans[j].Kind {
			return orphans[i].Kind < orphans[j].Kind
		}
		return orphans[i].Name < orphans[j].Name
	})
	return orphans, nil
}

// RemoveOrphans destroys the given orphans, best-effort, and returns how
// many were removed.
func (l *Launcher) RemoveOrphans(ctx context.Context, orphans []Orphan) (int, error) {
	removed := 0
	var failed []string
	for _, o := range orphans {
		var err error
		switch o.Kind {
		case OrphanContainer:
			err = l.rt.Destroy(ctx, o.Name)
		case OrphanVolume:
			err = l.rt.RemoveVolume(ctx, o.Name)
		default:
			continue
		}
		if err != nil {
			logging.Warn("orphan removal failed", "kind", o.Kind, "name", o.Name, "error", err)
			failed = append(failed, o.Name)
			continue
		}
		logging.Debug("removed orphan", "kind", o.Kind, "name", o.Name)
		removed++
	}

	if len(failed) > 0 {
		return removed, errors.ContainerFailed("remove "+strings.Join(failed, ", "), nil)
	}
	return removed, nil
}

// containerSlug recovers a container's project slug, preferring the label
// and falling back to the naming scheme.
func containerSlug(c *runtime.ContainerInfo) string {
	if slug := c.Labels[runtime.SlugLabel]; slug != "" {
		return slug
	}
	if slug, _, ok := identity.SlugFromContainer(c.Name); ok {
		return slug
	}
	if slug, ok := identity.SlugFromLoggerContainer(c.Name); ok {
		return slug
	}
	return ""
}
