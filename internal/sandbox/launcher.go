package sandbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/denlabs/den/internal/apilogger"
	"github.com/denlabs/den/internal/audit"
	"github.com/denlabs/den/internal/config"
	"github.com/denlabs/den/internal/errors"
	"github.com/denlabs/den/internal/identity"
	"github.com/denlabs/den/internal/logging"
	"github.com/denlabs/den/internal/port"
	"github.com/denlabs/den/internal/runtime"
	"github.com/denlabs/den/internal/token"
	"github.com/denlabs/den/internal/workspace"
)

const (
	// NetworkName is the shared bridge network. Sandboxes reach their
	// api-logger sidecar through container-name DNS on this network.
	NetworkName = "den"

	// workspaceMount is where the project lands inside the sandbox.
	workspaceMount = "/workspace"

	// homeMount persists the assistant's home directory.
	homeMount = "/home/agent"

	// sharedLogMount is where api-logger sidecars write their JSONL logs.
	sharedLogMount = "/data/api-logs"
)

// containerPorts maps each sandbox-hosted service to the fixed port it
// serves on inside the container. Host-side ports are derived per project.
var containerPorts = map[identity.Service]int{
	identity.ServiceCodeServer: 8443,
	identity.ServiceUpload:     8444,
	identity.ServiceDocs:       8445,
}

// Launcher orchestrates sandbox lifecycle against a container runtime.
type Launcher struct {
	cfg     *config.Config
	rt      runtime.Runtime
	auditor *audit.Logger
	tokens  token.Provider
}

// NewLauncher creates a Launcher. tokens may be nil, in which case sandboxes
// are created without a GitHub token.
func NewLauncher(cfg *config.Config, rt runtime.Runtime, auditor *audit.Logger, tokens token.Provider) *Launcher {
	return &Launcher{cfg: cfg, rt: rt, auditor: auditor, tokens: tokens}
}

// Up brings the project's sandbox to a running state: reuse a running
// container, restart a stopped one, or create it from scratch. Unless
// disabled, the api-logger sidecar is brought up alongside.
func (l *Launcher) Up(ctx context.Context, project workspace.Project) (*UpResult, error) {
	id := l.cfg.ResolveIdentity(project.Source)
	names := id.Names()

	result := &UpResult{
		Identity: id,
		Names:    names,
		Project:  project,
	}

	info, err := l.rt.Status(ctx, names.Container)
	if err != nil {
		return nil, errors.ContainerFailed("inspect", err)
	}

	switch info.Status {
	case runtime.StatusRunning:
		logging.Debug("sandbox already running", "container", names.Container)

	case runtime.StatusStopped:
		logging.Debug("restarting stopped sandbox", "container", names.Container)
		if err := l.rt.Start(ctx, names.Container); err != nil {
			l.logEvent(audit.EventError, id.Slug, "start failed: "+err.Error())
			return nil, errors.ContainerFailed("start", err)
		}
		result.Recovered = true
		l.logEvent(audit.EventRecover, id.Slug, "restarted "+names.Container)

	default:
		if err := l.create(ctx, id, names, project); err != nil {
			l.logEvent(audit.EventError, id.Slug, "create failed: "+err.Error())
			return nil, err
		}
		result.Created = true
		l.logEvent(audit.EventCreate, id.Slug, fmt.Sprintf("source=%s image=%s", id.RawSource, l.cfg.Image))
	}

	if !l.cfg.DisableLogger {
		if err := l.ensureLogger(ctx, id, names); err != nil {
			// The sandbox is usable without its logger; don't fail up.
			logging.Warn("api logger unavailable", "container", names.APILoggerContainer, "error", err)
		} else {
			result.LoggerRunning = true
		}
	}

	return result, nil
}

// create builds the sandbox container: network, volumes, mounts, ports,
// environment, labels. Remote sources get their repository cloned into the
// workspace volume on first start.
func (l *Launcher) create(ctx context.Context, id identity.Identity, names identity.Names, project workspace.Project) error {
	if err := l.rt.EnsureNetwork(ctx, NetworkName); err != nil {
		return errors.ContainerFailed("network setup", err)
	}

	labels := BuildLabels(id, runtime.RoleSandbox)

	if err := l.rt.EnsureVolume(ctx, names.HomeVolume, labels); err != nil {
		return errors.ContainerFailed("volume setup", err)
	}

	volumes := map[string]string{names.HomeVolume: homeMount}
	binds := map[string]string{}

	// A local checkout is bind mounted even when the identity was resolved
	// from its origin URL; only URL-only sources live in a volume.
	remote := project.Dir == ""
	if remote {
		if err := l.rt.EnsureVolume(ctx, names.WorkspaceVolume, labels); err != nil {
			return errors.ContainerFailed("volume setup", err)
		}
		volumes[names.WorkspaceVolume] = workspaceMount
	} else {
		binds[project.Dir] = workspaceMount
	}

	for _, mount := range l.cfg.Mounts {
		host, dest, err := splitMount(mount)
		if err != nil {
			return err
		}
		binds[host] = dest
	}

	ports := map[int]int{}
	for svc, containerPort := range containerPorts {
		ports[id.Port(svc)] = containerPort
	}
	for _, publish := range l.cfg.Publish {
		host, dest, err := splitPublish(publish)
		if err != nil {
			return err
		}
		ports[host] = dest
	}

	hostPorts := make([]int, 0, len(ports))
	for host := range ports {
		hostPorts = append(hostPorts, host)
	}
	if busy := port.Busy(hostPorts); len(busy) > 0 {
		logging.Warn("host ports already bound, publishing may fail", "ports", busy)
	}

	opts := runtime.CreateOptions{
		Name:         names.Container,
		Image:        l.cfg.Image,
		Hostname:     id.Slug,
		Command:      []string{"sleep", "infinity"},
		Volumes:      volumes,
		BindMounts:   binds,
		PublishPorts: ports,
		Env:          l.buildEnv(ctx, id, names),
		Labels:       labels,
		Network:      NetworkName,
		Workdir:      workspaceMount,
		Start:        true,
	}

	logging.Debug("creating sandbox container",
		"container", names.Container,
		"image", opts.Image,
		"remote_source", remote)

	if err := l.rt.Create(ctx, opts); err != nil {
		// Volumes are left in place: they are either pre-existing or empty.
		if destroyErr := l.rt.Destroy(ctx, names.Container); destroyErr != nil {
			logging.Debug("cleanup after failed create", "error", destroyErr)
		}
		return errors.ContainerFailed("create", err)
	}

	// Bare-name sources also live in a volume but have nothing to clone.
	if remote && identity.IsRemoteURL(id.RawSource) {
		if err := l.cloneSource(ctx, names.Container, id.RawSource); err != nil {
			if destroyErr := l.rt.Destroy(ctx, names.Container); destroyErr != nil {
				logging.Debug("cleanup after failed clone", "error", destroyErr)
			}
			return err
		}
	}

	return nil
}

// cloneSource clones a remote repository into the workspace volume. The
// clone is skipped when the volume already holds a checkout, so a sandbox
// recreated over surviving volumes keeps its work.
func (l *Launcher) cloneSource(ctx context.Context, container, source string) error {
	script := fmt.Sprintf("[ -e %s/.git ] || git clone -- %s %s",
		workspaceMount, shellquote.Join(source), workspaceMount)

	logging.Debug("cloning source repository", "container", container, "source", source)

	result, err := l.rt.Exec(ctx, container, []string{"sh", "-c", script}, runtime.ExecOptions{})
	if err != nil {
		return errors.GitError("clone failed", err)
	}
	if result.ExitCode != 0 {
		return errors.GitError(fmt.Sprintf("clone failed: %s", strings.TrimSpace(result.Stderr)), nil)
	}
	return nil
}

// buildEnv assembles the sandbox environment: project name, API key
// passthrough, base URL pointed at the api-logger, GitHub token, and
// user-configured variables.
func (l *Launcher) buildEnv(ctx context.Context, id identity.Identity, names identity.Names) []string {
	env := []string{"PROJECT_NAME=" + id.Slug}

	if key := os.Getenv(id.Variant.APIKeyEnv()); key != "" {
		env = append(env, id.Variant.APIKeyEnv()+"="+key)
	}

	if !l.cfg.DisableLogger {
		env = append(env, fmt.Sprintf("%s=http://%s:%d",
			id.Variant.BaseURLEnv(), names.APILoggerContainer, apilogger.DefaultPort))
	}

	if l.tokens != nil {
		if tok, err := l.tokens.Token(ctx); err == nil {
			env = append(env, "GH_TOKEN="+tok)
		} else {
			logging.Debug("no GitHub token available", "error", err)
		}
	}

	keys := make([]string, 0, len(l.cfg.Env))
	for k := range l.cfg.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+l.cfg.Env[k])
	}

	return env
}

// ensureLogger brings up the project's api-logger sidecar. The sidecar runs
// this same binary's "logger serve" on the shared network and writes to the
// shared log volume.
func (l *Launcher) ensureLogger(ctx context.Context, id identity.Identity, names identity.Names) error {
	info, err := l.rt.Status(ctx, names.APILoggerContainer)
	if err != nil {
		return err
	}

	switch info.Status {
	case runtime.StatusRunning:
		return nil
	case runtime.StatusStopped:
		return l.rt.Start(ctx, names.APILoggerContainer)
	}

	if err := l.rt.EnsureVolume(ctx, identity.SharedLogVolume, map[string]string{runtime.ManagedLabel: "true"}); err != nil {
		return err
	}

	opts := runtime.CreateOptions{
		Name:  names.APILoggerContainer,
		Image: l.cfg.Image,
		Command: []string{
			"den", "logger", "serve",
			"--project", id.Slug,
			"--log-dir", sharedLogMount,
			"--listen", fmt.Sprintf(":%d", apilogger.DefaultPort),
		},
		Volumes:      map[string]string{identity.SharedLogVolume: sharedLogMount},
		PublishPorts: map[int]int{id.Port(identity.ServiceAPILogger): apilogger.DefaultPort},
		Labels:       BuildLabels(id, runtime.RoleAPILogger),
		Network:      NetworkName,
		Start:        true,
	}

	logging.Debug("creating api logger sidecar", "container", names.APILoggerContainer)
	return l.rt.Create(ctx, opts)
}

// Attach replaces the current process with the assistant CLI running inside
// the sandbox. It does not return on success.
func (l *Launcher) Attach(ctx context.Context, id identity.Identity, args []string) error {
	names := id.Names()

	running, err := l.rt.IsRunning(ctx, names.Container)
	if err != nil {
		return errors.ContainerFailed("inspect", err)
	}
	if !running {
		return errors.SandboxNotRunning(id.Slug)
	}

	// Logged before exec: the process is replaced on success.
	l.logEvent(audit.EventAttach, id.Slug, "")

	command := append([]string{id.Variant.Command()}, args...)
	return l.rt.ExecInteractive(ctx, names.Container, command, runtime.ExecOptions{
		WorkingDir:  workspaceMount,
		Interactive: true,
	})
}

// Exec runs a command inside the sandbox's workspace.
func (l *Launcher) Exec(ctx context.Context, id identity.Identity, command []string, interactive bool) (*runtime.ExecResult, error) {
	names := id.Names()

	running, err := l.rt.IsRunning(ctx, names.Container)
	if err != nil {
		return nil, errors.ContainerFailed("inspect", err)
	}
	if !running {
		return nil, errors.SandboxNotRunning(id.Slug)
	}

	l.logEvent(audit.EventExec, id.Slug, shellquote.Join(command...))

	opts := runtime.ExecOptions{WorkingDir: workspaceMount, Interactive: interactive}
	if interactive {
		return nil, l.rt.ExecInteractive(ctx, names.Container, command, opts)
	}
	return l.rt.Exec(ctx, names.Container, command, opts)
}

// logEvent records a lifecycle event, best-effort.
func (l *Launcher) logEvent(eventType audit.EventType, slug, details string) {
	if l.auditor == nil {
		return
	}
	if err := l.auditor.LogEvent(eventType, slug, details); err != nil {
		logging.Debug("audit write failed", "error", err)
	}
}

// splitMount parses a "host:container" bind mount. Relative host paths are
// resolved against the current directory.
func splitMount(mount string) (host, dest string, err error) {
	host, dest, ok := strings.Cut(mount, ":")
	if !ok || host == "" || dest == "" {
		return "", "", errors.ValidationError(fmt.Sprintf("invalid mount %q (want host:container)", mount))
	}
	abs, err := filepath.Abs(host)
	if err != nil {
		return "", "", errors.ValidationError(fmt.Sprintf("invalid mount path %q", host))
	}
	return abs, dest, nil
}

// splitPublish parses a "host:container" port publish.
func splitPublish(publish string) (host, dest int, err error) {
	h, d, ok := strings.Cut(publish, ":")
	if !ok {
		return 0, 0, errors.ValidationError(fmt.Sprintf("invalid publish %q (want host:container)", publish))
	}
	host, err = strconv.Atoi(h)
	if err != nil {
		return 0, 0, errors.ValidationError(fmt.Sprintf("invalid host port %q", h))
	}
	dest, err = strconv.Atoi(d)
	if err != nil {
		return 0, 0, errors.ValidationError(fmt.Sprintf("invalid container port %q", d))
	}
	return host, dest, nil
}
