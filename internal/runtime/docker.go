package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"syscall"

	"github.com/denlabs/den/internal/logging"
)

// DockerRuntime implements the Runtime interface using Docker or Podman.
type DockerRuntime struct {
	// Command is the container command to use (docker or podman)
	Command string
}

// NewDockerRuntime creates a new Docker/Podman runtime.
// It auto-detects which command is available, preferring podman.
func NewDockerRuntime() (*DockerRuntime, error) {
	if _, err := exec.LookPath("podman"); err == nil {
		return &DockerRuntime{Command: "podman"}, nil
	}

	if _, err := exec.LookPath("docker"); err == nil {
		return &DockerRuntime{Command: "docker"}, nil
	}

	return nil, fmt.Errorf("neither podman nor docker found in PATH")
}

// Name returns the runtime identifier
func (r *DockerRuntime) Name() string {
	return r.Command
}

// runCmd executes a docker/podman command
func (r *DockerRuntime) runCmd(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.Command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s failed: %s: %w", r.Command, args[0], stderr.String(), err)
	}

	return stdout.String(), nil
}

// createArgs builds the argument list for container creation. Map-backed
// options are emitted in sorted order so invocations are reproducible.
func createArgs(opts CreateOptions) []string {
	args := []string{"create", "--name", opts.Name}

	if opts.Hostname != "" {
		args = append(args, "--hostname", opts.Hostname)
	}
	if opts.Network != "" {
		args = append(args, "--network", opts.Network)
	}
	if opts.Workdir != "" {
		args = append(args, "-w", opts.Workdir)
	}

	for _, k := range sortedKeys(opts.Labels) {
		args = append(args, "--label", k+"="+opts.Labels[k])
	}

	for _, volume := range sortedKeys(opts.Volumes) {
		args = append(args, "-v", volume+":"+opts.Volumes[volume])
	}

	for _, hostPath := range sortedKeys(opts.BindMounts) {
		args = append(args, "-v", hostPath+":"+opts.BindMounts[hostPath])
	}

	hostPorts := make([]int, 0, len(opts.PublishPorts))
	for hostPort := range opts.PublishPorts {
		hostPorts = append(hostPorts, hostPort)
	}
	sort.Ints(hostPorts)
	for _, hostPort := range hostPorts {
		args = append(args, "-p", fmt.Sprintf("127.0.0.1:%d:%d", hostPort, opts.PublishPorts[hostPort]))
	}

	for _, env := range opts.Env {
		args = append(args, "-e", env)
	}

	args = append(args, opts.ExtraArgs...)
	args = append(args, opts.Image)
	args = append(args, opts.Command...)

	return args
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Create creates a new container
func (r *DockerRuntime) Create(ctx context.Context, opts CreateOptions) error {
	if opts.Image == "" {
		return fmt.Errorf("image is required to create container %s", opts.Name)
	}

	logging.Debug("creating container", "name", opts.Name, "image", opts.Image, "runtime", r.Command)

	if _, err := r.runCmd(ctx, createArgs(opts)...); err != nil {
		return err
	}

	if opts.Start {
		return r.Start(ctx, opts.Name)
	}

	return nil
}

// Start starts an existing container
func (r *DockerRuntime) Start(ctx context.Context, name string) error {
	logging.Debug("starting container", "container", name)

	_, err := r.runCmd(ctx, "start", name)
	return err
}

// Stop stops a running container
func (r *DockerRuntime) Stop(ctx context.Context, name string) error {
	logging.Debug("stopping container", "container", name)

	_, err := r.runCmd(ctx, "stop", name)
	return err
}

// Destroy stops and removes a container
func (r *DockerRuntime) Destroy(ctx context.Context, name string) error {
	logging.Debug("destroying container", "container", name)

	// Stop first (ignore errors if already stopped)
	_, _ = r.runCmd(ctx, "stop", name)

	_, err := r.runCmd(ctx, "rm", "-f", name)
	if err != nil && isNotFound(err) {
		return nil
	}

	return err
}

// isNotFound reports whether an error is a "no such object" CLI failure.
func isNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no such container") ||
		strings.Contains(msg, "no such volume") ||
		strings.Contains(msg, "no such network") ||
		strings.Contains(msg, "not found")
}

// IsRunning checks if a container is currently running
func (r *DockerRuntime) IsRunning(ctx context.Context, name string) (bool, error) {
	output, err := r.runCmd(ctx, "inspect", "-f", "{{.State.Running}}", name)
	if err != nil {
		return false, nil // Container doesn't exist
	}

	return strings.TrimSpace(output) == "true", nil
}

// dockerInspect holds the relevant fields from docker inspect
type dockerInspect struct {
	State struct {
		Status    string `json:"Status"`
		Running   bool   `json:"Running"`
		StartedAt string `json:"StartedAt"`
	} `json:"State"`
	NetworkSettings struct {
		IPAddress string `json:"IPAddress"`
	} `json:"NetworkSettings"`
	Config struct {
		Labels map[string]string `json:"Labels"`
	} `json:"Config"`
}

// Status returns detailed status of a container
func (r *DockerRuntime) Status(ctx context.Context, name string) (*ContainerInfo, error) {
	info := &ContainerInfo{
		Name:   name,
		Status: StatusNotFound,
	}

	output, err := r.runCmd(ctx, "inspect", name)
	if err != nil {
		return info, nil
	}

	var inspects []dockerInspect
	if err := json.Unmarshal([]byte(output), &inspects); err != nil {
		return info, nil
	}

	if len(inspects) == 0 {
		return info, nil
	}

	inspect := inspects[0]
	switch inspect.State.Status {
	case "running":
		info.Status = StatusRunning
	case "exited", "stopped", "created":
		info.Status = StatusStopped
	default:
		info.Status = StatusUnknown
	}

	info.StartedAt = inspect.State.StartedAt
	info.IPAddress = inspect.NetworkSettings.IPAddress
	info.Labels = inspect.Config.Labels

	return info, nil
}

// Exec executes a command inside a container
func (r *DockerRuntime) Exec(ctx context.Context, name string, command []string, opts ExecOptions) (*ExecResult, error) {
	args := []string{"exec"}

	if opts.Interactive {
		args = append(args, "-it")
	}

	if opts.User != "" {
		args = append(args, "-u", opts.User)
	}

	if opts.WorkingDir != "" {
		args = append(args, "-w", opts.WorkingDir)
	}

	for _, env := range opts.Env {
		args = append(args, "-e", env)
	}

	args = append(args, name)
	args = append(args, command...)

	cmd := exec.CommandContext(ctx, r.Command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if opts.Stdin != nil {
		cmd.Stdin = opts.Stdin
	}

	err := cmd.Run()

	result := &ExecResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			return result, fmt.Errorf("exec failed: %w", err)
		}
	}

	return result, nil
}

// ExecInteractive executes a command with an interactive TTY
func (r *DockerRuntime) ExecInteractive(ctx context.Context, name string, command []string, opts ExecOptions) error {
	cmdPath, err := exec.LookPath(r.Command)
	if err != nil {
		return fmt.Errorf("%s not found: %w", r.Command, err)
	}

	args := []string{r.Command, "exec", "-it"}

	if opts.User != "" {
		args = append(args, "-u", opts.User)
	}

	if opts.WorkingDir != "" {
		args = append(args, "-w", opts.WorkingDir)
	}

	for _, env := range opts.Env {
		args = append(args, "-e", env)
	}

	args = append(args, name)
	args = append(args, command...)

	return syscall.Exec(cmdPath, args, os.Environ())
}

// List returns all den-managed containers
func (r *DockerRuntime) List(ctx context.Context) ([]*ContainerInfo, error) {
	output, err := r.runCmd(ctx, "ps", "-a", "--format", "{{.Names}}", "--filter", managedFilter)
	if err != nil {
		return nil, err
	}

	var containers []*ContainerInfo
	for _, name := range strings.Split(strings.TrimSpace(output), "\n") {
		if name == "" {
			continue
		}

		info, _ := r.Status(ctx, name)
		if info != nil {
			containers = append(containers, info)
		}
	}

	return containers, nil
}

// EnsureVolume creates a named volume if it does not already exist
func (r *DockerRuntime) EnsureVolume(ctx context.Context, name string, labels map[string]string) error {
	if _, err := r.runCmd(ctx, "volume", "inspect", name); err == nil {
		return nil
	}

	logging.Debug("creating volume", "volume", name)

	args := []string{"volume", "create"}
	for _, k := range sortedKeys(labels) {
		args = append(args, "--label", k+"="+labels[k])
	}
	args = append(args, name)

	_, err := r.runCmd(ctx, args...)
	return err
}

// RemoveVolume removes a named volume. Missing volumes are not an error
func (r *DockerRuntime) RemoveVolume(ctx context.Context, name string) error {
	logging.Debug("removing volume", "volume", name)

	_, err := r.runCmd(ctx, "volume", "rm", name)
	if err != nil && isNotFound(err) {
		return nil
	}

	return err
}

// ListVolumes returns the names of all den-managed volumes
func (r *DockerRuntime) ListVolumes(ctx context.Context) ([]string, error) {
	output, err := r.runCmd(ctx, "volume", "ls", "--format", "{{.Name}}", "--filter", managedFilter)
	if err != nil {
		return nil, err
	}

	var volumes []string
	for _, name := range strings.Split(strings.TrimSpace(output), "\n") {
		if name != "" {
			volumes = append(volumes, name)
		}
	}

	return volumes, nil
}

// EnsureNetwork creates a network if it does not already exist
func (r *DockerRuntime) EnsureNetwork(ctx context.Context, name string) error {
	if _, err := r.runCmd(ctx, "network", "inspect", name); err == nil {
		return nil
	}

	logging.Debug("creating network", "network", name)

	_, err := r.runCmd(ctx, "network", "create", name)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "already exists") {
		return nil
	}

	return err
}

// Ensure DockerRuntime implements Runtime
var _ Runtime = (*DockerRuntime)(nil)
