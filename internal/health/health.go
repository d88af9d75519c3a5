package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/denlabs/den/internal/identity"
	"github.com/denlabs/den/internal/runtime"
)

// probeTimeout bounds the api-logger health probe.
const probeTimeout = 2 * time.Second

// Status represents the health status of a project's sandbox.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusNoLogger  Status = "no-logger"
	StatusStopped   Status = "stopped"
)

// CheckResult contains the results of health checks for one project.
type CheckResult struct {
	SandboxRunning bool
	LoggerRunning  bool
	LoggerHealthy  bool
	Uptime         string
}

// Checker probes the container runtime and the api-logger endpoint.
type Checker struct {
	Runtime runtime.Runtime

	// Client issues the api-logger probes.
	Client *http.Client

	// LoggerURL overrides the derived probe URL. Tests point it at a
	// local server.
	LoggerURL string
}

// NewChecker creates a Checker with a short-timeout probe client.
func NewChecker(rt runtime.Runtime) *Checker {
	return &Checker{
		Runtime: rt,
		Client:  &http.Client{Timeout: probeTimeout},
	}
}

// Check runs all probes for a project. Later probes are skipped as soon as
// an earlier one fails.
func (c *Checker) Check(ctx context.Context, id identity.Identity) *CheckResult {
	result := &CheckResult{}
	if c.Runtime == nil {
		return result
	}
	names := id.Names()

	result.SandboxRunning, _ = c.Runtime.IsRunning(ctx, names.Container)
	if !result.SandboxRunning {
		return result
	}
	result.Uptime = Uptime(ctx, c.Runtime, names.Container)

	result.LoggerRunning, _ = c.Runtime.IsRunning(ctx, names.APILoggerContainer)
	if !result.LoggerRunning {
		return result
	}
	result.LoggerHealthy = c.probe(ctx, id)

	return result
}

// Summary reduces the probes to a single status.
func (c *Checker) Summary(ctx context.Context, id identity.Identity) Status {
	r := c.Check(ctx, id)
	switch {
	case !r.SandboxRunning:
		return StatusStopped
	case !r.LoggerRunning:
		return StatusNoLogger
	case !r.LoggerHealthy:
		return StatusUnhealthy
	default:
		return StatusHealthy
	}
}

// probe hits the api-logger health endpoint on its published host port.
func (c *Checker) probe(ctx context.Context, id identity.Identity) bool {
	url := c.LoggerURL
	if url == "" {
		url = fmt.Sprintf("http://127.0.0.1:%d/health", id.Port(identity.ServiceAPILogger))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// Uptime returns how long a container has been up, formatted for humans.
func Uptime(ctx context.Context, rt runtime.Runtime, name string) string {
	if rt == nil {
		return "unknown"
	}

	info, err := rt.Status(ctx, name)
	if err != nil || info == nil {
		return "unknown"
	}

	return Since(info.StartedAt)
}

// Since formats the time elapsed since a container start timestamp.
// Runtimes disagree on timestamp precision, so several layouts are
// tried; an unparseable timestamp is returned raw.
func Since(startedAt string) string {
	if startedAt == "" || startedAt == "n/a" {
		return "unknown"
	}

	var t time.Time
	formats := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05.000000000Z",
	}
	for _, format := range formats {
		if parsed, err := time.Parse(format, startedAt); err == nil {
			t = parsed
			break
		}
	}
	if t.IsZero() {
		return startedAt
	}

	return formatDuration(time.Since(t))
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	} else if d < 24*time.Hour {
		hours := int(d.Hours())
		mins := int(d.Minutes()) % 60
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	return fmt.Sprintf("%dd %dh", days, hours)
}
