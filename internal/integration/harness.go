package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/denlabs/den/internal/app"
	"github.com/denlabs/den/internal/config"
	"github.com/denlabs/den/internal/identity"
	"github.com/denlabs/den/internal/runtime"
	"github.com/denlabs/den/internal/sandbox"
)

// enableVar gates the real-runtime tests.
const enableVar = "DEN_INTEGRATION_TESTS"

// harnessBasePort keeps test sandboxes away from the ports of any real
// sandboxes on the same host.
const harnessBasePort = 28443

// Harness provides a real-runtime test environment: a detected docker or
// podman runtime, an App rooted in a temp directory, and automatic
// teardown of every tracked sandbox.
type Harness struct {
	t   *testing.T
	App *app.App

	tracked []identity.Identity
}

// NewHarness creates a harness, skipping the test unless
// DEN_INTEGRATION_TESTS is set and a container runtime responds.
func NewHarness(t *testing.T) *Harness {
	t.Helper()

	if os.Getenv(enableVar) == "" {
		t.Skipf("integration tests disabled (set %s=1 to enable)", enableVar)
	}

	rt, err := runtime.New(os.Getenv("DEN_RUNTIME"))
	if err != nil {
		t.Skipf("no container runtime available: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rt.List(ctx); err != nil {
		t.Skipf("container runtime not responsive: %v", err)
	}

	tmpDir := t.TempDir()
	cfg := &config.Config{
		BasePort: harnessBasePort,
		Variant:  identity.VariantClaude,
		Image:    testImage(),
		Runtime:  rt.Name(),
		LogDir:   filepath.Join(tmpDir, "api-logs"),
		Env:      map[string]string{},
		DataDir:  tmpDir,

		// Sidecars run this binary's logger; the test image does not
		// carry it.
		DisableLogger: true,
	}

	testApp, err := app.New(app.WithConfig(cfg), app.WithRuntime(rt))
	if err != nil {
		t.Fatalf("failed to build app: %v", err)
	}

	h := &Harness{t: t, App: testApp}
	t.Cleanup(h.cleanup)
	return h
}

// testImage returns the image integration sandboxes run. Overridable so
// air-gapped hosts can point at a local mirror.
func testImage() string {
	if img := os.Getenv("DEN_TEST_IMAGE"); img != "" {
		return img
	}
	return "alpine:3.20"
}

// Launcher returns the app's sandbox launcher.
func (h *Harness) Launcher() *sandbox.Launcher {
	h.t.Helper()

	l, err := h.App.Launcher()
	if err != nil {
		h.t.Fatalf("failed to build launcher: %v", err)
	}
	return l
}

// Track registers an identity for teardown after the test.
func (h *Harness) Track(id identity.Identity) {
	h.tracked = append(h.tracked, id)
}

// RequireRunning skips the test if the named container is not running.
func (h *Harness) RequireRunning(name string) {
	h.t.Helper()

	running, err := h.App.Runtime.IsRunning(context.Background(), name)
	if err != nil {
		h.t.Skipf("failed to check if %s is running: %v", name, err)
	}
	if !running {
		h.t.Skipf("container %s is not running", name)
	}
}

// cleanup tears down all tracked sandboxes with their volumes.
func (h *Harness) cleanup() {
	ctx := context.Background()
	l, err := h.App.Launcher()
	if err != nil {
		return
	}

	for _, id := range h.tracked {
		opts := sandbox.DownOptions{RemoveVolumes: true}
		if err := l.Down(ctx, id, opts); err != nil {
			h.t.Logf("Warning: failed to tear down sandbox %s: %v", id.Slug, err)
		}
	}
}
