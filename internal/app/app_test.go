package app

import (
	"testing"

	"github.com/denlabs/den/internal/config"
	"github.com/denlabs/den/internal/errors"
	"github.com/denlabs/den/internal/identity"
	"github.com/denlabs/den/internal/runtime"
	"github.com/denlabs/den/internal/token"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		BasePort: identity.DefaultBasePort,
		Variant:  identity.VariantClaude,
		Image:    "ghcr.io/denlabs/sandbox:latest",
		Runtime:  "auto",
		Env:      map[string]string{},
		DataDir:  t.TempDir(),
	}
}

func TestNew_UsesInjectedDependencies(t *testing.T) {
	cfg := testConfig(t)
	mock := runtime.NewMockRuntime()
	tokens := token.NewMock()

	a, err := New(WithConfig(cfg), WithRuntime(mock), WithTokens(tokens))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if a.Config != cfg {
		t.Error("expected the injected config")
	}
	if a.Runtime != runtime.Runtime(mock) {
		t.Error("expected the injected runtime")
	}
	if a.Tokens != token.Provider(tokens) {
		t.Error("expected the injected token provider")
	}
	if a.Auditor == nil {
		t.Error("expected a default audit logger")
	}
}

func TestNew_AuditorUsesDataDir(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(WithConfig(cfg), WithRuntime(runtime.NewMockRuntime()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := a.Auditor.LogEvent("create", "widgets", ""); err != nil {
		t.Fatalf("LogEvent() error = %v", err)
	}
	events, err := a.Auditor.Events("widgets")
	if err != nil {
		t.Fatalf("Events() error = %v", err)
	}
	if len(events) != 1 {
		t.Errorf("events = %d, want 1", len(events))
	}
}

func TestNew_BuildsDefaults(t *testing.T) {
	a, err := New(WithConfig(testConfig(t)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Runtime detection depends on the host; either outcome is fine, but
	// the rest of the wiring must always be present.
	if a.Auditor == nil || a.Tokens == nil {
		t.Errorf("incomplete wiring: auditor %v, tokens %v", a.Auditor, a.Tokens)
	}
}

func TestLauncher(t *testing.T) {
	a, err := New(WithConfig(testConfig(t)), WithRuntime(runtime.NewMockRuntime()), WithTokens(token.NewMock()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	launcher, err := a.Launcher()
	if err != nil {
		t.Fatalf("Launcher() error = %v", err)
	}
	if launcher == nil {
		t.Fatal("Launcher() = nil")
	}
}

func TestLauncher_NoRuntime(t *testing.T) {
	a := &App{Config: testConfig(t)}

	_, err := a.Launcher()
	if errors.GetExitCode(err) != errors.ExitRuntimeMissing {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitRuntimeMissing)
	}
}
