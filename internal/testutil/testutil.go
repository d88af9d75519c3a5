package testutil

import (
	"path/filepath"
	"testing"

	"github.com/denlabs/den/internal/app"
	"github.com/denlabs/den/internal/config"
	"github.com/denlabs/den/internal/identity"
	"github.com/denlabs/den/internal/runtime"
	"github.com/denlabs/den/internal/sandbox"
	"github.com/denlabs/den/internal/token"
)

// TestEnv holds the test environment: an App wired to a mock runtime and
// mock token provider, with all state under a per-test temp directory.
type TestEnv struct {
	T       *testing.T
	TmpDir  string
	Config  *config.Config
	Runtime *runtime.MockRuntime
	Tokens  *token.Mock
	App     *app.App
}

// NewTestEnv creates a new test environment with mock runtime.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()

	cfg := &config.Config{
		BasePort: identity.DefaultBasePort,
		Variant:  identity.VariantClaude,
		Image:    "denlabs/sandbox:test",
		Runtime:  "mock",
		LogDir:   filepath.Join(tmpDir, "api-logs"),
		Env:      map[string]string{},
		DataDir:  tmpDir,
	}

	mockRuntime := runtime.NewMockRuntime()
	mockTokens := token.NewMock()

	testApp, err := app.New(
		app.WithConfig(cfg),
		app.WithRuntime(mockRuntime),
		app.WithTokens(mockTokens),
	)
	if err != nil {
		t.Fatalf("failed to build test app: %v", err)
	}

	return &TestEnv{
		T:       t,
		TmpDir:  tmpDir,
		Config:  cfg,
		Runtime: mockRuntime,
		Tokens:  mockTokens,
		App:     testApp,
	}
}

// Launcher returns the app's sandbox launcher.
func (e *TestEnv) Launcher() *sandbox.Launcher {
	e.T.Helper()

	l, err := e.App.Launcher()
	if err != nil {
		e.T.Fatalf("failed to build launcher: %v", err)
	}
	return l
}

// AddSandbox registers a labelled sandbox container with the mock runtime
// and returns its identity.
func (e *TestEnv) AddSandbox(source string, status runtime.ContainerStatus) identity.Identity {
	id := e.Config.ResolveIdentity(source)
	e.Runtime.AddContainerWithLabels(id.Names().Container, status, sandbox.BuildLabels(id, runtime.RoleSandbox))
	return id
}

// AddLogger registers the api-logger sidecar for an identity.
func (e *TestEnv) AddLogger(id identity.Identity, status runtime.ContainerStatus) {
	e.Runtime.AddContainerWithLabels(id.Names().APILoggerContainer, status, sandbox.BuildLabels(id, runtime.RoleAPILogger))
}

// AddVolumes registers the project's workspace and home volumes.
func (e *TestEnv) AddVolumes(id identity.Identity) {
	names := id.Names()
	labels := sandbox.BuildLabels(id, runtime.RoleSandbox)
	e.Runtime.AddVolume(names.WorkspaceVolume, labels)
	e.Runtime.AddVolume(names.HomeVolume, labels)
}
