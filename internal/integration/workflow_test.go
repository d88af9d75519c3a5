// Workflow tests drive complete den code paths on the mock runtime: the
// launcher lifecycle, label-based state reconstruction, garbage collection,
// the audit trail, and the api-logger round trip. No container daemon is
// required.
package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/denlabs/den/internal/apilogger"
	"github.com/denlabs/den/internal/app"
	"github.com/denlabs/den/internal/audit"
	"github.com/denlabs/den/internal/runtime"
	"github.com/denlabs/den/internal/sandbox"
	"github.com/denlabs/den/internal/testutil"
	"github.com/denlabs/den/internal/workspace"
)

func TestWorkflow_UpStopRecoverDown(t *testing.T) {
	env := testutil.NewTestEnv(t)
	l := env.Launcher()
	ctx := context.Background()

	project := workspace.Project{Source: "https://github.com/user/widgets.git"}

	result, err := l.Up(ctx, project)
	if err != nil {
		t.Fatalf("up: %v", err)
	}
	if !result.Created {
		t.Error("first up should create the sandbox")
	}
	if !result.LoggerRunning {
		t.Error("up should bring the api-logger sidecar up")
	}

	names := result.Names
	if c := env.Runtime.Containers[names.Container]; c == nil || c.Status != runtime.StatusRunning {
		t.Fatal("sandbox container should be running after up")
	}

	if err := l.Stop(ctx, result.Identity); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if c := env.Runtime.Containers[names.Container]; c.Status != runtime.StatusStopped {
		t.Error("sandbox container should be stopped")
	}
	if c := env.Runtime.Containers[names.APILoggerContainer]; c.Status != runtime.StatusStopped {
		t.Error("logger sidecar should be stopped alongside the sandbox")
	}

	recovered, err := l.Up(ctx, project)
	if err != nil {
		t.Fatalf("second up: %v", err)
	}
	if !recovered.Recovered || recovered.Created {
		t.Error("second up should recover, not create")
	}
	if recovered.Identity != result.Identity {
		t.Error("recovery must land on the same identity")
	}

	if err := l.Down(ctx, result.Identity, sandbox.DownOptions{}); err != nil {
		t.Fatalf("down: %v", err)
	}
	if _, ok := env.Runtime.Containers[names.Container]; ok {
		t.Error("sandbox container should be gone after down")
	}
	if _, ok := env.Runtime.Volumes[names.WorkspaceVolume]; !ok {
		t.Error("workspace volume should survive down without RemoveVolumes")
	}
}

// A second app over the same runtime state stands in for a fresh den
// process: everything it knows must come back from container labels.
func TestWorkflow_StateReconstructedFromLabels(t *testing.T) {
	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	result, err := env.Launcher().Up(ctx, workspace.Project{Source: "https://github.com/user/widgets.git"})
	if err != nil {
		t.Fatalf("up: %v", err)
	}

	second, err := app.New(
		app.WithConfig(env.Config),
		app.WithRuntime(env.Runtime),
		app.WithTokens(env.Tokens),
	)
	if err != nil {
		t.Fatalf("second app: %v", err)
	}
	l, err := second.Launcher()
	if err != nil {
		t.Fatalf("second launcher: %v", err)
	}

	infos, err := l.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected 1 sandbox, got %d", len(infos))
	}

	got := infos[0].Identity
	want := result.Identity
	if got.Slug != want.Slug || got.Variant != want.Variant || got.RawSource != want.RawSource {
		t.Errorf("reconstructed identity = %+v, want %+v", got, want)
	}
	if got.BasePort != want.BasePort {
		t.Errorf("reconstructed base port = %d, want %d", got.BasePort, want.BasePort)
	}

	// Same identity, same derived resources: the new process can stop the
	// old process's sandbox.
	if err := l.Stop(ctx, got); err != nil {
		t.Fatalf("stop through second app: %v", err)
	}
}

func TestWorkflow_VolumesReusedAfterDown(t *testing.T) {
	env := testutil.NewTestEnv(t)
	l := env.Launcher()
	ctx := context.Background()

	project := workspace.Project{Source: "https://github.com/user/widgets.git"}

	first, err := l.Up(ctx, project)
	if err != nil {
		t.Fatalf("up: %v", err)
	}
	if err := l.Down(ctx, first.Identity, sandbox.DownOptions{}); err != nil {
		t.Fatalf("down: %v", err)
	}

	second, err := l.Up(ctx, project)
	if err != nil {
		t.Fatalf("second up: %v", err)
	}
	if !second.Created {
		t.Error("up after down should create a fresh container")
	}

	// The volume carried over, so exactly one entry exists and the new
	// container mounts it under the same name.
	names := second.Names
	if _, ok := env.Runtime.Volumes[names.WorkspaceVolume]; !ok {
		t.Error("workspace volume should be reused")
	}
}

func TestWorkflow_GCAfterPartialTeardown(t *testing.T) {
	env := testutil.NewTestEnv(t)
	l := env.Launcher()
	ctx := context.Background()

	keep, err := l.Up(ctx, workspace.Project{Source: "widgets"})
	if err != nil {
		t.Fatalf("up widgets: %v", err)
	}
	lost, err := l.Up(ctx, workspace.Project{Source: "gadgets"})
	if err != nil {
		t.Fatalf("up gadgets: %v", err)
	}

	// Someone removes the sandbox container behind den's back, leaving the
	// sidecar and volumes stranded.
	if err := env.Runtime.Destroy(ctx, lost.Names.Container); err != nil {
		t.Fatalf("destroy: %v", err)
	}

	orphans, err := l.Orphans(ctx)
	if err != nil {
		t.Fatalf("orphans: %v", err)
	}
	if len(orphans) != 3 {
		t.Fatalf("expected logger + 2 volumes as orphans, got %d: %+v", len(orphans), orphans)
	}
	for _, o := range orphans {
		if !strings.Contains(o.Name, "gadgets") {
			t.Errorf("orphan %q does not belong to the torn-down project", o.Name)
		}
	}

	removed, err := l.RemoveOrphans(ctx, orphans)
	if err != nil {
		t.Fatalf("remove orphans: %v", err)
	}
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}

	// The healthy project is untouched.
	infos, err := l.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 1 || infos[0].Identity.Slug != keep.Identity.Slug {
		t.Errorf("expected only widgets to remain, got %+v", infos)
	}
}

func TestWorkflow_AuditTrail(t *testing.T) {
	env := testutil.NewTestEnv(t)
	l := env.Launcher()
	ctx := context.Background()

	project := workspace.Project{Source: "widgets"}

	if _, err := l.Up(ctx, project); err != nil {
		t.Fatalf("up: %v", err)
	}
	id := env.Config.ResolveIdentity("widgets")
	if err := l.Stop(ctx, id); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if _, err := l.Up(ctx, project); err != nil {
		t.Fatalf("second up: %v", err)
	}
	if err := l.Down(ctx, id, sandbox.DownOptions{RemoveVolumes: true}); err != nil {
		t.Fatalf("down: %v", err)
	}

	events, err := env.App.Auditor.Events("widgets")
	if err != nil {
		t.Fatalf("events: %v", err)
	}

	var types []audit.EventType
	for _, e := range events {
		types = append(types, e.Type)
	}
	want := []audit.EventType{audit.EventCreate, audit.EventStop, audit.EventRecover, audit.EventDestroy}
	if len(types) != len(want) {
		t.Fatalf("event types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event[%d] = %q, want %q", i, types[i], want[i])
		}
	}

	if events[len(events)-1].Details != "volumes removed" {
		t.Errorf("destroy details = %q, want volumes noted", events[len(events)-1].Details)
	}
}

// The full logger path: traffic through the proxy lands in the JSONL store
// and comes back out of the report aggregation.
func TestWorkflow_LoggerReportRoundTrip(t *testing.T) {
	upstream := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"usage":{"input_tokens":10,"output_tokens":5}}`))
	}))
	defer upstream.Close()

	root := t.TempDir()

	for _, project := range []string{"widgets", "gadgets"} {
		proxy, err := apilogger.New(&apilogger.Config{
			ListenAddr: ":0",
			Project:    project,
			LogRoot:    root,
			TargetURL:  upstream.URL,
			Transport:  upstream.Client().Transport,
		})
		if err != nil {
			t.Fatalf("proxy for %s: %v", project, err)
		}

		req := httptest.NewRequest("POST", "/v1/messages", strings.NewReader(`{"model":"claude-sonnet-4"}`))
		w := httptest.NewRecorder()
		proxy.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("proxy status for %s = %d", project, w.Code)
		}
	}

	summaries, err := apilogger.ReportAll(root)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected a summary per project, got %d", len(summaries))
	}
	for _, s := range summaries {
		if s.Requests != 1 {
			t.Errorf("%s requests = %d, want 1", s.Project, s.Requests)
		}
		if s.InputTokens != 10 || s.OutputTokens != 5 {
			t.Errorf("%s tokens = %d+%d, want 10+5", s.Project, s.InputTokens, s.OutputTokens)
		}
	}
}
