// Package integration holds tests that exercise complete workflows across
// packages.
//
// Two kinds of tests live here. Workflow tests drive the launcher, audit
// log, and api-logger through the mock runtime and always run. Real-runtime
// tests talk to an actual docker or podman daemon and are skipped unless
// the DEN_INTEGRATION_TESTS environment variable is set.
//
// # Test Harness
//
// Harness manages real-runtime test environments:
//
//	func TestMyIntegration(t *testing.T) {
//	    h := integration.NewHarness(t) // Skips if env var not set
//
//	    l := h.Launcher()
//	    result, err := l.Up(context.Background(), workspace.Project{Source: "it-demo"})
//	    // ...
//	    h.Track(result.Identity)
//
//	    // Cleanup is automatic via t.Cleanup
//	}
//
// The harness detects the container runtime, skips when none responds,
// roots all config in a temp directory, and tears down every tracked
// sandbox with its volumes after the test.
//
// # Running Real-Runtime Tests
//
//	DEN_INTEGRATION_TESTS=1 go test -v ./internal/integration/...
//
// DEN_RUNTIME selects the runtime (docker, podman, default auto) and
// DEN_TEST_IMAGE overrides the sandbox image the tests launch.
package integration
