// Package testutil provides a mock-backed application environment for tests.
//
// A TestEnv wires an app.App to a MockRuntime and a mock token provider,
// with configuration rooted in a per-test temp directory. No docker daemon
// or network access is required.
//
// # Building an Environment
//
//	env := testutil.NewTestEnv(t)
//	l := env.Launcher()
//
// # Seeding State
//
// Sandboxes exist only as labelled containers, so tests seed them straight
// into the mock runtime:
//
//	id := env.AddSandbox("https://github.com/user/widgets.git", runtime.StatusRunning)
//	env.AddLogger(id, runtime.StatusRunning)
//	env.AddVolumes(id)
//
// # Asserting on Runtime Calls
//
// The mock records every call, so tests can verify what the code under
// test asked the runtime to do:
//
//	calls := env.Runtime.GetCallsFor("Start")
//	if len(calls) != 1 {
//	    t.Errorf("expected 1 start call, got %d", len(calls))
//	}
package testutil
