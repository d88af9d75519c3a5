// Package app wires den's dependencies for one invocation.
//
// The command layer builds a single App after flag parsing and hands it to
// every command. Tests inject fakes through the functional options:
//
//	a, err := app.New(
//	    app.WithConfig(cfg),
//	    app.WithRuntime(runtime.NewMockRuntime()),
//	    app.WithTokens(token.NewMock()),
//	)
//
// Unset dependencies are built from the configuration. The container
// runtime is the one dependency that may legitimately be absent; commands
// that need it obtain it through Launcher, which reports a clean error.
package app
