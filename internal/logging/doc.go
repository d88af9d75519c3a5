// Package logging provides logging utilities for den.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("creating sandbox", "slug", slug, "image", image)
//	logging.Warn("container already stopped", "name", name)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Launching sandbox for %s...", slug)
//	logging.UserSuccess("Sandbox %s is running", name)
//	logging.UserWarning("Port %d is already in use", port)
//	logging.UserError("Failed to launch sandbox: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
