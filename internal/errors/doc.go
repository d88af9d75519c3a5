// Package errors provides typed errors with exit codes for den.
//
// # Error Types
//
// DenError is the base error type that wraps an error with an exit code:
//
//	type DenError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// Defined exit codes for different error categories:
//
//	ExitSuccess         = 0  // Success
//	ExitGeneralError    = 1  // General/unknown errors
//	ExitSandboxNotFound = 2  // Sandbox does not exist
//	ExitRuntimeMissing  = 3  // No container runtime available
//	ExitContainerFailed = 4  // Container operation failed
//	ExitConfigError     = 5  // Configuration error
//	ExitTokenError      = 6  // Token CLI operation failed
//	ExitGitError        = 7  // Git operation failed
//	ExitLoggerError     = 8  // API logger operation failed
//
// # Error Constructors
//
// Use the provided constructors for consistent error creation:
//
//	errors.SandboxNotFound("myproject")
//	errors.ContainerFailed("create", err)
//	errors.TokenError("refresh failed", err)
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
