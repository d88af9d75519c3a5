package errors

import (
	"errors"
	"fmt"
)

// Exit codes for den
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitSandboxNotFound = 2
	ExitRuntimeMissing  = 3
	ExitContainerFailed = 4
	ExitConfigError     = 5
	ExitTokenError      = 6
	ExitGitError        = 7
	ExitLoggerError     = 8
)

// DenError is the base error type for den
type DenError struct {
	Code    int
	Message string
	Cause   error
}

func (e *DenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DenError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *DenError) ExitCode() int {
	return e.Code
}

// New creates a new DenError
func New(code int, message string) *DenError {
	return &DenError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a DenError
func Wrap(code int, message string, cause error) *DenError {
	return &DenError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// SandboxNotFound returns an error for a missing sandbox
func SandboxNotFound(name string) *DenError {
	return New(ExitSandboxNotFound, fmt.Sprintf("sandbox not found: %s", name))
}

// SandboxNotRunning returns an error when a sandbox exists but is not running
func SandboxNotRunning(name string) *DenError {
	return New(ExitGeneralError, fmt.Sprintf("sandbox %s is not running", name))
}

// RuntimeMissing returns an error when no container runtime is available
func RuntimeMissing(cause error) *DenError {
	return Wrap(ExitRuntimeMissing, "no container runtime available", cause)
}

// ContainerFailed returns an error for container operations
func ContainerFailed(op string, cause error) *DenError {
	return Wrap(ExitContainerFailed, fmt.Sprintf("container %s failed", op), cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *DenError {
	return Wrap(ExitConfigError, message, cause)
}

// TokenError returns an error for token CLI operations
func TokenError(message string, cause error) *DenError {
	return Wrap(ExitTokenError, message, cause)
}

// GitError returns an error for git operations
func GitError(message string, cause error) *DenError {
	return Wrap(ExitGitError, message, cause)
}

// LoggerError returns an error for API logger operations
func LoggerError(message string, cause error) *DenError {
	return Wrap(ExitLoggerError, message, cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *DenError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var denErr *DenError
	if errors.As(err, &denErr) {
		return denErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
