package domain

import (
	"errors"
	"fmt"
)

// ErrorCategory groups error codes by the subsystem that produced them
type ErrorCategory string

const (
	CategoryValidation   ErrorCategory = "validation"
	CategoryGitOperation ErrorCategory = "git_operation"
	CategoryHTTPServer   ErrorCategory = "http_server"
)

// Validation error codes (path shape and safety)
const (
	CodeNullByte           = "NULL_BYTE"
	CodeReservedDeviceName = "RESERVED_DEVICE_NAME"
	CodeDirectoryTraversal = "DIRECTORY_TRAVERSAL"
	CodeOutsideWorkspace   = "OUTSIDE_WORKSPACE"
	CodeNotAccessible      = "NOT_ACCESSIBLE"
)

// Git operation error codes
const (
	CodeNotARepository     = "NOT_A_REPOSITORY"
	CodeDirectoryNotFound  = "DIRECTORY_NOT_FOUND"
	CodeRootLookupFailed   = "ROOT_LOOKUP_FAILED"
	CodeBranchLookupFailed = "BRANCH_LOOKUP_FAILED"
	CodeUnsafePath         = "UNSAFE_PATH"
	CodeEmptyPath          = "EMPTY_PATH"
	CodeInvalidTarget      = "INVALID_TARGET"
	CodeAmbiguousTarget    = "AMBIGUOUS_TARGET"
	CodeTimeout            = "TIMEOUT"
	CodeDiffCommandError   = "DIFF_COMMAND_ERROR"
)

// HTTP server error codes
const (
	CodePortInUse        = "PORT_IN_USE"
	CodeServerError      = "SERVER_ERROR"
	CodeArtifactNotFound = "ARTIFACT_NOT_FOUND"
)

// Error carries a machine-readable code alongside a human-readable message.
// Every public operation returns one of these instead of letting raw errors
// cross a component boundary.
type Error struct {
	Category ErrorCategory
	Code     string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a path validation error
func NewValidationError(code, message string) *Error {
	return &Error{Category: CategoryValidation, Code: code, Message: message}
}

// NewGitError creates a git operation error
func NewGitError(code, message string, cause error) *Error {
	return &Error{Category: CategoryGitOperation, Code: code, Message: message, Cause: cause}
}

// NewServerError creates an HTTP server error
func NewServerError(code, message string, cause error) *Error {
	return &Error{Category: CategoryHTTPServer, Code: code, Message: message, Cause: cause}
}

// CodeOf extracts the machine-readable code from an error, or "" when the
// error is not a domain error.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var derr *Error
	if errors.As(err, &derr) {
		return derr.Code
	}
	return ""
}
