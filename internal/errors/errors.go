package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeInvalidCredentials ErrorCode = "AUTH-001"
	ErrCodeTokenRejected      ErrorCode = "AUTH-002"
	ErrCodeNotAuthenticated   ErrorCode = "AUTH-003"
	ErrCodeTokenMalformed     ErrorCode = "AUTH-004"

	// Validation errors (VALIDATION-001 to VALIDATION-099)
	ErrCodeInvalidRequest ErrorCode = "VALIDATION-001"
	ErrCodeMissingField   ErrorCode = "VALIDATION-002"

	// Conflict errors (CONFLICT-001 to CONFLICT-099)
	ErrCodeEmailRegistered ErrorCode = "CONFLICT-001"

	// Not-found errors (NOTFOUND-001 to NOTFOUND-099)
	ErrCodeTenantNotFound   ErrorCode = "NOTFOUND-001"
	ErrCodeResourceNotFound ErrorCode = "NOTFOUND-002"
	ErrCodeTicketNotFound   ErrorCode = "NOTFOUND-003"

	// Network errors (NETWORK-001 to NETWORK-099)
	ErrCodeRequestFailed  ErrorCode = "NETWORK-001"
	ErrCodeRequestTimeout ErrorCode = "NETWORK-002"

	// Storage errors (STORAGE-001 to STORAGE-099)
	ErrCodeTokenWriteFailed  ErrorCode = "STORAGE-001"
	ErrCodeTokenReadFailed   ErrorCode = "STORAGE-002"
	ErrCodeTokenDeleteFailed ErrorCode = "STORAGE-003"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigInvalid ErrorCode = "CONFIG-001"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileReadFailed  ErrorCode = "IO-001"
	ErrCodeFileWriteFailed ErrorCode = "IO-002"
)

// DeskError represents an enhanced error with code, suggestions, and documentation
type DeskError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *DeskError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *DeskError) Unwrap() error {
	return e.Cause
}

// New creates a new DeskError
func New(code ErrorCode, message string) *DeskError {
	return &DeskError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new DeskError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *DeskError {
	return &DeskError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *DeskError) WithSuggestion(suggestion string) *DeskError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *DeskError) WithSuggestions(suggestions ...string) *DeskError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// Code extracts the error code from an error chain.
// Returns an empty code if no DeskError is present.
func Code(err error) ErrorCode {
	var deskErr *DeskError
	if stderrors.As(err, &deskErr) {
		return deskErr.Code
	}
	return ""
}

// HasCode reports whether the error chain contains a DeskError with the given code.
func HasCode(err error, code ErrorCode) bool {
	return Code(err) == code
}

func hasCategory(err error, prefix string) bool {
	return strings.HasPrefix(string(Code(err)), prefix)
}

// IsAuthentication reports whether the error is an authentication failure
// (invalid credentials, expired or missing token).
func IsAuthentication(err error) bool {
	return hasCategory(err, "AUTH-")
}

// IsValidation reports whether the error is a malformed-request failure.
func IsValidation(err error) bool {
	return hasCategory(err, "VALIDATION-")
}

// IsConflict reports whether the error is a duplicate-registration failure.
func IsConflict(err error) bool {
	return hasCategory(err, "CONFLICT-")
}

// IsNotFound reports whether the error is an unresolvable-reference failure.
func IsNotFound(err error) bool {
	return hasCategory(err, "NOTFOUND-")
}

// IsNetwork reports whether the error is a connectivity or timeout failure.
func IsNetwork(err error) bool {
	return hasCategory(err, "NETWORK-")
}

// IsStorage reports whether the error is a token persistence failure.
// Storage errors are non-fatal: operations proceed without a token.
func IsStorage(err error) bool {
	return hasCategory(err, "STORAGE-")
}

// Common error constructors for frequently used errors

// NewInvalidCredentialsError creates an invalid email/password error
func NewInvalidCredentialsError() *DeskError {
	return New(ErrCodeInvalidCredentials, "invalid email or password").
		WithSuggestion("Check the email address for typos").
		WithSuggestion("Use 'desk auth signup' if you don't have an account yet")
}

// NewNotAuthenticatedError creates a missing-session error
func NewNotAuthenticatedError() *DeskError {
	return New(ErrCodeNotAuthenticated, "not authenticated").
		WithSuggestion("Run 'desk auth login' to authenticate")
}

// NewTenantNotFoundError creates an unknown-organization error
func NewTenantNotFoundError(tenantID string) *DeskError {
	return New(ErrCodeTenantNotFound, fmt.Sprintf("organization not found: %s", tenantID)).
		WithSuggestion("Run 'desk tenants list' to see available organizations")
}
