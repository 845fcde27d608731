package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeskError_Error(t *testing.T) {
	err := New(ErrCodeInvalidCredentials, "invalid email or password")
	assert.Equal(t, "[AUTH-001] invalid email or password", err.Error())
}

func TestDeskError_ErrorWithCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeRequestFailed, "request failed", cause)

	assert.Contains(t, err.Error(), "[NETWORK-001] request failed")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestDeskError_ErrorWithSuggestions(t *testing.T) {
	err := New(ErrCodeNotAuthenticated, "not authenticated").
		WithSuggestion("Run 'desk auth login' to authenticate")

	assert.Contains(t, err.Error(), "Suggestions:")
	assert.Contains(t, err.Error(), "desk auth login")
}

func TestDeskError_Unwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeTokenWriteFailed, "failed to persist token", cause)

	assert.True(t, stderrors.Is(err, cause))
}

func TestCode(t *testing.T) {
	err := New(ErrCodeEmailRegistered, "email already registered")
	assert.Equal(t, ErrCodeEmailRegistered, Code(err))

	// Wrapped in a plain fmt error
	wrapped := fmt.Errorf("signup failed: %w", err)
	assert.Equal(t, ErrCodeEmailRegistered, Code(wrapped))

	// Non-desk error
	assert.Equal(t, ErrorCode(""), Code(stderrors.New("plain")))
	assert.Equal(t, ErrorCode(""), Code(nil))
}

func TestHasCode(t *testing.T) {
	err := New(ErrCodeTenantNotFound, "organization not found")
	assert.True(t, HasCode(err, ErrCodeTenantNotFound))
	assert.False(t, HasCode(err, ErrCodeResourceNotFound))
}

func TestCategoryHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"auth code is authentication", New(ErrCodeTokenRejected, "token rejected"), IsAuthentication, true},
		{"network code is not authentication", New(ErrCodeRequestTimeout, "timeout"), IsAuthentication, false},
		{"validation", New(ErrCodeInvalidRequest, "bad body"), IsValidation, true},
		{"conflict", New(ErrCodeEmailRegistered, "duplicate"), IsConflict, true},
		{"not found", New(ErrCodeTenantNotFound, "missing"), IsNotFound, true},
		{"network", New(ErrCodeRequestFailed, "unreachable"), IsNetwork, true},
		{"storage", New(ErrCodeTokenReadFailed, "read failed"), IsStorage, true},
		{"plain error matches nothing", stderrors.New("plain"), IsAuthentication, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.err))
		})
	}
}

func TestCategoryHelpers_WrappedChain(t *testing.T) {
	inner := NewInvalidCredentialsError()
	outer := fmt.Errorf("login: %w", inner)

	require.True(t, IsAuthentication(outer))
	assert.False(t, IsNetwork(outer))
}

func TestNewTenantNotFoundError(t *testing.T) {
	err := NewTenantNotFoundError("6e976210-e9f5-4296-9087-bf1e6a8e320f")
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Message, "6e976210")
}
