package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClass_String(t *testing.T) {
	assert.Equal(t, "transient", ErrorTransient.String())
	assert.Equal(t, "invalid", ErrorInvalid.String())
	assert.Equal(t, "fatal", ErrorFatal.String())
	assert.Equal(t, "unknown", ErrorClass(99).String())
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limited", ErrRateLimited, true},
		{"collaborator", ErrCollaborator, true},
		{"context deadline", context.DeadlineExceeded, true},
		{"timeout pattern", errors.New("dial tcp: i/o timeout"), true},
		{"429 pattern", errors.New("unexpected status 429"), true},
		{"malformed query", ErrMalformedQuery, false},
		{"wrapped rate limit", fmt.Errorf("fetch: %w", ErrRateLimited), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestIsInvalid(t *testing.T) {
	assert.True(t, IsInvalid(ErrMalformedQuery))
	assert.True(t, IsInvalid(ErrUnresolvedPrefix))
	assert.True(t, IsInvalid(ErrConstraintViolation))
	assert.True(t, IsInvalid(ErrInconsistency))
	assert.False(t, IsInvalid(ErrRateLimited))
	assert.False(t, IsInvalid(nil))
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(ErrPersistFailed))
	assert.True(t, IsFatal(ErrInvalidConfig))
	assert.False(t, IsFatal(ErrRateLimited))
	assert.False(t, IsFatal(nil))
}

func TestWrap_Format(t *testing.T) {
	base := errors.New("disk full")
	wrapped := Wrap(base, "Store", "Promote", "instance flush")

	assert.EqualError(t, wrapped, "Store.Promote: instance flush failed: disk full")
	assert.True(t, errors.Is(wrapped, base))
}

func TestWrap_NilPassthrough(t *testing.T) {
	assert.NoError(t, Wrap(nil, "C", "M", "a"))
	assert.NoError(t, WrapTransient(nil, "C", "M", "a"))
	assert.NoError(t, WrapInvalid(nil, "C", "M", "a"))
	assert.NoError(t, WrapFatal(nil, "C", "M", "a"))
}

func TestWrapClassified_PreservesChain(t *testing.T) {
	wrapped := WrapInvalid(ErrConstraintViolation, "Gateway", "ValidateAndCommit", "range check")

	var ce *ClassifiedError
	assert.True(t, errors.As(wrapped, &ce))
	assert.Equal(t, ErrorInvalid, ce.Class)
	assert.Equal(t, "Gateway", ce.Component)
	assert.True(t, errors.Is(wrapped, ErrConstraintViolation))
}

func TestWrapTransient_ClassOverridesPattern(t *testing.T) {
	// A pattern-invalid error explicitly wrapped as transient classifies transient.
	wrapped := WrapTransient(ErrMalformedQuery, "Authority", "Execute", "parse")
	assert.True(t, IsTransient(wrapped))
	assert.False(t, IsInvalid(wrapped))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, ErrorFatal, Classify(ErrPersistFailed))
	assert.Equal(t, ErrorInvalid, Classify(ErrMalformedQuery))
	assert.Equal(t, ErrorTransient, Classify(ErrRateLimited))
	assert.Equal(t, ErrorTransient, Classify(errors.New("something unknown")))
}
