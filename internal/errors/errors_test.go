// Package apperrors provides tests for application error types.
package apperrors

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid flag value"},
			expected: "invalid flag value",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("invalid value %s for flag %s", "-1s", "--round-timeout"),
			expected: "invalid value -1s for flag --round-timeout",
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      ValidationError
		expected string
	}{
		{
			name:     "distance field",
			err:      ValidationError{Field: "distance", Message: "must be non-negative"},
			expected: `validation error for "distance": must be non-negative`,
		},
		{
			name:     "round field",
			err:      ValidationError{Field: "round", Message: "expected 3 readings, got 2"},
			expected: `validation error for "round": expected 3 readings, got 2`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var err error = tt.err
			if err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, err.Error())
			}
			var validationErr ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatal("expected error to be ValidationError type")
			}
			if validationErr.Field != tt.err.Field {
				t.Errorf("expected Field %q, got %q", tt.err.Field, validationErr.Field)
			}
		})
	}
}

func TestDomainErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"capacity", CapacityError{Capacity: 3}, "round already holds 3 readings, try again later"},
		{"unsolvable", UnsolvableError{Reason: "no intersection"}, "location cannot be resolved: no intersection"},
		{"no message", NoMessageError{}, "message cannot be recovered: insufficient data"},
		{"timeout", TimeoutError{Operation: "round", Limit: 500 * time.Millisecond}, `operation "round" timed out after 500ms`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
		})
	}
}

func TestErrorTypes_ErrorsAsWithWrapping(t *testing.T) {
	t.Parallel()

	t.Run("UnsolvableError wrapped with WrapError", func(t *testing.T) {
		t.Parallel()
		err := WrapError(UnsolvableError{Reason: "nested circles"}, "round %s", "r-1")

		var unsolvable UnsolvableError
		if !errors.As(err, &unsolvable) {
			t.Fatal("errors.As should find UnsolvableError through WrapError")
		}
		if unsolvable.Reason != "nested circles" {
			t.Errorf("Reason = %q, want %q", unsolvable.Reason, "nested circles")
		}
	})

	t.Run("CapacityError wrapped with WrapError", func(t *testing.T) {
		t.Parallel()
		err := WrapError(CapacityError{Capacity: 3}, "submit")

		var capacity CapacityError
		if !errors.As(err, &capacity) {
			t.Error("errors.As should find CapacityError through WrapError")
		}
	})

	t.Run("ErrClosed survives wrapping", func(t *testing.T) {
		t.Parallel()
		if !errors.Is(WrapError(ErrClosed, "submit"), ErrClosed) {
			t.Error("errors.Is should find ErrClosed through WrapError")
		}
	})
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		original    error
		format      string
		args        []any
		expectedMsg string
		expectNil   bool
		checkIs     error
	}{
		{
			name:        "wraps error with context",
			original:    errors.New("file not found"),
			format:      "failed to load config",
			expectedMsg: "failed to load config: file not found",
		},
		{
			name:        "preserves error chain",
			original:    context.DeadlineExceeded,
			format:      "waiting for round",
			expectedMsg: "waiting for round: context deadline exceeded",
			checkIs:     context.DeadlineExceeded,
		},
		{
			name:      "returns nil for nil error",
			original:  nil,
			format:    "some context",
			expectNil: true,
		},
		{
			name:        "supports format arguments",
			original:    errors.New("connection reset"),
			format:      "failed to listen on %s:%d",
			args:        []any{"localhost", 8080},
			expectedMsg: "failed to listen on localhost:8080: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := WrapError(tt.original, tt.format, tt.args...)

			if tt.expectNil {
				if wrapped != nil {
					t.Error("WrapError(nil, ...) should return nil")
				}
				return
			}

			if wrapped == nil {
				t.Fatal("wrapped error should not be nil")
			}

			if wrapped.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, wrapped.Error())
			}

			if tt.checkIs != nil && !errors.Is(wrapped, tt.checkIs) {
				t.Errorf("wrapped error should preserve %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"context.Canceled", context.Canceled, true},
		{"context.DeadlineExceeded", context.DeadlineExceeded, true},
		{"wrapped context.Canceled", WrapError(context.Canceled, "operation canceled"), true},
		{"regular error", errors.New("some error"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := IsContextError(tt.err)
			if result != tt.expected {
				t.Errorf("IsContextError(%v) = %v, expected %v", tt.err, result, tt.expected)
			}
		})
	}
}

func TestIsClientError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"validation", ValidationError{Field: "name"}, true},
		{"unsolvable", UnsolvableError{Reason: "x"}, true},
		{"no message", NoMessageError{}, true},
		{"wrapped no message", WrapError(NoMessageError{}, "round"), true},
		{"capacity", CapacityError{Capacity: 3}, false},
		{"closed", ErrClosed, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsClientError(tt.err); got != tt.expected {
				t.Errorf("IsClientError(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, ExitSuccess},
		{"config", NewConfigError("bad"), ExitErrorConfig},
		{"timeout", TimeoutError{Operation: "round", Limit: time.Second}, ExitErrorTimeout},
		{"deadline", WrapError(context.DeadlineExceeded, "wait"), ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"unsolvable", UnsolvableError{Reason: "x"}, ExitErrorUnsolved},
		{"generic", errors.New("boom"), ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCode(tt.err); got != tt.expected {
				t.Errorf("ExitCode(%v) = %d, expected %d", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	codes := map[string]int{
		"ExitSuccess":       ExitSuccess,
		"ExitErrorGeneric":  ExitErrorGeneric,
		"ExitErrorTimeout":  ExitErrorTimeout,
		"ExitErrorConfig":   ExitErrorConfig,
		"ExitErrorUnsolved": ExitErrorUnsolved,
		"ExitErrorCanceled": ExitErrorCanceled,
	}

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess should be 0, got %d", ExitSuccess)
	}
	if ExitErrorCanceled != 130 {
		t.Errorf("ExitErrorCanceled should be 130 (SIGINT convention), got %d", ExitErrorCanceled)
	}

	seen := make(map[int]string)
	for name, code := range codes {
		if existing, ok := seen[code]; ok {
			t.Errorf("duplicate exit code %d: %s and %s", code, existing, name)
		}
		seen[code] = name
	}
}
