// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and code matching

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/blocktext/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "unbalanced_block_error",
			code:    errors.ErrUnbalancedBlock,
			message: "end block without start",
			wantStr: "[UNBALANCED_BLOCK] end block without start",
		},
		{
			name:    "invalid_width_error",
			code:    errors.ErrInvalidWidth,
			message: "width must be positive",
			wantStr: "[INVALID_WIDTH] width must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		format  string
		args    []interface{}
		wantMsg string
	}{
		{
			name:    "format_with_string",
			code:    errors.ErrInvalidInput,
			format:  "invalid value: %s",
			args:    []interface{}{"test"},
			wantMsg: "invalid value: test",
		},
		{
			name:    "format_with_multiple_args",
			code:    errors.ErrColumnWidthMismatch,
			format:  "column %d is %d cells wide",
			args:    []interface{}{2, 17},
			wantMsg: "column 2 is 17 cells wide",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.Newf(tt.code, tt.format, tt.args...)

			if err.Message != tt.wantMsg {
				t.Errorf("Newf() message = %q, want %q", err.Message, tt.wantMsg)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrInternal, "internal error")

		if err.Code != errors.ErrInternal {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrInternal)
		}

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[INTERNAL] internal error: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		err := errors.Wrap(nil, errors.ErrInternal, "internal error")
		if err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrUnbalancedAnnotation, "no open span").
		WithDetail("kind", "link").
		WithDetail("depth", 0)

	if err.Details["kind"] != "link" {
		t.Errorf("WithDetail() kind = %v, want %v", err.Details["kind"], "link")
	}

	if err.Details["depth"] != 0 {
		t.Errorf("WithDetail() depth = %v, want %v", err.Details["depth"], 0)
	}
}

func TestRootCode(t *testing.T) {
	inner := errors.New(errors.ErrUnbalancedBlock, "EndBlock without StartBlock")
	outer := errors.Wrap(fmt.Errorf("replaying: %w", inner), errors.ErrScriptOp, "op 2 failed")

	if got := errors.GetErrorCode(outer); got != errors.ErrScriptOp {
		t.Errorf("GetErrorCode() = %v, want outermost %v", got, errors.ErrScriptOp)
	}
	if got := errors.RootCode(outer); got != errors.ErrUnbalancedBlock {
		t.Errorf("RootCode() = %v, want %v", got, errors.ErrUnbalancedBlock)
	}
	if got := errors.RootCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("RootCode(plain) = %v, want %v", got, errors.ErrUnknown)
	}
	if got := errors.RootCode(nil); got != errors.ErrUnknown {
		t.Errorf("RootCode(nil) = %v, want %v", got, errors.ErrUnknown)
	}
}

func TestDescribe(t *testing.T) {
	base := stderrors.New("disk full")

	code, text := errors.Describe(errors.Wrap(base, errors.ErrConfigLoad, "reading config"))
	if code != errors.ErrConfigLoad || text != "reading config: disk full" {
		t.Errorf("Describe(coded) = %v, %q", code, text)
	}

	wrapped := fmt.Errorf("op 3: %w", errors.New(errors.ErrUnbalancedPre, "EndPre without StartPre"))
	code, text = errors.Describe(wrapped)
	if code != errors.ErrUnbalancedPre || text != "EndPre without StartPre" {
		t.Errorf("Describe(chain) = %v, %q", code, text)
	}

	code, text = errors.Describe(base)
	if code != errors.ErrUnknown || text != "disk full" {
		t.Errorf("Describe(plain) = %v, %q", code, text)
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrUnbalancedPre, "error 1")
	err2 := errors.New(errors.ErrUnbalancedPre, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	t.Run("same_code_is_equal", func(t *testing.T) {
		if !err1.Is(err2) {
			t.Error("Is() should return true for same code")
		}
	})

	t.Run("different_code_not_equal", func(t *testing.T) {
		if err1.Is(err3) {
			t.Error("Is() should return false for different codes")
		}
	})

	t.Run("works_with_errors_Is", func(t *testing.T) {
		if !stderrors.Is(err1, err2) {
			t.Error("errors.Is() should work with *errors.Error")
		}
	})
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrUnbalancedBlock, "no open block"),
			code:     errors.ErrUnbalancedBlock,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrUnbalancedBlock, "no open block"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("base"), errors.ErrScriptParse, "bad script"),
			code:     errors.ErrScriptParse,
			expected: true,
		},
		{
			name:     "non_coded_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrInvalidInput,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected errors.ErrorCode
	}{
		{
			name:     "coded_error",
			err:      errors.New(errors.ErrConsumedRenderer, "renderer already appended"),
			expected: errors.ErrConsumedRenderer,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			expected: errors.ErrUnknown,
		},
		{
			name:     "nil_error",
			err:      nil,
			expected: errors.ErrUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	// Create a chain of errors
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrConfigParse, "cannot parse file")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load config")

	t.Run("top_level_has_correct_code", func(t *testing.T) {
		if !errors.IsErrorCode(configErr, errors.ErrConfigLoad) {
			t.Error("Top level should have ErrConfigLoad code")
		}
	})

	t.Run("can_find_middle_error", func(t *testing.T) {
		var codedErr *errors.Error
		if stderrors.As(configErr.Unwrap(), &codedErr) {
			if !errors.IsErrorCode(codedErr, errors.ErrConfigParse) {
				t.Error("Middle error should have ErrConfigParse code")
			}
		}
	})

	t.Run("can_find_root_cause", func(t *testing.T) {
		if !stderrors.Is(configErr, rootCause) {
			t.Error("Should find root cause with errors.Is")
		}
	})
}
