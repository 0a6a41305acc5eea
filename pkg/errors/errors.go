package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Renderer contract violations
	ErrUnbalancedBlock      ErrorCode = "UNBALANCED_BLOCK"
	ErrUnbalancedPre        ErrorCode = "UNBALANCED_PRE"
	ErrUnbalancedAnnotation ErrorCode = "UNBALANCED_ANNOTATION"
	ErrInvalidWidth         ErrorCode = "INVALID_WIDTH"
	ErrColumnWidthMismatch  ErrorCode = "COLUMN_WIDTH_MISMATCH"
	ErrConsumedRenderer     ErrorCode = "CONSUMED_RENDERER"

	// Operation script errors
	ErrScriptParse ErrorCode = "SCRIPT_PARSE"
	ErrScriptOp    ErrorCode = "SCRIPT_OP"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
)

// Error is a coded error. Details carry the values a caller needs to act on
// the failure, such as the offending width or op index.
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error formats as "[CODE] message", followed by the wrapped error if any.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Text())
}

// Text is the message without the code tag.
func (e *Error) Text() string {
	if e.Wrapped != nil {
		return e.Message + ": " + e.Wrapped.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	return errors.As(target, &t) && e.Code == t.Code
}

func build(code ErrorCode, message string, wrapped error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: wrapped,
	}
}

func New(code ErrorCode, message string) *Error {
	return build(code, message, nil)
}

func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return build(code, fmt.Sprintf(format, args...), nil)
}

// Wrap returns nil when err is nil.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return build(code, message, err)
}

// Wrapf returns nil when err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return build(code, fmt.Sprintf(format, args...), err)
}

// WithDetail records key=value on e and returns e.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func asCoded(err error) (*Error, bool) {
	var coded *Error
	ok := errors.As(err, &coded)
	return coded, ok
}

// IsErrorCode reports whether any *Error in err's chain has code.
func IsErrorCode(err error, code ErrorCode) bool {
	coded, ok := asCoded(err)
	return ok && coded.Code == code
}

// GetErrorCode returns the code of the first *Error in err's chain, or
// ErrUnknown.
func GetErrorCode(err error) ErrorCode {
	if coded, ok := asCoded(err); ok {
		return coded.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details of the first *Error in err's chain,
// or nil.
func GetErrorDetails(err error) map[string]interface{} {
	if coded, ok := asCoded(err); ok {
		return coded.Details
	}
	return nil
}

// Describe splits err into its code and its message without the code tag.
// Uncoded errors report ErrUnknown and their full text.
func Describe(err error) (ErrorCode, string) {
	if coded, ok := asCoded(err); ok {
		return coded.Code, coded.Text()
	}
	return ErrUnknown, err.Error()
}

// RootCode returns the code of the innermost *Error in err's chain, the one
// that started the failure, or ErrUnknown.
func RootCode(err error) ErrorCode {
	code := ErrUnknown
	for err != nil {
		if coded, ok := err.(*Error); ok {
			code = coded.Code
		}
		err = errors.Unwrap(err)
	}
	return code
}
