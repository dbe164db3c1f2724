package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is the unified seqkit error type.
type Error struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// ErrExhausted is returned by Next when no element remains.
var ErrExhausted = &Error{Code: CodeExhausted, Message: "no more elements"}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new Error with automatic retryable detection.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Constructors ---

// Iteration wraps cause as an iteration error. A cause that already is an
// iteration error is returned unchanged, so errors crossing several derived
// cursors are wrapped exactly once. A nil cause yields nil.
func Iteration(cause error) error {
	if cause == nil {
		return nil
	}
	if IsIteration(cause) {
		return cause
	}
	return &Error{
		Code: CodeIteration, Message: "iteration failed",
		Cause: cause,
	}
}

// Configuration creates a new Error for invalid construction parameters.
func Configuration(message string) *Error {
	return &Error{
		Code: CodeConfiguration, Message: message,
	}
}

// InvalidBound creates a configuration error for a rejected numeric bound.
func InvalidBound(field string, value int, reason string) *Error {
	return &Error{
		Code: CodeConfiguration, Message: fmt.Sprintf("Invalid %s: %s", field, reason),
		Details: map[string]any{"field": field, "value": value},
	}
}

// Timeout creates a new Error for an operation that did not complete in time.
func Timeout(operation string) *Error {
	return &Error{
		Code: CodeTimeout, Message: "The operation took too long.",
		Retryable: true,
		Details:   map[string]any{"operation": operation},
	}
}

// --- Inspection ---

// As returns the outermost *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code of the outermost *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.Code
	}
	return ""
}

// IsExhausted reports whether err is the exhaustion signal itself, not an
// iteration error that happens to wrap one.
func IsExhausted(err error) bool {
	return CodeOf(err) == CodeExhausted
}

// IsIteration reports whether err is an iteration error.
func IsIteration(err error) bool {
	return CodeOf(err) == CodeIteration
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool {
	return CodeOf(err) == CodeConfiguration
}

// IsTimeout reports whether err is a timeout error.
func IsTimeout(err error) bool {
	return CodeOf(err) == CodeTimeout
}
