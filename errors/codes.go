package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Iteration boundary and failures
const (
	// CodeExhausted indicates Next was called past the last element.
	CodeExhausted ErrorCode = "EXHAUSTED"
	// CodeIteration indicates a producer or user function failed.
	CodeIteration ErrorCode = "ITERATION_FAILED"
)

// Construction errors
const (
	// CodeConfiguration indicates invalid construction parameters.
	CodeConfiguration ErrorCode = "INVALID_CONFIGURATION"
)

// Engine errors
const (
	// CodeTimeout indicates a concurrent fold did not finish in time.
	CodeTimeout ErrorCode = "TIMEOUT"
)

var retryableCodes = map[ErrorCode]bool{
	CodeTimeout:       true,
	CodeIteration:     false,
	CodeConfiguration: false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
