package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kbukum/seqkit/errors"
)

// FieldError describes one invalid setting, keyed by its config path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator collects field errors from chained checks:
//
//	err := validation.New().
//	    Min("bench.count", cfg.Count, 1).
//	    Custom(cfg.Rate <= 1, "sample_rate", "must be 1 or less").
//	    Validate()
type Validator struct {
	errors []FieldError
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records an error for field.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool { return len(v.errors) > 0 }

// Errors returns the recorded errors in check order.
func (v *Validator) Errors() []FieldError { return v.errors }

// Validate returns the recorded errors as one configuration error, or nil.
func (v *Validator) Validate() error {
	if !v.HasErrors() {
		return nil
	}
	return newConfigurationError(v.errors)
}

func (v *Validator) check(ok bool, field, format string, args ...any) *Validator {
	if !ok {
		v.AddError(field, fmt.Sprintf(format, args...))
	}
	return v
}

// Range checks minVal <= value <= maxVal.
func (v *Validator) Range(field string, value, minVal, maxVal int) *Validator {
	return v.check(value >= minVal && value <= maxVal, field, "must be between %d and %d", minVal, maxVal)
}

// Min checks value >= minVal.
func (v *Validator) Min(field string, value, minVal int) *Validator {
	return v.check(value >= minVal, field, "must be at least %d", minVal)
}

// Max checks value <= maxVal.
func (v *Validator) Max(field string, value, maxVal int) *Validator {
	return v.check(value <= maxVal, field, "must be %d or less", maxVal)
}

// OneOf checks that a non-empty value is one of allowed.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	ok := value == "" || slices.Contains(allowed, value)
	return v.check(ok, field, "must be one of: %s", strings.Join(allowed, ", "))
}

// Custom records message for field unless condition holds.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	return v.check(condition, field, "%s", message)
}

func newConfigurationError(fields []FieldError) *errors.Error {
	messages := make([]string, len(fields))
	for i, e := range fields {
		messages[i] = e.Field + ": " + e.Message
	}
	return errors.Configuration(strings.Join(messages, "; ")).
		WithDetail("fields", fields)
}
