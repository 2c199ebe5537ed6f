package domain

import (
	"errors"
	"strings"
)

// FieldError describes one violated input rule.
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

// ValidationError carries every violated rule of a rejected request, ordered by field.
type ValidationError struct {
	Fields []FieldError
	cause  error
}

// NewValidationError builds a validation error. cause may be nil.
func NewValidationError(fields []FieldError, cause error) *ValidationError {
	return &ValidationError{Fields: fields, cause: cause}
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Unwrap exposes ErrInvalidDate or ErrFutureDate when the failure came from date checks.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Messages returns the human-readable messages in order.
func (e *ValidationError) Messages() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, f.Message)
	}
	return out
}

// AsValidationError extracts a ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
