package domain

import "fmt"

// ValidationError reports a request rejected before any provider call
// was made: a required field is missing or a value is malformed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// TransportError reports a failure reaching the provider: network
// errors and non-success HTTP statuses.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: provider transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ShapeError reports a provider response that was received but is
// missing an expected field, so callers can tell "provider
// unreachable" apart from "provider returned something unexpected".
type ShapeError struct {
	Op      string
	Missing string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: invalid provider response: missing %s", e.Op, e.Missing)
}

// DecodeError reports malformed base64 or binary audio encountered
// during codec operations.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed audio payload: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
