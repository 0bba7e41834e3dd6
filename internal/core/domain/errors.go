package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIncomplete indicates a stepper was asked for its result before
	// every prompt was answered.
	ErrIncomplete = errors.New("incomplete")

	// ErrAborted indicates the operator abandoned an interactive prompt.
	ErrAborted = errors.New("aborted by operator")

	// ErrUsage indicates a command was invoked with the wrong arguments.
	ErrUsage = errors.New("invalid usage")
)

// ValidationError reports why an answer to a prompt was rejected.
// The message is shown to the operator verbatim before re-prompting.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the operator-facing message.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap allows errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a ValidationError for a prompt field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
