package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
)

// ValidationError reports rejected client input. Message is safe to show
// to the caller as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Invalid returns a ValidationError with the given message.
func Invalid(message string) error {
	return &ValidationError{Message: message}
}
