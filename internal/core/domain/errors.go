package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrUserExists         = errors.New("username must be unique")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingToken       = errors.New("token missing")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("only the creator can modify this blog")
	ErrBlogNotFound       = errors.New("blog not found")
	ErrMalformedID        = errors.New("malformatted id")

	ErrIdempotencyInFlight = errors.New("a request with this Idempotency-Key is still in progress")
)

// ValidationError carries the client-facing reason a request was rejected.
// It matches ErrValidation under errors.Is.
type ValidationError struct {
	Msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
