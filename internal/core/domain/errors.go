package domain

import "errors"

// Error kinds. Every error a service returns to the API layer wraps exactly
// one of these so the HTTP error handler can pick a status code.
var (
	ErrValidation          = errors.New("validation error")
	ErrConflict            = errors.New("conflict")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// Error is a domain failure with a client-safe message.
// errors.Is matches the Error value itself, its Kind and its Cause.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Cause}
}

// NewError returns an Error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WithCause returns a copy of e carrying cause. The copy still matches e's
// Kind, but not e itself; use errors.Is(err, kind) for such errors.
func (e *Error) WithCause(cause error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Cause: cause}
}

// Credential errors.
var (
	ErrMissingFields      = NewError(ErrValidation, "missing required fields")
	ErrUserExists         = NewError(ErrConflict, "username already exists")
	ErrEmailExists        = NewError(ErrConflict, "email already exists")
	ErrUserNotFound       = NewError(ErrNotFound, "user not found")
	ErrInvalidCredentials = NewError(ErrUnauthorized, "invalid credentials")
	ErrMissingToken       = NewError(ErrUnauthorized, "missing authentication token")
	ErrInvalidToken       = NewError(ErrUnauthorized, "invalid or expired token")
)

// Favorite errors.
var (
	ErrFavoriteExists   = NewError(ErrConflict, "movie already in favorites")
	ErrFavoriteNotFound = NewError(ErrNotFound, "favorite not found")
)

// Catalog errors.
var (
	ErrMissingQuery   = NewError(ErrValidation, "missing search query")
	ErrMissingMovieID = NewError(ErrValidation, "missing movie id")
	ErrCatalogDown    = NewError(ErrUpstreamUnavailable, "failed to connect to movie database")
)

// Request errors.
var ErrInvalidPayload = NewError(ErrValidation, "invalid payload")
