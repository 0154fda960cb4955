package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidInput is returned when a required field is missing or malformed.
	ErrInvalidInput = errors.New("Invalid input")
	// ErrInvalidRole is returned when a role is outside the allowed set.
	ErrInvalidRole = errors.New("Invalid role")
	// ErrUserExists is returned when the email is already registered.
	ErrUserExists = errors.New("User already exists")
	// ErrUserNotFound is returned when a user is not found or outside the actor's scope.
	ErrUserNotFound = errors.New("User not found")
	// ErrEmailNotFound is returned by login when no user has the given email.
	ErrEmailNotFound = errors.New("User does not exist")
	// ErrInvalidCredentials is returned when the password digest does not match.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrUnauthorized is returned when a role or ownership check fails.
	ErrUnauthorized = errors.New("Unauthorized")
	// ErrEntryNotFound is returned when an entry is not found or outside the actor's scope.
	ErrEntryNotFound = errors.New("Entry not found")
	// ErrLookupUnavailable is returned when the external nutrition lookup fails.
	// It never reaches a response body; callers degrade to null calories.
	ErrLookupUnavailable = errors.New("nutrition lookup unavailable")
)

// ErrorResponse is the JSON error body shape for handler-level failures.
type ErrorResponse struct {
	Message string `json:"message"`
}

// HTTPError carries a status code alongside a safe client-facing message.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Internal detail never
// reaches the response body; anything unrecognized becomes a plain 500.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUserExists):
		return NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrEmailNotFound), errors.Is(err, ErrEntryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
