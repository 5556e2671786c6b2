package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrPostNotFound is returned when a post lookup by identifier fails.
	ErrPostNotFound = errors.New("post not found")
	// ErrUserNotFound is returned when a user lookup fails.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when registering with an email that already exists.
	ErrEmailTaken = errors.New("an account with that email already exists")
	// ErrTitleTaken is returned when a post title collides with an existing one.
	ErrTitleTaken = errors.New("a post with that title already exists")
	// ErrForbidden is returned when a caller lacks the administrator role.
	ErrForbidden = errors.New("forbidden")
)

// HTTPError pairs a domain error with the status code its page renders under.
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

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrPostNotFound), errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrTitleTaken):
		return NewHTTPError(http.StatusConflict, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
