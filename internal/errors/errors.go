package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserExists is returned when signup hits an existing username or email.
	ErrUserExists = errors.New("User already exists")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrInvalidAdminCredentials is returned when admin email or password is incorrect.
	ErrInvalidAdminCredentials = errors.New("Invalid admin credentials")
	// ErrContentNotFound is returned when a content item is not found.
	ErrContentNotFound = errors.New("Content not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("User not found")
	// ErrInvalidAction is returned when a user-control action is not recognized.
	ErrInvalidAction = errors.New("Invalid action")
)

// ErrorResponse is the uniform error body: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HTTPError represents an HTTP error with status code.
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

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognized is
// a 500 with a generic message so store internals never leak to callers.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserExists):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrInvalidAdminCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrContentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidAction):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "Server error")
	}
}
