package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNoCredential is returned when a protected request carries no bearer token.
	ErrNoCredential = errors.New("access denied: no token provided")
	// ErrInvalidToken is returned for a bad signature, malformed token,
	// or a token whose subject no longer exists.
	ErrInvalidToken = errors.New("unauthorized")
	// ErrExpiredToken is returned for a structurally valid token past its
	// expiry, kept distinct so clients can attempt a refresh.
	ErrExpiredToken = errors.New("unauthorized: access token expired")
	// ErrPermissionDenied is returned when the authenticated role lacks the
	// required permission.
	ErrPermissionDenied = errors.New("access denied: missing permission")
	// ErrInvalidCredentials is returned on login failure without revealing
	// whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrDuplicateUsername is returned when registration collides on username.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrUnknownRole is returned when registration names a role that is not
	// in the role table.
	ErrUnknownRole = errors.New("unknown role")
	// ErrNotFound is returned when a resource lookup misses.
	ErrNotFound = errors.New("record not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Details    interface{}
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// WithDetails attaches an optional details payload.
func (e *HTTPError) WithDetails(details interface{}) *HTTPError {
	e.Details = details
	return e
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:   e.Message,
		Code:    e.Code,
		Details: e.Details,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrNoCredential):
		return NewHTTPError(http.StatusBadRequest, ErrNoCredential.Error(), "NO_CREDENTIAL")
	case errors.Is(err, ErrExpiredToken):
		return NewHTTPError(http.StatusUnauthorized, ErrExpiredToken.Error(), "TOKEN_EXPIRED")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidToken.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrPermissionDenied):
		return NewHTTPError(http.StatusForbidden, ErrPermissionDenied.Error(), "PERMISSION_DENIED")
	case errors.Is(err, ErrDuplicateUsername):
		return NewHTTPError(http.StatusConflict, ErrDuplicateUsername.Error(), "DUPLICATE_USERNAME")
	case errors.Is(err, ErrUnknownRole):
		return NewHTTPError(http.StatusUnprocessableEntity, ErrUnknownRole.Error(), "UNKNOWN_ROLE")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error(), "NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
