package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user id does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when an email is already used by another user.
	ErrEmailTaken = errors.New("email already in use")
	// ErrInvalidID is returned when an id is malformed or not positive.
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidEmail is returned when an email does not match the gmail-only pattern.
	ErrInvalidEmail = errors.New("email is wrong (allow only gmail.com)")
	// ErrInvalidSortField is returned when a listing names an unknown sort field.
	ErrInvalidSortField = errors.New("unknown sort field")
	// ErrInvalidRoleName is returned when a role name is not a defined kind.
	ErrInvalidRoleName = errors.New("unknown role name")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsersUnavailable is returned when the user store cannot serve a listing.
	ErrUsersUnavailable = errors.New("users not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
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

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidID):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ID")
	case errors.Is(err, ErrInvalidEmail):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_EMAIL")
	case errors.Is(err, ErrInvalidSortField):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_SORT_FIELD")
	case errors.Is(err, ErrInvalidRoleName):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE_NAME")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUsersUnavailable):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USERS_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
