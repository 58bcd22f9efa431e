package errors

import (
	"errors"
	"net/http"
)

// Authentication and registration errors.
var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// Unknown email and wrong password are deliberately indistinguishable
	// to the caller so login failures cannot be used to enumerate users.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering with an email already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrWeakPassword is returned when a password is shorter than 6 characters.
	ErrWeakPassword = errors.New("password must be at least 6 characters")
	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email address")
)

// Authorization errors.
var (
	// ErrNotAuthenticated is returned when no authenticated session is present.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrWrongRole is returned when the session role is not allowed for the operation.
	ErrWrongRole = errors.New("insufficient role")
)

// Enrollment errors.
var (
	// ErrUserNotFound is returned when the user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrNotAStudent is returned when a non-student attempts a student-only operation.
	ErrNotAStudent = errors.New("user is not a student")
	// ErrCourseNotFound is returned when the course does not exist.
	ErrCourseNotFound = errors.New("course not found")
	// ErrAlreadyEnrolled is returned when the student is already enrolled in the course.
	ErrAlreadyEnrolled = errors.New("already enrolled in course")
	// ErrHasEnrollments is returned when deleting a user that still has enrollments.
	ErrHasEnrollments = errors.New("user still has enrollments")
)

// Course viewer errors.
var (
	// ErrNotEnrolled is returned when opening the viewer without an enrollment.
	ErrNotEnrolled = errors.New("not enrolled in course")
	// ErrNoLessons is returned when the course has no lessons to show.
	ErrNoLessons = errors.New("course has no lessons")
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

// MapErrorToHTTP maps domain errors to HTTP errors. Anything outside the
// taxonomy is surfaced as a generic 500 so store failures never leak detail.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrWeakPassword):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "WEAK_PASSWORD")
	case errors.Is(err, ErrInvalidEmail):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_EMAIL")
	case errors.Is(err, ErrNotAuthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "NOT_AUTHENTICATED")
	case errors.Is(err, ErrWrongRole):
		return NewHTTPError(http.StatusForbidden, err.Error(), "WRONG_ROLE")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrNotAStudent):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_A_STUDENT")
	case errors.Is(err, ErrCourseNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "COURSE_NOT_FOUND")
	case errors.Is(err, ErrAlreadyEnrolled):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_ENROLLED")
	case errors.Is(err, ErrHasEnrollments):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_HAS_ENROLLMENTS")
	case errors.Is(err, ErrNotEnrolled):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_ENROLLED")
	case errors.Is(err, ErrNoLessons):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NO_LESSONS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "operation failed, try again", "INTERNAL_ERROR")
	}
}
