package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated is returned when no valid session accompanies a request.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrForbidden is returned when the session role is not allowed the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when required fields are missing or malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmailTaken is returned when registering or updating to an email already in use.
	ErrEmailTaken = errors.New("email already exists")

	// ErrOutsideGeofence is returned when check-in coordinates fall outside the office radius.
	ErrOutsideGeofence = errors.New("outside office geofence")
	// ErrAlreadyMarked is returned when attendance for (user, day) already exists.
	ErrAlreadyMarked = errors.New("attendance already marked")
	// ErrLateCommentRequired is returned when a late check-in carries no justification.
	ErrLateCommentRequired = errors.New("late comment required")
	// ErrTimeBlocked is returned when check-out is attempted before the earliest allowed time.
	ErrTimeBlocked = errors.New("check-out not open yet")
	// ErrNotCheckedIn is returned when checking out without a check-in today.
	ErrNotCheckedIn = errors.New("not checked in")
	// ErrAlreadyCheckedOut is returned when check-out was already recorded today.
	ErrAlreadyCheckedOut = errors.New("already checked out")
)

// StatusResponse is the envelope every mutating endpoint returns.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Success builds a success envelope.
func Success(message string) StatusResponse {
	return StatusResponse{Status: "success", Message: message}
}

// Error builds an error envelope.
func Error(message string) StatusResponse {
	return StatusResponse{Status: "error", Message: message}
}

// Forbidden is the envelope returned on role violations.
func Forbidden() StatusResponse {
	return StatusResponse{Status: "forbidden"}
}

// HTTPStatus maps a domain error to the HTTP status code it is served with.
// Attendance gate failures are business outcomes, not protocol errors, and are
// served as 200 envelopes carrying their own status strings.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, ErrOutsideGeofence),
		errors.Is(err, ErrAlreadyMarked),
		errors.Is(err, ErrLateCommentRequired),
		errors.Is(err, ErrTimeBlocked),
		errors.Is(err, ErrNotCheckedIn),
		errors.Is(err, ErrAlreadyCheckedOut):
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}
