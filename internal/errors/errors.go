package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrIdentityNotFound is returned when a principal has no identity record
	// in either store. First-time principals are routed to role selection
	// instead of surfacing this as a failure.
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrDriverNotFound is returned when a driver id does not resolve to a
	// user with the driver role.
	ErrDriverNotFound = errors.New("driver not found")
	// ErrVehicleNotFound is returned when a driver has no vehicle on file.
	ErrVehicleNotFound = errors.New("vehicle not found")
	// ErrRideNotFound is returned when a ride id is unknown.
	ErrRideNotFound = errors.New("ride not found")
	// ErrForbidden is returned when the caller's role or ownership does not
	// permit the operation. No state change occurs.
	ErrForbidden = errors.New("forbidden")
	// ErrDriverNotReady is returned when an admin tries to verify a driver
	// whose onboarding is incomplete.
	ErrDriverNotReady = errors.New("driver onboarding is incomplete")
	// ErrDriverNotVerified is returned when an unverified driver attempts a
	// verified-only operation.
	ErrDriverNotVerified = errors.New("driver is not verified")
	// ErrRoleAlreadySet is returned when a principal tries to change an
	// already assigned role.
	ErrRoleAlreadySet = errors.New("role already set")
	// ErrInvalidRole is returned for roles outside {rider, driver}.
	ErrInvalidRole = errors.New("invalid role")
	// ErrRideUnavailable is returned when a ride is not in the state the
	// operation requires (already accepted, not yet completed, ...).
	ErrRideUnavailable = errors.New("ride is not available")
	// ErrInvalidRating is returned for ratings outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrInvalidFare is returned for non-positive fares.
	ErrInvalidFare = errors.New("fare must be positive")
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

// MapErrorToHTTP maps domain errors to HTTP errors. Store failures that are
// not part of the taxonomy surface as 500 and are expected to be retried by
// the caller, not inside the request.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrIdentityNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "IDENTITY_NOT_FOUND")
	case errors.Is(err, ErrDriverNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "DRIVER_NOT_FOUND")
	case errors.Is(err, ErrVehicleNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "VEHICLE_NOT_FOUND")
	case errors.Is(err, ErrRideNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "RIDE_NOT_FOUND")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrDriverNotVerified):
		return NewHTTPError(http.StatusForbidden, err.Error(), "DRIVER_NOT_VERIFIED")
	case errors.Is(err, ErrDriverNotReady):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DRIVER_NOT_READY")
	case errors.Is(err, ErrRoleAlreadySet):
		return NewHTTPError(http.StatusConflict, err.Error(), "ROLE_ALREADY_SET")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrRideUnavailable):
		return NewHTTPError(http.StatusConflict, err.Error(), "RIDE_UNAVAILABLE")
	case errors.Is(err, ErrInvalidRating):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RATING")
	case errors.Is(err, ErrInvalidFare):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_FARE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
