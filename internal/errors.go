package models

import "errors"

var (
	ErrDuplicateUser       = errors.New("email or username already registered")
	ErrInvalidRole         = errors.New("invalid user role")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrOperatorNotApproved = errors.New("flight operator account not approved")
	ErrNotOperator         = errors.New("user is not a flight operator")

	ErrUnauthenticated = errors.New("missing or invalid session token")
	ErrForbidden       = errors.New("operation not permitted")

	ErrUserNotFound    = errors.New("user not found")
	ErrFlightNotFound  = errors.New("flight not found")
	ErrBookingNotFound = errors.New("booking not found")

	ErrInsufficientSeats = errors.New("not enough available seats")
	ErrAlreadyCancelled  = errors.New("booking already cancelled")
)

// ValidationError flags malformed or missing input from the caller; the
// HTTP layer maps it to a 400 with the message intact.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}
