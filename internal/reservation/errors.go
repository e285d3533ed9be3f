package reservation

import (
	"errors"
	"strings"
)

// Sentinel errors returned by the reservation operations. Handlers map
// these onto HTTP status codes (404, 403, 401).
var (
	ErrNotFound      = errors.New("reservation not found")
	ErrForbidden     = errors.New("not allowed to act on this reservation")
	ErrWrongPassword = errors.New("old password is incorrect")
)

// ConflictError reports which of the requested dates are already booked.
// The whole batch is rejected; no rows are written.
type ConflictError struct {
	OccupiedDates []string // Conflicting dates as YYYY-MM-DD, sorted
}

func (e *ConflictError) Error() string {
	return "dates already reserved: " + strings.Join(e.OccupiedDates, ", ")
}

// ValidationError reports the first failing input constraint.
type ValidationError struct {
	Field   string // Offending input field
	Message string // Human-readable constraint message
}

func (e *ValidationError) Error() string {
	return e.Message
}
