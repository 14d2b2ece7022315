package domain

import "errors"

// Validation failures surfaced synchronously to callers. Handlers map these
// to the two-branch {error: message} response shape; anything not in this
// list is treated as an internal failure.
var (
	ErrInvalidPeriod      = errors.New("period is not registered")
	ErrInvalidDate        = errors.New("invalid date")
	ErrNotRegisteredCook  = errors.New("cook is not registered for this period")
	ErrFormClosed         = errors.New("availability form is closed for this period")
	ErrCapacityExceeded   = errors.New("cook has reached their cooking day limit")
	ErrCapabilityMismatch = errors.New("cook lacks the capability required for this role")
	ErrNotAvailable       = errors.New("cook is not available on this date")
	ErrAlreadyAssigned    = errors.New("cook is already assigned on this date")
	ErrSlotFilled         = errors.New("the requested slot is already filled")
	ErrNotCookingDate     = errors.New("date is not a cooking date")
	ErrNoAssignment       = errors.New("no assignment exists for this date")
)

// IsValidation reports whether err is one of the local validation failures
// above, i.e. safe to surface verbatim in an {error: message} response.
func IsValidation(err error) bool {
	for _, sentinel := range []error{
		ErrInvalidPeriod,
		ErrInvalidDate,
		ErrNotRegisteredCook,
		ErrFormClosed,
		ErrCapacityExceeded,
		ErrCapabilityMismatch,
		ErrNotAvailable,
		ErrAlreadyAssigned,
		ErrSlotFilled,
		ErrNotCookingDate,
		ErrNoAssignment,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
