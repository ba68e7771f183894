package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation             = errors.New("validation failed")
	ErrNotFound               = errors.New("not found")
	ErrAvailabilityConflict   = errors.New("dates are not available")
	ErrPaymentCorrelation     = errors.New("payment event does not match a pending reservation")
	ErrCompensationRequired   = errors.New("payment captured for unavailable dates; manual refund required")
	ErrConcurrentModification = errors.New("reservation was modified concurrently")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrGroupBookingDisabled   = errors.New("group bookings are disabled")
)

// Conflict reasons reported by availability checks.
const (
	ReasonOverlap  = "overlap"
	ReasonBlocked  = "blocked"
	ReasonMinStay  = "min_stay"
	ReasonCapacity = "capacity"
)

// ValidationError is returned for malformed input before any state is touched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// ConflictError carries the first failing availability reason.
type ConflictError struct {
	UnitID  int64
	Reason  string
	MinStay int
}

func (e *ConflictError) Error() string {
	if e.Reason == ReasonMinStay {
		return fmt.Sprintf("unit %d: minimum stay is %d nights", e.UnitID, e.MinStay)
	}
	return fmt.Sprintf("unit %d: not available (%s)", e.UnitID, e.Reason)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrAvailabilityConflict
}

// IsRetryable reports whether the caller may safely retry the whole operation.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}
