package booking

import "errors"

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrNotBookingOwner    = errors.New("not authorized to access this booking")
	ErrInvalidTimeRange   = errors.New("invalid time range: duration must be greater than 0 and at most 12 hours")
	ErrInvalidBookingType = errors.New("booking type must be slot or custom")
	ErrMissingTimeSlot    = errors.New("time slot is required for slot bookings")
	ErrInvalidStatus      = errors.New("invalid booking status")
	ErrInvalidTransition  = errors.New("booking status transition not allowed")
	ErrAlreadyFinalized   = errors.New("booking is already completed or cancelled")
	ErrAlreadyPaid        = errors.New("payment already processed for this booking")
)
