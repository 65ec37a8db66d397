package model

import "errors"

// Error taxonomy shared by the scheduling engine. Handlers map these to
// HTTP status codes; callers branch with errors.Is.
var (
	ErrValidation         = errors.New("validation error")
	ErrSlotNotAvailable   = errors.New("slot not available")
	ErrReservationExpired = errors.New("reservation expired")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrPayment            = errors.New("payment operation failed")
)
