package model

import "time"

// Appointment is the single booking record for all lifecycle states. A
// reservation is an appointment in status reserved with a hold expiry set.
//
// [StartTime, EndTime) is the full occupied block: service durations plus all
// buffers are folded in at reservation time, so conflict checking is plain
// half-open interval overlap.
type Appointment struct {
	ID              string
	SalonID         string
	StaffID         string
	CustomerID      string
	BookingNumber   string
	Services        []AppointmentService
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	TotalCents      int64
	Status          Status

	ReservedAt           *time.Time
	ReservationExpiresAt *time.Time
	ConfirmedAt          *time.Time
	CompletedAt          *time.Time
	CancelledAt          *time.Time
	NoShowAt             *time.Time

	CancelActor        string
	CancellationReason string

	CreatedAt time.Time
}

// AppointmentService is a line item frozen at reservation time. The service
// catalog may change later; these values never do.
type AppointmentService struct {
	ServiceID       string
	VariantID       string
	Name            string
	DurationMinutes int
	PriceCents      int64
}

// HoldExpired reports whether a reservation hold has lapsed. Appointments in
// other states never expire.
func (a Appointment) HoldExpired(now time.Time) bool {
	return a.Status == StatusReserved &&
		a.ReservationExpiresAt != nil &&
		now.After(*a.ReservationExpiresAt)
}

// Blocking reports whether the appointment occupies its slot for conflict
// purposes: confirmed, or reserved with an unexpired hold.
func (a Appointment) Blocking(now time.Time) bool {
	switch a.Status {
	case StatusConfirmed:
		return true
	case StatusReserved:
		return !a.HoldExpired(now)
	}
	return false
}

// Overlaps reports half-open interval overlap with [start, end).
func (a Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && start.Before(a.EndTime)
}
