package outbox

import (
	"encoding/json"
	"time"

	"github.com/glowlabs-io/scheduling/internal/model"
)

type appointmentPayload struct {
	AppointmentID string    `json:"appointment_id"`
	SalonID       string    `json:"salon_id"`
	StaffID       string    `json:"staff_id"`
	CustomerID    string    `json:"customer_id"`
	BookingNumber string    `json:"booking_number,omitempty"`
	Status        string    `json:"status"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	TotalCents    int64     `json:"total_cents"`
	Actor         string    `json:"actor,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// AppointmentEvent builds the outbox envelope for an appointment lifecycle
// change. Keyed by appointment id so per-appointment ordering survives Kafka
// partitioning.
func AppointmentEvent(eventType string, appt *model.Appointment, occurredAt time.Time) (Event, error) {
	payload, err := json.Marshal(appointmentPayload{
		AppointmentID: appt.ID,
		SalonID:       appt.SalonID,
		StaffID:       appt.StaffID,
		CustomerID:    appt.CustomerID,
		BookingNumber: appt.BookingNumber,
		Status:        string(appt.Status),
		StartTime:     appt.StartTime,
		EndTime:       appt.EndTime,
		TotalCents:    appt.TotalCents,
		Actor:         appt.CancelActor,
		Reason:        appt.CancellationReason,
		OccurredAt:    occurredAt,
	})
	if err != nil {
		return Event{}, err
	}
	return Event{
		AggregateType: "appointment",
		AggregateID:   appt.ID,
		EventType:     eventType,
		Payload:       payload,
	}, nil
}

type depositPayload struct {
	DepositID         string    `json:"deposit_id"`
	AppointmentID     string    `json:"appointment_id"`
	AmountCents       int64     `json:"amount_cents"`
	Status            string    `json:"status"`
	RefundAmountCents int64     `json:"refund_amount_cents,omitempty"`
	OccurredAt        time.Time `json:"occurred_at"`
}

// DepositEvent builds the outbox envelope for a deposit settlement. Keyed by
// appointment id to share a partition with the appointment's own events.
func DepositEvent(eventType string, dep *model.Deposit, occurredAt time.Time) (Event, error) {
	payload, err := json.Marshal(depositPayload{
		DepositID:         dep.ID,
		AppointmentID:     dep.AppointmentID,
		AmountCents:       dep.AmountCents,
		Status:            string(dep.Status),
		RefundAmountCents: dep.RefundAmountCents,
		OccurredAt:        occurredAt,
	})
	if err != nil {
		return Event{}, err
	}
	return Event{
		AggregateType: "deposit",
		AggregateID:   dep.AppointmentID,
		EventType:     eventType,
		Payload:       payload,
	}, nil
}
