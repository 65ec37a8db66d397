package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/glowlabs-io/scheduling/internal/model"
)

type serviceItemView struct {
	ServiceID       string `json:"service_id"`
	VariantID       string `json:"variant_id,omitempty"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceCents      int64  `json:"price_cents"`
}

type appointmentJSON struct {
	ID                 string            `json:"id"`
	SalonID            string            `json:"salon_id"`
	StaffID            string            `json:"staff_id"`
	CustomerID         string            `json:"customer_id"`
	BookingNumber      string            `json:"booking_number,omitempty"`
	Status             string            `json:"status"`
	StartsAt           time.Time         `json:"starts_at"`
	EndsAt             time.Time         `json:"ends_at"`
	DurationMinutes    int               `json:"duration_minutes"`
	TotalCents         int64             `json:"total_cents"`
	Services           []serviceItemView `json:"services"`
	HoldExpiresAt      *time.Time        `json:"hold_expires_at,omitempty"`
	ConfirmedAt        *time.Time        `json:"confirmed_at,omitempty"`
	CompletedAt        *time.Time        `json:"completed_at,omitempty"`
	CancelledAt        *time.Time        `json:"cancelled_at,omitempty"`
	NoShowAt           *time.Time        `json:"no_show_at,omitempty"`
	CancelActor        string            `json:"cancel_actor,omitempty"`
	CancellationReason string            `json:"cancellation_reason,omitempty"`
}

func appointmentView(appt *model.Appointment) appointmentJSON {
	services := make([]serviceItemView, 0, len(appt.Services))
	for _, s := range appt.Services {
		services = append(services, serviceItemView{
			ServiceID:       s.ServiceID,
			VariantID:       s.VariantID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			PriceCents:      s.PriceCents,
		})
	}
	return appointmentJSON{
		ID:                 appt.ID,
		SalonID:            appt.SalonID,
		StaffID:            appt.StaffID,
		CustomerID:         appt.CustomerID,
		BookingNumber:      appt.BookingNumber,
		Status:             string(appt.Status),
		StartsAt:           appt.StartTime,
		EndsAt:             appt.EndTime,
		DurationMinutes:    appt.DurationMinutes,
		TotalCents:         appt.TotalCents,
		Services:           services,
		HoldExpiresAt:      appt.ReservationExpiresAt,
		ConfirmedAt:        appt.ConfirmedAt,
		CompletedAt:        appt.CompletedAt,
		CancelledAt:        appt.CancelledAt,
		NoShowAt:           appt.NoShowAt,
		CancelActor:        appt.CancelActor,
		CancellationReason: appt.CancellationReason,
	}
}

type depositJSON struct {
	ID                string `json:"id"`
	AmountCents       int64  `json:"amount_cents"`
	Status            string `json:"status"`
	PaymentIntentID   string `json:"payment_intent_id,omitempty"`
	RefundAmountCents int64  `json:"refund_amount_cents,omitempty"`
}

func depositView(dep *model.Deposit) depositJSON {
	return depositJSON{
		ID:                dep.ID,
		AmountCents:       dep.AmountCents,
		Status:            string(dep.Status),
		PaymentIntentID:   dep.PaymentIntentID,
		RefundAmountCents: dep.RefundAmountCents,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]errorBody{"error": {Code: code, Message: message}})
}
