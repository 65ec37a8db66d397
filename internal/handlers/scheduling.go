package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/glowlabs-io/scheduling/internal/availability"
	"github.com/glowlabs-io/scheduling/internal/directory"
	"github.com/glowlabs-io/scheduling/internal/metrics"
	"github.com/glowlabs-io/scheduling/internal/model"
	"github.com/glowlabs-io/scheduling/internal/reservation"
	"github.com/glowlabs-io/scheduling/internal/storage"
)

// Reservations is the booking surface of the reservation manager.
type Reservations interface {
	CreateReservation(ctx context.Context, in reservation.Input) (*model.Appointment, *model.Deposit, error)
	CreateBookingRequest(ctx context.Context, in reservation.Input) (*model.Appointment, error)
}

// Lifecycle drives appointment status changes.
type Lifecycle interface {
	Confirm(ctx context.Context, id string) (*model.Appointment, error)
	Approve(ctx context.Context, id string) (*model.Appointment, error)
	Cancel(ctx context.Context, id, actor, reason string) (*model.Appointment, error)
	Complete(ctx context.Context, id string) (*model.Appointment, error)
	MarkNoShow(ctx context.Context, id string) (*model.Appointment, error)
}

// Appointments is the listing slice of the appointment repository.
type Appointments interface {
	List(ctx context.Context, f storage.ListFilter) ([]model.Appointment, error)
}

type SchedulingHandler struct {
	schedules    reservation.Schedules
	reservations Reservations
	lifecycle    Lifecycle
	appointments Appointments
	directory    directory.Provider
	logger       *slog.Logger
	now          func() time.Time
}

func NewSchedulingHandler(schedules reservation.Schedules, reservations Reservations, lifecycle Lifecycle, appointments Appointments, dir directory.Provider, logger *slog.Logger, now func() time.Time) *SchedulingHandler {
	if now == nil {
		now = time.Now
	}
	return &SchedulingHandler{
		schedules:    schedules,
		reservations: reservations,
		lifecycle:    lifecycle,
		appointments: appointments,
		directory:    dir,
		logger:       logger,
		now:          now,
	}
}

// Register wires all scheduling routes onto the mux.
func (h *SchedulingHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/public/slots", h.Slots)
	mux.HandleFunc("/api/v1/public/reservations", h.CreateReservation)
	mux.HandleFunc("/api/v1/public/requests", h.CreateBookingRequest)
	mux.HandleFunc("/api/v1/appointments", h.List)
	mux.HandleFunc("/api/v1/appointments/confirm", h.Confirm)
	mux.HandleFunc("/api/v1/appointments/approve", h.Approve)
	mux.HandleFunc("/api/v1/appointments/cancel", h.Cancel)
	mux.HandleFunc("/api/v1/appointments/complete", h.Complete)
	mux.HandleFunc("/api/v1/appointments/no-show", h.NoShow)
}

// Slots answers the public availability query. Dates are civil dates resolved
// in the salon's timezone.
func (h *SchedulingHandler) Slots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use GET")
		return
	}
	q := r.URL.Query()

	salonID := strings.TrimSpace(q.Get("salon_id"))
	if salonID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "salon_id is required")
		return
	}
	selections, err := parseServiceSelections(q.Get("services"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	fromDate, err := parseDate(q.Get("date_from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid date_from, want YYYY-MM-DD")
		return
	}
	toDate := fromDate
	if raw := q.Get("date_to"); raw != "" {
		toDate, err = parseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid date_to, want YYYY-MM-DD")
			return
		}
	}
	var granularity time.Duration
	if raw := q.Get("granularity_minutes"); raw != "" {
		mins, err := strconv.Atoi(raw)
		if err != nil || mins <= 0 {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid granularity_minutes")
			return
		}
		granularity = time.Duration(mins) * time.Minute
	}

	started := time.Now()
	ctx := r.Context()
	snap, err := h.schedules.LoadSnapshot(ctx, salonID, fromDate.UTC(), toDate.UTC())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	snap.Now = h.now()

	loc := snap.Location
	if loc == nil {
		loc = time.UTC
	}
	slots, err := availability.ComputeAvailableSlots(availability.SlotQuery{
		SalonID:          salonID,
		From:             inLocation(fromDate, loc),
		To:               inLocation(toDate, loc),
		Services:         selections,
		PreferredStaffID: strings.TrimSpace(q.Get("staff_id")),
		Granularity:      granularity,
	}, *snap)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	metrics.SlotQueries.Observe(time.Since(started).Seconds())

	h.applyDirectoryNames(ctx, slots)
	writeJSON(w, http.StatusOK, map[string]any{"slots": slots})
}

// applyDirectoryNames swaps locally stored staff names for the company
// directory's display names when the directory is reachable. Failures fall
// back silently; names are cosmetic here.
func (h *SchedulingHandler) applyDirectoryNames(ctx context.Context, slots []availability.Slot) {
	if h.directory == nil || len(slots) == 0 {
		return
	}
	seen := map[string]bool{}
	var ids []string
	for _, s := range slots {
		if !seen[s.StaffID] {
			seen[s.StaffID] = true
			ids = append(ids, s.StaffID)
		}
	}
	profiles, err := h.directory.GetProfiles(ctx, ids)
	if err != nil {
		h.logger.Warn("staff directory lookup failed", "err", err)
		return
	}
	for i := range slots {
		if p, ok := profiles[slots[i].StaffID]; ok && p.DisplayName != "" {
			slots[i].StaffName = p.DisplayName
		}
	}
}

type bookingRequest struct {
	SalonID    string `json:"salon_id"`
	StaffID    string `json:"staff_id"`
	CustomerID string `json:"customer_id"`
	StartsAt   string `json:"starts_at"`
	Services   []struct {
		ServiceID string `json:"service_id"`
		VariantID string `json:"variant_id"`
	} `json:"services"`
}

func (req bookingRequest) toInput() (reservation.Input, error) {
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return reservation.Input{}, errors.New("invalid starts_at, want RFC 3339")
	}
	in := reservation.Input{
		SalonID:    strings.TrimSpace(req.SalonID),
		StaffID:    strings.TrimSpace(req.StaffID),
		CustomerID: strings.TrimSpace(req.CustomerID),
		StartsAt:   startsAt,
	}
	for _, s := range req.Services {
		in.Services = append(in.Services, model.ServiceSelection{
			ServiceID: strings.TrimSpace(s.ServiceID),
			VariantID: strings.TrimSpace(s.VariantID),
		})
	}
	return in, nil
}

func (h *SchedulingHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use POST")
		return
	}
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	appt, dep, err := h.reservations.CreateReservation(r.Context(), in)
	if err != nil {
		if errors.Is(err, model.ErrSlotNotAvailable) {
			metrics.ReservationConflicts.Inc()
		}
		h.fail(w, r, err)
		return
	}
	metrics.ReservationsCreated.Inc()

	resp := map[string]any{"appointment": appointmentView(appt)}
	if dep != nil {
		resp["deposit"] = depositView(dep)
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *SchedulingHandler) CreateBookingRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use POST")
		return
	}
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	appt, err := h.reservations.CreateBookingRequest(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"appointment": appointmentView(appt)})
}

type transitionRequest struct {
	AppointmentID string `json:"appointment_id"`
	Actor         string `json:"actor"`
	Reason        string `json:"reason"`
}

func (h *SchedulingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "confirmed", func(ctx context.Context, req transitionRequest) (*model.Appointment, error) {
		return h.lifecycle.Confirm(ctx, req.AppointmentID)
	})
}

func (h *SchedulingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "confirmed", func(ctx context.Context, req transitionRequest) (*model.Appointment, error) {
		return h.lifecycle.Approve(ctx, req.AppointmentID)
	})
}

func (h *SchedulingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "cancelled", func(ctx context.Context, req transitionRequest) (*model.Appointment, error) {
		actor := req.Actor
		if actor == "" {
			actor = "customer"
		}
		return h.lifecycle.Cancel(ctx, req.AppointmentID, actor, req.Reason)
	})
}

func (h *SchedulingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "completed", func(ctx context.Context, req transitionRequest) (*model.Appointment, error) {
		return h.lifecycle.Complete(ctx, req.AppointmentID)
	})
}

func (h *SchedulingHandler) NoShow(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "no_show", func(ctx context.Context, req transitionRequest) (*model.Appointment, error) {
		return h.lifecycle.MarkNoShow(ctx, req.AppointmentID)
	})
}

func (h *SchedulingHandler) transition(w http.ResponseWriter, r *http.Request, target string, do func(context.Context, transitionRequest) (*model.Appointment, error)) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use POST")
		return
	}
	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	req.AppointmentID = strings.TrimSpace(req.AppointmentID)
	if req.AppointmentID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "appointment_id is required")
		return
	}

	appt, err := do(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	metrics.StatusTransitions.WithLabelValues(target).Inc()
	writeJSON(w, http.StatusOK, map[string]any{"appointment": appointmentView(appt)})
}

func (h *SchedulingHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use GET")
		return
	}
	q := r.URL.Query()
	salonID := strings.TrimSpace(q.Get("salon_id"))
	if salonID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "salon_id is required")
		return
	}
	f := storage.ListFilter{
		SalonID: salonID,
		StaffID: strings.TrimSpace(q.Get("staff_id")),
	}
	if raw := q.Get("status"); raw != "" {
		status := model.Status(raw)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "unknown status "+raw)
			return
		}
		f.Status = status
	}
	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid from, want RFC 3339")
			return
		}
		f.From = t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid to, want RFC 3339")
			return
		}
		f.To = t
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid limit")
			return
		}
		f.Limit = n
	}

	appts, err := h.appointments.List(r.Context(), f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	views := make([]any, 0, len(appts))
	for i := range appts {
		views = append(views, appointmentView(&appts[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"appointments": views})
}

func (h *SchedulingHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", r.URL.Path, "err", err)
		writeError(w, status, code, "internal error")
		return
	}
	writeError(w, status, code, err.Error())
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, model.ErrSlotNotAvailable):
		return http.StatusConflict, "SLOT_NOT_AVAILABLE"
	case errors.Is(err, model.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_TRANSITION"
	case errors.Is(err, model.ErrReservationExpired):
		return http.StatusGone, "RESERVATION_EXPIRED"
	case errors.Is(err, model.ErrPayment):
		return http.StatusBadGateway, "PAYMENT_ERROR"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func parseServiceSelections(raw string) ([]model.ServiceSelection, error) {
	var out []model.ServiceSelection
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sel := model.ServiceSelection{ServiceID: part}
		if id, variant, ok := strings.Cut(part, ":"); ok {
			sel = model.ServiceSelection{ServiceID: id, VariantID: variant}
		}
		out = append(out, sel)
	}
	if len(out) == 0 {
		return nil, errors.New("services is required, e.g. services=svc1,svc2:variant")
	}
	return out, nil
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(raw))
}

// inLocation re-anchors a parsed civil date at midnight in the salon
// timezone.
func inLocation(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
}
