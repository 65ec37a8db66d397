package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glowlabs-io/scheduling/internal/availability"
	"github.com/glowlabs-io/scheduling/internal/directory"
	"github.com/glowlabs-io/scheduling/internal/model"
	"github.com/glowlabs-io/scheduling/internal/reservation"
	"github.com/glowlabs-io/scheduling/internal/storage"
)

var monday = time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

func nineToSix() model.WeeklySchedule {
	var w model.WeeklySchedule
	w[int(time.Monday)] = model.DayWindow{Open: true, StartMinute: 9 * 60, EndMinute: 18 * 60}
	return w
}

type fakeSchedules struct {
	snap availability.Snapshot
	err  error
}

func (f *fakeSchedules) LoadSnapshot(context.Context, string, time.Time, time.Time) (*availability.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	cp := f.snap
	return &cp, nil
}

type fakeReservations struct {
	appt *model.Appointment
	dep  *model.Deposit
	err  error
	in   reservation.Input
}

func (f *fakeReservations) CreateReservation(_ context.Context, in reservation.Input) (*model.Appointment, *model.Deposit, error) {
	f.in = in
	return f.appt, f.dep, f.err
}

func (f *fakeReservations) CreateBookingRequest(_ context.Context, in reservation.Input) (*model.Appointment, error) {
	f.in = in
	return f.appt, f.err
}

type fakeLifecycle struct {
	appt   *model.Appointment
	err    error
	id     string
	actor  string
	reason string
	called string
}

func (f *fakeLifecycle) Confirm(_ context.Context, id string) (*model.Appointment, error) {
	f.called, f.id = "confirm", id
	return f.appt, f.err
}

func (f *fakeLifecycle) Approve(_ context.Context, id string) (*model.Appointment, error) {
	f.called, f.id = "approve", id
	return f.appt, f.err
}

func (f *fakeLifecycle) Cancel(_ context.Context, id, actor, reason string) (*model.Appointment, error) {
	f.called, f.id, f.actor, f.reason = "cancel", id, actor, reason
	return f.appt, f.err
}

func (f *fakeLifecycle) Complete(_ context.Context, id string) (*model.Appointment, error) {
	f.called, f.id = "complete", id
	return f.appt, f.err
}

func (f *fakeLifecycle) MarkNoShow(_ context.Context, id string) (*model.Appointment, error) {
	f.called, f.id = "noshow", id
	return f.appt, f.err
}

type fakeAppointments struct {
	filter storage.ListFilter
	appts  []model.Appointment
	err    error
}

func (f *fakeAppointments) List(_ context.Context, filter storage.ListFilter) ([]model.Appointment, error) {
	f.filter = filter
	return f.appts, f.err
}

type fakeDirectory struct {
	profiles map[string]directory.Profile
}

func (f *fakeDirectory) GetProfiles(_ context.Context, _ []string) (map[string]directory.Profile, error) {
	return f.profiles, nil
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

type deps struct {
	schedules    *fakeSchedules
	reservations *fakeReservations
	lifecycle    *fakeLifecycle
	appointments *fakeAppointments
	directory    directory.Provider
}

func newHandler(d deps) *SchedulingHandler {
	if d.schedules == nil {
		d.schedules = &fakeSchedules{}
	}
	if d.reservations == nil {
		d.reservations = &fakeReservations{}
	}
	if d.lifecycle == nil {
		d.lifecycle = &fakeLifecycle{}
	}
	if d.appointments == nil {
		d.appointments = &fakeAppointments{}
	}
	logger := slog.New(slog.NewTextHandler(discard{}, nil))
	now := func() time.Time { return monday.Add(8 * time.Hour) }
	return NewSchedulingHandler(d.schedules, d.reservations, d.lifecycle, d.appointments, d.directory, logger, now)
}

func testSnapshot() availability.Snapshot {
	return availability.Snapshot{
		Salon: model.Salon{ID: "salon-1", Name: "Glow", Timezone: "UTC", OpeningHours: nineToSix()},
		Services: []model.Service{{
			ID: "svc-cut", SalonID: "salon-1", Name: "Haircut", DurationMinutes: 60, PriceCents: 5000,
		}},
		Staff: []model.Staff{{
			ID: "staff-1", SalonID: "salon-1", Name: "Mia",
			Bookable: true, ServiceIDs: []string{"svc-cut"}, Weekly: nineToSix(),
		}},
		Location: time.UTC,
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error.Code
}

func TestSlots_ReturnsComputedSlots(t *testing.T) {
	h := newHandler(deps{schedules: &fakeSchedules{snap: testSnapshot()}})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/public/slots?salon_id=salon-1&services=svc-cut&date_from=2026-08-31", nil)
	rec := httptest.NewRecorder()
	h.Slots(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Slots []availability.Slot `json:"slots"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// 09:00 through 17:00 on a 15-minute grid for a 60-minute service
	if len(body.Slots) != 33 {
		t.Fatalf("len(slots) = %d, want 33", len(body.Slots))
	}
	first := body.Slots[0]
	if !first.StartsAt.Equal(monday.Add(9*time.Hour)) || first.StaffID != "staff-1" || first.StaffName != "Mia" {
		t.Fatalf("first slot = %+v", first)
	}
}

func TestSlots_MissingSalonID(t *testing.T) {
	h := newHandler(deps{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/slots?services=svc-cut&date_from=2026-08-31", nil)
	rec := httptest.NewRecorder()
	h.Slots(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if code := decodeError(t, rec); code != "VALIDATION_ERROR" {
		t.Fatalf("code = %s", code)
	}
}

func TestSlots_UnknownSalon(t *testing.T) {
	h := newHandler(deps{schedules: &fakeSchedules{err: model.ErrNotFound}})
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/public/slots?salon_id=nope&services=svc-cut&date_from=2026-08-31", nil)
	rec := httptest.NewRecorder()
	h.Slots(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if code := decodeError(t, rec); code != "NOT_FOUND" {
		t.Fatalf("code = %s", code)
	}
}

func TestSlots_DirectoryNamesApplied(t *testing.T) {
	dir := &fakeDirectory{profiles: map[string]directory.Profile{
		"staff-1": {StaffID: "staff-1", DisplayName: "Mia Torres"},
	}}
	h := newHandler(deps{schedules: &fakeSchedules{snap: testSnapshot()}, directory: dir})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/public/slots?salon_id=salon-1&services=svc-cut&date_from=2026-08-31", nil)
	rec := httptest.NewRecorder()
	h.Slots(rec, req)

	var body struct {
		Slots []availability.Slot `json:"slots"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Slots[0].StaffName != "Mia Torres" {
		t.Fatalf("StaffName = %s, want directory display name", body.Slots[0].StaffName)
	}
}

func sampleAppointment() *model.Appointment {
	expires := monday.Add(8*time.Hour + reservation.DefaultHoldTTL)
	return &model.Appointment{
		ID:                   "appt-1",
		SalonID:              "salon-1",
		StaffID:              "staff-1",
		CustomerID:           "cust-1",
		Status:               model.StatusReserved,
		StartTime:            monday.Add(10 * time.Hour),
		EndTime:              monday.Add(11 * time.Hour),
		DurationMinutes:      60,
		TotalCents:           5000,
		ReservationExpiresAt: &expires,
		Services: []model.AppointmentService{{
			ServiceID: "svc-cut", Name: "Haircut", DurationMinutes: 60, PriceCents: 5000,
		}},
	}
}

func TestCreateReservation_Created(t *testing.T) {
	res := &fakeReservations{
		appt: sampleAppointment(),
		dep:  &model.Deposit{ID: "dep-1", AmountCents: 1000, Status: model.DepositPending, PaymentIntentID: "pi_1"},
	}
	h := newHandler(deps{reservations: res})

	body := `{
		"salon_id": "salon-1",
		"staff_id": "staff-1",
		"customer_id": "cust-1",
		"starts_at": "2026-08-31T10:00:00Z",
		"services": [{"service_id": "svc-cut"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateReservation(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Appointment appointmentJSON `json:"appointment"`
		Deposit     *depositJSON    `json:"deposit"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Appointment.ID != "appt-1" || resp.Appointment.Status != "reserved" {
		t.Fatalf("appointment = %+v", resp.Appointment)
	}
	if resp.Appointment.HoldExpiresAt == nil {
		t.Fatal("hold_expires_at missing")
	}
	if resp.Deposit == nil || resp.Deposit.AmountCents != 1000 {
		t.Fatalf("deposit = %+v", resp.Deposit)
	}
	if !res.in.StartsAt.Equal(monday.Add(10 * time.Hour)) {
		t.Fatalf("input starts_at = %v", res.in.StartsAt)
	}
}

func TestCreateReservation_Conflict(t *testing.T) {
	h := newHandler(deps{reservations: &fakeReservations{err: model.ErrSlotNotAvailable}})

	body := `{"salon_id":"salon-1","customer_id":"cust-1","starts_at":"2026-08-31T10:00:00Z","services":[{"service_id":"svc-cut"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateReservation(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
	if code := decodeError(t, rec); code != "SLOT_NOT_AVAILABLE" {
		t.Fatalf("code = %s", code)
	}
}

func TestCreateReservation_BadTimestamp(t *testing.T) {
	h := newHandler(deps{})
	body := `{"salon_id":"salon-1","customer_id":"cust-1","starts_at":"tomorrow","services":[{"service_id":"svc-cut"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateReservation(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCreateBookingRequest_Created(t *testing.T) {
	appt := sampleAppointment()
	appt.Status = model.StatusRequested
	appt.ReservationExpiresAt = nil
	h := newHandler(deps{reservations: &fakeReservations{appt: appt}})

	body := `{"salon_id":"salon-1","customer_id":"cust-1","starts_at":"2026-08-31T10:00:00Z","services":[{"service_id":"svc-cut"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/requests", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateBookingRequest(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Appointment appointmentJSON `json:"appointment"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Appointment.Status != "requested" || resp.Appointment.HoldExpiresAt != nil {
		t.Fatalf("appointment = %+v", resp.Appointment)
	}
}

func TestConfirm_ExpiredHold(t *testing.T) {
	h := newHandler(deps{lifecycle: &fakeLifecycle{err: model.ErrReservationExpired}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/confirm",
		strings.NewReader(`{"appointment_id":"appt-1"}`))
	rec := httptest.NewRecorder()
	h.Confirm(rec, req)

	if rec.Code != http.StatusGone {
		t.Fatalf("status = %d", rec.Code)
	}
	if code := decodeError(t, rec); code != "RESERVATION_EXPIRED" {
		t.Fatalf("code = %s", code)
	}
}

func TestCancel_DefaultsActorToCustomer(t *testing.T) {
	lc := &fakeLifecycle{appt: sampleAppointment()}
	h := newHandler(deps{lifecycle: lc})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/cancel",
		strings.NewReader(`{"appointment_id":"appt-1","reason":"sick"}`))
	rec := httptest.NewRecorder()
	h.Cancel(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if lc.called != "cancel" || lc.id != "appt-1" || lc.actor != "customer" || lc.reason != "sick" {
		t.Fatalf("lifecycle call = %+v", lc)
	}
}

func TestTransition_MissingID(t *testing.T) {
	h := newHandler(deps{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/complete", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Complete(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestNoShow_InvalidTransition(t *testing.T) {
	h := newHandler(deps{lifecycle: &fakeLifecycle{err: model.ErrInvalidTransition}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/no-show",
		strings.NewReader(`{"appointment_id":"appt-1"}`))
	rec := httptest.NewRecorder()
	h.NoShow(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
	if code := decodeError(t, rec); code != "INVALID_TRANSITION" {
		t.Fatalf("code = %s", code)
	}
}

func TestList_FiltersPassedThrough(t *testing.T) {
	appts := &fakeAppointments{appts: []model.Appointment{*sampleAppointment()}}
	h := newHandler(deps{appointments: appts})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/appointments?salon_id=salon-1&staff_id=staff-1&status=confirmed&from=2026-08-31T00:00:00Z&limit=10", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	f := appts.filter
	if f.SalonID != "salon-1" || f.StaffID != "staff-1" || f.Status != model.StatusConfirmed || f.Limit != 10 {
		t.Fatalf("filter = %+v", f)
	}
	if f.From.IsZero() {
		t.Fatal("from filter not set")
	}
}

func TestList_UnknownStatus(t *testing.T) {
	h := newHandler(deps{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments?salon_id=salon-1&status=parked", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newHandler(deps{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/confirm", nil)
	rec := httptest.NewRecorder()
	h.Confirm(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}
