package reservation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/glowlabs-io/scheduling/internal/availability"
	"github.com/glowlabs-io/scheduling/internal/deposit"
	"github.com/glowlabs-io/scheduling/internal/model"
	"github.com/glowlabs-io/scheduling/internal/outbox"
)

// monday is a fixed Monday so weekly schedules resolve deterministically.
var monday = time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

func nineToSix() model.WeeklySchedule {
	var w model.WeeklySchedule
	w[int(time.Monday)] = model.DayWindow{Open: true, StartMinute: 9 * 60, EndMinute: 18 * 60}
	return w
}

type fakeSchedules struct {
	snap availability.Snapshot
}

func (f *fakeSchedules) LoadSnapshot(_ context.Context, _ string, _, _ time.Time) (*availability.Snapshot, error) {
	cp := f.snap
	return &cp, nil
}

// memStore mimics the transactional store: one lock per call stands in for
// the per-staff advisory lock, and the overlap scan mirrors the conflict
// query.
type memStore struct {
	mu     sync.Mutex
	now    func() time.Time
	appts  []model.Appointment
	deps   []model.Deposit
	events []outbox.Event
}

func (s *memStore) Reserve(_ context.Context, appt *model.Appointment, dep *model.Deposit, evt outbox.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ex := range s.appts {
		if ex.StaffID == appt.StaffID && ex.Blocking(s.now()) && ex.Overlaps(appt.StartTime, appt.EndTime) {
			return model.ErrSlotNotAvailable
		}
	}
	s.appts = append(s.appts, *appt)
	if dep != nil {
		s.deps = append(s.deps, *dep)
	}
	s.events = append(s.events, evt)
	return nil
}

func (s *memStore) Insert(_ context.Context, appt *model.Appointment, evt outbox.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appts = append(s.appts, *appt)
	s.events = append(s.events, evt)
	return nil
}

type fakeGateway struct {
	mu        sync.Mutex
	intents   int
	cancelled []string
}

func (g *fakeGateway) CreateDepositIntent(_ context.Context, _ int64, _, _ string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.intents++
	return "pi_test", nil
}

func (g *fakeGateway) CancelDepositIntent(_ context.Context, intentID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cancelled = append(g.cancelled, intentID)
	return nil
}

func (g *fakeGateway) VerifyDepositPaid(context.Context, string) (bool, error) { return true, nil }

func (g *fakeGateway) Refund(context.Context, string, int64) (string, error) { return "re_test", nil }

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func testSnapshot(priceCents int64, depositRequired bool) availability.Snapshot {
	return availability.Snapshot{
		Salon: model.Salon{
			ID: "salon-1", Name: "Glow", Timezone: "UTC", OpeningHours: nineToSix(),
		},
		Services: []model.Service{{
			ID: "svc-cut", SalonID: "salon-1", Name: "Haircut",
			DurationMinutes: 60, PriceCents: priceCents, DepositRequired: depositRequired,
		}},
		Staff: []model.Staff{{
			ID: "staff-1", SalonID: "salon-1", Name: "Mia",
			Bookable: true, ServiceIDs: []string{"svc-cut"}, Weekly: nineToSix(),
		}},
		Location: time.UTC,
	}
}

func testManager(t *testing.T, snap availability.Snapshot, now time.Time) (*Manager, *memStore, *fakeGateway) {
	t.Helper()
	store := &memStore{now: func() time.Time { return now }}
	gw := &fakeGateway{}
	engine := deposit.NewEngine(deposit.DefaultPolicy())
	logger := slog.New(slog.NewTextHandler(discard{}, nil))
	m := NewManager(&fakeSchedules{snap: snap}, store, engine, gw, logger, func() time.Time { return now }, 0)
	return m, store, gw
}

func TestCreateReservation_PlacesHold(t *testing.T) {
	now := monday.Add(8 * time.Hour)
	m, store, _ := testManager(t, testSnapshot(5000, false), now)

	appt, dep, err := m.CreateReservation(context.Background(), Input{
		SalonID:    "salon-1",
		StaffID:    "staff-1",
		CustomerID: "cust-1",
		Services:   []model.ServiceSelection{{ServiceID: "svc-cut"}},
		StartsAt:   monday.Add(10 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	if dep != nil {
		t.Fatalf("deposit = %+v, want none", dep)
	}
	if appt.Status != model.StatusReserved {
		t.Fatalf("status = %s, want reserved", appt.Status)
	}
	if appt.StaffID != "staff-1" || appt.TotalCents != 5000 || appt.DurationMinutes != 60 {
		t.Fatalf("appt = %+v", appt)
	}
	if !appt.EndTime.Equal(monday.Add(11 * time.Hour)) {
		t.Fatalf("EndTime = %v, want 11:00", appt.EndTime)
	}
	wantExpiry := now.Add(DefaultHoldTTL)
	if appt.ReservationExpiresAt == nil || !appt.ReservationExpiresAt.Equal(wantExpiry) {
		t.Fatalf("expiry = %v, want %v", appt.ReservationExpiresAt, wantExpiry)
	}
	if len(appt.Services) != 1 || appt.Services[0].Name != "Haircut" || appt.Services[0].PriceCents != 5000 {
		t.Fatalf("line items = %+v", appt.Services)
	}
	if len(store.events) != 1 || store.events[0].EventType != outbox.EventAppointmentReserved {
		t.Fatalf("events = %+v", store.events)
	}
}

func TestCreateReservation_DepositRequired(t *testing.T) {
	now := monday.Add(8 * time.Hour)
	m, store, gw := testManager(t, testSnapshot(5000, true), now)

	_, dep, err := m.CreateReservation(context.Background(), Input{
		SalonID:    "salon-1",
		StaffID:    "staff-1",
		CustomerID: "cust-1",
		Services:   []model.ServiceSelection{{ServiceID: "svc-cut"}},
		StartsAt:   monday.Add(10 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	if dep == nil || dep.AmountCents != 1000 || dep.Status != model.DepositPending || dep.PaymentIntentID != "pi_test" {
		t.Fatalf("deposit = %+v, want pending 1000 cents", dep)
	}
	if gw.intents != 1 {
		t.Fatalf("intents = %d, want 1", gw.intents)
	}
	if len(store.deps) != 1 {
		t.Fatalf("stored deposits = %d, want 1", len(store.deps))
	}
}

func TestCreateReservation_NoDepositBelowThreshold(t *testing.T) {
	now := monday.Add(8 * time.Hour)
	m, _, gw := testManager(t, testSnapshot(2500, true), now)

	_, dep, err := m.CreateReservation(context.Background(), Input{
		SalonID:    "salon-1",
		StaffID:    "staff-1",
		CustomerID: "cust-1",
		Services:   []model.ServiceSelection{{ServiceID: "svc-cut"}},
		StartsAt:   monday.Add(10 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	if dep != nil || gw.intents != 0 {
		t.Fatalf("deposit = %+v intents = %d, want none", dep, gw.intents)
	}
}

func TestCreateReservation_DepositThresholdPerService(t *testing.T) {
	now := monday.Add(8 * time.Hour)
	snap := testSnapshot(2000, true)
	snap.Services = append(snap.Services, model.Service{
		ID: "svc-color", SalonID: "salon-1", Name: "Color",
		DurationMinutes: 30, PriceCents: 5000, DepositRequired: true,
	})
	snap.Staff[0].ServiceIDs = append(snap.Staff[0].ServiceIDs, "svc-color")
	m, _, gw := testManager(t, snap, now)

	_, dep, err := m.CreateReservation(context.Background(), Input{
		SalonID:    "salon-1",
		StaffID:    "staff-1",
		CustomerID: "cust-1",
		Services:   []model.ServiceSelection{{ServiceID: "svc-cut"}, {ServiceID: "svc-color"}},
		StartsAt:   monday.Add(10 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	// 2000 sits below the per-service threshold and contributes nothing even
	// though the booking total crosses it; only the 5000 service counts.
	if dep == nil || dep.AmountCents != 1000 {
		t.Fatalf("deposit = %+v, want 1000 cents from the 5000 service alone", dep)
	}
	if gw.intents != 1 {
		t.Fatalf("intents = %d, want 1", gw.intents)
	}
}

func TestCreateReservation_ConflictVoidsDepositIntent(t *testing.T) {
	now := monday.Add(8 * time.Hour)
	m, store, gw := testManager(t, testSnapshot(5000, true), now)
	store.appts = append(store.appts, model.Appointment{
		ID: "other", StaffID: "staff-1", Status: model.StatusConfirmed,
		StartTime: monday.Add(10 * time.Hour), EndTime: monday.Add(11 * time.Hour),
	})

	_, _, err := m.CreateReservation(context.Background(), Input{
		SalonID:    "salon-1",
		StaffID:    "staff-1",
		CustomerID: "cust-1",
		Services:   []model.ServiceSelection{{ServiceID: "svc-cut"}},
		StartsAt:   monday.Add(10 * time.Hour),
	})
	if !errors.Is(err, model.ErrSlotNotAvailable) {
		t.Fatalf("err = %v, want ErrSlotNotAvailable", err)
	}
	if gw.intents != 1 || len(gw.cancelled) != 1 || gw.cancelled[0] != "pi_test" {
		t.Fatalf("intents = %d cancelled = %v, want the lost slot's intent voided", gw.intents, gw.cancelled)
	}
	if len(store.deps) != 0 {
		t.Fatalf("stored deposits = %d, want none", len(store.deps))
	}
}

func TestCreateReservation_MisalignedStartRejected(t *testing.T) {
	now := monday.Add(8 * time.Hour)
	m, _, _ := testManager(t, testSnapshot(5000, false), now)

	_, _, err := m.CreateReservation(context.Background(), Input{
		SalonID:    "salon-1",
		StaffID:    "staff-1",
		CustomerID: "cust-1",
		Services:   []model.ServiceSelection{{ServiceID: "svc-cut"}},
		StartsAt:   monday.Add(10*time.Hour + 7*time.Minute),
	})
	if !errors.Is(err, model.ErrSlotNotAvailable) {
		t.Fatalf("err = %v, want ErrSlotNotAvailable", err)
	}
}

func TestCreateReservation_OccupiedSlotRejected(t *testing.T) {
	now := monday.Add(8 * time.Hour)
	snap := testSnapshot(5000, false)
	snap.Appointments = []model.Appointment{{
		ID: "other", StaffID: "staff-1", Status: model.StatusConfirmed,
		StartTime: monday.Add(10 * time.Hour), EndTime: monday.Add(11 * time.Hour),
	}}
	m, _, _ := testManager(t, snap, now)

	_, _, err := m.CreateReservation(context.Background(), Input{
		SalonID:    "salon-1",
		StaffID:    "staff-1",
		CustomerID: "cust-1",
		Services:   []model.ServiceSelection{{ServiceID: "svc-cut"}},
		StartsAt:   monday.Add(10*time.Hour + 30*time.Minute),
	})
	if !errors.Is(err, model.ErrSlotNotAvailable) {
		t.Fatalf("err = %v, want ErrSlotNotAvailable", err)
	}
}

func TestCreateReservation_AnyStaffAssigned(t *testing.T) {
	now := monday.Add(8 * time.Hour)
	snap := testSnapshot(5000, false)
	snap.Staff = append(snap.Staff, model.Staff{
		ID: "staff-2", SalonID: "salon-1", Name: "Noa",
		Bookable: true, ServiceIDs: []string{"svc-cut"}, Weekly: nineToSix(),
	})
	m, _, _ := testManager(t, snap, now)

	appt, _, err := m.CreateReservation(context.Background(), Input{
		SalonID:    "salon-1",
		CustomerID: "cust-1",
		Services:   []model.ServiceSelection{{ServiceID: "svc-cut"}},
		StartsAt:   monday.Add(10 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	if appt.StaffID != "staff-1" {
		t.Fatalf("StaffID = %s, want the first qualified staff", appt.StaffID)
	}
}

func TestCreateReservation_PastStartRejected(t *testing.T) {
	now := monday.Add(12 * time.Hour)
	m, _, _ := testManager(t, testSnapshot(5000, false), now)

	_, _, err := m.CreateReservation(context.Background(), Input{
		SalonID:    "salon-1",
		StaffID:    "staff-1",
		CustomerID: "cust-1",
		Services:   []model.ServiceSelection{{ServiceID: "svc-cut"}},
		StartsAt:   monday.Add(10 * time.Hour),
	})
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestCreateBookingRequest(t *testing.T) {
	now := monday.Add(8 * time.Hour)
	m, store, _ := testManager(t, testSnapshot(5000, false), now)

	appt, err := m.CreateBookingRequest(context.Background(), Input{
		SalonID:    "salon-1",
		StaffID:    "staff-1",
		CustomerID: "cust-1",
		Services:   []model.ServiceSelection{{ServiceID: "svc-cut"}},
		StartsAt:   monday.Add(10 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateBookingRequest: %v", err)
	}
	if appt.Status != model.StatusRequested {
		t.Fatalf("status = %s, want requested", appt.Status)
	}
	if appt.ReservationExpiresAt != nil {
		t.Fatal("booking request must not carry a hold expiry")
	}
	if len(store.events) != 1 || store.events[0].EventType != outbox.EventAppointmentRequested {
		t.Fatalf("events = %+v", store.events)
	}
}

// Racing reservations for the same slot: the store's conflict check must let
// exactly one through.
func TestCreateReservation_ConcurrentSingleWinner(t *testing.T) {
	now := monday.Add(8 * time.Hour)
	m, store, _ := testManager(t, testSnapshot(5000, false), now)

	const racers = 16
	var wg sync.WaitGroup
	results := make(chan error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := m.CreateReservation(context.Background(), Input{
				SalonID:    "salon-1",
				StaffID:    "staff-1",
				CustomerID: "cust-1",
				Services:   []model.ServiceSelection{{ServiceID: "svc-cut"}},
				StartsAt:   monday.Add(10 * time.Hour),
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	wins, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, model.ErrSlotNotAvailable):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != racers-1 {
		t.Fatalf("wins = %d conflicts = %d, want 1 and %d", wins, conflicts, racers-1)
	}
	if len(store.appts) != 1 {
		t.Fatalf("stored appointments = %d, want 1", len(store.appts))
	}
}
