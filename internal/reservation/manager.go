package reservation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/glowlabs-io/scheduling/internal/availability"
	"github.com/glowlabs-io/scheduling/internal/deposit"
	"github.com/glowlabs-io/scheduling/internal/model"
	"github.com/glowlabs-io/scheduling/internal/outbox"
	"github.com/glowlabs-io/scheduling/internal/payments"
)

// DefaultHoldTTL is how long a reservation blocks its slot before the
// customer must confirm.
const DefaultHoldTTL = 15 * time.Minute

// Schedules loads everything the availability calculation needs for one salon
// over a date window.
type Schedules interface {
	LoadSnapshot(ctx context.Context, salonID string, from, to time.Time) (*availability.Snapshot, error)
}

// Store persists new appointments. Reserve must hold the staff booking lock,
// re-check for overlapping blocking appointments and insert the appointment,
// deposit and event in one transaction, returning model.ErrSlotNotAvailable on
// conflict. Insert writes a non-blocking booking request with no conflict
// check.
type Store interface {
	Reserve(ctx context.Context, appt *model.Appointment, dep *model.Deposit, evt outbox.Event) error
	Insert(ctx context.Context, appt *model.Appointment, evt outbox.Event) error
}

type Clock func() time.Time

// Input is a booking attempt: who, where, which services, when. An empty
// StaffID means any qualified staff member.
type Input struct {
	SalonID    string
	StaffID    string
	CustomerID string
	Services   []model.ServiceSelection
	StartsAt   time.Time
}

// Manager turns validated booking attempts into reservation holds and booking
// requests. The availability check here is advisory; the store's transactional
// check is what actually prevents double booking.
type Manager struct {
	schedules Schedules
	store     Store
	deposits  *deposit.Engine
	payments  payments.Gateway
	logger    *slog.Logger
	now       Clock
	holdTTL   time.Duration
}

func NewManager(schedules Schedules, store Store, engine *deposit.Engine, gateway payments.Gateway, logger *slog.Logger, clock Clock, holdTTL time.Duration) *Manager {
	if clock == nil {
		clock = time.Now
	}
	if holdTTL <= 0 {
		holdTTL = DefaultHoldTTL
	}
	return &Manager{
		schedules: schedules,
		store:     store,
		deposits:  engine,
		payments:  gateway,
		logger:    logger,
		now:       clock,
		holdTTL:   holdTTL,
	}
}

// CreateReservation places a hold on the requested slot. The returned deposit
// is nil when the selected services require none; otherwise it is pending with
// a payment intent the customer must settle before confirming.
func (m *Manager) CreateReservation(ctx context.Context, in Input) (*model.Appointment, *model.Deposit, error) {
	now := m.now()
	appt, selected, err := m.buildAppointment(ctx, in, now)
	if err != nil {
		return nil, nil, err
	}

	reservedAt := now
	expiresAt := now.Add(m.holdTTL)
	appt.Status = model.StatusReserved
	appt.ReservedAt = &reservedAt
	appt.ReservationExpiresAt = &expiresAt

	var dep *model.Deposit
	if m.deposits.RequiresDeposit(selected) {
		// The deposit is summed per deposit-required line item, each one
		// checked against the price threshold on its own.
		var amount int64
		for i, svc := range selected {
			if svc.DepositRequired {
				amount += m.deposits.Amount(appt.Services[i].PriceCents)
			}
		}
		if amount > 0 {
			intentID, err := m.payments.CreateDepositIntent(ctx, amount, m.deposits.Policy().Currency, appt.ID)
			if err != nil {
				return nil, nil, err
			}
			dep = &model.Deposit{
				ID:              uuid.NewString(),
				AppointmentID:   appt.ID,
				AmountCents:     amount,
				Status:          model.DepositPending,
				PaymentIntentID: intentID,
			}
		}
	}

	evt, err := outbox.AppointmentEvent(outbox.EventAppointmentReserved, appt, now)
	if err != nil {
		return nil, nil, err
	}
	if err := m.store.Reserve(ctx, appt, dep, evt); err != nil {
		if dep != nil {
			// The slot is gone, so the intent will never be paid. Void it at
			// the provider instead of leaving it dangling.
			if cancelErr := m.payments.CancelDepositIntent(ctx, dep.PaymentIntentID); cancelErr != nil {
				m.logger.Warn("could not void deposit intent after lost slot",
					"appointment_id", appt.ID, "intent_id", dep.PaymentIntentID, "err", cancelErr)
			}
		}
		return nil, nil, err
	}
	m.logger.Info("reservation created",
		"appointment_id", appt.ID, "staff_id", appt.StaffID,
		"starts_at", appt.StartTime, "expires_at", expiresAt)
	return appt, dep, nil
}

// CreateBookingRequest records a booking wish that does not block the slot.
// Staff approve it later; approval re-checks conflicts.
func (m *Manager) CreateBookingRequest(ctx context.Context, in Input) (*model.Appointment, error) {
	now := m.now()
	appt, _, err := m.buildAppointment(ctx, in, now)
	if err != nil {
		return nil, err
	}
	appt.Status = model.StatusRequested

	evt, err := outbox.AppointmentEvent(outbox.EventAppointmentRequested, appt, now)
	if err != nil {
		return nil, err
	}
	if err := m.store.Insert(ctx, appt, evt); err != nil {
		return nil, err
	}
	m.logger.Info("booking request created",
		"appointment_id", appt.ID, "staff_id", appt.StaffID, "starts_at", appt.StartTime)
	return appt, nil
}

// buildAppointment validates the attempt against the availability calculation
// and freezes the selected services into line items. The requested start must
// be exactly one of the offered slots, which also enforces grid alignment.
func (m *Manager) buildAppointment(ctx context.Context, in Input, now time.Time) (*model.Appointment, []model.Service, error) {
	if in.SalonID == "" || in.CustomerID == "" {
		return nil, nil, fmt.Errorf("%w: salon and customer are required", model.ErrValidation)
	}
	if len(in.Services) == 0 {
		return nil, nil, fmt.Errorf("%w: at least one service must be selected", model.ErrValidation)
	}
	if in.StartsAt.IsZero() || in.StartsAt.Before(now) {
		return nil, nil, fmt.Errorf("%w: start time must be in the future", model.ErrValidation)
	}

	snap, err := m.schedules.LoadSnapshot(ctx, in.SalonID, in.StartsAt, in.StartsAt)
	if err != nil {
		return nil, nil, err
	}
	snap.Now = now

	slots, err := availability.ComputeAvailableSlots(availability.SlotQuery{
		SalonID:          in.SalonID,
		From:             in.StartsAt,
		To:               in.StartsAt,
		Services:         in.Services,
		PreferredStaffID: in.StaffID,
	}, *snap)
	if err != nil {
		return nil, nil, err
	}
	staffID := ""
	for _, s := range slots {
		if s.StartsAt.Equal(in.StartsAt) {
			staffID = s.StaffID
			break
		}
	}
	if staffID == "" {
		return nil, nil, model.ErrSlotNotAvailable
	}

	items, total, occupied, err := freezeLineItems(in.Services, snap.Services)
	if err != nil {
		return nil, nil, err
	}

	return &model.Appointment{
		ID:              uuid.NewString(),
		SalonID:         in.SalonID,
		StaffID:         staffID,
		CustomerID:      in.CustomerID,
		Services:        items,
		StartTime:       in.StartsAt,
		EndTime:         in.StartsAt.Add(time.Duration(occupied) * time.Minute),
		DurationMinutes: occupied,
		TotalCents:      total,
		CreatedAt:       now,
	}, selectedServices(in.Services, snap.Services), nil
}

// freezeLineItems copies name, duration and price out of the current catalog
// so later catalog edits never change an existing booking.
func freezeLineItems(selections []model.ServiceSelection, services []model.Service) ([]model.AppointmentService, int64, int, error) {
	byID := make(map[string]model.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}
	items := make([]model.AppointmentService, 0, len(selections))
	var total int64
	occupied := 0
	for _, sel := range selections {
		svc, ok := byID[sel.ServiceID]
		if !ok {
			return nil, 0, 0, fmt.Errorf("%w: unknown service %s", model.ErrValidation, sel.ServiceID)
		}
		duration, err := svc.EffectiveDuration(sel.VariantID)
		if err != nil {
			return nil, 0, 0, err
		}
		price, err := svc.EffectivePrice(sel.VariantID)
		if err != nil {
			return nil, 0, 0, err
		}
		block, err := svc.OccupiedMinutes(sel.VariantID)
		if err != nil {
			return nil, 0, 0, err
		}
		name := svc.Name
		if sel.VariantID != "" {
			for _, v := range svc.Variants {
				if v.ID == sel.VariantID {
					name = svc.Name + " (" + v.Name + ")"
				}
			}
		}
		items = append(items, model.AppointmentService{
			ServiceID:       sel.ServiceID,
			VariantID:       sel.VariantID,
			Name:            name,
			DurationMinutes: duration,
			PriceCents:      price,
		})
		total += price
		occupied += block
	}
	return items, total, occupied, nil
}

func selectedServices(selections []model.ServiceSelection, services []model.Service) []model.Service {
	byID := make(map[string]model.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}
	out := make([]model.Service, 0, len(selections))
	for _, sel := range selections {
		if svc, ok := byID[sel.ServiceID]; ok {
			out = append(out, svc)
		}
	}
	return out
}
