package lifecycle

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"time"

	"github.com/glowlabs-io/scheduling/internal/deposit"
	"github.com/glowlabs-io/scheduling/internal/model"
	"github.com/glowlabs-io/scheduling/internal/outbox"
	"github.com/glowlabs-io/scheduling/internal/payments"
)

// Store persists status transitions. Transition must compare-and-swap the
// status against from and write evt in the same transaction, returning
// model.ErrInvalidTransition when the row's status no longer matches.
// TransitionChecked additionally holds the staff booking lock and returns
// model.ErrSlotNotAvailable when another blocking appointment overlaps.
type Store interface {
	Get(ctx context.Context, id string) (*model.Appointment, error)
	Transition(ctx context.Context, appt *model.Appointment, from model.Status, evt outbox.Event) error
	TransitionChecked(ctx context.Context, appt *model.Appointment, from model.Status, evt outbox.Event) error

	// GetDeposit returns nil when the appointment has no deposit.
	GetDeposit(ctx context.Context, appointmentID string) (*model.Deposit, error)
	SaveDeposit(ctx context.Context, dep *model.Deposit, evt *outbox.Event) error
}

type Clock func() time.Time

// Service drives the appointment state machine: confirm, approve, cancel,
// complete, no-show. Deposit settlement rides along with cancel, complete and
// no-show.
type Service struct {
	store    Store
	deposits *deposit.Engine
	payments payments.Gateway
	logger   *slog.Logger
	now      Clock
}

func NewService(store Store, engine *deposit.Engine, gateway payments.Gateway, logger *slog.Logger, clock Clock) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		store:    store,
		deposits: engine,
		payments: gateway,
		logger:   logger,
		now:      clock,
	}
}

// Confirm moves a reserved or requested appointment to confirmed. Expired
// holds are rejected even if the sweeper has not reaped them yet. When a
// deposit is attached it must be paid at the provider first. Confirming an
// already confirmed appointment is a no-op.
func (s *Service) Confirm(ctx context.Context, id string) (*model.Appointment, error) {
	appt, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == model.StatusConfirmed {
		return appt, nil
	}
	return s.confirm(ctx, appt)
}

// Approve confirms a booking request after a staff review. Only requested
// appointments qualify; the underlying store re-checks conflicts because a
// request never held the slot.
func (s *Service) Approve(ctx context.Context, id string) (*model.Appointment, error) {
	appt, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == model.StatusConfirmed {
		return appt, nil
	}
	if appt.Status != model.StatusRequested {
		return nil, fmt.Errorf("%w: approve requires a requested appointment, got %s", model.ErrInvalidTransition, appt.Status)
	}
	return s.confirm(ctx, appt)
}

func (s *Service) confirm(ctx context.Context, appt *model.Appointment) (*model.Appointment, error) {
	now := s.now()
	if appt.HoldExpired(now) {
		return nil, model.ErrReservationExpired
	}
	from := appt.Status
	if !model.CanTransition(from, model.StatusConfirmed) {
		return nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, from, model.StatusConfirmed)
	}

	dep, err := s.store.GetDeposit(ctx, appt.ID)
	if err != nil {
		return nil, err
	}
	if dep != nil && dep.Status == model.DepositPending {
		paid, err := s.payments.VerifyDepositPaid(ctx, dep.PaymentIntentID)
		if err != nil {
			return nil, err
		}
		if !paid {
			return nil, fmt.Errorf("%w: deposit for appointment %s is unpaid", model.ErrValidation, appt.ID)
		}
		dep.Status = model.DepositPaid
		dep.PaidAt = &now
		if err := s.store.SaveDeposit(ctx, dep, nil); err != nil {
			return nil, err
		}
	}

	appt.Status = model.StatusConfirmed
	appt.ConfirmedAt = &now
	if appt.BookingNumber == "" {
		appt.BookingNumber = newBookingNumber(now)
	}
	evt, err := outbox.AppointmentEvent(outbox.EventAppointmentConfirmed, appt, now)
	if err != nil {
		return nil, err
	}

	// A reserved appointment already owns its slot; a request never did, so
	// approval re-runs the conflict check under the staff lock.
	if from == model.StatusRequested {
		err = s.store.TransitionChecked(ctx, appt, from, evt)
	} else {
		err = s.store.Transition(ctx, appt, from, evt)
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info("appointment confirmed",
		"appointment_id", appt.ID, "booking_number", appt.BookingNumber, "from", string(from))
	return appt, nil
}

// Cancel ends the appointment from any non-terminal state and settles the
// deposit: full or partial refund by cancellation lead time. Past the last
// tier the deposit stays paid with no refund issued; only a no-show can
// forfeit it. Cancelling an already cancelled appointment is a no-op.
//
// The transition commits before the provider refund runs; a refund failure
// leaves the appointment cancelled and the deposit paid for manual follow-up.
func (s *Service) Cancel(ctx context.Context, id, actor, reason string) (*model.Appointment, error) {
	appt, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == model.StatusCancelled {
		return appt, nil
	}
	now := s.now()
	from := appt.Status
	if !model.CanTransition(from, model.StatusCancelled) {
		return nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, from, model.StatusCancelled)
	}

	appt.Status = model.StatusCancelled
	appt.CancelledAt = &now
	appt.CancelActor = actor
	appt.CancellationReason = reason
	evt, err := outbox.AppointmentEvent(outbox.EventAppointmentCancelled, appt, now)
	if err != nil {
		return nil, err
	}
	if err := s.store.Transition(ctx, appt, from, evt); err != nil {
		return nil, err
	}
	s.logger.Info("appointment cancelled",
		"appointment_id", appt.ID, "actor", actor, "from", string(from))

	if err := s.settleCancelledDeposit(ctx, appt, now); err != nil {
		return appt, err
	}
	return appt, nil
}

func (s *Service) settleCancelledDeposit(ctx context.Context, appt *model.Appointment, now time.Time) error {
	dep, err := s.store.GetDeposit(ctx, appt.ID)
	if err != nil {
		return err
	}
	if dep == nil {
		return nil
	}

	switch dep.Status {
	case model.DepositPending:
		// Never paid, nothing to move at the provider.
		dep.Status = model.DepositCancelled
		dep.ResolvedAt = &now
		return s.store.SaveDeposit(ctx, dep, nil)
	case model.DepositPaid:
	default:
		return nil
	}

	refund := s.deposits.RefundAmount(dep.AmountCents, appt.StartTime, now)
	if refund == 0 {
		// Inside the no-refund window the deposit stays paid; forfeiture is
		// reserved for no-shows.
		return nil
	}
	refundID, err := s.payments.Refund(ctx, dep.PaymentIntentID, refund)
	if err != nil {
		s.logger.Error("deposit refund failed",
			"appointment_id", appt.ID, "deposit_id", dep.ID, "err", err)
		return err
	}
	dep.Status = model.DepositRefunded
	dep.RefundID = refundID
	dep.RefundAmountCents = refund
	dep.ResolvedAt = &now
	evt, err := outbox.DepositEvent(outbox.EventDepositRefunded, dep, now)
	if err != nil {
		return err
	}
	return s.store.SaveDeposit(ctx, dep, &evt)
}

// Complete marks a confirmed appointment as done after the visit. A paid
// deposit becomes applied, meaning it counted toward the final bill.
func (s *Service) Complete(ctx context.Context, id string) (*model.Appointment, error) {
	appt, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == model.StatusCompleted {
		return appt, nil
	}
	now := s.now()
	from := appt.Status
	if !model.CanTransition(from, model.StatusCompleted) {
		return nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, from, model.StatusCompleted)
	}

	appt.Status = model.StatusCompleted
	appt.CompletedAt = &now
	evt, err := outbox.AppointmentEvent(outbox.EventAppointmentCompleted, appt, now)
	if err != nil {
		return nil, err
	}
	if err := s.store.Transition(ctx, appt, from, evt); err != nil {
		return nil, err
	}

	dep, err := s.store.GetDeposit(ctx, appt.ID)
	if err != nil {
		return appt, err
	}
	if dep != nil && dep.Status == model.DepositPaid {
		dep.Status = model.DepositApplied
		dep.ResolvedAt = &now
		if err := s.store.SaveDeposit(ctx, dep, nil); err != nil {
			return appt, err
		}
	}
	return appt, nil
}

// MarkNoShow records that the customer did not turn up. A paid deposit is
// forfeited in full when the policy says so, otherwise it stays paid.
func (s *Service) MarkNoShow(ctx context.Context, id string) (*model.Appointment, error) {
	appt, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == model.StatusNoShow {
		return appt, nil
	}
	now := s.now()
	from := appt.Status
	if !model.CanTransition(from, model.StatusNoShow) {
		return nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, from, model.StatusNoShow)
	}

	appt.Status = model.StatusNoShow
	appt.NoShowAt = &now
	evt, err := outbox.AppointmentEvent(outbox.EventAppointmentNoShow, appt, now)
	if err != nil {
		return nil, err
	}
	if err := s.store.Transition(ctx, appt, from, evt); err != nil {
		return nil, err
	}

	dep, err := s.store.GetDeposit(ctx, appt.ID)
	if err != nil {
		return appt, err
	}
	if dep != nil && dep.Status == model.DepositPaid &&
		s.deposits.NoShowOutcome() == model.DepositForfeited {
		dep.Status = model.DepositForfeited
		dep.ResolvedAt = &now
		depEvt, err := outbox.DepositEvent(outbox.EventDepositForfeited, dep, now)
		if err != nil {
			return appt, err
		}
		if err := s.store.SaveDeposit(ctx, dep, &depEvt); err != nil {
			return appt, err
		}
	}
	return appt, nil
}

const bookingNumberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// newBookingNumber returns a short human-readable reference like
// BK-20260831-K7XW2M. Ambiguous characters (0/O, 1/I) are excluded.
func newBookingNumber(now time.Time) string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	for i := range buf {
		buf[i] = bookingNumberAlphabet[int(buf[i])%len(bookingNumberAlphabet)]
	}
	return fmt.Sprintf("BK-%s-%s", now.UTC().Format("20060102"), buf)
}
