package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/glowlabs-io/scheduling/internal/model"
	"github.com/glowlabs-io/scheduling/internal/outbox"
	"github.com/glowlabs-io/scheduling/libs/db"
)

// AppointmentRepository persists appointments, their frozen line items and
// deposits. Every write that changes booking state also writes its outbox
// event in the same transaction.
type AppointmentRepository struct {
	pool   *db.Pool
	outbox *outbox.Repository
}

func NewAppointmentRepository(pool *db.Pool, ob *outbox.Repository) *AppointmentRepository {
	return &AppointmentRepository{pool: pool, outbox: ob}
}

const appointmentColumns = `
	id, salon_id, staff_id, customer_id, COALESCE(booking_number, ''),
	start_time, end_time, duration_minutes, total_cents, status,
	reserved_at, reservation_expires_at, confirmed_at, completed_at, cancelled_at, no_show_at,
	COALESCE(cancel_actor, ''), COALESCE(cancellation_reason, ''), created_at`

func scanAppointment(row pgx.Row) (*model.Appointment, error) {
	var appt model.Appointment
	var status string
	err := row.Scan(
		&appt.ID,
		&appt.SalonID,
		&appt.StaffID,
		&appt.CustomerID,
		&appt.BookingNumber,
		&appt.StartTime,
		&appt.EndTime,
		&appt.DurationMinutes,
		&appt.TotalCents,
		&status,
		&appt.ReservedAt,
		&appt.ReservationExpiresAt,
		&appt.ConfirmedAt,
		&appt.CompletedAt,
		&appt.CancelledAt,
		&appt.NoShowAt,
		&appt.CancelActor,
		&appt.CancellationReason,
		&appt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	appt.Status = model.Status(status)
	return &appt, nil
}

// Reserve inserts a hold after re-checking for conflicts under the staff
// booking lock. The advisory lock serializes writers per staff member; an
// exclusion constraint cannot express "unexpired hold", so the overlap query
// inside the lock is the actual double-booking guard.
func (r *AppointmentRepository) Reserve(ctx context.Context, appt *model.Appointment, dep *model.Deposit, evt outbox.Event) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockStaff(ctx, tx, appt.StaffID); err != nil {
		return err
	}
	conflict, err := hasBlockingOverlap(ctx, tx, appt.StaffID, appt.StartTime, appt.EndTime, "")
	if err != nil {
		return err
	}
	if conflict {
		return model.ErrSlotNotAvailable
	}

	if err := insertAppointment(ctx, tx, appt); err != nil {
		return err
	}
	if dep != nil {
		if err := insertDeposit(ctx, tx, dep); err != nil {
			return err
		}
	}
	if err := r.outbox.Insert(ctx, tx, evt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Insert writes a booking request. Requests never block a slot, so there is
// no lock and no conflict check here.
func (r *AppointmentRepository) Insert(ctx context.Context, appt *model.Appointment, evt outbox.Event) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := insertAppointment(ctx, tx, appt); err != nil {
		return err
	}
	if err := r.outbox.Insert(ctx, tx, evt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *AppointmentRepository) Get(ctx context.Context, id string) (*model.Appointment, error) {
	appt, err := scanAppointment(r.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: appointment %s", model.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	services, err := r.loadServices(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	appt.Services = services[id]
	return appt, nil
}

// Transition compare-and-swaps the status and writes the event atomically.
// A stale from status means a concurrent transition won; the caller sees
// model.ErrInvalidTransition.
func (r *AppointmentRepository) Transition(ctx context.Context, appt *model.Appointment, from model.Status, evt outbox.Event) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := r.transitionInTx(ctx, tx, appt, from, evt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// TransitionChecked is Transition under the staff booking lock with a fresh
// overlap check, used when a non-blocking appointment starts blocking
// (approving a booking request).
func (r *AppointmentRepository) TransitionChecked(ctx context.Context, appt *model.Appointment, from model.Status, evt outbox.Event) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockStaff(ctx, tx, appt.StaffID); err != nil {
		return err
	}
	conflict, err := hasBlockingOverlap(ctx, tx, appt.StaffID, appt.StartTime, appt.EndTime, appt.ID)
	if err != nil {
		return err
	}
	if conflict {
		return model.ErrSlotNotAvailable
	}
	if err := r.transitionInTx(ctx, tx, appt, from, evt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *AppointmentRepository) transitionInTx(ctx context.Context, tx pgx.Tx, appt *model.Appointment, from model.Status, evt outbox.Event) error {
	tag, err := tx.Exec(ctx, `
		UPDATE appointments
		SET status = $3,
			booking_number = NULLIF($4, ''),
			confirmed_at = $5,
			completed_at = $6,
			cancelled_at = $7,
			no_show_at = $8,
			cancel_actor = NULLIF($9, ''),
			cancellation_reason = NULLIF($10, '')
		WHERE id = $1 AND status = $2
	`, appt.ID, string(from), string(appt.Status), appt.BookingNumber,
		appt.ConfirmedAt, appt.CompletedAt, appt.CancelledAt, appt.NoShowAt,
		appt.CancelActor, appt.CancellationReason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM appointments WHERE id = $1)`, appt.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: appointment %s", model.ErrNotFound, appt.ID)
		}
		return fmt.Errorf("%w: appointment %s changed concurrently", model.ErrInvalidTransition, appt.ID)
	}
	return r.outbox.Insert(ctx, tx, evt)
}

// GetDeposit returns nil when the appointment has no deposit.
func (r *AppointmentRepository) GetDeposit(ctx context.Context, appointmentID string) (*model.Deposit, error) {
	var dep model.Deposit
	var status string
	err := r.pool.QueryRow(ctx, `
		SELECT id, appointment_id, amount_cents, status, COALESCE(payment_intent_id, ''),
			COALESCE(refund_id, ''), refund_amount_cents, created_at, paid_at, resolved_at
		FROM deposits
		WHERE appointment_id = $1
	`, appointmentID).Scan(
		&dep.ID, &dep.AppointmentID, &dep.AmountCents, &status, &dep.PaymentIntentID,
		&dep.RefundID, &dep.RefundAmountCents, &dep.CreatedAt, &dep.PaidAt, &dep.ResolvedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	dep.Status = model.DepositStatus(status)
	return &dep, nil
}

func (r *AppointmentRepository) SaveDeposit(ctx context.Context, dep *model.Deposit, evt *outbox.Event) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE deposits
		SET status = $2,
			refund_id = NULLIF($3, ''),
			refund_amount_cents = $4,
			paid_at = $5,
			resolved_at = $6
		WHERE id = $1
	`, dep.ID, string(dep.Status), dep.RefundID, dep.RefundAmountCents, dep.PaidAt, dep.ResolvedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: deposit %s", model.ErrNotFound, dep.ID)
	}
	if evt != nil {
		if err := r.outbox.Insert(ctx, tx, *evt); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// ListFilter narrows the appointment listing. SalonID is required.
type ListFilter struct {
	SalonID string
	StaffID string
	Status  model.Status
	From    time.Time
	To      time.Time
	Limit   int
}

func (r *AppointmentRepository) List(ctx context.Context, f ListFilter) ([]model.Appointment, error) {
	if f.Limit <= 0 {
		f.Limit = 100
	}
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE salon_id = $1`
	args := []any{f.SalonID}
	if f.StaffID != "" {
		args = append(args, f.StaffID)
		query += fmt.Sprintf(" AND staff_id = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		query += fmt.Sprintf(" AND end_time > $%d", len(args))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		query += fmt.Sprintf(" AND start_time < $%d", len(args))
	}
	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY start_time ASC LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []model.Appointment
	var ids []string
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, *appt)
		ids = append(ids, appt.ID)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	services, err := r.loadServices(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range appts {
		appts[i].Services = services[appts[i].ID]
	}
	return appts, nil
}

// ListBlocking returns the slot-occupying appointments for a staff set over a
// window: confirmed plus unexpired holds.
func (r *AppointmentRepository) ListBlocking(ctx context.Context, salonID string, from, to time.Time) ([]model.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE salon_id = $1
			AND start_time < $3
			AND end_time > $2
			AND (status = 'confirmed'
				OR (status = 'reserved' AND reservation_expires_at > now()))
		ORDER BY start_time ASC
	`, salonID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []model.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, *appt)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return appts, nil
}

// ExpireHolds cancels reservations whose hold lapsed before cutoff, emitting a
// cancelled event per reaped hold. Conflict checks already ignore expired
// holds, so this is bookkeeping, not correctness.
func (r *AppointmentRepository) ExpireHolds(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	if limit <= 0 {
		limit = 100
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE status = 'reserved' AND reservation_expires_at <= $1
		ORDER BY reservation_expires_at ASC
		LIMIT $2
		FOR UPDATE SKIP LOCKED
	`, cutoff, limit)
	if err != nil {
		return 0, err
	}
	var expired []model.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			rows.Close()
			return 0, err
		}
		expired = append(expired, *appt)
	}
	rows.Close()
	if rows.Err() != nil {
		return 0, rows.Err()
	}
	if len(expired) == 0 {
		return 0, tx.Commit(ctx)
	}

	for i := range expired {
		appt := &expired[i]
		appt.Status = model.StatusCancelled
		appt.CancelledAt = &cutoff
		appt.CancelActor = "system"
		appt.CancellationReason = "reservation hold expired"

		if _, err := tx.Exec(ctx, `
			UPDATE appointments
			SET status = 'cancelled',
				cancelled_at = $2,
				cancel_actor = 'system',
				cancellation_reason = 'reservation hold expired'
			WHERE id = $1
		`, appt.ID, cutoff); err != nil {
			return 0, err
		}
		if _, err := tx.Exec(ctx, `
			UPDATE deposits
			SET status = 'cancelled', resolved_at = $2
			WHERE appointment_id = $1 AND status = 'pending'
		`, appt.ID, cutoff); err != nil {
			return 0, err
		}
		evt, err := outbox.AppointmentEvent(outbox.EventAppointmentCancelled, appt, cutoff)
		if err != nil {
			return 0, err
		}
		if err := r.outbox.Insert(ctx, tx, evt); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(expired), nil
}

func (r *AppointmentRepository) loadServices(ctx context.Context, appointmentIDs []string) (map[string][]model.AppointmentService, error) {
	out := make(map[string][]model.AppointmentService, len(appointmentIDs))
	if len(appointmentIDs) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT appointment_id, service_id, COALESCE(variant_id, ''), name, duration_minutes, price_cents
		FROM appointment_services
		WHERE appointment_id = ANY($1)
		ORDER BY appointment_id, position
	`, appointmentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var apptID string
		var item model.AppointmentService
		if err := rows.Scan(&apptID, &item.ServiceID, &item.VariantID, &item.Name, &item.DurationMinutes, &item.PriceCents); err != nil {
			return nil, err
		}
		out[apptID] = append(out[apptID], item)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

// lockStaff takes the per-staff transaction-scoped booking lock. hashtext
// collisions only cost extra serialization, never correctness.
func lockStaff(ctx context.Context, tx pgx.Tx, staffID string) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, staffID)
	return err
}

func hasBlockingOverlap(ctx context.Context, tx pgx.Tx, staffID string, start, end time.Time, excludeID string) (bool, error) {
	var conflict bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE staff_id = $1
				AND id <> COALESCE(NULLIF($4, ''), '00000000-0000-0000-0000-000000000000')::uuid
				AND start_time < $3
				AND end_time > $2
				AND (status = 'confirmed'
					OR (status = 'reserved' AND reservation_expires_at > now()))
		)
	`, staffID, start, end, excludeID).Scan(&conflict)
	return conflict, err
}

func insertAppointment(ctx context.Context, tx pgx.Tx, appt *model.Appointment) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO appointments
			(id, salon_id, staff_id, customer_id, booking_number,
			start_time, end_time, duration_minutes, total_cents, status,
			reserved_at, reservation_expires_at, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12, $13)
	`, appt.ID, appt.SalonID, appt.StaffID, appt.CustomerID, appt.BookingNumber,
		appt.StartTime, appt.EndTime, appt.DurationMinutes, appt.TotalCents, string(appt.Status),
		appt.ReservedAt, appt.ReservationExpiresAt, appt.CreatedAt)
	if err != nil {
		return err
	}
	for i, item := range appt.Services {
		if _, err := tx.Exec(ctx, `
			INSERT INTO appointment_services
				(appointment_id, service_id, variant_id, name, duration_minutes, price_cents, position)
			VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
		`, appt.ID, item.ServiceID, item.VariantID, item.Name, item.DurationMinutes, item.PriceCents, i); err != nil {
			return err
		}
	}
	return nil
}

func insertDeposit(ctx context.Context, tx pgx.Tx, dep *model.Deposit) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO deposits
			(id, appointment_id, amount_cents, status, payment_intent_id)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
	`, dep.ID, dep.AppointmentID, dep.AmountCents, string(dep.Status), dep.PaymentIntentID)
	return err
}
