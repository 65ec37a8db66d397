package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/glowlabs-io/scheduling/internal/availability"
	"github.com/glowlabs-io/scheduling/internal/model"
	"github.com/glowlabs-io/scheduling/libs/db"
)

// ScheduleRepository loads the read-mostly schedule data: salon, catalog,
// staff, overrides, absences and blocked times. Snapshots bundle all of it so
// the availability calculation runs without touching the database.
type ScheduleRepository struct {
	pool  *db.Pool
	appts *AppointmentRepository
}

func NewScheduleRepository(pool *db.Pool, appts *AppointmentRepository) *ScheduleRepository {
	return &ScheduleRepository{pool: pool, appts: appts}
}

// LoadSnapshot gathers everything slot computation over [from, to] needs.
// Appointments are widened to whole days so blocks straddling the window edge
// are not missed.
func (r *ScheduleRepository) LoadSnapshot(ctx context.Context, salonID string, from, to time.Time) (*availability.Snapshot, error) {
	salon, loc, err := r.loadSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}

	dayFrom := time.Date(from.In(loc).Year(), from.In(loc).Month(), from.In(loc).Day(), 0, 0, 0, 0, loc)
	dayTo := time.Date(to.In(loc).Year(), to.In(loc).Month(), to.In(loc).Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)

	services, err := r.loadServices(ctx, salonID)
	if err != nil {
		return nil, err
	}
	staff, err := r.loadStaff(ctx, salonID)
	if err != nil {
		return nil, err
	}
	overrides, err := r.loadOverrides(ctx, salonID, dayFrom, dayTo)
	if err != nil {
		return nil, err
	}
	absences, err := r.loadAbsences(ctx, salonID, dayFrom, dayTo)
	if err != nil {
		return nil, err
	}
	blocked, err := r.loadBlockedTimes(ctx, salonID, dayFrom, dayTo)
	if err != nil {
		return nil, err
	}
	appointments, err := r.appts.ListBlocking(ctx, salonID, dayFrom, dayTo)
	if err != nil {
		return nil, err
	}

	return &availability.Snapshot{
		Salon:        salon,
		Services:     services,
		Staff:        staff,
		Overrides:    overrides,
		Absences:     absences,
		Blocked:      blocked,
		Appointments: appointments,
		Location:     loc,
	}, nil
}

func (r *ScheduleRepository) loadSalon(ctx context.Context, salonID string) (model.Salon, *time.Location, error) {
	var salon model.Salon
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, timezone
		FROM salons
		WHERE id = $1
	`, salonID).Scan(&salon.ID, &salon.Name, &salon.Timezone)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Salon{}, nil, fmt.Errorf("%w: salon %s", model.ErrNotFound, salonID)
	}
	if err != nil {
		return model.Salon{}, nil, err
	}

	loc, err := time.LoadLocation(salon.Timezone)
	if err != nil {
		return model.Salon{}, nil, fmt.Errorf("salon %s has invalid timezone %q: %w", salonID, salon.Timezone, err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT weekday, start_minute, end_minute
		FROM salon_opening_hours
		WHERE salon_id = $1
	`, salonID)
	if err != nil {
		return model.Salon{}, nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var weekday, start, end int
		if err := rows.Scan(&weekday, &start, &end); err != nil {
			return model.Salon{}, nil, err
		}
		if weekday < 0 || weekday > 6 {
			continue
		}
		salon.OpeningHours[weekday] = model.DayWindow{Open: true, StartMinute: start, EndMinute: end}
	}
	if rows.Err() != nil {
		return model.Salon{}, nil, rows.Err()
	}
	return salon, loc, nil
}

func (r *ScheduleRepository) loadServices(ctx context.Context, salonID string) ([]model.Service, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, salon_id, name, duration_minutes, buffer_before_minutes, buffer_after_minutes,
			price_cents, deposit_required
		FROM services
		WHERE salon_id = $1 AND active
		ORDER BY name
	`, salonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []model.Service
	index := map[string]int{}
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.SalonID, &s.Name, &s.DurationMinutes,
			&s.BufferBeforeMinutes, &s.BufferAfterMinutes, &s.PriceCents, &s.DepositRequired); err != nil {
			return nil, err
		}
		index[s.ID] = len(services)
		services = append(services, s)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	if len(services) == 0 {
		return services, nil
	}

	vrows, err := r.pool.Query(ctx, `
		SELECT v.id, v.service_id, v.name, v.duration_minutes, v.price_cents
		FROM service_variants v
		JOIN services s ON s.id = v.service_id
		WHERE s.salon_id = $1
		ORDER BY v.name
	`, salonID)
	if err != nil {
		return nil, err
	}
	defer vrows.Close()
	for vrows.Next() {
		var v model.ServiceVariant
		var serviceID string
		if err := vrows.Scan(&v.ID, &serviceID, &v.Name, &v.DurationMinutes, &v.PriceCents); err != nil {
			return nil, err
		}
		if i, ok := index[serviceID]; ok {
			services[i].Variants = append(services[i].Variants, v)
		}
	}
	if vrows.Err() != nil {
		return nil, vrows.Err()
	}
	return services, nil
}

func (r *ScheduleRepository) loadStaff(ctx context.Context, salonID string) ([]model.Staff, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, salon_id, name, bookable
		FROM staff
		WHERE salon_id = $1
		ORDER BY id
	`, salonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var staff []model.Staff
	index := map[string]int{}
	for rows.Next() {
		var st model.Staff
		if err := rows.Scan(&st.ID, &st.SalonID, &st.Name, &st.Bookable); err != nil {
			return nil, err
		}
		index[st.ID] = len(staff)
		staff = append(staff, st)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	if len(staff) == 0 {
		return staff, nil
	}

	srows, err := r.pool.Query(ctx, `
		SELECT ss.staff_id, ss.service_id
		FROM staff_services ss
		JOIN staff st ON st.id = ss.staff_id
		WHERE st.salon_id = $1
	`, salonID)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var staffID, serviceID string
		if err := srows.Scan(&staffID, &serviceID); err != nil {
			return nil, err
		}
		if i, ok := index[staffID]; ok {
			staff[i].ServiceIDs = append(staff[i].ServiceIDs, serviceID)
		}
	}
	if srows.Err() != nil {
		return nil, srows.Err()
	}

	wrows, err := r.pool.Query(ctx, `
		SELECT wh.staff_id, wh.weekday, wh.start_minute, wh.end_minute
		FROM staff_working_hours wh
		JOIN staff st ON st.id = wh.staff_id
		WHERE st.salon_id = $1
	`, salonID)
	if err != nil {
		return nil, err
	}
	defer wrows.Close()
	for wrows.Next() {
		var staffID string
		var weekday, start, end int
		if err := wrows.Scan(&staffID, &weekday, &start, &end); err != nil {
			return nil, err
		}
		i, ok := index[staffID]
		if !ok || weekday < 0 || weekday > 6 {
			continue
		}
		staff[i].Weekly[weekday] = model.DayWindow{Open: true, StartMinute: start, EndMinute: end}
	}
	if wrows.Err() != nil {
		return nil, wrows.Err()
	}
	return staff, nil
}

func (r *ScheduleRepository) loadOverrides(ctx context.Context, salonID string, from, to time.Time) ([]model.ScheduleOverride, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.staff_id, o.date, o.unavailable, o.start_minute, o.end_minute
		FROM staff_schedule_overrides o
		JOIN staff st ON st.id = o.staff_id
		WHERE st.salon_id = $1 AND o.date >= $2::date AND o.date < $3::date
	`, salonID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overrides []model.ScheduleOverride
	for rows.Next() {
		var ov model.ScheduleOverride
		if err := rows.Scan(&ov.StaffID, &ov.Date, &ov.Unavailable, &ov.StartMinute, &ov.EndMinute); err != nil {
			return nil, err
		}
		overrides = append(overrides, ov)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return overrides, nil
}

func (r *ScheduleRepository) loadAbsences(ctx context.Context, salonID string, from, to time.Time) ([]model.Absence, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.staff_id, a.start_time, a.end_time, COALESCE(a.reason, '')
		FROM staff_absences a
		JOIN staff st ON st.id = a.staff_id
		WHERE st.salon_id = $1 AND a.start_time < $3 AND a.end_time > $2
	`, salonID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var absences []model.Absence
	for rows.Next() {
		var a model.Absence
		if err := rows.Scan(&a.ID, &a.StaffID, &a.Start, &a.End, &a.Reason); err != nil {
			return nil, err
		}
		absences = append(absences, a)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return absences, nil
}

func (r *ScheduleRepository) loadBlockedTimes(ctx context.Context, salonID string, from, to time.Time) ([]model.BlockedTime, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, salon_id, start_time, end_time, COALESCE(reason, '')
		FROM blocked_times
		WHERE salon_id = $1 AND start_time < $3 AND end_time > $2
	`, salonID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocked []model.BlockedTime
	for rows.Next() {
		var b model.BlockedTime
		if err := rows.Scan(&b.ID, &b.SalonID, &b.Start, &b.End, &b.Reason); err != nil {
			return nil, err
		}
		blocked = append(blocked, b)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return blocked, nil
}
