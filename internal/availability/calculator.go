package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/glowlabs-io/scheduling/internal/model"
)

const (
	// DefaultGranularity is the step size used to discretize candidate slot
	// start times when the query does not override it.
	DefaultGranularity = 15 * time.Minute

	// MaxRangeDays bounds a single availability query.
	MaxRangeDays = 90
)

// Slot is one bookable candidate: a staff member free for the full occupied
// block starting at StartsAt.
type Slot struct {
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	StaffID   string    `json:"staff_id"`
	StaffName string    `json:"staff_name"`
}

// SlotQuery describes what the customer wants to book and when.
type SlotQuery struct {
	SalonID          string
	From             time.Time
	To               time.Time
	Services         []model.ServiceSelection
	PreferredStaffID string
	Granularity      time.Duration
}

// Snapshot is the schedule data the calculation runs over. The caller loads
// it (repositories, remote directory) so the computation itself does no I/O,
// never mutates its inputs, and is safe to run concurrently or memoize.
//
// Appointments must contain only slot-blocking records: confirmed plus
// reserved-with-unexpired-hold; expired holds are filtered again here using
// Now, so passing them is harmless.
type Snapshot struct {
	Salon        model.Salon
	Services     []model.Service
	Staff        []model.Staff
	Overrides    []model.ScheduleOverride
	Absences     []model.Absence
	Blocked      []model.BlockedTime
	Appointments []model.Appointment
	Now          time.Time
	Location     *time.Location
}

// ComputeAvailableSlots returns all bookable slots for the query, sorted by
// start time then staff id. Zero qualified staff yields an empty list, not an
// error; zero requested services is a caller error.
func ComputeAvailableSlots(q SlotQuery, snap Snapshot) ([]Slot, error) {
	if len(q.Services) == 0 {
		return nil, fmt.Errorf("%w: at least one service must be requested", model.ErrValidation)
	}
	if q.To.Before(q.From) {
		return nil, fmt.Errorf("%w: date range end precedes start", model.ErrValidation)
	}

	loc := snap.Location
	if loc == nil {
		loc = time.UTC
	}

	granularity := q.Granularity
	if granularity <= 0 {
		granularity = DefaultGranularity
	}

	totalMinutes, err := totalOccupiedMinutes(q.Services, snap.Services)
	if err != nil {
		return nil, err
	}
	total := time.Duration(totalMinutes) * time.Minute

	firstDay := dateOnly(q.From, loc)
	lastDay := dateOnly(q.To, loc)
	if lastDay.Sub(firstDay) > MaxRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: date range exceeds %d days", model.ErrValidation, MaxRangeDays)
	}

	candidates := candidateStaff(snap.Staff, q.Services, q.PreferredStaffID)
	if len(candidates) == 0 {
		return []Slot{}, nil
	}

	salonBusy := make([]Interval, 0, len(snap.Blocked))
	for _, b := range snap.Blocked {
		salonBusy = append(salonBusy, Interval{Start: b.Start, End: b.End})
	}

	var slots []Slot
	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		opening := snap.Salon.OpeningHours.ForDate(day)
		if !opening.Open {
			continue
		}
		openWindow := windowOnDate(day, opening)

		for _, st := range candidates {
			working, ok := effectiveWindow(st, day, snap.Overrides)
			if !ok {
				continue
			}
			base := working.Intersect(openWindow)
			if base.Empty() {
				continue
			}

			busy := append([]Interval{}, salonBusy...)
			for _, a := range snap.Absences {
				if a.StaffID == st.ID {
					busy = append(busy, Interval{Start: a.Start, End: a.End})
				}
			}
			for _, appt := range snap.Appointments {
				if appt.StaffID == st.ID && appt.Blocking(snap.Now) {
					busy = append(busy, Interval{Start: appt.StartTime, End: appt.EndTime})
				}
			}

			for _, free := range Subtract([]Interval{base}, busy) {
				slots = append(slots, walkInterval(free, total, granularity, snap.Now, st)...)
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].StartsAt.Equal(slots[j].StartsAt) {
			return slots[i].StartsAt.Before(slots[j].StartsAt)
		}
		return slots[i].StaffID < slots[j].StaffID
	})
	return dedupe(slots), nil
}

// TotalOccupiedMinutes sums effective durations and buffers across the
// selection, the footprint of the whole booking as one contiguous block.
func TotalOccupiedMinutes(selections []model.ServiceSelection, services []model.Service) (int, error) {
	return totalOccupiedMinutes(selections, services)
}

func totalOccupiedMinutes(selections []model.ServiceSelection, services []model.Service) (int, error) {
	byID := make(map[string]model.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}
	total := 0
	for _, sel := range selections {
		svc, ok := byID[sel.ServiceID]
		if !ok {
			return 0, fmt.Errorf("%w: unknown service %s", model.ErrValidation, sel.ServiceID)
		}
		occupied, err := svc.OccupiedMinutes(sel.VariantID)
		if err != nil {
			return 0, err
		}
		total += occupied
	}
	if total <= 0 {
		return 0, fmt.Errorf("%w: requested services have zero total duration", model.ErrValidation)
	}
	return total, nil
}

func candidateStaff(staff []model.Staff, selections []model.ServiceSelection, preferredID string) []model.Staff {
	var out []model.Staff
	for _, st := range staff {
		if !st.Bookable {
			continue
		}
		if preferredID != "" && st.ID != preferredID {
			continue
		}
		if st.QualifiedForAll(selections) {
			out = append(out, st)
		}
	}
	return out
}

// effectiveWindow resolves the staff member's working window for the date:
// a date override replaces the weekly default entirely.
func effectiveWindow(st model.Staff, day time.Time, overrides []model.ScheduleOverride) (Interval, bool) {
	for _, ov := range overrides {
		if ov.StaffID != st.ID || !sameDate(ov.Date, day) {
			continue
		}
		if ov.Unavailable {
			return Interval{}, false
		}
		return windowOnDate(day, model.DayWindow{Open: true, StartMinute: ov.StartMinute, EndMinute: ov.EndMinute}), true
	}
	dw := st.Weekly.ForDate(day)
	if !dw.Open {
		return Interval{}, false
	}
	return windowOnDate(day, dw), true
}

func walkInterval(free Interval, total, granularity time.Duration, now time.Time, st model.Staff) []Slot {
	var out []Slot
	for start := free.Start; !start.Add(total).After(free.End); start = start.Add(granularity) {
		if start.Before(now) {
			continue
		}
		out = append(out, Slot{
			StartsAt:  start,
			EndsAt:    start.Add(total),
			StaffID:   st.ID,
			StaffName: st.Name,
		})
	}
	return out
}

func dedupe(slots []Slot) []Slot {
	out := slots[:0]
	for i, s := range slots {
		if i > 0 && s.StaffID == slots[i-1].StaffID && s.StartsAt.Equal(slots[i-1].StartsAt) {
			continue
		}
		out = append(out, s)
	}
	if out == nil {
		return []Slot{}
	}
	return out
}

func windowOnDate(day time.Time, dw model.DayWindow) Interval {
	return Interval{
		Start: day.Add(time.Duration(dw.StartMinute) * time.Minute),
		End:   day.Add(time.Duration(dw.EndMinute) * time.Minute),
	}
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
