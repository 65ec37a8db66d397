package model

import "time"

// DayWindow is one weekday entry of a weekly schedule, expressed in minutes
// from local midnight. The zero value means closed / not working.
type DayWindow struct {
	Open        bool
	StartMinute int
	EndMinute   int
}

// WeeklySchedule holds one entry per weekday, indexed by time.Weekday
// (0 = Sunday). A fixed array rules out missing-key lookups.
type WeeklySchedule [7]DayWindow

func (w WeeklySchedule) ForDate(date time.Time) DayWindow {
	return w[int(date.Weekday())]
}

// Salon carries the business timezone all schedule arithmetic happens in.
type Salon struct {
	ID           string
	Name         string
	Timezone     string
	OpeningHours WeeklySchedule
}

// Staff is a bookable staff member with their default weekly schedule and the
// set of services they are qualified to perform.
type Staff struct {
	ID         string
	SalonID    string
	Name       string
	Bookable   bool
	ServiceIDs []string
	Weekly     WeeklySchedule
}

// QualifiedForAll reports whether the staff member can perform every service
// in the selection.
func (s Staff) QualifiedForAll(selections []ServiceSelection) bool {
	for _, sel := range selections {
		found := false
		for _, id := range s.ServiceIDs {
			if id == sel.ServiceID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ScheduleOverride replaces a staff member's default weekly entry for one
// specific date: either fully unavailable or custom hours.
type ScheduleOverride struct {
	StaffID     string
	Date        time.Time // date-only, in the salon timezone
	Unavailable bool
	StartMinute int
	EndMinute   int
}

// Absence is a staff-scoped unavailability interval (vacation, sick leave).
type Absence struct {
	ID      string
	StaffID string
	Start   time.Time
	End     time.Time
	Reason  string
}

// BlockedTime is a salon-wide unavailability interval (holiday, maintenance),
// independent of any staff member.
type BlockedTime struct {
	ID      string
	SalonID string
	Start   time.Time
	End     time.Time
	Reason  string
}
