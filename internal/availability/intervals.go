package availability

import (
	"sort"
	"time"
)

// Interval is a half-open time interval [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (iv Interval) Empty() bool {
	return !iv.End.After(iv.Start)
}

func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Intersect clips iv to the bounds of other. The result may be empty.
func (iv Interval) Intersect(other Interval) Interval {
	out := iv
	if other.Start.After(out.Start) {
		out.Start = other.Start
	}
	if other.End.Before(out.End) {
		out.End = other.End
	}
	return out
}

// Subtract removes every busy interval from the free ones and returns the
// remaining free sub-intervals, sorted and empty-free. Inputs are not mutated.
func Subtract(free []Interval, busy []Interval) []Interval {
	out := make([]Interval, 0, len(free))
	for _, f := range free {
		if !f.Empty() {
			out = append(out, f)
		}
	}

	sorted := make([]Interval, 0, len(busy))
	for _, b := range busy {
		if !b.Empty() {
			sorted = append(sorted, b)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	for _, b := range sorted {
		next := make([]Interval, 0, len(out)+1)
		for _, f := range out {
			if !f.Overlaps(b) {
				next = append(next, f)
				continue
			}
			if b.Start.After(f.Start) {
				next = append(next, Interval{Start: f.Start, End: b.Start})
			}
			if b.End.Before(f.End) {
				next = append(next, Interval{Start: b.End, End: f.End})
			}
		}
		out = next
	}
	return out
}
