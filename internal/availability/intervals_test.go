package availability

import (
	"testing"
	"time"
)

func iv(startHour, endHour int) Interval {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return Interval{Start: day.Add(time.Duration(startHour) * time.Hour), End: day.Add(time.Duration(endHour) * time.Hour)}
}

func TestSubtract_SplitsAroundBusy(t *testing.T) {
	free := Subtract([]Interval{iv(9, 18)}, []Interval{iv(12, 13)})
	if len(free) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(free))
	}
	if !free[0].Start.Equal(iv(9, 18).Start) || !free[0].End.Equal(iv(12, 13).Start) {
		t.Fatalf("unexpected first interval %+v", free[0])
	}
	if !free[1].Start.Equal(iv(12, 13).End) || !free[1].End.Equal(iv(9, 18).End) {
		t.Fatalf("unexpected second interval %+v", free[1])
	}
}

func TestSubtract_AdjacentIntervalsDoNotOverlap(t *testing.T) {
	// Half-open semantics: busy ending exactly at free start removes nothing.
	free := Subtract([]Interval{iv(12, 18)}, []Interval{iv(9, 12)})
	if len(free) != 1 || !free[0].Start.Equal(iv(12, 18).Start) {
		t.Fatalf("adjacent busy interval should not clip, got %+v", free)
	}
}

func TestSubtract_FullCover(t *testing.T) {
	free := Subtract([]Interval{iv(10, 12)}, []Interval{iv(9, 13)})
	if len(free) != 0 {
		t.Fatalf("expected nothing left, got %+v", free)
	}
}

func TestSubtract_UnsortedOverlappingBusy(t *testing.T) {
	free := Subtract([]Interval{iv(9, 18)}, []Interval{iv(15, 16), iv(10, 11), iv(10, 12)})
	if len(free) != 3 {
		t.Fatalf("expected 3 intervals, got %+v", free)
	}
	if !free[1].Start.Equal(iv(12, 15).Start) || !free[1].End.Equal(iv(12, 15).End) {
		t.Fatalf("unexpected middle interval %+v", free[1])
	}
}

func TestIntersect(t *testing.T) {
	got := iv(9, 18).Intersect(iv(8, 12))
	if !got.Start.Equal(iv(9, 12).Start) || !got.End.Equal(iv(9, 12).End) {
		t.Fatalf("unexpected intersection %+v", got)
	}
	if !iv(9, 10).Intersect(iv(12, 13)).Empty() {
		t.Fatal("disjoint intervals should intersect to empty")
	}
}
