package sweeper

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

type fakeStore struct {
	batches []int
	err     error
	calls   int
	limits  []int
}

func (f *fakeStore) ExpireHolds(_ context.Context, _ time.Time, limit int) (int, error) {
	f.calls++
	f.limits = append(f.limits, limit)
	if f.err != nil {
		return 0, f.err
	}
	if len(f.batches) == 0 {
		return 0, nil
	}
	n := f.batches[0]
	f.batches = f.batches[1:]
	return n, nil
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, nil))
}

func TestSweep_DrainsBacklogInBatches(t *testing.T) {
	store := &fakeStore{batches: []int{100, 100, 3}}
	s := New(store, testLogger(), Config{BatchSize: 100})

	s.sweep(context.Background())

	if store.calls != 3 {
		t.Fatalf("calls = %d, want 3 (stop once a batch comes back short)", store.calls)
	}
	for _, l := range store.limits {
		if l != 100 {
			t.Fatalf("limit = %d, want 100", l)
		}
	}
}

func TestSweep_NothingExpired(t *testing.T) {
	store := &fakeStore{}
	s := New(store, testLogger(), Config{})

	s.sweep(context.Background())

	if store.calls != 1 {
		t.Fatalf("calls = %d, want 1", store.calls)
	}
}

func TestSweep_StopsOnError(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	s := New(store, testLogger(), Config{})

	s.sweep(context.Background())

	if store.calls != 1 {
		t.Fatalf("calls = %d, want 1", store.calls)
	}
}
