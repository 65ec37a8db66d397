package deposit

import (
	"testing"
	"time"

	"github.com/glowlabs-io/scheduling/internal/model"
)

func testPolicy() Policy {
	return Policy{
		Percent:              20,
		MinServicePriceCents: 3000,
		FullRefundHours:      24,
		PartialRefundHours:   6,
		PartialRefundPercent: 50,
		NoShowForfeit:        true,
		Currency:             "eur",
	}
}

func TestAmount_PercentageAboveThreshold(t *testing.T) {
	e := NewEngine(testPolicy())
	if got := e.Amount(5000); got != 1000 {
		t.Fatalf("expected 1000, got %d", got)
	}
}

func TestAmount_BelowThresholdIsZero(t *testing.T) {
	e := NewEngine(testPolicy())
	if got := e.Amount(2999); got != 0 {
		t.Fatalf("expected 0 below threshold, got %d", got)
	}
}

func TestAmount_FixedWinsOverPercent(t *testing.T) {
	p := testPolicy()
	p.FixedAmountCents = 1500
	e := NewEngine(p)
	if got := e.Amount(10000); got != 1500 {
		t.Fatalf("expected fixed 1500, got %d", got)
	}
}

func TestRefundAmount_Tiers(t *testing.T) {
	e := NewEngine(testPolicy())
	start := time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC)

	cases := []struct {
		name        string
		hoursBefore time.Duration
		want        int64
	}{
		{"25h before is a full refund", 25 * time.Hour, 1000},
		{"exactly 24h is still full", 24 * time.Hour, 1000},
		{"23h falls in the partial tier", 23 * time.Hour, 500},
		{"exactly 6h is still partial", 6 * time.Hour, 500},
		{"1h before refunds nothing", time.Hour, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.RefundAmount(1000, start, start.Add(-tc.hoursBefore))
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestRefundAmount_SpecScenario(t *testing.T) {
	// partialRefundHours=24 with fullRefundHours above it: cancelling at 23h
	// with partialRefundPercent=50 yields half.
	p := testPolicy()
	p.PartialRefundHours = 24
	p.FullRefundHours = 48
	e := NewEngine(p)
	start := time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC)
	if got := e.RefundAmount(1000, start, start.Add(-23*time.Hour)); got != 500 {
		t.Fatalf("expected 500, got %d", got)
	}
}

func TestNoShowOutcome(t *testing.T) {
	e := NewEngine(testPolicy())
	if got := e.NoShowOutcome(); got != model.DepositForfeited {
		t.Fatalf("expected forfeited, got %s", got)
	}

	p := testPolicy()
	p.NoShowForfeit = false
	if got := NewEngine(p).NoShowOutcome(); got != model.DepositPaid {
		t.Fatalf("expected paid, got %s", got)
	}
}

func TestRequiresDeposit(t *testing.T) {
	e := NewEngine(testPolicy())
	services := []model.Service{
		{ID: "a", DepositRequired: false},
		{ID: "b", DepositRequired: true},
	}
	if !e.RequiresDeposit(services) {
		t.Fatal("expected deposit to be required")
	}
	if e.RequiresDeposit(services[:1]) {
		t.Fatal("expected no deposit for unflagged services")
	}
}

func TestLoadPolicy_EmptyPathUsesDefaults(t *testing.T) {
	p, err := LoadPolicy("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.FullRefundHours != 24 || !p.NoShowForfeit {
		t.Fatalf("unexpected defaults %+v", p)
	}
}
