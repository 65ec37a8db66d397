package deposit

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Policy is the salon's deposit and cancellation-refund policy. All amounts
// are cents; hours are measured from the cancellation moment to the
// appointment start.
type Policy struct {
	FixedAmountCents     int64   `toml:"fixed_amount_cents"`
	Percent              float64 `toml:"percent"`
	MinServicePriceCents int64   `toml:"min_service_price_cents"`
	FullRefundHours      float64 `toml:"full_refund_hours"`
	PartialRefundHours   float64 `toml:"partial_refund_hours"`
	PartialRefundPercent float64 `toml:"partial_refund_percent"`
	NoShowForfeit        bool    `toml:"no_show_forfeit"`
	Currency             string  `toml:"currency"`
}

// DefaultPolicy mirrors the house rules most salons start with: 20% deposit
// on services of 30 EUR and up, full refund a day ahead, half within a day.
func DefaultPolicy() Policy {
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

// LoadPolicy reads a TOML policy file. An empty path returns DefaultPolicy.
func LoadPolicy(path string) (Policy, error) {
	if path == "" {
		return DefaultPolicy(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read deposit policy: %w", err)
	}
	p := DefaultPolicy()
	if err := toml.Unmarshal(raw, &p); err != nil {
		return Policy{}, fmt.Errorf("parse deposit policy: %w", err)
	}
	if err := p.validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

func (p Policy) validate() error {
	if p.Percent < 0 || p.Percent > 100 {
		return fmt.Errorf("deposit policy: percent must be within [0,100], got %v", p.Percent)
	}
	if p.PartialRefundPercent < 0 || p.PartialRefundPercent > 100 {
		return fmt.Errorf("deposit policy: partial_refund_percent must be within [0,100], got %v", p.PartialRefundPercent)
	}
	if p.FullRefundHours < p.PartialRefundHours {
		return fmt.Errorf("deposit policy: full_refund_hours (%v) must not be below partial_refund_hours (%v)", p.FullRefundHours, p.PartialRefundHours)
	}
	if p.FixedAmountCents < 0 || p.MinServicePriceCents < 0 {
		return fmt.Errorf("deposit policy: amounts must not be negative")
	}
	return nil
}
