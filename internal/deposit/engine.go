// Package deposit computes deposit amounts and cancellation refunds. It is
// pure calculation: executing payments is the gateway's job.
package deposit

import (
	"math"
	"time"

	"github.com/glowlabs-io/scheduling/internal/model"
)

// Engine evaluates one salon's deposit policy.
type Engine struct {
	policy Policy
}

func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

func (e *Engine) Policy() Policy {
	return e.policy
}

// RequiresDeposit reports whether any selected service is flagged as
// deposit-required.
func (e *Engine) RequiresDeposit(services []model.Service) bool {
	for _, s := range services {
		if s.DepositRequired {
			return true
		}
	}
	return false
}

// Amount computes the deposit for one service price. A fixed amount wins over
// the percentage; services priced below the policy threshold require none.
// The threshold is per service, never the booking total.
func (e *Engine) Amount(servicePriceCents int64) int64 {
	if servicePriceCents < e.policy.MinServicePriceCents {
		return 0
	}
	if e.policy.FixedAmountCents > 0 {
		return e.policy.FixedAmountCents
	}
	return int64(math.Round(float64(servicePriceCents) * e.policy.Percent / 100))
}

// RefundAmount selects a refund tier by the time remaining until the
// appointment at the moment of cancellation.
func (e *Engine) RefundAmount(depositCents int64, appointmentStart, cancelledAt time.Time) int64 {
	hoursUntil := appointmentStart.Sub(cancelledAt).Hours()
	switch {
	case hoursUntil >= e.policy.FullRefundHours:
		return depositCents
	case hoursUntil >= e.policy.PartialRefundHours:
		return int64(math.Round(float64(depositCents) * e.policy.PartialRefundPercent / 100))
	default:
		return 0
	}
}

// NoShowOutcome resolves the deposit status for a no-show: forfeited when the
// policy says so, otherwise it stays paid with no refund issued.
func (e *Engine) NoShowOutcome() model.DepositStatus {
	if e.policy.NoShowForfeit {
		return model.DepositForfeited
	}
	return model.DepositPaid
}
