package payments

import (
	"context"
	"fmt"

	"github.com/glowlabs-io/scheduling/internal/model"
)

// Disabled is the gateway used when no payment provider is configured.
// Bookings without deposits are unaffected; any deposit operation fails.
func Disabled() Gateway {
	return disabledGateway{}
}

type disabledGateway struct{}

func (disabledGateway) CreateDepositIntent(context.Context, int64, string, string) (string, error) {
	return "", fmt.Errorf("%w: payment provider not configured", model.ErrPayment)
}

func (disabledGateway) CancelDepositIntent(context.Context, string) error {
	return fmt.Errorf("%w: payment provider not configured", model.ErrPayment)
}

func (disabledGateway) VerifyDepositPaid(context.Context, string) (bool, error) {
	return false, fmt.Errorf("%w: payment provider not configured", model.ErrPayment)
}

func (disabledGateway) Refund(context.Context, string, int64) (string, error) {
	return "", fmt.Errorf("%w: payment provider not configured", model.ErrPayment)
}
