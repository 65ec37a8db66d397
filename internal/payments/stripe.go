package payments

import (
	"context"
	"fmt"
	"strings"

	"github.com/glowlabs-io/scheduling/internal/model"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"github.com/stripe/stripe-go/v79/refund"
)

// StripeGateway implements Gateway on Stripe PaymentIntents.
type StripeGateway struct {
	currency string
}

func NewStripeGateway(secretKey, defaultCurrency string) (*StripeGateway, error) {
	secretKey = strings.TrimSpace(secretKey)
	if secretKey == "" {
		return nil, fmt.Errorf("stripe secret key is required")
	}
	stripe.Key = secretKey
	if defaultCurrency == "" {
		defaultCurrency = string(stripe.CurrencyEUR)
	}
	return &StripeGateway{currency: strings.ToLower(defaultCurrency)}, nil
}

func (g *StripeGateway) CreateDepositIntent(ctx context.Context, amountCents int64, currency, appointmentID string) (string, error) {
	if currency == "" {
		currency = g.currency
	}
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(strings.ToLower(currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("appointment_id", appointmentID)
	params.AddMetadata("purpose", "booking_deposit")

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: create deposit intent: %v", model.ErrPayment, err)
	}
	return pi.ID, nil
}

func (g *StripeGateway) CancelDepositIntent(ctx context.Context, intentID string) error {
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx
	if _, err := paymentintent.Cancel(intentID, params); err != nil {
		return fmt.Errorf("%w: cancel deposit intent: %v", model.ErrPayment, err)
	}
	return nil
}

func (g *StripeGateway) VerifyDepositPaid(ctx context.Context, intentID string) (bool, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := paymentintent.Get(intentID, params)
	if err != nil {
		return false, fmt.Errorf("%w: fetch deposit intent: %v", model.ErrPayment, err)
	}
	return pi.Status == stripe.PaymentIntentStatusSucceeded, nil
}

func (g *StripeGateway) Refund(ctx context.Context, intentID string, amountCents int64) (string, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(intentID),
		Amount:        stripe.Int64(amountCents),
	}
	params.Context = ctx

	r, err := refund.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: refund deposit: %v", model.ErrPayment, err)
	}
	return r.ID, nil
}

var _ Gateway = (*StripeGateway)(nil)
