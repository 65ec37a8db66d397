// Package payments abstracts the payment provider behind the narrow
// create/verify/refund surface the scheduling engine decides with. The engine
// only ever decides whether and how much; protocol details live here.
package payments

import "context"

type Gateway interface {
	// CreateDepositIntent registers a pending deposit charge and returns the
	// provider's intent id.
	CreateDepositIntent(ctx context.Context, amountCents int64, currency, appointmentID string) (string, error)

	// CancelDepositIntent voids an intent that will never be paid, for example
	// when the reservation it was created for lost the slot.
	CancelDepositIntent(ctx context.Context, intentID string) error

	// VerifyDepositPaid reports whether the intent has actually been paid.
	// Confirmation of an appointment must not proceed on a false result.
	VerifyDepositPaid(ctx context.Context, intentID string) (bool, error)

	// Refund returns amountCents of the intent's charge to the customer and
	// returns the provider's refund id.
	Refund(ctx context.Context, intentID string, amountCents int64) (string, error)
}
