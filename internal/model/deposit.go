package model

import "time"

type DepositStatus string

const (
	DepositPending   DepositStatus = "pending"
	DepositPaid      DepositStatus = "paid"
	DepositApplied   DepositStatus = "applied"
	DepositRefunded  DepositStatus = "refunded"
	DepositForfeited DepositStatus = "forfeited"
	DepositCancelled DepositStatus = "cancelled"
)

// Deposit is the prepayment attached to an appointment. AmountCents is fixed
// at creation and never recalculated after payment.
type Deposit struct {
	ID               string
	AppointmentID    string
	AmountCents      int64
	Status           DepositStatus
	PaymentIntentID  string
	RefundID         string
	RefundAmountCents int64
	CreatedAt        time.Time
	PaidAt           *time.Time
	ResolvedAt       *time.Time
}
