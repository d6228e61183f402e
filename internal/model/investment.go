package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMode string

const (
	PaymentModePayNow   PaymentMode = "pay_now"
	PaymentModePayLater PaymentMode = "pay_later"
)

type InvestmentStatus string

const (
	InvestmentStatusPending   InvestmentStatus = "pending"
	InvestmentStatusActive    InvestmentStatus = "active"
	InvestmentStatusCompleted InvestmentStatus = "completed"
	InvestmentStatusCancelled InvestmentStatus = "cancelled"
)

// Investment is a user's purchase of a package. Deadlines are set only for
// pay-later investments; start_date is set once, on activation.
type Investment struct {
	ID                     uuid.UUID        `json:"id" db:"id"`
	UserID                 int64            `json:"user_id" db:"user_id"`
	PackageID              int64            `json:"package_id" db:"package_id"`
	PaymentMode            PaymentMode      `json:"payment_mode" db:"payment_mode"`
	AmountInvested         int64            `json:"amount_invested" db:"amount_invested"`
	AmountPaid             int64            `json:"amount_paid" db:"amount_paid"`
	Status                 InvestmentStatus `json:"status" db:"status"`
	StartDate              *time.Time       `json:"start_date,omitempty" db:"start_date"`
	EndDate                *time.Time       `json:"end_date,omitempty" db:"end_date"`
	InitialPaymentDeadline *time.Time       `json:"initial_payment_deadline,omitempty" db:"initial_payment_deadline"`
	FullPaymentDeadline    *time.Time       `json:"full_payment_deadline,omitempty" db:"full_payment_deadline"`
	LastReturnProcessed    *time.Time       `json:"last_return_processed,omitempty" db:"last_return_processed"`
	CreatedAt              time.Time        `json:"created_at" db:"created_at"`
}

// InvestmentWithPackage joins the package columns the workers and the user
// listing need.
type InvestmentWithPackage struct {
	Investment
	DailyReturn  int64 `json:"daily_return" db:"daily_return"`
	DurationDays int   `json:"duration_days" db:"duration_days"`
}

func (i *Investment) Remaining() int64 {
	remaining := i.AmountInvested - i.AmountPaid
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (i *Investment) FullyPaid() bool {
	return i.AmountPaid >= i.AmountInvested
}

// DaysSinceStart returns whole days elapsed since activation, or -1 when the
// investment has not started.
func (i *Investment) DaysSinceStart(now time.Time) int {
	if i.StartDate == nil {
		return -1
	}
	return int(now.Sub(*i.StartDate).Hours() / 24)
}

// CanTransition reports whether a status change is allowed. The machine is
// pending -> active -> completed, with pending -> cancelled and the
// active -> pending reset applied when a full-payment deadline is missed.
func CanTransition(from, to InvestmentStatus) bool {
	switch from {
	case InvestmentStatusPending:
		return to == InvestmentStatusActive || to == InvestmentStatusCancelled
	case InvestmentStatusActive:
		return to == InvestmentStatusCompleted || to == InvestmentStatusPending
	default:
		return false
	}
}
