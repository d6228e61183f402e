package model

import (
	"time"

	"github.com/google/uuid"
)

type ReferralClass string

const (
	ReferralClassA ReferralClass = "A" // direct referrer
	ReferralClassB ReferralClass = "B" // referrer's referrer
	ReferralClassC ReferralClass = "C" // third level
)

// Commission rates per class, as a fraction of the invested amount.
const (
	ClassAPercentage = 0.07
	ClassBPercentage = 0.02
	ClassCPercentage = 0.01
)

// RegistrationBonusPoints is credited to the referrer when a referred user
// registers; independent of any investment.
const RegistrationBonusPoints = 0.5

// ReferralBonus is one commission payout. At most one row exists per
// (referrer, investment, class).
type ReferralBonus struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	ReferrerID   int64         `json:"referrer_id" db:"referrer_id"`
	ReferredID   int64         `json:"referred_id" db:"referred_id"`
	InvestmentID uuid.UUID     `json:"investment_id" db:"investment_id"`
	Class        ReferralClass `json:"class" db:"class"`
	Percentage   float64       `json:"percentage" db:"percentage"`
	Amount       int64         `json:"amount" db:"amount"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
}

type ReferralEarnings struct {
	Amount int64 `json:"amount" db:"amount"`
	Count  int   `json:"count" db:"count"`
}

type ReferredUser struct {
	ID                int64     `json:"id" db:"id"`
	Email             string    `json:"email" db:"email"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	TotalInvested     int64     `json:"total_invested" db:"total_invested"`
	ActiveInvestments int       `json:"active_investments" db:"active_investments"`
}

type ReferralStats struct {
	ClassAActiveReferrals int   `json:"class_a_active_referrals"`
	UserTotalInvestment   int64 `json:"user_total_investment"`
}
