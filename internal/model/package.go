package model

import (
	"time"
)

// InvestmentPackage is an immutable catalog entry. Amounts are stored in
// minor currency units (cents); the daily return is always 15% of the
// principal.
type InvestmentPackage struct {
	ID           int64     `json:"id" db:"id"`
	Amount       int64     `json:"amount" db:"amount"`
	DailyReturn  int64     `json:"daily_return" db:"daily_return"`
	DurationDays int       `json:"duration_days" db:"duration_days"`
	Active       bool      `json:"active" db:"active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
