package model

import (
	"time"
)

// PointValueMinor is the fixed conversion rate: 1 point = 20 major currency
// units = 2000 minor units.
const PointValueMinor = 2000

// Wallet holds withdrawable cash (minor units) and fractional points.
// Balances are mutated only through relative updates in the repository.
type Wallet struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"user_id" db:"user_id"`
	Balance        int64     `json:"balance" db:"balance"`
	Points         float64   `json:"points" db:"points"`
	TotalWithdrawn int64     `json:"total_withdrawn" db:"total_withdrawn"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// PointsForAmount converts a minor-unit amount to the points required to
// cover it. Stored points stay fractional; rounding happens only at display.
func PointsForAmount(amountMinor int64) float64 {
	return float64(amountMinor) / PointValueMinor
}
