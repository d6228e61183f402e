package repository

import (
	"context"
)

type PlatformStats struct {
	TotalUsers        int   `db:"total_users" json:"total_users"`
	BlockedUsers      int   `db:"blocked_users" json:"blocked_users"`
	ActiveInvestments int   `db:"active_investments" json:"active_investments"`
	TotalInvested     int64 `db:"total_invested" json:"total_invested"`
	TotalPaidOut      int64 `db:"total_paid_out" json:"total_paid_out"`
}

func (r *Repository) GetPlatformStats(ctx context.Context) (*PlatformStats, error) {
	var stats PlatformStats

	err := r.db.GetContext(ctx, &stats, `
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(*) FROM users WHERE blocked) AS blocked_users,
			(SELECT COUNT(*) FROM user_investments WHERE status = 'active') AS active_investments,
			(SELECT COALESCE(SUM(amount_invested), 0) FROM user_investments WHERE status IN ('active', 'completed')) AS total_invested,
			(SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE type = 'daily_return') AS total_paid_out`)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
