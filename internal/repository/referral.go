package repository

import (
	"context"

	"github.com/dailyvest/backend/internal/model"
)

// CreateReferralBonus inserts a commission payout row. The unique index on
// (referrer_id, investment_id, class) makes re-runs for the same activation
// no-ops; the return value reports whether this call actually inserted.
func (r *Repository) CreateReferralBonus(ctx context.Context, bonus *model.ReferralBonus) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO referral_bonuses (referrer_id, referred_id, investment_id, class, percentage, amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (referrer_id, investment_id, class) DO NOTHING`,
		bonus.ReferrerID,
		bonus.ReferredID,
		bonus.InvestmentID,
		bonus.Class,
		bonus.Percentage,
		bonus.Amount,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

// GetReferralEarnings aggregates paid commissions per class for a referrer.
func (r *Repository) GetReferralEarnings(ctx context.Context, referrerID int64) (map[model.ReferralClass]model.ReferralEarnings, error) {
	rows := []struct {
		Class  model.ReferralClass `db:"class"`
		Amount int64               `db:"amount"`
		Count  int                 `db:"count"`
	}{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT class, COALESCE(SUM(amount), 0) AS amount, COUNT(*) AS count
		FROM referral_bonuses
		WHERE referrer_id = $1
		GROUP BY class`,
		referrerID)
	if err != nil {
		return nil, err
	}

	earnings := make(map[model.ReferralClass]model.ReferralEarnings, len(rows))
	for _, row := range rows {
		earnings[row.Class] = model.ReferralEarnings{Amount: row.Amount, Count: row.Count}
	}
	return earnings, nil
}

func (r *Repository) ListReferredUsers(ctx context.Context, referrerID int64) ([]model.ReferredUser, error) {
	var referred []model.ReferredUser
	err := r.db.SelectContext(ctx, &referred, `
		SELECT
			u.id,
			u.email,
			u.created_at,
			COALESCE(SUM(CASE WHEN ui.status = 'active' THEN ui.amount_invested ELSE 0 END), 0) AS total_invested,
			COUNT(CASE WHEN ui.status = 'active' THEN 1 END) AS active_investments
		FROM users u
		LEFT JOIN user_investments ui ON u.id = ui.user_id
		WHERE u.referred_by = $1
		GROUP BY u.id, u.email, u.created_at
		ORDER BY u.created_at DESC`,
		referrerID)
	return referred, err
}

func (r *Repository) GetReferralStats(ctx context.Context, userID int64) (*model.ReferralStats, error) {
	var stats model.ReferralStats

	err := r.db.GetContext(ctx, &stats.ClassAActiveReferrals, `
		SELECT COUNT(DISTINCT u.id)
		FROM users u
		JOIN user_investments ui ON u.id = ui.user_id
		WHERE u.referred_by = $1 AND ui.status = 'active'`,
		userID)
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &stats.UserTotalInvestment, `
		SELECT COALESCE(SUM(amount_invested), 0)
		FROM user_investments
		WHERE user_id = $1 AND status = 'active'`,
		userID)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
