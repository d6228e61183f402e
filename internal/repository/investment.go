package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dailyvest/backend/internal/model"
)

var (
	ErrInvestmentNotFound = errors.New("investment not found")
	ErrOverpayment        = errors.New("payment exceeds amount remaining")
)

func (r *Repository) CreateInvestment(ctx context.Context, inv *model.Investment) error {
	query := `
		INSERT INTO user_investments
			(user_id, package_id, payment_mode, amount_invested, initial_payment_deadline, full_payment_deadline)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, amount_paid, status, created_at`

	return r.db.QueryRowContext(ctx, query,
		inv.UserID,
		inv.PackageID,
		inv.PaymentMode,
		inv.AmountInvested,
		inv.InitialPaymentDeadline,
		inv.FullPaymentDeadline,
	).Scan(&inv.ID, &inv.AmountPaid, &inv.Status, &inv.CreatedAt)
}

// GetUserInvestment fetches an investment only when it belongs to the user.
func (r *Repository) GetUserInvestment(ctx context.Context, id uuid.UUID, userID int64) (*model.Investment, error) {
	var inv model.Investment
	err := r.db.GetContext(ctx, &inv,
		"SELECT * FROM user_investments WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvestmentNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *Repository) ListUserInvestments(ctx context.Context, userID int64) ([]model.InvestmentWithPackage, error) {
	var investments []model.InvestmentWithPackage
	err := r.db.SelectContext(ctx, &investments, `
		SELECT ui.*, ip.daily_return, ip.duration_days
		FROM user_investments ui
		JOIN investment_packages ip ON ui.package_id = ip.id
		WHERE ui.user_id = $1
		ORDER BY ui.created_at DESC`,
		userID)
	return investments, err
}

// AddInvestmentPayment increments amount_paid by a relative update and
// returns the resulting row. The WHERE guard keeps amount_paid within
// amount_invested even when two payments race; the loser gets
// ErrOverpayment and must undo its wallet debit.
func (r *Repository) AddInvestmentPayment(ctx context.Context, id uuid.UUID, delta int64) (*model.Investment, error) {
	var inv model.Investment
	err := r.db.GetContext(ctx, &inv, `
		UPDATE user_investments
		SET amount_paid = amount_paid + $2
		WHERE id = $1 AND amount_paid + $2 <= amount_invested
		RETURNING *`,
		id, delta)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOverpayment
		}
		return nil, err
	}
	return &inv, nil
}

// ActivateInvestment performs the pending -> active transition. The WHERE
// clause makes it first-writer-wins: exactly one concurrent caller gets the
// updated row back, everyone else gets (nil, nil). start_date is preserved
// if it was already set.
func (r *Repository) ActivateInvestment(ctx context.Context, id uuid.UUID) (*model.Investment, error) {
	var inv model.Investment
	err := r.db.GetContext(ctx, &inv, `
		UPDATE user_investments
		SET status = 'active', start_date = COALESCE(start_date, NOW())
		WHERE id = $1 AND status = 'pending' AND amount_paid >= amount_invested
		RETURNING *`,
		id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

// ClaimDailyReturn marks today's return as processed. It reports false when
// another run already claimed today or the investment is no longer active,
// which is what makes the accrual job idempotent within a calendar day.
func (r *Repository) ClaimDailyReturn(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE user_investments
		SET last_return_processed = NOW()
		WHERE id = $1 AND status = 'active'
		AND (last_return_processed IS NULL OR last_return_processed::date < CURRENT_DATE)`,
		id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (r *Repository) CompleteInvestment(ctx context.Context, id uuid.UUID, endDate time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE user_investments
		SET status = 'completed', end_date = $2
		WHERE id = $1 AND status = 'active'`,
		id, endDate)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return ErrInvestmentNotFound
	}
	return err
}

func (r *Repository) CancelInvestment(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE user_investments SET status = 'cancelled' WHERE id = $1 AND status = 'pending'", id)
	return err
}

// ResetInvestment puts an investment back to pending with payment progress
// cleared; used when a full-payment deadline is missed.
func (r *Repository) ResetInvestment(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE user_investments
		SET status = 'pending', amount_paid = 0, start_date = NULL
		WHERE id = $1`,
		id)
	return err
}

// FindAccruableInvestments returns active investments that have started and
// have not had today's return processed yet.
func (r *Repository) FindAccruableInvestments(ctx context.Context) ([]model.InvestmentWithPackage, error) {
	var investments []model.InvestmentWithPackage
	err := r.db.SelectContext(ctx, &investments, `
		SELECT ui.*, ip.daily_return, ip.duration_days
		FROM user_investments ui
		JOIN investment_packages ip ON ui.package_id = ip.id
		WHERE ui.status = 'active'
		AND ui.start_date IS NOT NULL
		AND (ui.last_return_processed IS NULL OR ui.last_return_processed::date < CURRENT_DATE)
		AND ui.start_date::date <= CURRENT_DATE`)
	return investments, err
}

// FindMissedInitialPayments returns pay-later investments still unpaid past
// their initial 3-hour deadline.
func (r *Repository) FindMissedInitialPayments(ctx context.Context, now time.Time) ([]model.Investment, error) {
	var investments []model.Investment
	err := r.db.SelectContext(ctx, &investments, `
		SELECT * FROM user_investments
		WHERE payment_mode = 'pay_later'
		AND amount_paid = 0
		AND status = 'pending'
		AND initial_payment_deadline < $1`,
		now)
	return investments, err
}

// FindMissedFullPayments returns pay-later investments past the 14-day
// deadline that never reached full payment.
func (r *Repository) FindMissedFullPayments(ctx context.Context, now time.Time) ([]model.Investment, error) {
	var investments []model.Investment
	err := r.db.SelectContext(ctx, &investments, `
		SELECT * FROM user_investments
		WHERE payment_mode = 'pay_later'
		AND amount_paid < amount_invested
		AND status = 'active'
		AND full_payment_deadline < $1`,
		now)
	return investments, err
}

// CountSettledInvestments counts a user's investments that ever reached
// active or completed; zero means a deadline miss is their first attempt.
func (r *Repository) CountSettledInvestments(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM user_investments
		WHERE user_id = $1 AND status IN ('active', 'completed')`,
		userID)
	return count, err
}
