package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dailyvest/backend/internal/model"
)

var (
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrInsufficientFunds  = errors.New("insufficient balance")
	ErrInsufficientPoints = errors.New("insufficient points")
)

func (r *Repository) GetWallet(ctx context.Context, userID int64) (*model.Wallet, error) {
	var wallet model.Wallet
	err := r.db.GetContext(ctx, &wallet, "SELECT * FROM wallets WHERE user_id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

func (r *Repository) CreateWallet(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO wallets (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING", userID)
	return err
}

// UpdateWalletBalance applies a relative balance change and appends the
// matching ledger record in one database transaction. Debits that would
// take the balance negative are rejected without any state change.
func (r *Repository) UpdateWalletBalance(ctx context.Context, userID int64, amount int64, txType model.TransactionType, description string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var balance int64
	err = tx.GetContext(ctx, &balance, "SELECT balance FROM wallets WHERE user_id = $1 FOR UPDATE", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrWalletNotFound
		}
		return fmt.Errorf("failed to get balance: %w", err)
	}

	if amount < 0 && balance+amount < 0 {
		return ErrInsufficientFunds
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE wallets SET balance = balance + $1, updated_at = NOW() WHERE user_id = $2", amount, userID)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transactions (user_id, type, amount, description)
		VALUES ($1, $2, $3, $4)`,
		userID, txType, amount, description)
	if err != nil {
		return fmt.Errorf("failed to create transaction record: %w", err)
	}

	return tx.Commit()
}

// UpdateWalletPoints applies a relative points change. Points are fractional
// and are not mirrored into the currency ledger.
func (r *Repository) UpdateWalletPoints(ctx context.Context, userID int64, delta float64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var points float64
	err = tx.GetContext(ctx, &points, "SELECT points FROM wallets WHERE user_id = $1 FOR UPDATE", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrWalletNotFound
		}
		return fmt.Errorf("failed to get points: %w", err)
	}

	if delta < 0 && points+delta < 0 {
		return ErrInsufficientPoints
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE wallets SET points = points + $1, updated_at = NOW() WHERE user_id = $2", delta, userID)
	if err != nil {
		return fmt.Errorf("failed to update points: %w", err)
	}

	return tx.Commit()
}

// RecordWithdrawal debits the balance, bumps total_withdrawn and appends the
// withdrawal ledger record atomically.
func (r *Repository) RecordWithdrawal(ctx context.Context, userID int64, amount int64, description string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var balance int64
	err = tx.GetContext(ctx, &balance, "SELECT balance FROM wallets WHERE user_id = $1 FOR UPDATE", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrWalletNotFound
		}
		return fmt.Errorf("failed to get balance: %w", err)
	}

	if balance < amount {
		return ErrInsufficientFunds
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE wallets
		SET balance = balance - $1, total_withdrawn = total_withdrawn + $1, updated_at = NOW()
		WHERE user_id = $2`,
		amount, userID)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transactions (user_id, type, amount, description)
		VALUES ($1, $2, $3, $4)`,
		userID, model.TransactionTypeWithdrawal, -amount, description)
	if err != nil {
		return fmt.Errorf("failed to create transaction record: %w", err)
	}

	return tx.Commit()
}
