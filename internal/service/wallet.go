package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dailyvest/backend/internal/model"
	"github.com/dailyvest/backend/internal/repository"
)

type WalletService struct {
	repo *repository.Repository
}

func NewWalletService(repo *repository.Repository) *WalletService {
	return &WalletService{repo: repo}
}

// GetWallet returns the user's wallet, creating an empty one on first
// access.
func (s *WalletService) GetWallet(ctx context.Context, userID int64) (*model.Wallet, error) {
	wallet, err := s.repo.GetWallet(ctx, userID)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, repository.ErrWalletNotFound) {
		return nil, err
	}

	if err := s.repo.CreateWallet(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.GetWallet(ctx, userID)
}

func (s *WalletService) GetTransactions(ctx context.Context, userID int64, limit, offset int) ([]model.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.ListTransactions(ctx, userID, limit, offset)
}

// Withdraw debits the balance and records the withdrawal. The actual bank
// payout happens outside the platform.
func (s *WalletService) Withdraw(ctx context.Context, userID int64, amount int64, method string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	description := fmt.Sprintf("Withdrawal via %s", method)
	return s.repo.RecordWithdrawal(ctx, userID, amount, description)
}
