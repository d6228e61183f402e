package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dailyvest/backend/internal/model"
	"github.com/dailyvest/backend/internal/repository"
)

var _ Store = (*repository.Repository)(nil)

// Store is the persistence surface the core services run against. It is
// implemented by *repository.Repository and by the in-memory store used in
// tests, so the workers can run synchronously without a database or timers.
type Store interface {
	GetActivePackage(ctx context.Context, id int64) (*model.InvestmentPackage, error)
	ListActivePackages(ctx context.Context) ([]model.InvestmentPackage, error)

	CreateInvestment(ctx context.Context, inv *model.Investment) error
	GetUserInvestment(ctx context.Context, id uuid.UUID, userID int64) (*model.Investment, error)
	ListUserInvestments(ctx context.Context, userID int64) ([]model.InvestmentWithPackage, error)
	AddInvestmentPayment(ctx context.Context, id uuid.UUID, delta int64) (*model.Investment, error)
	ActivateInvestment(ctx context.Context, id uuid.UUID) (*model.Investment, error)
	ClaimDailyReturn(ctx context.Context, id uuid.UUID) (bool, error)
	CompleteInvestment(ctx context.Context, id uuid.UUID, endDate time.Time) error
	CancelInvestment(ctx context.Context, id uuid.UUID) error
	ResetInvestment(ctx context.Context, id uuid.UUID) error
	FindAccruableInvestments(ctx context.Context) ([]model.InvestmentWithPackage, error)
	FindMissedInitialPayments(ctx context.Context, now time.Time) ([]model.Investment, error)
	FindMissedFullPayments(ctx context.Context, now time.Time) ([]model.Investment, error)
	CountSettledInvestments(ctx context.Context, userID int64) (int, error)

	GetUser(ctx context.Context, id int64) (*model.User, error)
	SetUserBlocked(ctx context.Context, id int64, blocked bool) error

	GetWallet(ctx context.Context, userID int64) (*model.Wallet, error)
	UpdateWalletBalance(ctx context.Context, userID int64, amount int64, txType model.TransactionType, description string) error
	UpdateWalletPoints(ctx context.Context, userID int64, delta float64) error
	AppendTransaction(ctx context.Context, t *model.Transaction) error

	CreateReferralBonus(ctx context.Context, bonus *model.ReferralBonus) (bool, error)
}

// Notifier is the fire-and-forget notification sink. Callers do not wait for
// delivery; errors are at most logged.
type Notifier interface {
	Notify(ctx context.Context, userID int64, typ model.NotificationType, title, message string, priority model.NotificationPriority) error
}
