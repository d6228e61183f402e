package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/dailyvest/backend/internal/config"
	"github.com/dailyvest/backend/internal/model"
	"github.com/dailyvest/backend/internal/repository"
)

var (
	ErrInvestmentClosed = errors.New("investment is completed or cancelled")
	ErrAlreadyPaid      = errors.New("investment is already fully paid")
	ErrInvalidAmount    = errors.New("payment amount must be positive")
)

// InvestmentService owns the investment lifecycle: creation, payment
// application and the pending -> active transition that triggers
// commissions.
type InvestmentService struct {
	store         Store
	commissionSvc *CommissionService
	now           func() time.Time
}

func NewInvestmentService(store Store, commissionSvc *CommissionService) *InvestmentService {
	return &InvestmentService{
		store:         store,
		commissionSvc: commissionSvc,
		now:           time.Now,
	}
}

func (s *InvestmentService) ListPackages(ctx context.Context) ([]model.InvestmentPackage, error) {
	return s.store.ListActivePackages(ctx)
}

func (s *InvestmentService) ListUserInvestments(ctx context.Context, userID int64) ([]model.InvestmentWithPackage, error) {
	return s.store.ListUserInvestments(ctx, userID)
}

// Create starts a pending investment for the given package. Pay-later
// investments get the 3-hour initial and 14-day full payment deadlines;
// pay-now investments carry no deadlines and await immediate payment.
func (s *InvestmentService) Create(ctx context.Context, userID int64, packageID int64, mode model.PaymentMode) (*model.Investment, error) {
	if mode != model.PaymentModePayNow && mode != model.PaymentModePayLater {
		return nil, fmt.Errorf("unknown payment mode %q", mode)
	}

	pkg, err := s.store.GetActivePackage(ctx, packageID)
	if err != nil {
		return nil, err
	}

	inv := &model.Investment{
		UserID:         userID,
		PackageID:      pkg.ID,
		PaymentMode:    mode,
		AmountInvested: pkg.Amount,
	}

	if mode == model.PaymentModePayLater {
		now := s.now()
		initial := now.Add(config.InitialPaymentWindow)
		full := now.Add(config.FullPaymentWindow)
		inv.InitialPaymentDeadline = &initial
		inv.FullPaymentDeadline = &full
	}

	if err := s.store.CreateInvestment(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to create investment: %w", err)
	}

	return inv, nil
}

// ApplyPayment debits the user's wallet (cash balance, or points at the
// fixed 1 point = 20 rate) and credits the investment. A payment larger
// than the unpaid remainder is clamped so amount_paid never exceeds
// amount_invested. When the investment reaches full payment it is
// activated and the commission engine runs exactly once.
func (s *InvestmentService) ApplyPayment(ctx context.Context, userID int64, investmentID uuid.UUID, amount int64, usePoints bool) (*model.Investment, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	inv, err := s.store.GetUserInvestment(ctx, investmentID, userID)
	if err != nil {
		return nil, err
	}

	switch inv.Status {
	case model.InvestmentStatusCompleted, model.InvestmentStatusCancelled:
		return nil, ErrInvestmentClosed
	}

	applied := amount
	if remaining := inv.Remaining(); applied > remaining {
		applied = remaining
	}
	if applied == 0 {
		return nil, ErrAlreadyPaid
	}

	if usePoints {
		if err := s.store.UpdateWalletPoints(ctx, userID, -model.PointsForAmount(applied)); err != nil {
			return nil, err
		}
	} else {
		description := fmt.Sprintf("Payment for investment #%s", inv.ID)
		if err := s.store.UpdateWalletBalance(ctx, userID, -applied, model.TransactionTypeInvestment, description); err != nil {
			return nil, err
		}
	}

	updated, err := s.store.AddInvestmentPayment(ctx, investmentID, applied)
	if err != nil {
		// A concurrent payment filled the investment first; undo the debit.
		s.refund(ctx, userID, investmentID, applied, usePoints)
		if errors.Is(err, repository.ErrOverpayment) {
			return nil, ErrAlreadyPaid
		}
		return nil, err
	}

	// Balance payments get their ledger row inside UpdateWalletBalance;
	// points payments record the investment entry here.
	if usePoints {
		t := &model.Transaction{
			UserID:      userID,
			Type:        model.TransactionTypeInvestment,
			Amount:      -applied,
			Description: fmt.Sprintf("Payment for investment #%s (points)", inv.ID),
		}
		if err := s.store.AppendTransaction(ctx, t); err != nil {
			log.Printf("[Investments] Failed to record points payment for %s: %v", inv.ID, err)
		}
	}

	if updated.FullyPaid() {
		activated, err := s.store.ActivateInvestment(ctx, investmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to activate investment: %w", err)
		}
		if activated != nil {
			updated = activated
			if err := s.commissionSvc.ProcessActivation(ctx, activated); err != nil {
				// Commission failures must not fail the payment.
				log.Printf("[Investments] Failed to process commissions for %s: %v", inv.ID, err)
			}
		}
	}

	return updated, nil
}

func (s *InvestmentService) refund(ctx context.Context, userID int64, investmentID uuid.UUID, amount int64, usePoints bool) {
	var err error
	if usePoints {
		err = s.store.UpdateWalletPoints(ctx, userID, model.PointsForAmount(amount))
	} else {
		description := fmt.Sprintf("Refund for investment #%s", investmentID)
		err = s.store.UpdateWalletBalance(ctx, userID, amount, model.TransactionTypeCashback, description)
	}
	if err != nil {
		log.Printf("[Investments] Failed to refund payment for %s: %v", investmentID, err)
	}
}
