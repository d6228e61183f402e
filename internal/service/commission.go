package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/dailyvest/backend/internal/model"
	"github.com/dailyvest/backend/internal/repository"
)

// commissionLevels in chain order: class A is the investor's direct
// referrer, B the referrer's referrer, C the level above that.
var commissionLevels = []struct {
	Class      model.ReferralClass
	Percentage float64
}{
	{model.ReferralClassA, model.ClassAPercentage},
	{model.ReferralClassB, model.ClassBPercentage},
	{model.ReferralClassC, model.ClassCPercentage},
}

// CommissionService pays multi-level referral bonuses when an investment
// activates. The unique (referrer, investment, class) constraint in the
// store makes re-runs for the same activation no-ops.
type CommissionService struct {
	store Store
}

func NewCommissionService(store Store) *CommissionService {
	return &CommissionService{store: store}
}

// ProcessActivation walks the referral chain of the investing user and
// credits each referrer found, stopping at the end of the chain. Called on
// the pending -> active edge only.
func (s *CommissionService) ProcessActivation(ctx context.Context, inv *model.Investment) error {
	investor, err := s.store.GetUser(ctx, inv.UserID)
	if err != nil {
		return fmt.Errorf("failed to load investor %d: %w", inv.UserID, err)
	}

	current := investor
	for _, level := range commissionLevels {
		if current.ReferredBy == nil {
			break
		}

		referrer, err := s.store.GetUser(ctx, *current.ReferredBy)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				break
			}
			return fmt.Errorf("failed to load referrer %d: %w", *current.ReferredBy, err)
		}

		amount := int64(math.Round(float64(inv.AmountInvested) * level.Percentage))

		bonus := &model.ReferralBonus{
			ReferrerID:   referrer.ID,
			ReferredID:   inv.UserID,
			InvestmentID: inv.ID,
			Class:        level.Class,
			Percentage:   level.Percentage,
			Amount:       amount,
		}

		inserted, err := s.store.CreateReferralBonus(ctx, bonus)
		if err != nil {
			return fmt.Errorf("failed to record class %s bonus: %w", level.Class, err)
		}

		// Credit only when this call created the payout row, so a second
		// run for the same activation cannot double-pay.
		if inserted {
			description := fmt.Sprintf("Class %s referral bonus for investment #%s", level.Class, inv.ID)
			if err := s.store.UpdateWalletBalance(ctx, referrer.ID, amount, model.TransactionTypeBonus, description); err != nil {
				return fmt.Errorf("failed to credit class %s bonus: %w", level.Class, err)
			}
		}

		current = referrer
	}

	return nil
}
