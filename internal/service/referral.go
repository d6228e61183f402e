package service

import (
	"context"

	"github.com/dailyvest/backend/internal/model"
	"github.com/dailyvest/backend/internal/repository"
)

type ReferralOverview struct {
	Referrals []model.ReferredUser                           `json:"referrals"`
	Earnings  map[model.ReferralClass]model.ReferralEarnings `json:"earnings"`
}

type ReferralService struct {
	repo *repository.Repository
}

func NewReferralService(repo *repository.Repository) *ReferralService {
	return &ReferralService{repo: repo}
}

// GetOverview returns the user's referred users and their commission
// earnings grouped by class, with zero entries for classes never earned.
func (s *ReferralService) GetOverview(ctx context.Context, userID int64) (*ReferralOverview, error) {
	referred, err := s.repo.ListReferredUsers(ctx, userID)
	if err != nil {
		return nil, err
	}

	earnings, err := s.repo.GetReferralEarnings(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, class := range []model.ReferralClass{model.ReferralClassA, model.ReferralClassB, model.ReferralClassC} {
		if _, ok := earnings[class]; !ok {
			earnings[class] = model.ReferralEarnings{}
		}
	}

	return &ReferralOverview{Referrals: referred, Earnings: earnings}, nil
}

func (s *ReferralService) GetStats(ctx context.Context, userID int64) (*model.ReferralStats, error) {
	return s.repo.GetReferralStats(ctx, userID)
}
