package service

import (
	"context"

	"github.com/dailyvest/backend/internal/model"
	"github.com/dailyvest/backend/internal/repository"
)

type AdminService struct {
	repo *repository.Repository
}

func NewAdminService(repo *repository.Repository) *AdminService {
	return &AdminService{repo: repo}
}

// IsAdmin checks the explicit role flag on the user record.
func (s *AdminService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}

func (s *AdminService) GetStats(ctx context.Context) (*repository.PlatformStats, error) {
	return s.repo.GetPlatformStats(ctx)
}

func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]model.User, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return s.repo.ListUsers(ctx, limit, offset)
}

// UnblockUser lifts the block set by the deadline worker; this is the only
// way a blocked account comes back.
func (s *AdminService) UnblockUser(ctx context.Context, userID int64) error {
	return s.repo.SetUserBlocked(ctx, userID, false)
}
