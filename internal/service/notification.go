package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/dailyvest/backend/internal/model"
	"github.com/dailyvest/backend/internal/repository"
)

// NotificationService stores notifications as rows; delivery is whatever
// polls the listing endpoint. It satisfies Notifier for the workers.
type NotificationService struct {
	repo *repository.Repository
}

func NewNotificationService(repo *repository.Repository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Notify(ctx context.Context, userID int64, typ model.NotificationType, title, message string, priority model.NotificationPriority) error {
	n := &model.Notification{
		UserID:   userID,
		Type:     typ,
		Title:    title,
		Message:  message,
		Priority: priority,
	}
	return s.repo.CreateNotification(ctx, n)
}

func (s *NotificationService) List(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListNotifications(ctx, userID, limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID, userID int64) error {
	return s.repo.MarkNotificationRead(ctx, id, userID)
}
