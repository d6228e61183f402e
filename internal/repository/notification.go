package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dailyvest/backend/internal/model"
)

func (r *Repository) CreateNotification(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, title, message, priority)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, read, created_at`

	return r.db.QueryRowContext(ctx, query,
		n.UserID,
		n.Type,
		n.Title,
		n.Message,
		n.Priority,
	).Scan(&n.ID, &n.Read, &n.CreatedAt)
}

func (r *Repository) ListNotifications(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.SelectContext(ctx, &notifications, `
		SELECT * FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		userID, limit)
	return notifications, err
}

func (r *Repository) MarkNotificationRead(ctx context.Context, id uuid.UUID, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2", id, userID)
	return err
}
