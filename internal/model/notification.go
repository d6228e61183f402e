package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationInvestmentCompleted   NotificationType = "investment_completed"
	NotificationAccountBlocked        NotificationType = "account_blocked"
	NotificationPaymentDeadlineMissed NotificationType = "payment_deadline_missed"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

type Notification struct {
	ID        uuid.UUID            `json:"id" db:"id"`
	UserID    int64                `json:"user_id" db:"user_id"`
	Type      NotificationType     `json:"type" db:"type"`
	Title     string               `json:"title" db:"title"`
	Message   string               `json:"message" db:"message"`
	Priority  NotificationPriority `json:"priority" db:"priority"`
	Read      bool                 `json:"read" db:"read"`
	CreatedAt time.Time            `json:"created_at" db:"created_at"`
}
