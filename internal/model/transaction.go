package model

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionTypeBonus       TransactionType = "bonus"
	TransactionTypeCashback    TransactionType = "cashback"
	TransactionTypeWithdrawal  TransactionType = "withdrawal"
	TransactionTypeInvestment  TransactionType = "investment"
	TransactionTypeMilestone   TransactionType = "milestone"
	TransactionTypeDailyReturn TransactionType = "daily_return"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is an append-only ledger record. Amount is in signed minor
// units: negative = debit. Rows are never updated after insert.
type Transaction struct {
	ID          uuid.UUID         `json:"id" db:"id"`
	UserID      int64             `json:"user_id" db:"user_id"`
	Type        TransactionType   `json:"type" db:"type"`
	Amount      int64             `json:"amount" db:"amount"`
	Description string            `json:"description" db:"description"`
	Status      TransactionStatus `json:"status" db:"status"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
}
