package repository

import (
	"context"

	"github.com/dailyvest/backend/internal/model"
)

// AppendTransaction inserts a ledger record without touching any balance.
// Used for entries whose counter-movement is not the cash balance, e.g.
// investment payments made with points.
func (r *Repository) AppendTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, type, amount, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at`

	return r.db.QueryRowContext(ctx, query,
		t.UserID,
		t.Type,
		t.Amount,
		t.Description,
	).Scan(&t.ID, &t.Status, &t.CreatedAt)
}

func (r *Repository) ListTransactions(ctx context.Context, userID int64, limit, offset int) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.SelectContext(ctx, &transactions, `
		SELECT * FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	return transactions, err
}
