package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dailyvest/backend/internal/model"
)

var ErrPackageNotFound = errors.New("investment package not found")

// GetActivePackage returns a package only if it exists and is active.
func (r *Repository) GetActivePackage(ctx context.Context, id int64) (*model.InvestmentPackage, error) {
	var pkg model.InvestmentPackage
	err := r.db.GetContext(ctx, &pkg, "SELECT * FROM investment_packages WHERE id = $1 AND active = TRUE", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	return &pkg, nil
}

func (r *Repository) ListActivePackages(ctx context.Context) ([]model.InvestmentPackage, error) {
	var packages []model.InvestmentPackage
	err := r.db.SelectContext(ctx, &packages, "SELECT * FROM investment_packages WHERE active = TRUE ORDER BY id ASC")
	return packages, err
}
