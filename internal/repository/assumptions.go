package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/networth-service/internal/models"
)

const assumptionColumns = `user_id, investment_rate, real_estate_rate, banking_rate, business_rate,
		vehicle_depreciation_rate, created_at, updated_at`

// GetAssumptions returns the user's overrides, or nil when none were ever stored
func (r *Repository) GetAssumptions(ctx context.Context, userID int64) (*models.Assumptions, error) {
	query := `
		SELECT ` + assumptionColumns + `
		FROM networth.assumptions
		WHERE user_id = $1`
	a := &models.Assumptions{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&a.UserID, &a.InvestmentRate, &a.RealEstateRate, &a.BankingRate, &a.BusinessRate,
		&a.VehicleDepreciationRate, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assumptions: %w", err)
	}
	return a, nil
}

// GetOrCreateAssumptions returns the user's row, inserting an empty one first if needed
func (r *Repository) GetOrCreateAssumptions(ctx context.Context, userID int64) (*models.Assumptions, error) {
	query := `
		INSERT INTO networth.assumptions (user_id, created_at, updated_at)
		VALUES ($1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return nil, fmt.Errorf("failed to create assumptions: %w", err)
	}
	a, err := r.GetAssumptions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("assumptions of user %d: %w", userID, ErrNotFound)
	}
	return a, nil
}

// SaveAssumptions writes every override column of a
func (r *Repository) SaveAssumptions(ctx context.Context, a *models.Assumptions) error {
	query := `
		INSERT INTO networth.assumptions (user_id, investment_rate, real_estate_rate, banking_rate,
			business_rate, vehicle_depreciation_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id) DO UPDATE SET
			investment_rate = EXCLUDED.investment_rate,
			real_estate_rate = EXCLUDED.real_estate_rate,
			banking_rate = EXCLUDED.banking_rate,
			business_rate = EXCLUDED.business_rate,
			vehicle_depreciation_rate = EXCLUDED.vehicle_depreciation_rate,
			updated_at = CURRENT_TIMESTAMP
		RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, a.UserID, a.InvestmentRate, a.RealEstateRate, a.BankingRate,
		a.BusinessRate, a.VehicleDepreciationRate).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save assumptions: %w", err)
	}
	return nil
}

// ResetAssumptions clears every override of the user
func (r *Repository) ResetAssumptions(ctx context.Context, userID int64) error {
	query := `
		UPDATE networth.assumptions
		SET investment_rate = NULL, real_estate_rate = NULL, banking_rate = NULL,
			business_rate = NULL, vehicle_depreciation_rate = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to reset assumptions: %w", err)
	}
	return nil
}
