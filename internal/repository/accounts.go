package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/networth-service/internal/models"
)

const accountColumns = `id, user_id, name, category, balance, currency, active, created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }, a *models.Account) error {
	return row.Scan(&a.ID, &a.UserID, &a.Name, &a.Category, &a.Balance, &a.Currency, &a.Active, &a.CreatedAt, &a.UpdatedAt)
}

func (r *Repository) queryAccounts(ctx context.Context, query string, args ...any) ([]models.Account, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		if err := scanAccount(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	return accounts, nil
}

// GetActiveAccounts returns the user's active accounts ordered by id
func (r *Repository) GetActiveAccounts(ctx context.Context, userID int64) ([]models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM networth.accounts
		WHERE user_id = $1 AND active
		ORDER BY id`
	return r.queryAccounts(ctx, query, userID)
}

// ListActiveAccounts returns every active account across all users
func (r *Repository) ListActiveAccounts(ctx context.Context) ([]models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM networth.accounts
		WHERE active
		ORDER BY id`
	return r.queryAccounts(ctx, query)
}

// FindAccountByID retrieves an account by id
func (r *Repository) FindAccountByID(ctx context.Context, accountID int64) (*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM networth.accounts
		WHERE id = $1`
	a := &models.Account{}
	err := scanAccount(r.db.QueryRowContext(ctx, query, accountID), a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %d: %w", accountID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return a, nil
}
