package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/networth-service/internal/models"
)

func (r *Repository) queryObservations(ctx context.Context, query string, args ...any) ([]models.BalanceObservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance history: %w", err)
	}
	defer rows.Close()

	var observations []models.BalanceObservation
	for rows.Next() {
		var o models.BalanceObservation
		var note sql.NullString
		if err := rows.Scan(&o.ID, &o.AccountID, &o.Balance, &o.RecordedAt, &note); err != nil {
			return nil, fmt.Errorf("failed to scan balance observation: %w", err)
		}
		o.Note = note.String
		observations = append(observations, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read balance history: %w", err)
	}
	return observations, nil
}

// GetObservations returns an account's balance history ordered by time
func (r *Repository) GetObservations(ctx context.Context, accountID int64) ([]models.BalanceObservation, error) {
	query := `
		SELECT id, account_id, balance, recorded_at, note
		FROM networth.balance_history
		WHERE account_id = $1
		ORDER BY recorded_at, id`
	return r.queryObservations(ctx, query, accountID)
}

// GetObservationsInRange returns the balance history of all the user's
// accounts recorded between start and end inclusive
func (r *Repository) GetObservationsInRange(ctx context.Context, userID int64, start, end time.Time) ([]models.BalanceObservation, error) {
	query := `
		SELECT h.id, h.account_id, h.balance, h.recorded_at, h.note
		FROM networth.balance_history h
		JOIN networth.accounts a ON a.id = h.account_id
		WHERE a.user_id = $1 AND h.recorded_at >= $2 AND h.recorded_at <= $3
		ORDER BY h.recorded_at, h.id`
	return r.queryObservations(ctx, query, userID, start, end)
}

// LatestObservation returns the most recent observation of an account
func (r *Repository) LatestObservation(ctx context.Context, accountID int64) (*models.BalanceObservation, error) {
	query := `
		SELECT id, account_id, balance, recorded_at, note
		FROM networth.balance_history
		WHERE account_id = $1
		ORDER BY recorded_at DESC, id DESC
		LIMIT 1`
	o := &models.BalanceObservation{}
	var note sql.NullString
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(&o.ID, &o.AccountID, &o.Balance, &o.RecordedAt, &note)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("balance history of account %d: %w", accountID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find latest observation: %w", err)
	}
	o.Note = note.String
	return o, nil
}

// CreateObservation records a balance and makes it the account's current
// balance when it is the newest observation
func (r *Repository) CreateObservation(ctx context.Context, o *models.BalanceObservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO networth.balance_history (account_id, balance, recorded_at, note)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING id`
	if err := tx.QueryRowContext(ctx, query, o.AccountID, o.Balance, o.RecordedAt, o.Note).Scan(&o.ID); err != nil {
		return fmt.Errorf("failed to create balance observation: %w", err)
	}

	update := `
		UPDATE networth.accounts
		SET balance = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND NOT EXISTS (
			SELECT 1 FROM networth.balance_history
			WHERE account_id = $1 AND recorded_at > $3
		)`
	if _, err := tx.ExecContext(ctx, update, o.AccountID, o.Balance, o.RecordedAt); err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit balance observation: %w", err)
	}
	return nil
}
