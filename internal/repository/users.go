package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/networth-service/internal/models"
)

// ListUsersWithActiveAccounts returns users owning at least one active account
func (r *Repository) ListUsersWithActiveAccounts(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.created_at
		FROM networth.users u
		WHERE EXISTS (SELECT 1 FROM networth.accounts a WHERE a.user_id = u.id AND a.active)
		ORDER BY u.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	return users, nil
}
