package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/tablero/internal/models"
)

// UserRepo handles tenant records.
type UserRepo struct {
	q Querier
}

// EnsureUser returns the user with the given username, creating it on first use
func (r *UserRepo) EnsureUser(ctx context.Context, username string) (*models.User, error) {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (username) VALUES (?) ON CONFLICT(username) DO NOTHING`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	u := &models.User{}
	var createdAt sql.NullTime
	err = r.q.QueryRowContext(ctx,
		`SELECT id, username, created_at FROM users WHERE username = ?`,
		username,
	).Scan(&u.ID, &u.Username, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.CreatedAt = NullTimeToTime(createdAt)

	return u, nil
}
