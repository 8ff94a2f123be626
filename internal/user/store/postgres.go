package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"turnero/internal/user/models"
	id "turnero/pkg/domain"
	"turnero/pkg/platform/sentinel"
)

// PostgresStore is pure I/O over the users table. Role checks and any other
// business logic belong in the services.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	query := `
		SELECT id, email, full_name, role
		FROM users
		WHERE id = $1 AND NOT deleted
	`
	return scanUser(s.db.QueryRowContext(ctx, query, uuid.UUID(userID)))
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u   models.User
		uid uuid.UUID
	)
	err := row.Scan(&uid, &u.Email, &u.FullName, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.ID = id.UserID(uid)
	return &u, nil
}
