package store

import (
	"context"
	"database/sql"
	"fmt"

	"turnero/internal/notification"
	id "turnero/pkg/domain"
	"turnero/pkg/platform/sentinel"
)

const logColumns = `id, event_type, user_id, session_id, status, detail, attempts, created_at, updated_at`

// PostgresStore persists the notification log in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, log *notification.Log) error {
	query := `
		INSERT INTO notification_logs (` + logColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		log.ID.String(), string(log.EventType), log.UserID.String(), log.SessionID.String(),
		string(log.Status), log.Detail, log.Attempts, log.CreatedAt, log.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create notification log: %w", err)
	}
	return nil
}

// Update settles a pending row. The status guard in the WHERE clause makes
// the pending-to-terminal transition atomic even across processes.
func (s *PostgresStore) Update(ctx context.Context, log *notification.Log) error {
	query := `
		UPDATE notification_logs
		SET status = $2, detail = $3, attempts = $4, updated_at = $5
		WHERE id = $1 AND status = 'pending'
	`
	result, err := s.db.ExecContext(ctx, query,
		log.ID.String(), string(log.Status), log.Detail, log.Attempts, log.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update notification log: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update notification log rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, logID id.NotificationID) (*notification.Log, error) {
	query := `SELECT ` + logColumns + ` FROM notification_logs WHERE id = $1`
	log, err := scanLog(s.db.QueryRowContext(ctx, query, logID.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find notification log: %w", err)
	}
	return log, nil
}

func (s *PostgresStore) Exists(ctx context.Context, eventType notification.EventType, userID id.UserID, sessionID id.SessionID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM notification_logs WHERE event_type = $1 AND user_id = $2 AND session_id = $3)`
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, string(eventType), userID.String(), sessionID.String()).Scan(&exists); err != nil {
		return false, fmt.Errorf("check notification log: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID) ([]*notification.Log, error) {
	query := `SELECT ` + logColumns + ` FROM notification_logs WHERE user_id = $1 ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list notification logs: %w", err)
	}
	defer rows.Close()

	var logs []*notification.Log
	for rows.Next() {
		log, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification log: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notification logs: %w", err)
	}
	return logs, nil
}

type logRow interface {
	Scan(dest ...any) error
}

func scanLog(row logRow) (*notification.Log, error) {
	var (
		log        notification.Log
		rawID      string
		rawType    string
		rawUser    string
		rawSession string
		rawStatus  string
	)
	if err := row.Scan(&rawID, &rawType, &rawUser, &rawSession, &rawStatus,
		&log.Detail, &log.Attempts, &log.CreatedAt, &log.UpdatedAt); err != nil {
		return nil, err
	}

	logID, err := id.ParseNotificationID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse notification log id: %w", err)
	}
	userID, err := id.ParseUserID(rawUser)
	if err != nil {
		return nil, fmt.Errorf("parse notification user id: %w", err)
	}
	sessionID, err := id.ParseSessionID(rawSession)
	if err != nil {
		return nil, fmt.Errorf("parse notification session id: %w", err)
	}
	log.ID = logID
	log.UserID = userID
	log.SessionID = sessionID
	log.EventType = notification.EventType(rawType)
	log.Status = notification.LogStatus(rawStatus)
	return &log, nil
}
