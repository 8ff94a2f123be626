package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"turnero/internal/scheduling/models"
	id "turnero/pkg/domain"
	"turnero/pkg/platform/sentinel"
	"turnero/pkg/platform/tx"
)

const sessionColumns = `id, name, description, trainer_id, date, start_min, end_min, location, capacity, slot_config_id, status, deleted, created_at, updated_at`

// PostgresStore persists training sessions in PostgreSQL.
// This store is pure I/O; booking rules and capacity checks belong in the services.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// q returns the transaction bound to the context when there is one, so store
// calls made inside a transactional service operation share its snapshot.
func (s *PostgresStore) q(ctx context.Context) querier {
	if t := tx.From(ctx); t != nil {
		return t
	}
	return s.db
}

func (s *PostgresStore) Create(ctx context.Context, sess *models.TrainingSession) error {
	query := `
		INSERT INTO sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := s.q(ctx).ExecContext(ctx, query,
		sess.ID.String(), sess.Name, sess.Description, sess.TrainerID.String(),
		models.DateOf(sess.Date), int(sess.StartTime), int(sess.EndTime), sess.Location,
		sess.Capacity, slotConfigArg(sess.SlotConfigID), string(sess.Status), sess.Deleted,
		sess.CreatedAt, sess.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, sess *models.TrainingSession) error {
	query := `
		UPDATE sessions
		SET name = $2, description = $3, trainer_id = $4, date = $5, start_min = $6,
		    end_min = $7, location = $8, capacity = $9, status = $10, deleted = $11, updated_at = $12
		WHERE id = $1
	`
	result, err := s.q(ctx).ExecContext(ctx, query,
		sess.ID.String(), sess.Name, sess.Description, sess.TrainerID.String(),
		models.DateOf(sess.Date), int(sess.StartTime), int(sess.EndTime), sess.Location,
		sess.Capacity, string(sess.Status), sess.Deleted, sess.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// FindByID returns the session including soft-deleted ones; callers decide
// whether a deleted session is acceptable for their operation.
func (s *PostgresStore) FindByID(ctx context.Context, sessionID id.SessionID) (*models.TrainingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`
	sess, err := scanSession(s.q(ctx).QueryRowContext(ctx, query, sessionID.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return sess, nil
}

// LockByID loads the session with a row lock. It must run inside a
// transaction; concurrent bookings against the same session serialize here.
func (s *PostgresStore) LockByID(ctx context.Context, sessionID id.SessionID) (*models.TrainingSession, error) {
	t := tx.From(ctx)
	if t == nil {
		return nil, fmt.Errorf("lock session: no transaction in context")
	}
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1 FOR UPDATE`
	sess, err := scanSession(t.QueryRowContext(ctx, query, sessionID.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("lock session: %w", err)
	}
	return sess, nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]*models.TrainingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE NOT deleted ORDER BY date, start_min`
	return s.list(ctx, query)
}

func (s *PostgresStore) ListByTrainer(ctx context.Context, trainerID id.UserID) ([]*models.TrainingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE NOT deleted AND trainer_id = $1 ORDER BY date, start_min`
	return s.list(ctx, query, trainerID.String())
}

func (s *PostgresStore) ListByDate(ctx context.Context, date time.Time) ([]*models.TrainingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE NOT deleted AND date = $1 ORDER BY start_min`
	return s.list(ctx, query, models.DateOf(date))
}

func (s *PostgresStore) ListBetween(ctx context.Context, from, to time.Time) ([]*models.TrainingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE NOT deleted AND date BETWEEN $1 AND $2 ORDER BY date, start_min`
	return s.list(ctx, query, models.DateOf(from), models.DateOf(to))
}

func (s *PostgresStore) ListUpcoming(ctx context.Context, from time.Time) ([]*models.TrainingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE NOT deleted AND status = $1 AND date >= $2 ORDER BY date, start_min`
	return s.list(ctx, query, string(models.SessionStatusActive), models.DateOf(from))
}

func (s *PostgresStore) ExistsForConfigOnDate(ctx context.Context, configID id.SlotConfigID, date time.Time) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM sessions WHERE NOT deleted AND slot_config_id = $1 AND date = $2)`
	var exists bool
	if err := s.q(ctx).QueryRowContext(ctx, query, configID.String(), models.DateOf(date)).Scan(&exists); err != nil {
		return false, fmt.Errorf("check session exists for config: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*models.TrainingSession, error) {
	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.TrainingSession
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

type sessionRow interface {
	Scan(dest ...any) error
}

func scanSession(row sessionRow) (*models.TrainingSession, error) {
	var (
		sess       models.TrainingSession
		rawID      string
		rawTrainer string
		startMin   int
		endMin     int
		rawConfig  sql.NullString
		rawStatus  string
	)
	if err := row.Scan(&rawID, &sess.Name, &sess.Description, &rawTrainer, &sess.Date,
		&startMin, &endMin, &sess.Location, &sess.Capacity, &rawConfig, &rawStatus,
		&sess.Deleted, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
		return nil, err
	}

	sessionID, err := id.ParseSessionID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse session id: %w", err)
	}
	trainerID, err := id.ParseUserID(rawTrainer)
	if err != nil {
		return nil, fmt.Errorf("parse trainer id: %w", err)
	}
	sess.ID = sessionID
	sess.TrainerID = trainerID
	sess.StartTime = models.TimeOfDay(startMin)
	sess.EndTime = models.TimeOfDay(endMin)
	sess.Status = models.SessionStatus(rawStatus)
	sess.Date = models.DateOf(sess.Date)

	if rawConfig.Valid {
		configID, err := id.ParseSlotConfigID(rawConfig.String)
		if err != nil {
			return nil, fmt.Errorf("parse slot config id: %w", err)
		}
		sess.SlotConfigID = &configID
	}
	return &sess, nil
}

func slotConfigArg(configID *id.SlotConfigID) any {
	if configID == nil {
		return nil
	}
	return configID.String()
}
