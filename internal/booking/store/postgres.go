package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"turnero/internal/booking/models"
	id "turnero/pkg/domain"
	"turnero/pkg/platform/sentinel"
	"turnero/pkg/platform/tx"
)

const bookingColumns = `id, user_id, session_id, status, deleted, created_at, updated_at, cancelled_at`

// PostgresStore persists bookings in PostgreSQL.
//
// A partial unique index on (user_id, session_id) WHERE status = 'confirmed'
// AND NOT deleted backstops the duplicate check done in the service; a
// violation surfaces as sentinel.ErrConflict.
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

func (s *PostgresStore) q(ctx context.Context) querier {
	if t := tx.From(ctx); t != nil {
		return t
	}
	return s.db
}

func (s *PostgresStore) Create(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.q(ctx).ExecContext(ctx, query,
		booking.ID.String(), booking.UserID.String(), booking.SessionID.String(),
		string(booking.Status), booking.Deleted, booking.CreatedAt, booking.UpdatedAt,
		booking.CancelledAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, booking *models.Booking) error {
	query := `
		UPDATE bookings
		SET status = $2, deleted = $3, updated_at = $4, cancelled_at = $5
		WHERE id = $1
	`
	result, err := s.q(ctx).ExecContext(ctx, query,
		booking.ID.String(), string(booking.Status), booking.Deleted,
		booking.UpdatedAt, booking.CancelledAt,
	)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update booking rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, bookingID id.BookingID) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	booking, err := scanBooking(s.q(ctx).QueryRowContext(ctx, query, bookingID.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return booking, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE NOT deleted AND user_id = $1 ORDER BY created_at`
	return s.list(ctx, query, userID.String())
}

func (s *PostgresStore) ListConfirmedByUser(ctx context.Context, userID id.UserID) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE NOT deleted AND status = 'confirmed' AND user_id = $1 ORDER BY created_at`
	return s.list(ctx, query, userID.String())
}

func (s *PostgresStore) ListConfirmedBySession(ctx context.Context, sessionID id.SessionID) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE NOT deleted AND status = 'confirmed' AND session_id = $1 ORDER BY created_at`
	return s.list(ctx, query, sessionID.String())
}

func (s *PostgresStore) CountConfirmedBySession(ctx context.Context, sessionID id.SessionID) (int, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE NOT deleted AND status = 'confirmed' AND session_id = $1`
	var count int
	if err := s.q(ctx).QueryRowContext(ctx, query, sessionID.String()).Scan(&count); err != nil {
		return 0, fmt.Errorf("count confirmed bookings: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) ExistsConfirmed(ctx context.Context, userID id.UserID, sessionID id.SessionID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE NOT deleted AND status = 'confirmed' AND user_id = $1 AND session_id = $2)`
	var exists bool
	if err := s.q(ctx).QueryRowContext(ctx, query, userID.String(), sessionID.String()).Scan(&exists); err != nil {
		return false, fmt.Errorf("check confirmed booking: %w", err)
	}
	return exists, nil
}

// ListConfirmedUserIDs returns the confirmed participants of a session.
func (s *PostgresStore) ListConfirmedUserIDs(ctx context.Context, sessionID id.SessionID) ([]id.UserID, error) {
	query := `SELECT user_id FROM bookings WHERE NOT deleted AND status = 'confirmed' AND session_id = $1 ORDER BY created_at`
	rows, err := s.q(ctx).QueryContext(ctx, query, sessionID.String())
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	var userIDs []id.UserID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		userID, err := id.ParseUserID(raw)
		if err != nil {
			return nil, fmt.Errorf("parse participant id: %w", err)
		}
		userIDs = append(userIDs, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}
	return userIDs, nil
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*models.Booking, error) {
	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return bookings, nil
}

type bookingRow interface {
	Scan(dest ...any) error
}

func scanBooking(row bookingRow) (*models.Booking, error) {
	var (
		booking     models.Booking
		rawID       string
		rawUser     string
		rawSession  string
		rawStatus   string
		cancelledAt sql.NullTime
	)
	if err := row.Scan(&rawID, &rawUser, &rawSession, &rawStatus, &booking.Deleted,
		&booking.CreatedAt, &booking.UpdatedAt, &cancelledAt); err != nil {
		return nil, err
	}

	bookingID, err := id.ParseBookingID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse booking id: %w", err)
	}
	userID, err := id.ParseUserID(rawUser)
	if err != nil {
		return nil, fmt.Errorf("parse booking user id: %w", err)
	}
	sessionID, err := id.ParseSessionID(rawSession)
	if err != nil {
		return nil, fmt.Errorf("parse booking session id: %w", err)
	}
	booking.ID = bookingID
	booking.UserID = userID
	booking.SessionID = sessionID
	booking.Status = models.Status(rawStatus)
	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}
	return &booking, nil
}
