package slotconfig

import (
	"context"
	"database/sql"
	"fmt"

	"turnero/internal/scheduling/models"
	id "turnero/pkg/domain"
	"turnero/pkg/platform/sentinel"
)

const configColumns = `id, name, recurrence, day_filter, start_date, end_date, deleted, created_at, updated_at`

// PostgresStore persists slot configurations in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, config *models.SlotConfiguration) error {
	query := `
		INSERT INTO slot_configurations (` + configColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		config.ID.String(), config.Name, string(config.Recurrence), config.DayFilter,
		models.DateOf(config.StartDate), models.DateOf(config.EndDate),
		config.Deleted, config.CreatedAt, config.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create slot configuration: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, config *models.SlotConfiguration) error {
	query := `
		UPDATE slot_configurations
		SET name = $2, recurrence = $3, day_filter = $4, start_date = $5, end_date = $6,
		    deleted = $7, updated_at = $8
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		config.ID.String(), config.Name, string(config.Recurrence), config.DayFilter,
		models.DateOf(config.StartDate), models.DateOf(config.EndDate),
		config.Deleted, config.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update slot configuration: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update slot configuration rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, configID id.SlotConfigID) (*models.SlotConfiguration, error) {
	query := `SELECT ` + configColumns + ` FROM slot_configurations WHERE id = $1 AND NOT deleted`
	config, err := scanConfig(s.db.QueryRowContext(ctx, query, configID.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find slot configuration: %w", err)
	}
	return config, nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]*models.SlotConfiguration, error) {
	query := `SELECT ` + configColumns + ` FROM slot_configurations WHERE NOT deleted ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list slot configurations: %w", err)
	}
	defer rows.Close()

	var configs []*models.SlotConfiguration
	for rows.Next() {
		config, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot configuration: %w", err)
		}
		configs = append(configs, config)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slot configurations: %w", err)
	}
	return configs, nil
}

type configRow interface {
	Scan(dest ...any) error
}

func scanConfig(row configRow) (*models.SlotConfiguration, error) {
	var (
		config        models.SlotConfiguration
		rawID         string
		rawRecurrence string
	)
	if err := row.Scan(&rawID, &config.Name, &rawRecurrence, &config.DayFilter,
		&config.StartDate, &config.EndDate, &config.Deleted, &config.CreatedAt, &config.UpdatedAt); err != nil {
		return nil, err
	}

	configID, err := id.ParseSlotConfigID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse slot configuration id: %w", err)
	}
	config.ID = configID
	config.Recurrence = models.Recurrence(rawRecurrence)
	config.StartDate = models.DateOf(config.StartDate)
	config.EndDate = models.DateOf(config.EndDate)
	return &config, nil
}
