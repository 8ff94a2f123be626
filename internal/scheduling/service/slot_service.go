package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"turnero/internal/scheduling/models"
	"turnero/internal/scheduling/recurrence"
	id "turnero/pkg/domain"
	dErrors "turnero/pkg/domain-errors"
	"turnero/pkg/platform/sentinel"
	"turnero/pkg/requestcontext"
)

// ConfigChange carries the mutable fields of a slot configuration.
type ConfigChange struct {
	Name       string
	Recurrence models.Recurrence
	DayFilter  string
	StartDate  time.Time
	EndDate    time.Time
}

// GenerationResult reports what a generation run produced. Skipped holds
// the dates that could not be filled; the rest of the run proceeds anyway.
type GenerationResult struct {
	Created []*models.TrainingSession
	Skipped []time.Time
}

func (s *Service) CreateConfiguration(ctx context.Context, change ConfigChange) (*models.SlotConfiguration, error) {
	config, err := models.NewSlotConfiguration(
		id.SlotConfigID(uuid.New()),
		strings.TrimSpace(change.Name),
		change.Recurrence,
		change.DayFilter,
		change.StartDate,
		change.EndDate,
		requestcontext.Now(ctx),
	)
	if err != nil {
		return nil, err
	}
	if err := s.configs.Create(ctx, config); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create slot configuration")
	}
	return config, nil
}

// UpdateConfiguration replaces the configuration's rule. Sessions already
// generated from it are not touched.
func (s *Service) UpdateConfiguration(ctx context.Context, configID id.SlotConfigID, change ConfigChange) (*models.SlotConfiguration, error) {
	config, err := s.loadConfiguration(ctx, configID)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	updated, err := models.NewSlotConfiguration(
		config.ID,
		strings.TrimSpace(change.Name),
		change.Recurrence,
		change.DayFilter,
		change.StartDate,
		change.EndDate,
		now,
	)
	if err != nil {
		return nil, err
	}
	updated.CreatedAt = config.CreatedAt

	if err := s.configs.Update(ctx, updated); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update slot configuration")
	}
	return updated, nil
}

// DeleteConfiguration soft-deletes the configuration. Generated sessions
// keep their reference and stay on the calendar.
func (s *Service) DeleteConfiguration(ctx context.Context, configID id.SlotConfigID) error {
	config, err := s.loadConfiguration(ctx, configID)
	if err != nil {
		return err
	}
	config.Deleted = true
	config.UpdatedAt = requestcontext.Now(ctx)
	if err := s.configs.Update(ctx, config); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete slot configuration")
	}
	return nil
}

func (s *Service) GetConfiguration(ctx context.Context, configID id.SlotConfigID) (*models.SlotConfiguration, error) {
	return s.loadConfiguration(ctx, configID)
}

func (s *Service) ListConfigurations(ctx context.Context) ([]*models.SlotConfiguration, error) {
	configs, err := s.configs.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list slot configurations")
	}
	return configs, nil
}

// GenerateSessions expands the configuration into concrete sessions using
// the given per-date template. Problems with the configuration or the
// template abort the whole run; problems with a single date (already
// generated, date in the past) skip that date and continue.
func (s *Service) GenerateSessions(ctx context.Context, configID id.SlotConfigID, template models.Schedule) (*GenerationResult, error) {
	config, err := s.loadConfiguration(ctx, configID)
	if err != nil {
		return nil, err
	}

	template.Name = strings.TrimSpace(template.Name)
	now := requestcontext.Now(ctx)

	// Template-level validation runs once, with the date check neutralized;
	// each date is judged individually inside the loop.
	probe := template
	probe.Date = now
	if err := probe.Validate(now); err != nil {
		return nil, err
	}
	if err := s.requireTrainer(ctx, template.TrainerID); err != nil {
		return nil, err
	}

	dates := recurrence.Resolve(config.StartDate, config.EndDate, config.Recurrence, config.Days())

	result := &GenerationResult{}
	for _, date := range dates {
		sc := template
		sc.Date = date

		sess, err := models.NewSession(id.SessionID(uuid.New()), sc, &config.ID, now)
		if err != nil {
			result.Skipped = append(result.Skipped, date)
			s.logger.InfoContext(ctx, "slot generation skipped date",
				"config_id", config.ID, "date", date.Format("2006-01-02"), "reason", err.Error())
			continue
		}

		taken, err := s.sessions.ExistsForConfigOnDate(ctx, config.ID, date)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check generated sessions")
		}
		if taken {
			result.Skipped = append(result.Skipped, date)
			continue
		}

		if err := s.sessions.Create(ctx, sess); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create generated session")
		}
		result.Created = append(result.Created, sess)
	}

	s.logger.InfoContext(ctx, "slot generation finished",
		"config_id", config.ID, "created", len(result.Created), "skipped", len(result.Skipped))
	s.addSessionsGenerated(len(result.Created))
	return result, nil
}

func (s *Service) loadConfiguration(ctx context.Context, configID id.SlotConfigID) (*models.SlotConfiguration, error) {
	if configID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "slot configuration id is required")
	}
	config, err := s.configs.FindByID(ctx, configID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "slot configuration not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load slot configuration")
	}
	return config, nil
}

func (s *Service) addSessionsGenerated(n int) {
	if s.metrics != nil && n > 0 {
		s.metrics.SessionsGenerated.Add(float64(n))
	}
}
