package service

import (
	"context"
	"log/slog"
	"time"

	"turnero/internal/notification"
	"turnero/internal/platform/metrics"
	"turnero/internal/scheduling/models"
	usermodels "turnero/internal/user/models"
	id "turnero/pkg/domain"
)

type SessionStore interface {
	Create(ctx context.Context, sess *models.TrainingSession) error
	Update(ctx context.Context, sess *models.TrainingSession) error
	FindByID(ctx context.Context, sessionID id.SessionID) (*models.TrainingSession, error)
	ListAll(ctx context.Context) ([]*models.TrainingSession, error)
	ListByTrainer(ctx context.Context, trainerID id.UserID) ([]*models.TrainingSession, error)
	ListByDate(ctx context.Context, date time.Time) ([]*models.TrainingSession, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*models.TrainingSession, error)
	ListUpcoming(ctx context.Context, from time.Time) ([]*models.TrainingSession, error)
	ExistsForConfigOnDate(ctx context.Context, configID id.SlotConfigID, date time.Time) (bool, error)
}

type SlotConfigStore interface {
	Create(ctx context.Context, config *models.SlotConfiguration) error
	Update(ctx context.Context, config *models.SlotConfiguration) error
	FindByID(ctx context.Context, configID id.SlotConfigID) (*models.SlotConfiguration, error)
	ListAll(ctx context.Context) ([]*models.SlotConfiguration, error)
}

type UserStore interface {
	FindByID(ctx context.Context, userID id.UserID) (*usermodels.User, error)
}

// ParticipantSource exposes the confirmed bookings of a session so cancel
// and modify operations can notify the affected members.
type ParticipantSource interface {
	ListConfirmedUserIDs(ctx context.Context, sessionID id.SessionID) ([]id.UserID, error)
}

// Notifier accepts events for asynchronous delivery. Accepting never blocks
// the calling operation.
type Notifier interface {
	Dispatch(ctx context.Context, event notification.Event)
}

// Service orchestrates the session calendar: direct session management,
// slot configurations and batch generation.
type Service struct {
	sessions     SessionStore
	configs      SlotConfigStore
	users        UserStore
	participants ParticipantSource
	notifier     Notifier
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

func WithParticipantSource(p ParticipantSource) Option {
	return func(s *Service) {
		s.participants = p
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(sessions SessionStore, configs SlotConfigStore, users UserStore, opts ...Option) *Service {
	s := &Service{
		sessions: sessions,
		configs:  configs,
		users:    users,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
