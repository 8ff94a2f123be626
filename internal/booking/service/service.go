package service

import (
	"context"
	"log/slog"
	"sync"

	"turnero/internal/booking/models"
	"turnero/internal/notification"
	"turnero/internal/platform/metrics"
	schedmodels "turnero/internal/scheduling/models"
	usermodels "turnero/internal/user/models"
	id "turnero/pkg/domain"
)

type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	Update(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, bookingID id.BookingID) (*models.Booking, error)
	ListByUser(ctx context.Context, userID id.UserID) ([]*models.Booking, error)
	ListConfirmedByUser(ctx context.Context, userID id.UserID) ([]*models.Booking, error)
	ListConfirmedBySession(ctx context.Context, sessionID id.SessionID) ([]*models.Booking, error)
	CountConfirmedBySession(ctx context.Context, sessionID id.SessionID) (int, error)
	ExistsConfirmed(ctx context.Context, userID id.UserID, sessionID id.SessionID) (bool, error)
}

// SessionSource reads sessions for booking checks. LockByID must hold the
// session for the rest of the transaction so capacity checks serialize.
type SessionSource interface {
	FindByID(ctx context.Context, sessionID id.SessionID) (*schedmodels.TrainingSession, error)
	LockByID(ctx context.Context, sessionID id.SessionID) (*schedmodels.TrainingSession, error)
}

type UserStore interface {
	FindByID(ctx context.Context, userID id.UserID) (*usermodels.User, error)
}

// Notifier accepts events for asynchronous delivery.
type Notifier interface {
	Dispatch(ctx context.Context, event notification.Event)
}

// CountCache caches confirmed participant counts for the read path. The
// booking transaction never consults it; correctness lives in the store.
type CountCache interface {
	Get(ctx context.Context, sessionID id.SessionID) (int, bool)
	Set(ctx context.Context, sessionID id.SessionID, count int)
	Invalidate(ctx context.Context, sessionID id.SessionID)
}

// StoreTx runs fn atomically. With PostgreSQL stores the context passed to
// fn carries the transaction; the in-memory fallback serializes callers.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

// inMemoryStoreTx serializes booking transactions with a single mutex,
// standing in for row locks when no database is configured.
type inMemoryStoreTx struct {
	mu sync.Mutex
}

func newInMemoryStoreTx() *inMemoryStoreTx {
	return &inMemoryStoreTx{}
}

func (t *inMemoryStoreTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

// Service orchestrates the booking lifecycle.
type Service struct {
	bookings BookingStore
	sessions SessionSource
	users    UserStore
	notifier Notifier
	counts   CountCache
	tx       StoreTx
	logger   *slog.Logger
	metrics  *metrics.Metrics
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

func WithCountCache(c CountCache) Option {
	return func(s *Service) {
		s.counts = c
	}
}

func WithTx(tx StoreTx) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(bookings BookingStore, sessions SessionSource, users UserStore, opts ...Option) *Service {
	s := &Service{
		bookings: bookings,
		sessions: sessions,
		users:    users,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = newInMemoryStoreTx()
	}
	return s
}
