// Package reminder sweeps upcoming sessions and produces reminder events
// for their confirmed participants.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"turnero/internal/notification"
	"turnero/internal/platform/metrics"
	schedmodels "turnero/internal/scheduling/models"
	usermodels "turnero/internal/user/models"
	id "turnero/pkg/domain"
	"turnero/pkg/requestcontext"
)

const (
	defaultLead   = 24 * time.Hour
	defaultWindow = time.Hour
	defaultPeriod = 30 * time.Minute
)

type SessionSource interface {
	ListByDate(ctx context.Context, date time.Time) ([]*schedmodels.TrainingSession, error)
}

type BookingSource interface {
	ListConfirmedUserIDs(ctx context.Context, sessionID id.SessionID) ([]id.UserID, error)
}

type UserSource interface {
	FindByID(ctx context.Context, userID id.UserID) (*usermodels.User, error)
}

// LogReader answers whether a reminder for this user and session was
// already accepted. The durable log is the only deduplication state; the
// scheduler itself keeps none.
type LogReader interface {
	Exists(ctx context.Context, eventType notification.EventType, userID id.UserID, sessionID id.SessionID) (bool, error)
}

type Notifier interface {
	Dispatch(ctx context.Context, event notification.Event)
}

// Scheduler periodically sweeps sessions starting roughly one lead time
// from now and dispatches a reminder per confirmed participant. The window
// is centered on the lead so a session is caught by exactly the sweeps
// whose tick falls inside it; duplicates across sweeps are stopped by the
// log check.
type Scheduler struct {
	sessions SessionSource
	bookings BookingSource
	users    UserSource
	logs     LogReader
	notifier Notifier

	lead   time.Duration
	window time.Duration
	period time.Duration

	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(s *Scheduler)

func WithLead(lead time.Duration) Option {
	return func(s *Scheduler) {
		if lead > 0 {
			s.lead = lead
		}
	}
}

func WithWindow(window time.Duration) Option {
	return func(s *Scheduler) {
		if window > 0 {
			s.window = window
		}
	}
}

func WithPeriod(period time.Duration) Option {
	return func(s *Scheduler) {
		if period > 0 {
			s.period = period
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scheduler) {
		s.metrics = m
	}
}

func New(sessions SessionSource, bookings BookingSource, users UserSource, logs LogReader, notifier Notifier, opts ...Option) *Scheduler {
	s := &Scheduler{
		sessions: sessions,
		bookings: bookings,
		users:    users,
		logs:     logs,
		notifier: notifier,
		lead:     defaultLead,
		window:   defaultWindow,
		period:   defaultPeriod,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run sweeps once immediately, then on every tick until ctx ends.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	s.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one pass. Exposed so tests drive it without the ticker.
func (s *Scheduler) Sweep(ctx context.Context) {
	now := requestcontext.Now(ctx)
	day := schedmodels.DateOf(now.Add(s.lead))

	sessions, err := s.sessions.ListByDate(ctx, day)
	if err != nil {
		s.logger.ErrorContext(ctx, "reminder sweep: list sessions", "date", day.Format("2006-01-02"), "error", err)
		return
	}

	var produced int
	for _, sess := range sessions {
		if sess.Status != schedmodels.SessionStatusActive || sess.Deleted {
			continue
		}
		until := sess.StartsAt().Sub(now)
		if until < s.lead-s.window/2 || until > s.lead+s.window/2 {
			continue
		}
		produced += s.remindParticipants(ctx, sess)
	}

	if produced > 0 {
		s.logger.InfoContext(ctx, "reminder sweep finished", "date", day.Format("2006-01-02"), "reminders", produced)
		if s.metrics != nil {
			s.metrics.RemindersScheduled.Add(float64(produced))
		}
	}
}

func (s *Scheduler) remindParticipants(ctx context.Context, sess *schedmodels.TrainingSession) int {
	userIDs, err := s.bookings.ListConfirmedUserIDs(ctx, sess.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "reminder sweep: list participants", "session_id", sess.ID, "error", err)
		return 0
	}

	var produced int
	for _, userID := range userIDs {
		seen, err := s.logs.Exists(ctx, notification.EventReminder24h, userID, sess.ID)
		if err != nil {
			s.logger.ErrorContext(ctx, "reminder sweep: check log", "session_id", sess.ID, "user_id", userID, "error", err)
			continue
		}
		if seen {
			continue
		}

		event := notification.Event{
			Type:      notification.EventReminder24h,
			UserID:    userID,
			SessionID: sess.ID,
			Training: &notification.TrainingInfo{
				Name:     sess.Name,
				Date:     sess.Date.Format("2006-01-02"),
				Time:     sess.StartTime.String(),
				Location: sess.Location,
			},
		}
		if user, err := s.users.FindByID(ctx, userID); err == nil {
			event.User = &notification.UserInfo{Email: user.Email, Name: user.FullName}
		}
		s.notifier.Dispatch(ctx, event)
		produced++
	}
	return produced
}
