package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"turnero/internal/notification"
	id "turnero/pkg/domain"
	"turnero/pkg/platform/sentinel"
)

type LogStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func TestLogStoreSuite(t *testing.T) {
	suite.Run(t, new(LogStoreSuite))
}

func (s *LogStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
}

func (s *LogStoreSuite) newLog(eventType notification.EventType, userID id.UserID, sessionID id.SessionID) *notification.Log {
	log := notification.NewLog(id.NotificationID(uuid.New()), notification.Event{
		Type:      eventType,
		UserID:    userID,
		SessionID: sessionID,
	}, s.now)
	s.now = s.now.Add(time.Second)
	return log
}

func (s *LogStoreSuite) TestLifecycle() {
	s.Run("creates a pending row and settles it", func() {
		log := s.newLog(notification.EventBookingConfirmed, id.UserID(uuid.New()), id.SessionID(uuid.New()))
		s.Require().NoError(s.store.Create(s.ctx, log))

		found, err := s.store.FindByID(s.ctx, log.ID)
		s.Require().NoError(err)
		s.Equal(notification.StatusPending, found.Status)

		found.MarkSent(2, s.now)
		s.Require().NoError(s.store.Update(s.ctx, found))

		settled, err := s.store.FindByID(s.ctx, log.ID)
		s.Require().NoError(err)
		s.Equal(notification.StatusSent, settled.Status)
		s.Equal(2, settled.Attempts)
	})

	s.Run("rejects duplicate IDs", func() {
		log := s.newLog(notification.EventBookingConfirmed, id.UserID(uuid.New()), id.SessionID(uuid.New()))
		s.Require().NoError(s.store.Create(s.ctx, log))
		s.Require().ErrorIs(s.store.Create(s.ctx, log), sentinel.ErrConflict)
	})

	s.Run("returns ErrNotFound for unknown rows", func() {
		_, err := s.store.FindByID(s.ctx, id.NotificationID(uuid.New()))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		unknown := s.newLog(notification.EventReminder24h, id.UserID(uuid.New()), id.SessionID(uuid.New()))
		s.Require().ErrorIs(s.store.Update(s.ctx, unknown), sentinel.ErrNotFound)
	})
}

func (s *LogStoreSuite) TestExists() {
	userID, sessionID := id.UserID(uuid.New()), id.SessionID(uuid.New())
	log := s.newLog(notification.EventReminder24h, userID, sessionID)
	s.Require().NoError(s.store.Create(s.ctx, log))

	s.Run("matches on event type, user, and session", func() {
		seen, err := s.store.Exists(s.ctx, notification.EventReminder24h, userID, sessionID)
		s.Require().NoError(err)
		s.True(seen)
	})

	s.Run("pending rows already count", func() {
		found, err := s.store.FindByID(s.ctx, log.ID)
		s.Require().NoError(err)
		s.Equal(notification.StatusPending, found.Status)

		seen, err := s.store.Exists(s.ctx, notification.EventReminder24h, userID, sessionID)
		s.Require().NoError(err)
		s.True(seen)
	})

	s.Run("distinguishes the other dimensions", func() {
		seen, err := s.store.Exists(s.ctx, notification.EventBookingConfirmed, userID, sessionID)
		s.Require().NoError(err)
		s.False(seen)

		seen, err = s.store.Exists(s.ctx, notification.EventReminder24h, id.UserID(uuid.New()), sessionID)
		s.Require().NoError(err)
		s.False(seen)
	})
}

func (s *LogStoreSuite) TestListByUser() {
	userID := id.UserID(uuid.New())
	first := s.newLog(notification.EventBookingConfirmed, userID, id.SessionID(uuid.New()))
	second := s.newLog(notification.EventReminder24h, userID, id.SessionID(uuid.New()))
	other := s.newLog(notification.EventBookingConfirmed, id.UserID(uuid.New()), id.SessionID(uuid.New()))

	for _, log := range []*notification.Log{second, other, first} {
		s.Require().NoError(s.store.Create(s.ctx, log))
	}

	logs, err := s.store.ListByUser(s.ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(logs, 2)
	s.Equal(first.ID, logs[0].ID)
	s.Equal(second.ID, logs[1].ID)
}
