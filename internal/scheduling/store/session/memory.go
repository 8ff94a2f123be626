package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"turnero/internal/scheduling/models"
	id "turnero/pkg/domain"
	"turnero/pkg/platform/sentinel"
)

// InMemory is a map-backed session store for tests and local development.
// All methods return copies so callers cannot mutate stored state.
type InMemory struct {
	mu       sync.RWMutex
	sessions map[id.SessionID]*models.TrainingSession
}

func NewInMemory() *InMemory {
	return &InMemory{sessions: make(map[id.SessionID]*models.TrainingSession)}
}

func (s *InMemory) Create(_ context.Context, sess *models.TrainingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.ID]; ok {
		return sentinel.ErrConflict
	}
	cp := *sess
	s.sessions[sess.ID] = &cp
	return nil
}

func (s *InMemory) Update(_ context.Context, sess *models.TrainingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.ID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *sess
	s.sessions[sess.ID] = &cp
	return nil
}

// FindByID returns the session including soft-deleted ones; callers decide
// whether a deleted session is acceptable for their operation.
func (s *InMemory) FindByID(_ context.Context, sessionID id.SessionID) (*models.TrainingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

// LockByID behaves like FindByID. Serialization of the in-memory booking
// path comes from the transaction runner, not from row locks.
func (s *InMemory) LockByID(ctx context.Context, sessionID id.SessionID) (*models.TrainingSession, error) {
	return s.FindByID(ctx, sessionID)
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.TrainingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(sess *models.TrainingSession) bool {
		return !sess.Deleted
	}), nil
}

func (s *InMemory) ListByTrainer(_ context.Context, trainerID id.UserID) ([]*models.TrainingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(sess *models.TrainingSession) bool {
		return !sess.Deleted && sess.TrainerID == trainerID
	}), nil
}

func (s *InMemory) ListByDate(_ context.Context, date time.Time) ([]*models.TrainingSession, error) {
	day := models.DateOf(date)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(sess *models.TrainingSession) bool {
		return !sess.Deleted && models.DateOf(sess.Date).Equal(day)
	}), nil
}

func (s *InMemory) ListBetween(_ context.Context, from, to time.Time) ([]*models.TrainingSession, error) {
	from, to = models.DateOf(from), models.DateOf(to)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(sess *models.TrainingSession) bool {
		d := models.DateOf(sess.Date)
		return !sess.Deleted && !d.Before(from) && !d.After(to)
	}), nil
}

// ListUpcoming returns active, not deleted sessions on or after the given day.
func (s *InMemory) ListUpcoming(_ context.Context, from time.Time) ([]*models.TrainingSession, error) {
	day := models.DateOf(from)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(sess *models.TrainingSession) bool {
		return !sess.Deleted && sess.Status == models.SessionStatusActive && !models.DateOf(sess.Date).Before(day)
	}), nil
}

// ExistsForConfigOnDate reports whether a non-deleted session generated from
// the given configuration already occupies the date.
func (s *InMemory) ExistsForConfigOnDate(_ context.Context, configID id.SlotConfigID, date time.Time) (bool, error) {
	day := models.DateOf(date)
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sess := range s.sessions {
		if sess.Deleted || sess.SlotConfigID == nil {
			continue
		}
		if *sess.SlotConfigID == configID && models.DateOf(sess.Date).Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemory) collect(keep func(*models.TrainingSession) bool) []*models.TrainingSession {
	var out []*models.TrainingSession
	for _, sess := range s.sessions {
		if keep(sess) {
			cp := *sess
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}
