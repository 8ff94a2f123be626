package store

import (
	"context"
	"sort"
	"sync"

	"turnero/internal/notification"
	id "turnero/pkg/domain"
	"turnero/pkg/platform/sentinel"
)

// InMemory is a map-backed notification log for tests and local
// development.
type InMemory struct {
	mu   sync.RWMutex
	logs map[id.NotificationID]*notification.Log
}

func NewInMemory() *InMemory {
	return &InMemory{logs: make(map[id.NotificationID]*notification.Log)}
}

func (s *InMemory) Create(_ context.Context, log *notification.Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.logs[log.ID]; ok {
		return sentinel.ErrConflict
	}
	cp := *log
	s.logs[log.ID] = &cp
	return nil
}

func (s *InMemory) Update(_ context.Context, log *notification.Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.logs[log.ID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *log
	s.logs[log.ID] = &cp
	return nil
}

func (s *InMemory) FindByID(_ context.Context, logID id.NotificationID) (*notification.Log, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log, ok := s.logs[logID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *log
	return &cp, nil
}

// Exists reports whether any log row, in any state, matches the triple.
// Pending rows count: an accepted event is on record from the moment of
// acceptance, which is what reminder deduplication relies on.
func (s *InMemory) Exists(_ context.Context, eventType notification.EventType, userID id.UserID, sessionID id.SessionID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, log := range s.logs {
		if log.EventType == eventType && log.UserID == userID && log.SessionID == sessionID {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemory) ListByUser(_ context.Context, userID id.UserID) ([]*notification.Log, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*notification.Log
	for _, log := range s.logs {
		if log.UserID == userID {
			cp := *log
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
