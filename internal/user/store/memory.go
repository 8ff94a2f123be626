package store

import (
	"context"
	"sync"

	"turnero/internal/user/models"
	id "turnero/pkg/domain"
	"turnero/pkg/platform/sentinel"
)

// InMemory is a map-backed user store for tests and single-binary dev
// mode. Not distributed; production uses PostgresStore.
type InMemory struct {
	mu    sync.RWMutex
	users map[id.UserID]*models.User
}

func NewInMemory() *InMemory {
	return &InMemory{users: make(map[id.UserID]*models.User)}
}

// Seed inserts or replaces a user. Test helper.
func (s *InMemory) Seed(users ...*models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		cp := *u
		s.users[u.ID] = &cp
	}
}

func (s *InMemory) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok || u.Deleted {
		return nil, sentinel.ErrNotFound
	}
	cp := *u
	return &cp, nil
}
