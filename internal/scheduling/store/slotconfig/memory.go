package slotconfig

import (
	"context"
	"sort"
	"sync"

	"turnero/internal/scheduling/models"
	id "turnero/pkg/domain"
	"turnero/pkg/platform/sentinel"
)

// InMemory is a map-backed slot configuration store for tests and local
// development.
type InMemory struct {
	mu      sync.RWMutex
	configs map[id.SlotConfigID]*models.SlotConfiguration
}

func NewInMemory() *InMemory {
	return &InMemory{configs: make(map[id.SlotConfigID]*models.SlotConfiguration)}
}

func (s *InMemory) Create(_ context.Context, config *models.SlotConfiguration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.configs[config.ID]; ok {
		return sentinel.ErrConflict
	}
	cp := *config
	s.configs[config.ID] = &cp
	return nil
}

func (s *InMemory) Update(_ context.Context, config *models.SlotConfiguration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.configs[config.ID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *config
	s.configs[config.ID] = &cp
	return nil
}

func (s *InMemory) FindByID(_ context.Context, configID id.SlotConfigID) (*models.SlotConfiguration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	config, ok := s.configs[configID]
	if !ok || config.Deleted {
		return nil, sentinel.ErrNotFound
	}
	cp := *config
	return &cp, nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.SlotConfiguration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.SlotConfiguration
	for _, config := range s.configs {
		if config.Deleted {
			continue
		}
		cp := *config
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
