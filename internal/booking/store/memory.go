package store

import (
	"context"
	"sort"
	"sync"

	"turnero/internal/booking/models"
	id "turnero/pkg/domain"
	"turnero/pkg/platform/sentinel"
)

// InMemory is a map-backed booking store for tests and local development.
// The confirmed-once-per-session rule is enforced on Create, mirroring the
// partial unique index of the PostgreSQL store.
type InMemory struct {
	mu       sync.RWMutex
	bookings map[id.BookingID]*models.Booking
}

func NewInMemory() *InMemory {
	return &InMemory{bookings: make(map[id.BookingID]*models.Booking)}
}

func (s *InMemory) Create(_ context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[booking.ID]; ok {
		return sentinel.ErrConflict
	}
	for _, b := range s.bookings {
		if b.Deleted || b.Status != models.StatusConfirmed {
			continue
		}
		if b.UserID == booking.UserID && b.SessionID == booking.SessionID {
			return sentinel.ErrConflict
		}
	}
	cp := *booking
	s.bookings[booking.ID] = &cp
	return nil
}

func (s *InMemory) Update(_ context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[booking.ID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *booking
	s.bookings[booking.ID] = &cp
	return nil
}

func (s *InMemory) FindByID(_ context.Context, bookingID id.BookingID) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.bookings[bookingID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *booking
	return &cp, nil
}

func (s *InMemory) ListByUser(_ context.Context, userID id.UserID) ([]*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(b *models.Booking) bool {
		return !b.Deleted && b.UserID == userID
	}), nil
}

func (s *InMemory) ListConfirmedByUser(_ context.Context, userID id.UserID) ([]*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(b *models.Booking) bool {
		return !b.Deleted && b.Status == models.StatusConfirmed && b.UserID == userID
	}), nil
}

func (s *InMemory) ListConfirmedBySession(_ context.Context, sessionID id.SessionID) ([]*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(b *models.Booking) bool {
		return !b.Deleted && b.Status == models.StatusConfirmed && b.SessionID == sessionID
	}), nil
}

func (s *InMemory) CountConfirmedBySession(ctx context.Context, sessionID id.SessionID) (int, error) {
	bookings, err := s.ListConfirmedBySession(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return len(bookings), nil
}

func (s *InMemory) ExistsConfirmed(_ context.Context, userID id.UserID, sessionID id.SessionID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if !b.Deleted && b.Status == models.StatusConfirmed && b.UserID == userID && b.SessionID == sessionID {
			return true, nil
		}
	}
	return false, nil
}

// ListConfirmedUserIDs returns the confirmed participants of a session.
func (s *InMemory) ListConfirmedUserIDs(ctx context.Context, sessionID id.SessionID) ([]id.UserID, error) {
	bookings, err := s.ListConfirmedBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	userIDs := make([]id.UserID, 0, len(bookings))
	for _, b := range bookings {
		userIDs = append(userIDs, b.UserID)
	}
	return userIDs, nil
}

func (s *InMemory) collect(keep func(*models.Booking) bool) []*models.Booking {
	var out []*models.Booking
	for _, b := range s.bookings {
		if keep(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
