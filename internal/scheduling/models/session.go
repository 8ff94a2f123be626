package models

import (
	"time"

	id "turnero/pkg/domain"
	dErrors "turnero/pkg/domain-errors"
)

// DefaultCapacity applies when a session is created without an explicit
// participant limit.
const DefaultCapacity = 8

// SessionStatus is the lifecycle state of a training session.
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCancelled SessionStatus = "cancelled"
	SessionStatusCompleted SessionStatus = "completed"
)

// TrainingSession is a capacity-constrained time slot on the club calendar.
//
// Invariants:
//   - EndTime is strictly after StartTime; the session never crosses midnight
//   - Capacity >= 1
//   - Date carries no time component (midnight UTC)
//   - a session generated from a slot configuration keeps SlotConfigID for
//     its whole life, even after the configuration changes or is deleted
type TrainingSession struct {
	ID           id.SessionID     `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	TrainerID    id.UserID        `json:"trainer_id"`
	Date         time.Time        `json:"date"`
	StartTime    TimeOfDay        `json:"start_time"`
	EndTime      TimeOfDay        `json:"end_time"`
	Location     string           `json:"location"`
	Capacity     int              `json:"capacity"`
	SlotConfigID *id.SlotConfigID `json:"slot_config_id,omitempty"`
	Status       SessionStatus    `json:"status"`
	Deleted      bool             `json:"-"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// Schedule bundles the plannable fields of a session. Used both for direct
// creation and as the per-date template of the slot generator.
type Schedule struct {
	Name        string
	Description string
	TrainerID   id.UserID
	Date        time.Time
	StartTime   TimeOfDay
	EndTime     TimeOfDay
	Location    string
	Capacity    int
}

// Validate enforces the schedule invariants shared by create and update.
// now supplies the clock so callers and tests control "the past".
func (sc Schedule) Validate(now time.Time) error {
	if sc.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "session name is required")
	}
	if sc.TrainerID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "trainer id is required")
	}
	if !sc.StartTime.Valid() || !sc.EndTime.Valid() {
		return dErrors.New(dErrors.CodeValidation, "session times must fall within one day")
	}
	if sc.EndTime <= sc.StartTime {
		return dErrors.New(dErrors.CodeValidation, "end time must be after start time")
	}
	if DateOf(sc.Date).Before(DateOf(now)) {
		return dErrors.New(dErrors.CodeValidation, "date cannot be in the past")
	}
	if sc.Capacity < 0 {
		return dErrors.New(dErrors.CodeValidation, "capacity cannot be negative")
	}
	return nil
}

// NewSession builds an active session from a validated schedule. A zero
// capacity falls back to DefaultCapacity.
func NewSession(sessionID id.SessionID, sc Schedule, slotConfigID *id.SlotConfigID, now time.Time) (*TrainingSession, error) {
	if err := sc.Validate(now); err != nil {
		return nil, err
	}
	capacity := sc.Capacity
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	return &TrainingSession{
		ID:           sessionID,
		Name:         sc.Name,
		Description:  sc.Description,
		TrainerID:    sc.TrainerID,
		Date:         DateOf(sc.Date),
		StartTime:    sc.StartTime,
		EndTime:      sc.EndTime,
		Location:     sc.Location,
		Capacity:     capacity,
		SlotConfigID: slotConfigID,
		Status:       SessionStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// StartsAt returns the absolute start instant of the session.
func (s *TrainingSession) StartsAt() time.Time {
	return s.Date.Add(s.StartTime.Duration())
}

// IsBookable checks the session-side preconditions of booking creation.
func (s *TrainingSession) IsBookable(now time.Time) error {
	if s.Status != SessionStatusActive || s.Deleted {
		return dErrors.New(dErrors.CodeConflict, "cannot book a session that is not active")
	}
	if !now.Before(s.StartsAt()) {
		return dErrors.New(dErrors.CodeConflict, "cannot book a session that already started")
	}
	return nil
}

// Overlaps reports whether the session's [start, end) window intersects the
// given window on the same date. Edge-touching windows do not overlap.
func (s *TrainingSession) Overlaps(date time.Time, start, end TimeOfDay) bool {
	if !s.Date.Equal(DateOf(date)) {
		return false
	}
	return s.StartTime < end && start < s.EndTime
}

// CanCancel checks the cancel transition.
func (s *TrainingSession) CanCancel() error {
	if s.Status == SessionStatusCancelled {
		return dErrors.New(dErrors.CodeInvariantViolation, "session is already cancelled")
	}
	return nil
}

// ApplyCancellation transitions the session to cancelled.
func (s *TrainingSession) ApplyCancellation(now time.Time) {
	s.Status = SessionStatusCancelled
	s.UpdatedAt = now
}

// DateOf strips the time component, normalizing to midnight UTC. All session
// and configuration dates are stored this way.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
