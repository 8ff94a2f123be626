package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"turnero/internal/notification"
	"turnero/internal/scheduling/models"
	id "turnero/pkg/domain"
	dErrors "turnero/pkg/domain-errors"
	"turnero/pkg/platform/sentinel"
	"turnero/pkg/requestcontext"
)

// CreateSession plans a single session directly, outside any slot
// configuration. The assigned trainer must exist and hold a role allowed to
// lead sessions.
func (s *Service) CreateSession(ctx context.Context, sc models.Schedule) (*models.TrainingSession, error) {
	sc.Name = strings.TrimSpace(sc.Name)

	now := requestcontext.Now(ctx)
	if err := s.requireTrainer(ctx, sc.TrainerID); err != nil {
		return nil, err
	}

	sess, err := models.NewSession(id.SessionID(uuid.New()), sc, nil, now)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}

	s.incrementSessionCreated()
	return sess, nil
}

// UpdateSession replaces the plannable fields of a session and notifies
// confirmed participants that the session changed.
func (s *Service) UpdateSession(ctx context.Context, sessionID id.SessionID, sc models.Schedule) (*models.TrainingSession, error) {
	sc.Name = strings.TrimSpace(sc.Name)

	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != models.SessionStatusActive {
		return nil, dErrors.New(dErrors.CodeConflict, "only active sessions can be updated")
	}

	now := requestcontext.Now(ctx)
	if err := sc.Validate(now); err != nil {
		return nil, err
	}
	if err := s.requireTrainer(ctx, sc.TrainerID); err != nil {
		return nil, err
	}

	sess.Name = sc.Name
	sess.Description = sc.Description
	sess.TrainerID = sc.TrainerID
	sess.Date = models.DateOf(sc.Date)
	sess.StartTime = sc.StartTime
	sess.EndTime = sc.EndTime
	sess.Location = sc.Location
	if sc.Capacity > 0 {
		sess.Capacity = sc.Capacity
	}
	sess.UpdatedAt = now

	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update session")
	}

	s.notifyParticipants(ctx, notification.EventSessionModified, sess)
	return sess, nil
}

// CancelSession transitions the session to cancelled and notifies the
// confirmed participants. Their bookings remain confirmed; the session
// status carries the cancellation.
func (s *Service) CancelSession(ctx context.Context, sessionID id.SessionID) (*models.TrainingSession, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.CanCancel(); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeConflict, "session is already cancelled")
		}
		return nil, err
	}

	sess.ApplyCancellation(requestcontext.Now(ctx))
	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to cancel session")
	}

	s.incrementSessionCancelled()
	s.notifyParticipants(ctx, notification.EventSessionCancelled, sess)
	return sess, nil
}

// DeleteSession soft-deletes the session. Participants are notified the
// same way as a cancellation since the slot disappears for them either way.
func (s *Service) DeleteSession(ctx context.Context, sessionID id.SessionID) error {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return err
	}

	s.notifyParticipants(ctx, notification.EventSessionCancelled, sess)

	sess.Deleted = true
	sess.UpdatedAt = requestcontext.Now(ctx)
	if err := s.sessions.Update(ctx, sess); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete session")
	}
	return nil
}

func (s *Service) GetSession(ctx context.Context, sessionID id.SessionID) (*models.TrainingSession, error) {
	return s.loadSession(ctx, sessionID)
}

func (s *Service) ListSessions(ctx context.Context) ([]*models.TrainingSession, error) {
	sessions, err := s.sessions.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list sessions")
	}
	return sessions, nil
}

func (s *Service) ListSessionsByTrainer(ctx context.Context, trainerID id.UserID) ([]*models.TrainingSession, error) {
	if trainerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "trainer id is required")
	}
	sessions, err := s.sessions.ListByTrainer(ctx, trainerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list sessions by trainer")
	}
	return sessions, nil
}

func (s *Service) ListSessionsByDate(ctx context.Context, date time.Time) ([]*models.TrainingSession, error) {
	sessions, err := s.sessions.ListByDate(ctx, date)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list sessions by date")
	}
	return sessions, nil
}

func (s *Service) ListSessionsBetween(ctx context.Context, from, to time.Time) ([]*models.TrainingSession, error) {
	if to.Before(from) {
		return nil, dErrors.New(dErrors.CodeValidation, "end of range is before its start")
	}
	sessions, err := s.sessions.ListBetween(ctx, models.DateOf(from), models.DateOf(to))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list sessions in range")
	}
	return sessions, nil
}

// ListUpcomingSessions returns active sessions from today onward.
func (s *Service) ListUpcomingSessions(ctx context.Context) ([]*models.TrainingSession, error) {
	sessions, err := s.sessions.ListUpcoming(ctx, requestcontext.Now(ctx))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list upcoming sessions")
	}
	return sessions, nil
}

func (s *Service) loadSession(ctx context.Context, sessionID id.SessionID) (*models.TrainingSession, error) {
	if sessionID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "session id is required")
	}
	sess, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "session not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	if sess.Deleted {
		return nil, dErrors.New(dErrors.CodeNotFound, "session not found")
	}
	return sess, nil
}

// requireTrainer verifies the assigned trainer exists and may lead sessions.
func (s *Service) requireTrainer(ctx context.Context, trainerID id.UserID) error {
	if trainerID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "trainer id is required")
	}
	trainer, err := s.users.FindByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "trainer not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load trainer")
	}
	if !trainer.Role.CanLeadSessions() {
		return dErrors.New(dErrors.CodeForbidden, "user cannot lead sessions")
	}
	return nil
}

// notifyParticipants dispatches one event per confirmed participant.
// Delivery problems never fail the calling operation; the dispatcher's log
// is the record of what happened.
func (s *Service) notifyParticipants(ctx context.Context, eventType notification.EventType, sess *models.TrainingSession) {
	if s.notifier == nil || s.participants == nil {
		return
	}
	userIDs, err := s.participants.ListConfirmedUserIDs(ctx, sess.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "list participants for notification",
			"session_id", sess.ID, "event_type", eventType, "error", err)
		return
	}
	for _, userID := range userIDs {
		event := notification.Event{
			Type:      eventType,
			UserID:    userID,
			SessionID: sess.ID,
			Training:  trainingInfo(sess),
		}
		if user, err := s.users.FindByID(ctx, userID); err == nil {
			event.User = &notification.UserInfo{Email: user.Email, Name: user.FullName}
		}
		s.notifier.Dispatch(ctx, event)
	}
}

func trainingInfo(sess *models.TrainingSession) *notification.TrainingInfo {
	return &notification.TrainingInfo{
		Name:     sess.Name,
		Date:     sess.Date.Format("2006-01-02"),
		Time:     sess.StartTime.String(),
		Location: sess.Location,
	}
}

func (s *Service) incrementSessionCreated() {
	if s.metrics != nil {
		s.metrics.SessionsCreated.Inc()
	}
}

func (s *Service) incrementSessionCancelled() {
	if s.metrics != nil {
		s.metrics.SessionsCancelled.Inc()
	}
}
