package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"turnero/internal/booking/models"
	"turnero/internal/notification"
	schedmodels "turnero/internal/scheduling/models"
	usermodels "turnero/internal/user/models"
	id "turnero/pkg/domain"
	dErrors "turnero/pkg/domain-errors"
	"turnero/pkg/platform/sentinel"
	"turnero/pkg/requestcontext"
)

// CreateBooking books a member into a session. The checks run in order:
// session bookable, no duplicate, no overlapping booking, capacity.
// The whole sequence runs inside one transaction with the session row
// locked, so two concurrent requests for the last seat cannot both pass
// the capacity check.
func (s *Service) CreateBooking(ctx context.Context, userID id.UserID, sessionID id.SessionID) (*models.Booking, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user id is required")
	}
	if sessionID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "session id is required")
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		booking *models.Booking
		sess    *schedmodels.TrainingSession
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		now := requestcontext.Now(txCtx)

		locked, err := s.sessions.LockByID(txCtx, sessionID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "session not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to lock session")
		}
		if err := locked.IsBookable(now); err != nil {
			return err
		}

		duplicate, err := s.bookings.ExistsConfirmed(txCtx, userID, sessionID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check existing booking")
		}
		if duplicate {
			return dErrors.New(dErrors.CodeConflict, "user already booked this session")
		}

		if err := s.checkOverlap(txCtx, userID, locked); err != nil {
			return err
		}

		count, err := s.bookings.CountConfirmedBySession(txCtx, sessionID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count participants")
		}
		if count >= locked.Capacity {
			return dErrors.New(dErrors.CodeConflict, "session is full")
		}

		b := models.NewBooking(id.BookingID(uuid.New()), userID, sessionID, now)
		if err := s.bookings.Create(txCtx, b); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "user already booked this session")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create booking")
		}
		booking = b
		sess = locked
		return nil
	})
	if err != nil {
		s.countRejection(err)
		return nil, err
	}

	s.invalidateCount(ctx, sessionID)
	s.incrementBookingCreated()
	s.dispatch(ctx, notification.EventBookingConfirmed, user, sess)
	return booking, nil
}

// CancelBooking cancels the member's own booking. Trainers and admins may
// cancel on behalf of members; everyone is bound by the notice window.
func (s *Service) CancelBooking(ctx context.Context, callerID id.UserID, bookingID id.BookingID) (*models.Booking, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != callerID && !callerRoleManages(ctx) {
		return nil, dErrors.New(dErrors.CodeForbidden, "booking belongs to another user")
	}

	sess, err := s.loadSession(ctx, booking.SessionID)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	if err := booking.CanCancel(sess.StartsAt(), now); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeConflict, "booking is not confirmed")
		}
		return nil, err
	}

	booking.ApplyCancellation(now)
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to cancel booking")
	}

	s.invalidateCount(ctx, booking.SessionID)
	s.incrementBookingCancelled()
	if user, err := s.loadUser(ctx, booking.UserID); err == nil {
		s.dispatch(ctx, notification.EventBookingCancelled, user, sess)
	}
	return booking, nil
}

// PurgeBooking soft-deletes a booking regardless of status or notice
// window. Administrative cleanup only; no notification is produced.
func (s *Service) PurgeBooking(ctx context.Context, bookingID id.BookingID) error {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	booking.Deleted = true
	booking.UpdatedAt = requestcontext.Now(ctx)
	if err := s.bookings.Update(ctx, booking); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to purge booking")
	}
	s.invalidateCount(ctx, booking.SessionID)
	return nil
}

func (s *Service) GetBooking(ctx context.Context, bookingID id.BookingID) (*models.Booking, error) {
	return s.loadBooking(ctx, bookingID)
}

func (s *Service) ListBookingsForUser(ctx context.Context, userID id.UserID) ([]*models.Booking, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user id is required")
	}
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list bookings")
	}
	return bookings, nil
}

func (s *Service) ListParticipants(ctx context.Context, sessionID id.SessionID) ([]*models.Booking, error) {
	if sessionID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "session id is required")
	}
	bookings, err := s.bookings.ListConfirmedBySession(ctx, sessionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list participants")
	}
	return bookings, nil
}

// CountParticipants returns the confirmed participant count, served from
// the cache when possible.
func (s *Service) CountParticipants(ctx context.Context, sessionID id.SessionID) (int, error) {
	if sessionID.IsNil() {
		return 0, dErrors.New(dErrors.CodeBadRequest, "session id is required")
	}
	if s.counts != nil {
		if count, ok := s.counts.Get(ctx, sessionID); ok {
			return count, nil
		}
	}
	count, err := s.bookings.CountConfirmedBySession(ctx, sessionID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count participants")
	}
	if s.counts != nil {
		s.counts.Set(ctx, sessionID, count)
	}
	return count, nil
}

// checkOverlap rejects the booking when the user already holds a confirmed
// booking whose session window intersects the target session's window on
// the same date.
func (s *Service) checkOverlap(ctx context.Context, userID id.UserID, target *schedmodels.TrainingSession) error {
	existing, err := s.bookings.ListConfirmedByUser(ctx, userID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list user bookings")
	}
	for _, b := range existing {
		other, err := s.sessions.FindByID(ctx, b.SessionID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				continue
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load booked session")
		}
		if other.Deleted || other.Status != schedmodels.SessionStatusActive {
			continue
		}
		if other.Overlaps(target.Date, target.StartTime, target.EndTime) {
			return dErrors.New(dErrors.CodeConflict, "user has an overlapping booking")
		}
	}
	return nil
}

func (s *Service) loadBooking(ctx context.Context, bookingID id.BookingID) (*models.Booking, error) {
	if bookingID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "booking id is required")
	}
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "booking not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load booking")
	}
	if booking.Deleted {
		return nil, dErrors.New(dErrors.CodeNotFound, "booking not found")
	}
	return booking, nil
}

func (s *Service) loadSession(ctx context.Context, sessionID id.SessionID) (*schedmodels.TrainingSession, error) {
	sess, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "session not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	return sess, nil
}

func (s *Service) loadUser(ctx context.Context, userID id.UserID) (*usermodels.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

func callerRoleManages(ctx context.Context) bool {
	switch usermodels.Role(requestcontext.CallerRole(ctx)) {
	case usermodels.RoleTrainer, usermodels.RoleSuperAdmin:
		return true
	}
	return false
}

func (s *Service) dispatch(ctx context.Context, eventType notification.EventType, user *usermodels.User, sess *schedmodels.TrainingSession) {
	if s.notifier == nil {
		return
	}
	s.notifier.Dispatch(ctx, notification.Event{
		Type:      eventType,
		UserID:    user.ID,
		SessionID: sess.ID,
		User:      &notification.UserInfo{Email: user.Email, Name: user.FullName},
		Training: &notification.TrainingInfo{
			Name:     sess.Name,
			Date:     sess.Date.Format("2006-01-02"),
			Time:     sess.StartTime.String(),
			Location: sess.Location,
		},
	})
}

func (s *Service) invalidateCount(ctx context.Context, sessionID id.SessionID) {
	if s.counts != nil {
		s.counts.Invalidate(ctx, sessionID)
	}
}

func (s *Service) incrementBookingCreated() {
	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}
}

func (s *Service) incrementBookingCancelled() {
	if s.metrics != nil {
		s.metrics.BookingsCancelled.Inc()
	}
}

func (s *Service) countRejection(err error) {
	if s.metrics == nil {
		return
	}
	if code := dErrors.CodeOf(err); code == dErrors.CodeConflict {
		s.metrics.BookingsRejected.WithLabelValues(string(code)).Inc()
	}
}
