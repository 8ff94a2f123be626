package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"turnero/internal/booking/models"
	bookingstore "turnero/internal/booking/store"
	"turnero/internal/notification"
	schedmodels "turnero/internal/scheduling/models"
	sessionstore "turnero/internal/scheduling/store/session"
	usermodels "turnero/internal/user/models"
	userstore "turnero/internal/user/store"
	id "turnero/pkg/domain"
	dErrors "turnero/pkg/domain-errors"
	"turnero/pkg/requestcontext"
)

// recordingNotifier captures dispatched events so tests can assert on them.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notification.Event
}

func (n *recordingNotifier) Dispatch(_ context.Context, event notification.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) all() []notification.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification.Event(nil), n.events...)
}

type BookingServiceSuite struct {
	suite.Suite
	bookings *bookingstore.InMemory
	sessions *sessionstore.InMemory
	users    *userstore.InMemory
	notifier *recordingNotifier
	service  *Service

	now     time.Time
	member  *usermodels.User
	trainer *usermodels.User
}

func TestBookingServiceSuite(t *testing.T) {
	suite.Run(t, new(BookingServiceSuite))
}

// SetupSubTest resets suite state before each s.Run subtest; the subtests
// seed their own fixtures and assume a fresh store.
func (s *BookingServiceSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *BookingServiceSuite) SetupTest() {
	s.bookings = bookingstore.NewInMemory()
	s.sessions = sessionstore.NewInMemory()
	s.users = userstore.NewInMemory()
	s.notifier = &recordingNotifier{}
	s.service = New(s.bookings, s.sessions, s.users, WithNotifier(s.notifier))

	s.now = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	s.member = &usermodels.User{ID: id.UserID(uuid.New()), Email: "ana@club.test", FullName: "Ana Torres", Role: usermodels.RoleMember}
	s.trainer = &usermodels.User{ID: id.UserID(uuid.New()), Email: "leo@club.test", FullName: "Leo Ferro", Role: usermodels.RoleTrainer}
	s.users.Seed(s.member, s.trainer)
}

// ctx carries the fixed test clock.
func (s *BookingServiceSuite) ctx() context.Context {
	return requestcontext.WithTime(context.Background(), s.now)
}

// seedSession stores an active session on the test date at the given window.
func (s *BookingServiceSuite) seedSession(start, end schedmodels.TimeOfDay, capacity int) *schedmodels.TrainingSession {
	sess, err := schedmodels.NewSession(id.SessionID(uuid.New()), schedmodels.Schedule{
		Name:      "Functional",
		TrainerID: s.trainer.ID,
		Date:      s.now,
		StartTime: start,
		EndTime:   end,
		Location:  "Main hall",
		Capacity:  capacity,
	}, nil, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.sessions.Create(context.Background(), sess))
	return sess
}

func (s *BookingServiceSuite) TestCreateBooking() {
	s.Run("books a member into an open session", func() {
		sess := s.seedSession(schedmodels.NewTimeOfDay(10, 0), schedmodels.NewTimeOfDay(11, 0), 2)

		booking, err := s.service.CreateBooking(s.ctx(), s.member.ID, sess.ID)
		s.Require().NoError(err)
		s.Equal(s.member.ID, booking.UserID)
		s.Equal(sess.ID, booking.SessionID)
		s.Equal("confirmed", string(booking.Status))

		events := s.notifier.all()
		s.Require().Len(events, 1)
		s.Equal(notification.EventBookingConfirmed, events[0].Type)
		s.Equal("ana@club.test", events[0].User.Email)
		s.Equal("2026-03-10", events[0].Training.Date)
		s.Equal("10:00", events[0].Training.Time)
	})

	s.Run("rejects missing session", func() {
		_, err := s.service.CreateBooking(s.ctx(), s.member.ID, id.SessionID(uuid.New()))
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("rejects unknown user", func() {
		sess := s.seedSession(schedmodels.NewTimeOfDay(12, 0), schedmodels.NewTimeOfDay(13, 0), 2)
		_, err := s.service.CreateBooking(s.ctx(), id.UserID(uuid.New()), sess.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("rejects cancelled session", func() {
		sess := s.seedSession(schedmodels.NewTimeOfDay(14, 0), schedmodels.NewTimeOfDay(15, 0), 2)
		sess.ApplyCancellation(s.now)
		s.Require().NoError(s.sessions.Update(context.Background(), sess))

		_, err := s.service.CreateBooking(s.ctx(), s.member.ID, sess.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Contains(err.Error(), "not active")
	})

	s.Run("rejects session that already started", func() {
		sess := s.seedSession(schedmodels.NewTimeOfDay(7, 0), schedmodels.NewTimeOfDay(8, 30), 2)

		_, err := s.service.CreateBooking(s.ctx(), s.member.ID, sess.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Contains(err.Error(), "already started")
	})

	s.Run("rejects duplicate booking", func() {
		sess := s.seedSession(schedmodels.NewTimeOfDay(16, 0), schedmodels.NewTimeOfDay(17, 0), 5)

		_, err := s.service.CreateBooking(s.ctx(), s.member.ID, sess.ID)
		s.Require().NoError(err)

		_, err = s.service.CreateBooking(s.ctx(), s.member.ID, sess.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Contains(err.Error(), "already booked")
	})

	s.Run("rejects overlapping booking on the same day", func() {
		first := s.seedSession(schedmodels.NewTimeOfDay(10, 0), schedmodels.NewTimeOfDay(11, 0), 5)
		overlapping := s.seedSession(schedmodels.NewTimeOfDay(10, 30), schedmodels.NewTimeOfDay(11, 30), 5)

		_, err := s.service.CreateBooking(s.ctx(), s.member.ID, first.ID)
		s.Require().NoError(err)

		_, err = s.service.CreateBooking(s.ctx(), s.member.ID, overlapping.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Contains(err.Error(), "overlapping")
	})

	s.Run("allows back-to-back sessions", func() {
		first := s.seedSession(schedmodels.NewTimeOfDay(10, 0), schedmodels.NewTimeOfDay(11, 0), 5)
		adjacent := s.seedSession(schedmodels.NewTimeOfDay(11, 0), schedmodels.NewTimeOfDay(12, 0), 5)

		_, err := s.service.CreateBooking(s.ctx(), s.member.ID, first.ID)
		s.Require().NoError(err)

		_, err = s.service.CreateBooking(s.ctx(), s.member.ID, adjacent.ID)
		s.NoError(err)
	})

	s.Run("overlap check ignores cancelled bookings", func() {
		first := s.seedSession(schedmodels.NewTimeOfDay(10, 0), schedmodels.NewTimeOfDay(11, 0), 5)
		overlapping := s.seedSession(schedmodels.NewTimeOfDay(10, 30), schedmodels.NewTimeOfDay(11, 30), 5)

		booking, err := s.service.CreateBooking(s.ctx(), s.member.ID, first.ID)
		s.Require().NoError(err)
		_, err = s.service.CancelBooking(s.ctx(), s.member.ID, booking.ID)
		s.Require().NoError(err)

		_, err = s.service.CreateBooking(s.ctx(), s.member.ID, overlapping.ID)
		s.NoError(err)
	})

	s.Run("rejects a full session", func() {
		sess := s.seedSession(schedmodels.NewTimeOfDay(18, 0), schedmodels.NewTimeOfDay(19, 0), 1)

		_, err := s.service.CreateBooking(s.ctx(), s.member.ID, sess.ID)
		s.Require().NoError(err)

		other := &usermodels.User{ID: id.UserID(uuid.New()), Email: "beto@club.test", FullName: "Beto Sosa", Role: usermodels.RoleMember}
		s.users.Seed(other)

		_, err = s.service.CreateBooking(s.ctx(), other.ID, sess.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Contains(err.Error(), "session is full")
	})

	s.Run("frees the seat after cancellation", func() {
		sess := s.seedSession(schedmodels.NewTimeOfDay(18, 0), schedmodels.NewTimeOfDay(19, 0), 1)

		booking, err := s.service.CreateBooking(s.ctx(), s.member.ID, sess.ID)
		s.Require().NoError(err)
		_, err = s.service.CancelBooking(s.ctx(), s.member.ID, booking.ID)
		s.Require().NoError(err)

		other := &usermodels.User{ID: id.UserID(uuid.New()), Email: "caro@club.test", FullName: "Caro Luna", Role: usermodels.RoleMember}
		s.users.Seed(other)

		_, err = s.service.CreateBooking(s.ctx(), other.ID, sess.ID)
		s.NoError(err)
	})
}

func (s *BookingServiceSuite) TestCancelBooking() {
	s.Run("cancels own booking before the notice window", func() {
		sess := s.seedSession(schedmodels.NewTimeOfDay(12, 0), schedmodels.NewTimeOfDay(13, 0), 3)
		booking, err := s.service.CreateBooking(s.ctx(), s.member.ID, sess.ID)
		s.Require().NoError(err)

		cancelled, err := s.service.CancelBooking(s.ctx(), s.member.ID, booking.ID)
		s.Require().NoError(err)
		s.Equal("cancelled", string(cancelled.Status))
		s.Require().NotNil(cancelled.CancelledAt)
		s.True(cancelled.CancelledAt.Equal(s.now))

		events := s.notifier.all()
		s.Require().Len(events, 2)
		s.Equal(notification.EventBookingCancelled, events[1].Type)
	})

	s.Run("rejects cancellation inside the notice window", func() {
		// Session starts 09:30, clock reads 08:00: only 90 minutes left.
		sess := s.seedSession(schedmodels.NewTimeOfDay(9, 30), schedmodels.NewTimeOfDay(10, 30), 3)
		booking, err := s.service.CreateBooking(s.ctx(), s.member.ID, sess.ID)
		s.Require().NoError(err)

		_, err = s.service.CancelBooking(s.ctx(), s.member.ID, booking.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Contains(err.Error(), "two hours before start")
	})

	s.Run("rejects cancelling an already cancelled booking", func() {
		sess := s.seedSession(schedmodels.NewTimeOfDay(12, 0), schedmodels.NewTimeOfDay(13, 0), 3)
		booking, err := s.service.CreateBooking(s.ctx(), s.member.ID, sess.ID)
		s.Require().NoError(err)

		_, err = s.service.CancelBooking(s.ctx(), s.member.ID, booking.ID)
		s.Require().NoError(err)

		_, err = s.service.CancelBooking(s.ctx(), s.member.ID, booking.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Contains(err.Error(), "not confirmed")
	})

	s.Run("rejects cancellation by another member", func() {
		sess := s.seedSession(schedmodels.NewTimeOfDay(12, 0), schedmodels.NewTimeOfDay(13, 0), 3)
		booking, err := s.service.CreateBooking(s.ctx(), s.member.ID, sess.ID)
		s.Require().NoError(err)

		stranger := id.UserID(uuid.New())
		_, err = s.service.CancelBooking(s.ctx(), stranger, booking.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("allows a trainer to cancel on behalf of a member", func() {
		sess := s.seedSession(schedmodels.NewTimeOfDay(12, 0), schedmodels.NewTimeOfDay(13, 0), 3)
		booking, err := s.service.CreateBooking(s.ctx(), s.member.ID, sess.ID)
		s.Require().NoError(err)

		ctx := requestcontext.WithCaller(s.ctx(), s.trainer.ID, string(usermodels.RoleTrainer))
		cancelled, err := s.service.CancelBooking(ctx, s.trainer.ID, booking.ID)
		s.Require().NoError(err)
		s.Equal("cancelled", string(cancelled.Status))
	})
}

func (s *BookingServiceSuite) TestPurgeBooking() {
	s.Run("soft-deletes regardless of the notice window", func() {
		sess := s.seedSession(schedmodels.NewTimeOfDay(8, 30), schedmodels.NewTimeOfDay(9, 30), 3)
		booking := s.mustBook(s.member.ID, sess.ID)

		err := s.service.PurgeBooking(s.ctx(), booking.ID)
		s.Require().NoError(err)

		_, err = s.service.GetBooking(s.ctx(), booking.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("produces no notification", func() {
		sess := s.seedSession(schedmodels.NewTimeOfDay(12, 0), schedmodels.NewTimeOfDay(13, 0), 3)
		booking := s.mustBook(s.member.ID, sess.ID)

		before := len(s.notifier.all())
		s.Require().NoError(s.service.PurgeBooking(s.ctx(), booking.ID))
		s.Len(s.notifier.all(), before)
	})
}

func (s *BookingServiceSuite) TestCountParticipants() {
	sess := s.seedSession(schedmodels.NewTimeOfDay(12, 0), schedmodels.NewTimeOfDay(13, 0), 5)
	s.mustBook(s.member.ID, sess.ID)

	count, err := s.service.CountParticipants(s.ctx(), sess.ID)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *BookingServiceSuite) TestListBookingsForUser() {
	sess := s.seedSession(schedmodels.NewTimeOfDay(12, 0), schedmodels.NewTimeOfDay(13, 0), 5)
	booking := s.mustBook(s.member.ID, sess.ID)
	_, err := s.service.CancelBooking(s.ctx(), s.member.ID, booking.ID)
	s.Require().NoError(err)

	// Cancelled bookings stay in the member's history.
	bookings, err := s.service.ListBookingsForUser(s.ctx(), s.member.ID)
	s.Require().NoError(err)
	s.Require().Len(bookings, 1)
	s.Equal("cancelled", string(bookings[0].Status))
}

func (s *BookingServiceSuite) mustBook(userID id.UserID, sessionID id.SessionID) *models.Booking {
	booking, err := s.service.CreateBooking(s.ctx(), userID, sessionID)
	s.Require().NoError(err)
	return booking
}
