package httptransport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"turnero/internal/notification"
	"turnero/internal/transport/http/mocks"
	id "turnero/pkg/domain"
	"turnero/pkg/requestcontext"
)

//go:generate mockgen -source=handlers_notification.go -destination=mocks/notification-mocks.go -package=mocks NotificationLogReader

type NotificationHandlerSuite struct {
	suite.Suite
	caller id.UserID
}

func TestNotificationHandlerSuite(t *testing.T) {
	suite.Run(t, new(NotificationHandlerSuite))
}

func (s *NotificationHandlerSuite) SetupTest() {
	s.caller = id.UserID(uuid.New())
}

func newNotificationRouter(t *testing.T) (chi.Router, *mocks.MockNotificationLogReader) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	logs := mocks.NewMockNotificationLogReader(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := NewNotificationHandler(logs, logger)
	r := chi.NewRouter()
	r.Get("/notifications/me", h.handleListMyNotifications)
	return r, logs
}

func (s *NotificationHandlerSuite) get(r chi.Router) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/notifications/me", nil)
	req = req.WithContext(requestcontext.WithCaller(req.Context(), s.caller, "member"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func (s *NotificationHandlerSuite) TestListMyNotifications() {
	s.Run("returns the caller's delivery log as DTOs", func() {
		r, logs := newNotificationRouter(s.T())
		sessionID := id.SessionID(uuid.New())
		logs.EXPECT().ListByUser(gomock.Any(), s.caller).Return([]*notification.Log{
			{
				ID:        id.NotificationID(uuid.New()),
				EventType: notification.EventBookingConfirmed,
				UserID:    s.caller,
				SessionID: sessionID,
				Status:    notification.StatusSent,
				Attempts:  2,
				CreatedAt: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
			},
			{
				ID:        id.NotificationID(uuid.New()),
				EventType: notification.EventReminder24h,
				UserID:    s.caller,
				SessionID: sessionID,
				Status:    notification.StatusFailed,
				Detail:    "webhook responded 503 Service Unavailable",
				CreatedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
			},
		}, nil)

		rec := s.get(r)
		s.Equal(http.StatusOK, rec.Code)

		var out []map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out))
		s.Require().Len(out, 2)
		s.Equal("BOOKING_CONFIRMED", out[0]["event_type"])
		s.Equal("sent", out[0]["status"])
		s.Equal("2026-03-10T08:00:00Z", out[0]["created_at"])
		// detail is omitted unless the delivery failed
		s.NotContains(out[0], "detail")
		s.Equal("webhook responded 503 Service Unavailable", out[1]["detail"])
		// attempt counts are delivery internals and stay out of the DTO
		s.NotContains(out[0], "attempts")
	})

	s.Run("serializes an empty log as an empty array", func() {
		r, logs := newNotificationRouter(s.T())
		logs.EXPECT().ListByUser(gomock.Any(), s.caller).Return(nil, nil)

		rec := s.get(r)
		s.Equal(http.StatusOK, rec.Code)
		s.Equal("[]\n", rec.Body.String())
	})

	s.Run("maps store failures to 500", func() {
		r, logs := newNotificationRouter(s.T())
		logs.EXPECT().ListByUser(gomock.Any(), s.caller).
			Return(nil, errors.New("pq: connection refused"))

		rec := s.get(r)
		s.Equal(http.StatusInternalServerError, rec.Code)
		s.NotContains(rec.Body.String(), "pq:")
	})
}
