package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"turnero/internal/platform/middleware"
)

// Handlers bundles the per-domain handlers the router mounts.
type Handlers struct {
	Bookings      *BookingHandler
	Sessions      *SessionHandler
	SlotConfigs   *SlotConfigHandler
	Notifications *NotificationHandler
}

// NewRouter wires all endpoints. Everything under the API requires a valid
// token; schedule-mutating routes additionally require a trainer or admin
// role. Health and metrics stay open for the platform.
func NewRouter(h Handlers, validator middleware.TokenValidator, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, logger))

		r.Post("/bookings", h.Bookings.handleCreateBooking)
		r.Post("/bookings/{bookingID}/cancel", h.Bookings.handleCancelBooking)
		r.Get("/bookings/me", h.Bookings.handleListMyBookings)
		r.Get("/notifications/me", h.Notifications.handleListMyNotifications)

		r.Get("/sessions", h.Sessions.handleListSessions)
		r.Get("/sessions/upcoming", h.Sessions.handleListUpcoming)
		r.Get("/sessions/{sessionID}", h.Sessions.handleGetSession)
		r.Get("/sessions/{sessionID}/participants", h.Bookings.handleListParticipants)
		r.Get("/sessions/{sessionID}/participants/count", h.Bookings.handleCountParticipants)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireScheduleManager)

			r.Post("/sessions", h.Sessions.handleCreateSession)
			r.Put("/sessions/{sessionID}", h.Sessions.handleUpdateSession)
			r.Post("/sessions/{sessionID}/cancel", h.Sessions.handleCancelSession)
			r.Delete("/sessions/{sessionID}", h.Sessions.handleDeleteSession)
			r.Delete("/bookings/{bookingID}", h.Bookings.handlePurgeBooking)

			r.Post("/slot-configurations", h.SlotConfigs.handleCreateConfig)
			r.Get("/slot-configurations", h.SlotConfigs.handleListConfigs)
			r.Get("/slot-configurations/{configID}", h.SlotConfigs.handleGetConfig)
			r.Put("/slot-configurations/{configID}", h.SlotConfigs.handleUpdateConfig)
			r.Delete("/slot-configurations/{configID}", h.SlotConfigs.handleDeleteConfig)
			r.Post("/slot-configurations/{configID}/generate", h.SlotConfigs.handleGenerate)
		})
	})

	return r
}
