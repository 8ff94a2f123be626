package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	bookingmodels "turnero/internal/booking/models"
	"turnero/internal/transport/http/shared"
	id "turnero/pkg/domain"
	dErrors "turnero/pkg/domain-errors"
	"turnero/pkg/requestcontext"
)

// BookingService defines the interface for booking operations.
type BookingService interface {
	CreateBooking(ctx context.Context, userID id.UserID, sessionID id.SessionID) (*bookingmodels.Booking, error)
	CancelBooking(ctx context.Context, callerID id.UserID, bookingID id.BookingID) (*bookingmodels.Booking, error)
	PurgeBooking(ctx context.Context, bookingID id.BookingID) error
	ListBookingsForUser(ctx context.Context, userID id.UserID) ([]*bookingmodels.Booking, error)
	ListParticipants(ctx context.Context, sessionID id.SessionID) ([]*bookingmodels.Booking, error)
	CountParticipants(ctx context.Context, sessionID id.SessionID) (int, error)
}

// BookingHandler handles booking endpoints.
type BookingHandler struct {
	bookings BookingService
	logger   *slog.Logger
}

func NewBookingHandler(bookings BookingService, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{bookings: bookings, logger: logger}
}

type createBookingRequest struct {
	SessionID string `json:"session_id"`
}

// handleCreateBooking books the authenticated caller into a session.
func (h *BookingHandler) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	sessionID, err := id.ParseSessionID(req.SessionID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	booking, err := h.bookings.CreateBooking(ctx, requestcontext.CallerID(ctx), sessionID)
	if err != nil {
		h.logFailure(ctx, "create booking", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bookingID, err := id.ParseBookingID(chi.URLParam(r, "bookingID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	booking, err := h.bookings.CancelBooking(ctx, requestcontext.CallerID(ctx), bookingID)
	if err != nil {
		h.logFailure(ctx, "cancel booking", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, booking)
}

// handlePurgeBooking removes a booking from the books entirely. Reached
// only through the schedule-manager routes.
func (h *BookingHandler) handlePurgeBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bookingID, err := id.ParseBookingID(chi.URLParam(r, "bookingID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.bookings.PurgeBooking(ctx, bookingID); err != nil {
		h.logFailure(ctx, "purge booking", err)
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookingHandler) handleListMyBookings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bookings, err := h.bookings.ListBookingsForUser(ctx, requestcontext.CallerID(ctx))
	if err != nil {
		h.logFailure(ctx, "list bookings", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, err := id.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	bookings, err := h.bookings.ListParticipants(ctx, sessionID)
	if err != nil {
		h.logFailure(ctx, "list participants", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) handleCountParticipants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, err := id.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	count, err := h.bookings.CountParticipants(ctx, sessionID)
	if err != nil {
		h.logFailure(ctx, "count participants", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *BookingHandler) logFailure(ctx context.Context, op string, err error) {
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"error", err.Error(),
	}
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "failed to "+op, attrs...)
		return
	}
	h.logger.WarnContext(ctx, op+" rejected", attrs...)
}
