package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	schedmodels "turnero/internal/scheduling/models"
	"turnero/internal/transport/http/shared"
	id "turnero/pkg/domain"
	dErrors "turnero/pkg/domain-errors"
	"turnero/pkg/requestcontext"
)

// SessionService defines the interface for session calendar operations.
type SessionService interface {
	CreateSession(ctx context.Context, sc schedmodels.Schedule) (*schedmodels.TrainingSession, error)
	UpdateSession(ctx context.Context, sessionID id.SessionID, sc schedmodels.Schedule) (*schedmodels.TrainingSession, error)
	CancelSession(ctx context.Context, sessionID id.SessionID) (*schedmodels.TrainingSession, error)
	DeleteSession(ctx context.Context, sessionID id.SessionID) error
	GetSession(ctx context.Context, sessionID id.SessionID) (*schedmodels.TrainingSession, error)
	ListSessions(ctx context.Context) ([]*schedmodels.TrainingSession, error)
	ListSessionsByTrainer(ctx context.Context, trainerID id.UserID) ([]*schedmodels.TrainingSession, error)
	ListSessionsByDate(ctx context.Context, date time.Time) ([]*schedmodels.TrainingSession, error)
	ListSessionsBetween(ctx context.Context, from, to time.Time) ([]*schedmodels.TrainingSession, error)
	ListUpcomingSessions(ctx context.Context) ([]*schedmodels.TrainingSession, error)
}

// SessionHandler handles session calendar endpoints.
type SessionHandler struct {
	sessions SessionService
	logger   *slog.Logger
}

func NewSessionHandler(sessions SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

// scheduleRequest is the wire form of a session's plannable fields.
type scheduleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TrainerID   string `json:"trainer_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
}

func (req scheduleRequest) toSchedule() (schedmodels.Schedule, error) {
	var sc schedmodels.Schedule

	trainerID, err := id.ParseUserID(req.TrainerID)
	if err != nil {
		return sc, err
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return sc, dErrors.New(dErrors.CodeValidation, "date must be YYYY-MM-DD")
	}
	start, err := schedmodels.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return sc, err
	}
	end, err := schedmodels.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return sc, err
	}

	sc.Name = req.Name
	sc.Description = req.Description
	sc.TrainerID = trainerID
	sc.Date = date
	sc.StartTime = start
	sc.EndTime = end
	sc.Location = req.Location
	sc.Capacity = req.Capacity
	return sc, nil
}

func (h *SessionHandler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sc, ok := h.decodeSchedule(w, r)
	if !ok {
		return
	}
	sess, err := h.sessions.CreateSession(ctx, sc)
	if err != nil {
		h.logFailure(ctx, "create session", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, sess)
}

func (h *SessionHandler) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, err := id.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	sc, ok := h.decodeSchedule(w, r)
	if !ok {
		return
	}
	sess, err := h.sessions.UpdateSession(ctx, sessionID, sc)
	if err != nil {
		h.logFailure(ctx, "update session", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, sess)
}

func (h *SessionHandler) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, err := id.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	sess, err := h.sessions.CancelSession(ctx, sessionID)
	if err != nil {
		h.logFailure(ctx, "cancel session", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, sess)
}

func (h *SessionHandler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, err := id.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.sessions.DeleteSession(ctx, sessionID); err != nil {
		h.logFailure(ctx, "delete session", err)
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, err := id.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	sess, err := h.sessions.GetSession(ctx, sessionID)
	if err != nil {
		h.logFailure(ctx, "get session", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, sess)
}

// handleListSessions supports ?trainer_id=, ?date= and ?from=&to= filters;
// without filters it returns the whole calendar.
func (h *SessionHandler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if raw := r.URL.Query().Get("trainer_id"); raw != "" {
		trainerID, err := id.ParseUserID(raw)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		h.respondList(ctx, w, "list sessions by trainer")(h.sessions.ListSessionsByTrainer(ctx, trainerID))
		return
	}
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "date must be YYYY-MM-DD"))
			return
		}
		h.respondList(ctx, w, "list sessions by date")(h.sessions.ListSessionsByDate(ctx, date))
		return
	}
	if rawFrom := r.URL.Query().Get("from"); rawFrom != "" {
		from, err := time.Parse("2006-01-02", rawFrom)
		if err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "from must be YYYY-MM-DD"))
			return
		}
		to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
		if err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "to must be YYYY-MM-DD"))
			return
		}
		h.respondList(ctx, w, "list sessions in range")(h.sessions.ListSessionsBetween(ctx, from, to))
		return
	}
	h.respondList(ctx, w, "list sessions")(h.sessions.ListSessions(ctx))
}

func (h *SessionHandler) handleListUpcoming(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.respondList(ctx, w, "list upcoming sessions")(h.sessions.ListUpcomingSessions(ctx))
}

func (h *SessionHandler) respondList(ctx context.Context, w http.ResponseWriter, op string) func([]*schedmodels.TrainingSession, error) {
	return func(sessions []*schedmodels.TrainingSession, err error) {
		if err != nil {
			h.logFailure(ctx, op, err)
			shared.WriteError(w, err)
			return
		}
		if sessions == nil {
			sessions = []*schedmodels.TrainingSession{}
		}
		shared.WriteJSON(w, http.StatusOK, sessions)
	}
}

func (h *SessionHandler) decodeSchedule(w http.ResponseWriter, r *http.Request) (schedmodels.Schedule, bool) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return schedmodels.Schedule{}, false
	}
	sc, err := req.toSchedule()
	if err != nil {
		shared.WriteError(w, err)
		return schedmodels.Schedule{}, false
	}
	return sc, true
}

func (h *SessionHandler) logFailure(ctx context.Context, op string, err error) {
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
