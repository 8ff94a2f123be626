package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"turnero/internal/notification"
	"turnero/internal/transport/http/shared"
	id "turnero/pkg/domain"
	"turnero/pkg/requestcontext"
)

// NotificationLogReader exposes the delivery log for members.
type NotificationLogReader interface {
	ListByUser(ctx context.Context, userID id.UserID) ([]*notification.Log, error)
}

type NotificationHandler struct {
	logs   NotificationLogReader
	logger *slog.Logger
}

func NewNotificationHandler(logs NotificationLogReader, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{logs: logs, logger: logger}
}

type notificationResponse struct {
	ID        id.NotificationID      `json:"id"`
	EventType notification.EventType `json:"event_type"`
	SessionID id.SessionID           `json:"session_id"`
	Status    notification.LogStatus `json:"status"`
	Detail    string                 `json:"detail,omitempty"`
	CreatedAt string                 `json:"created_at"`
}

// handleListMyNotifications returns the caller's delivery log.
func (h *NotificationHandler) handleListMyNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	logs, err := h.logs.ListByUser(ctx, requestcontext.CallerID(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list notifications",
			"request_id", requestcontext.RequestID(ctx), "error", err.Error())
		shared.WriteError(w, err)
		return
	}

	out := make([]notificationResponse, 0, len(logs))
	for _, log := range logs {
		out = append(out, notificationResponse{
			ID:        log.ID,
			EventType: log.EventType,
			SessionID: log.SessionID,
			Status:    log.Status,
			Detail:    log.Detail,
			CreatedAt: log.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	shared.WriteJSON(w, http.StatusOK, out)
}
