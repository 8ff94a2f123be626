package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	schedmodels "turnero/internal/scheduling/models"
	schedservice "turnero/internal/scheduling/service"
	"turnero/internal/transport/http/shared"
	id "turnero/pkg/domain"
	dErrors "turnero/pkg/domain-errors"
	"turnero/pkg/requestcontext"
)

// SlotConfigService defines the interface for slot configuration and
// generation operations.
type SlotConfigService interface {
	CreateConfiguration(ctx context.Context, change schedservice.ConfigChange) (*schedmodels.SlotConfiguration, error)
	UpdateConfiguration(ctx context.Context, configID id.SlotConfigID, change schedservice.ConfigChange) (*schedmodels.SlotConfiguration, error)
	DeleteConfiguration(ctx context.Context, configID id.SlotConfigID) error
	GetConfiguration(ctx context.Context, configID id.SlotConfigID) (*schedmodels.SlotConfiguration, error)
	ListConfigurations(ctx context.Context) ([]*schedmodels.SlotConfiguration, error)
	GenerateSessions(ctx context.Context, configID id.SlotConfigID, template schedmodels.Schedule) (*schedservice.GenerationResult, error)
}

// SlotConfigHandler handles slot configuration endpoints. All routes are
// schedule-manager only.
type SlotConfigHandler struct {
	configs SlotConfigService
	logger  *slog.Logger
}

func NewSlotConfigHandler(configs SlotConfigService, logger *slog.Logger) *SlotConfigHandler {
	return &SlotConfigHandler{configs: configs, logger: logger}
}

type configRequest struct {
	Name       string `json:"name"`
	Recurrence string `json:"recurrence"`
	DayFilter  string `json:"day_filter"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (req configRequest) toChange() (schedservice.ConfigChange, error) {
	var change schedservice.ConfigChange

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return change, dErrors.New(dErrors.CodeValidation, "start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return change, dErrors.New(dErrors.CodeValidation, "end_date must be YYYY-MM-DD")
	}

	change.Name = req.Name
	change.Recurrence = schedmodels.Recurrence(req.Recurrence)
	change.DayFilter = req.DayFilter
	change.StartDate = start
	change.EndDate = end
	return change, nil
}

// generateRequest is the per-date session template of a generation run.
type generateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TrainerID   string `json:"trainer_id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
}

func (req generateRequest) toTemplate() (schedmodels.Schedule, error) {
	var sc schedmodels.Schedule

	trainerID, err := id.ParseUserID(req.TrainerID)
	if err != nil {
		return sc, err
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
	sc.StartTime = start
	sc.EndTime = end
	sc.Location = req.Location
	sc.Capacity = req.Capacity
	return sc, nil
}

type generateResponse struct {
	Created []*schedmodels.TrainingSession `json:"created"`
	Skipped []string                       `json:"skipped"`
}

func (h *SlotConfigHandler) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req configRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	change, err := req.toChange()
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	config, err := h.configs.CreateConfiguration(ctx, change)
	if err != nil {
		h.logFailure(ctx, "create slot configuration", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, config)
}

func (h *SlotConfigHandler) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	configID, err := id.ParseSlotConfigID(chi.URLParam(r, "configID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req configRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	change, err := req.toChange()
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	config, err := h.configs.UpdateConfiguration(ctx, configID, change)
	if err != nil {
		h.logFailure(ctx, "update slot configuration", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, config)
}

func (h *SlotConfigHandler) handleDeleteConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	configID, err := id.ParseSlotConfigID(chi.URLParam(r, "configID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.configs.DeleteConfiguration(ctx, configID); err != nil {
		h.logFailure(ctx, "delete slot configuration", err)
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SlotConfigHandler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	configID, err := id.ParseSlotConfigID(chi.URLParam(r, "configID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	config, err := h.configs.GetConfiguration(ctx, configID)
	if err != nil {
		h.logFailure(ctx, "get slot configuration", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, config)
}

func (h *SlotConfigHandler) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	configs, err := h.configs.ListConfigurations(ctx)
	if err != nil {
		h.logFailure(ctx, "list slot configurations", err)
		shared.WriteError(w, err)
		return
	}
	if configs == nil {
		configs = []*schedmodels.SlotConfiguration{}
	}
	shared.WriteJSON(w, http.StatusOK, configs)
}

func (h *SlotConfigHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	configID, err := id.ParseSlotConfigID(chi.URLParam(r, "configID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	template, err := req.toTemplate()
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	result, err := h.configs.GenerateSessions(ctx, configID, template)
	if err != nil {
		h.logFailure(ctx, "generate sessions", err)
		shared.WriteError(w, err)
		return
	}

	resp := generateResponse{Created: result.Created, Skipped: []string{}}
	if resp.Created == nil {
		resp.Created = []*schedmodels.TrainingSession{}
	}
	for _, date := range result.Skipped {
		resp.Skipped = append(resp.Skipped, date.Format("2006-01-02"))
	}
	shared.WriteJSON(w, http.StatusCreated, resp)
}

func (h *SlotConfigHandler) logFailure(ctx context.Context, op string, err error) {
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
