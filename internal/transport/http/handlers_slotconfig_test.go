package httptransport

import (
	"bytes"
	"encoding/json"
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

	schedmodels "turnero/internal/scheduling/models"
	schedservice "turnero/internal/scheduling/service"
	"turnero/internal/transport/http/mocks"
	id "turnero/pkg/domain"
	dErrors "turnero/pkg/domain-errors"
)

//go:generate mockgen -source=handlers_slotconfig.go -destination=mocks/slotconfig-mocks.go -package=mocks SlotConfigService

type SlotConfigHandlerSuite struct {
	suite.Suite
	configID id.SlotConfigID
}

func TestSlotConfigHandlerSuite(t *testing.T) {
	suite.Run(t, new(SlotConfigHandlerSuite))
}

func (s *SlotConfigHandlerSuite) SetupTest() {
	s.configID = id.SlotConfigID(uuid.New())
}

func newSlotConfigRouter(t *testing.T) (chi.Router, *mocks.MockSlotConfigService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	service := mocks.NewMockSlotConfigService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := NewSlotConfigHandler(service, logger)
	r := chi.NewRouter()
	r.Post("/slot-configurations", h.handleCreateConfig)
	r.Put("/slot-configurations/{configID}", h.handleUpdateConfig)
	r.Delete("/slot-configurations/{configID}", h.handleDeleteConfig)
	r.Get("/slot-configurations/{configID}", h.handleGetConfig)
	r.Get("/slot-configurations", h.handleListConfigs)
	r.Post("/slot-configurations/{configID}/generate", h.handleGenerate)
	return r, service
}

func (s *SlotConfigHandlerSuite) do(r chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func (s *SlotConfigHandlerSuite) configBody() map[string]any {
	return map[string]any{
		"name":       "Morning circuit",
		"recurrence": "weekly",
		"day_filter": "1,3",
		"start_date": "2026-03-11",
		"end_date":   "2026-03-24",
	}
}

func (s *SlotConfigHandlerSuite) TestCreateConfiguration() {
	s.Run("parses the date range and returns 201", func() {
		r, service := newSlotConfigRouter(s.T())
		service.EXPECT().CreateConfiguration(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, change schedservice.ConfigChange) (*schedmodels.SlotConfiguration, error) {
				s.Equal("Morning circuit", change.Name)
				s.Equal(schedmodels.RecurrenceWeekly, change.Recurrence)
				s.Equal("2026-03-11", change.StartDate.Format("2006-01-02"))
				s.Equal("2026-03-24", change.EndDate.Format("2006-01-02"))
				return &schedmodels.SlotConfiguration{ID: s.configID, Name: change.Name}, nil
			})

		rec := s.do(r, http.MethodPost, "/slot-configurations", s.configBody())
		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("rejects a malformed start date", func() {
		r, _ := newSlotConfigRouter(s.T())
		body := s.configBody()
		body["start_date"] = "next monday"

		rec := s.do(r, http.MethodPost, "/slot-configurations", body)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "start_date")
	})

	s.Run("maps an unknown recurrence to 400", func() {
		r, service := newSlotConfigRouter(s.T())
		service.EXPECT().CreateConfiguration(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeValidation, "unknown recurrence"))

		rec := s.do(r, http.MethodPost, "/slot-configurations", s.configBody())
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *SlotConfigHandlerSuite) TestConfigurationRoutes() {
	s.Run("get maps unknown configurations to 404", func() {
		r, service := newSlotConfigRouter(s.T())
		service.EXPECT().GetConfiguration(gomock.Any(), s.configID).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "slot configuration not found"))

		rec := s.do(r, http.MethodGet, "/slot-configurations/"+s.configID.String(), nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("update round-trips through the service", func() {
		r, service := newSlotConfigRouter(s.T())
		service.EXPECT().UpdateConfiguration(gomock.Any(), s.configID, gomock.Any()).
			Return(&schedmodels.SlotConfiguration{ID: s.configID, Name: "Morning circuit"}, nil)

		rec := s.do(r, http.MethodPut, "/slot-configurations/"+s.configID.String(), s.configBody())
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("delete returns 204", func() {
		r, service := newSlotConfigRouter(s.T())
		service.EXPECT().DeleteConfiguration(gomock.Any(), s.configID).Return(nil)

		rec := s.do(r, http.MethodDelete, "/slot-configurations/"+s.configID.String(), nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("list serializes nil as an empty array", func() {
		r, service := newSlotConfigRouter(s.T())
		service.EXPECT().ListConfigurations(gomock.Any()).Return(nil, nil)

		rec := s.do(r, http.MethodGet, "/slot-configurations", nil)
		s.Equal(http.StatusOK, rec.Code)
		s.Equal("[]\n", rec.Body.String())
	})
}

func (s *SlotConfigHandlerSuite) TestGenerate() {
	trainerID := id.UserID(uuid.New())
	template := map[string]any{
		"name":       "Morning circuit",
		"trainer_id": trainerID.String(),
		"start_time": "08:00",
		"end_time":   "09:00",
		"location":   "Main hall",
		"capacity":   10,
	}

	s.Run("reports created sessions and skipped dates", func() {
		r, service := newSlotConfigRouter(s.T())
		created := []*schedmodels.TrainingSession{
			{ID: id.SessionID(uuid.New()), Name: "Morning circuit"},
			{ID: id.SessionID(uuid.New()), Name: "Morning circuit"},
		}
		skipped := []time.Time{time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)}
		service.EXPECT().GenerateSessions(gomock.Any(), s.configID, gomock.Any()).
			DoAndReturn(func(_ any, _ id.SlotConfigID, tmpl schedmodels.Schedule) (*schedservice.GenerationResult, error) {
				s.Equal(trainerID, tmpl.TrainerID)
				s.Equal(schedmodels.NewTimeOfDay(8, 0), tmpl.StartTime)
				s.True(tmpl.Date.IsZero())
				return &schedservice.GenerationResult{Created: created, Skipped: skipped}, nil
			})

		rec := s.do(r, http.MethodPost, "/slot-configurations/"+s.configID.String()+"/generate", template)
		s.Equal(http.StatusCreated, rec.Code)

		var resp struct {
			Created []json.RawMessage `json:"created"`
			Skipped []string          `json:"skipped"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Len(resp.Created, 2)
		s.Equal([]string{"2026-03-16"}, resp.Skipped)
	})

	s.Run("returns empty arrays when nothing was generated", func() {
		r, service := newSlotConfigRouter(s.T())
		service.EXPECT().GenerateSessions(gomock.Any(), s.configID, gomock.Any()).
			Return(&schedservice.GenerationResult{}, nil)

		rec := s.do(r, http.MethodPost, "/slot-configurations/"+s.configID.String()+"/generate", template)
		s.Equal(http.StatusCreated, rec.Code)
		s.JSONEq(`{"created": [], "skipped": []}`, rec.Body.String())
	})

	s.Run("rejects a template with a bad trainer id", func() {
		r, _ := newSlotConfigRouter(s.T())
		bad := map[string]any{
			"name":       "Morning circuit",
			"trainer_id": "someone",
			"start_time": "08:00",
			"end_time":   "09:00",
		}

		rec := s.do(r, http.MethodPost, "/slot-configurations/"+s.configID.String()+"/generate", bad)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("maps an invalid template to 400", func() {
		r, service := newSlotConfigRouter(s.T())
		service.EXPECT().GenerateSessions(gomock.Any(), s.configID, gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeValidation, "name is required"))

		rec := s.do(r, http.MethodPost, "/slot-configurations/"+s.configID.String()+"/generate", template)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
