package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/propertyops/maintenance-console/internal/models"
	"github.com/propertyops/maintenance-console/internal/services"
	"github.com/propertyops/maintenance-console/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockGenerationAPIHandler struct {
	generateFunc func(ctx context.Context, req models.ScheduleGenerationRequest) (*models.GenerateSchedulesResult, error)
}

func (m *mockGenerationAPIHandler) GenerateSchedules(ctx context.Context, req models.ScheduleGenerationRequest) (*models.GenerateSchedulesResult, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, req)
	}
	return &models.GenerateSchedulesResult{}, nil
}

func (m *mockGenerationAPIHandler) CreateSchedule(ctx context.Context, req *models.CreateScheduleRequest) (*models.Schedule, error) {
	return &models.Schedule{ScheduleID: "sched-1"}, nil
}

func newSessionHandlerFixture(api *mockGenerationAPIHandler) (*SessionHandler, *services.SessionService) {
	log := logger.NewForTesting()
	sessions := services.NewSessionService(log, nil, time.Hour)
	generation := services.NewGenerationService(api, nil, log, nil)
	return NewSessionHandler(log, sessions, generation), sessions
}

func authedRequest(method, target string, body []byte, managerID uuid.UUID, params map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	ctx := context.WithValue(req.Context(), "manager_id", managerID)

	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)

	return req.WithContext(ctx)
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) models.SessionSnapshot {
	t.Helper()
	var snap models.SessionSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	return snap
}

func TestSessionHandlerLifecycle(t *testing.T) {
	managerID := uuid.New()
	handler, _ := newSessionHandlerFixture(&mockGenerationAPIHandler{
		generateFunc: func(ctx context.Context, req models.ScheduleGenerationRequest) (*models.GenerateSchedulesResult, error) {
			return &models.GenerateSchedulesResult{
				Message: "1 schedule created",
				Data: &models.GenerateSchedulesData{
					CreatedSchedules: []models.Schedule{{ScheduleID: "s1"}},
				},
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Create(rec, authedRequest(http.MethodPost, "/api/v1/sessions", nil, managerID, nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	snap := decodeSnapshot(t, rec)
	sessionID := snap.SessionID.String()
	assert.Equal(t, models.GenerationIdle, snap.State)

	params := func(extra map[string]string) map[string]string {
		p := map[string]string{"id": sessionID}
		for k, v := range extra {
			p[k] = v
		}
		return p
	}

	t.Run("generate without selections is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.Generate(rec, authedRequest(http.MethodPost, "/generate", nil, managerID, params(nil)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("toggle cycle installs default configuration", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ToggleCycle(rec, authedRequest(http.MethodPost, "/toggle", nil, managerID, params(map[string]string{"cycleID": "cycle-1"})))
		require.Equal(t, http.StatusOK, rec.Code)

		snap := decodeSnapshot(t, rec)
		require.Len(t, snap.CycleConfigs, 1)
		assert.Equal(t, "cycle-1", snap.CycleConfigs[0].CycleID)
		assert.Equal(t, 1, snap.CycleConfigs[0].DurationDays)
		assert.True(t, snap.CycleConfigs[0].AutoCreateTasks)
	})

	t.Run("patch cycle configuration", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{"duration_days": 3})
		rec := httptest.NewRecorder()
		handler.UpdateCycle(rec, authedRequest(http.MethodPatch, "/cycles", body, managerID, params(map[string]string{"cycleID": "cycle-1"})))
		require.Equal(t, http.StatusOK, rec.Code)

		snap := decodeSnapshot(t, rec)
		assert.Equal(t, 3, snap.CycleConfigs[0].DurationDays)
	})

	t.Run("patching an unselected cycle is rejected", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{"duration_days": 3})
		rec := httptest.NewRecorder()
		handler.UpdateCycle(rec, authedRequest(http.MethodPatch, "/cycles", body, managerID, params(map[string]string{"cycleID": "never-selected"})))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("generate succeeds and clears selections", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ToggleBuilding(rec, authedRequest(http.MethodPost, "/toggle", nil, managerID, params(map[string]string{"buildingID": "building-1"})))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		handler.Generate(rec, authedRequest(http.MethodPost, "/generate", nil, managerID, params(nil)))
		require.Equal(t, http.StatusOK, rec.Code)

		snap := decodeSnapshot(t, rec)
		assert.Equal(t, models.GenerationSucceeded, snap.State)
		assert.Equal(t, "1 schedule created", snap.Message)
		assert.Empty(t, snap.CycleConfigs)
		assert.Empty(t, snap.BuildingDetails)
	})

	t.Run("close discards the session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.Close(rec, authedRequest(http.MethodDelete, "/sessions", nil, managerID, params(nil)))
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = httptest.NewRecorder()
		handler.Get(rec, authedRequest(http.MethodGet, "/sessions", nil, managerID, params(nil)))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSessionHandlerAuthorization(t *testing.T) {
	handler, sessions := newSessionHandlerFixture(&mockGenerationAPIHandler{})
	owner := uuid.New()
	session := sessions.Create(owner)

	t.Run("missing manager context is unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.Create(rec, authedRequest(http.MethodPost, "/sessions", nil, uuid.Nil, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("foreign session is forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		params := map[string]string{"id": session.ID.String()}
		handler.Get(rec, authedRequest(http.MethodGet, "/sessions", nil, uuid.New(), params))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("malformed session id is a bad request", func(t *testing.T) {
		rec := httptest.NewRecorder()
		params := map[string]string{"id": "not-a-uuid"}
		handler.Get(rec, authedRequest(http.MethodGet, "/sessions", nil, owner, params))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
