package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propertyops/maintenance-console/internal/builder"
	"github.com/propertyops/maintenance-console/internal/models"
	"github.com/propertyops/maintenance-console/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockGenerationAPI struct {
	generateFunc func(ctx context.Context, req models.ScheduleGenerationRequest) (*models.GenerateSchedulesResult, error)
	createFunc   func(ctx context.Context, req *models.CreateScheduleRequest) (*models.Schedule, error)
}

func (m *mockGenerationAPI) GenerateSchedules(ctx context.Context, req models.ScheduleGenerationRequest) (*models.GenerateSchedulesResult, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, req)
	}
	return &models.GenerateSchedulesResult{}, nil
}

func (m *mockGenerationAPI) CreateSchedule(ctx context.Context, req *models.CreateScheduleRequest) (*models.Schedule, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &models.Schedule{ScheduleID: "sched-1"}, nil
}

type mockInvalidator struct {
	invalidated []string
}

func (m *mockInvalidator) InvalidateReference(ctx context.Context, managerID string) {
	m.invalidated = append(m.invalidated, managerID)
}

func newSubmittableSession(t *testing.T) *Session {
	t.Helper()

	svc := newTestSessionService(time.Hour)
	session := svc.Create(uuid.New())

	_, err := session.ToggleCycle("cycle-1")
	require.NoError(t, err)
	_, err = session.ToggleBuilding("building-1")
	require.NoError(t, err)
	return session
}

func TestSubmit(t *testing.T) {
	log := logger.NewForTesting()

	t.Run("rejects submission with no cycles selected", func(t *testing.T) {
		svc := newTestSessionService(time.Hour)
		session := svc.Create(uuid.New())
		_, err := session.ToggleBuilding("building-1")
		require.NoError(t, err)

		gen := NewGenerationService(&mockGenerationAPI{}, nil, log, nil)

		_, err = gen.Submit(context.Background(), session)
		assert.ErrorIs(t, err, builder.ErrNoCycles)
		assert.Equal(t, models.GenerationIdle, session.Snapshot().State)
	})

	t.Run("rejects submission with no buildings selected", func(t *testing.T) {
		svc := newTestSessionService(time.Hour)
		session := svc.Create(uuid.New())
		_, err := session.ToggleCycle("cycle-1")
		require.NoError(t, err)

		gen := NewGenerationService(&mockGenerationAPI{}, nil, log, nil)

		_, err = gen.Submit(context.Background(), session)
		assert.ErrorIs(t, err, builder.ErrNoBuildings)
	})

	t.Run("success clears selections and invalidates reference cache", func(t *testing.T) {
		session := newSubmittableSession(t)
		invalidator := &mockInvalidator{}

		var captured models.ScheduleGenerationRequest
		api := &mockGenerationAPI{
			generateFunc: func(ctx context.Context, req models.ScheduleGenerationRequest) (*models.GenerateSchedulesResult, error) {
				captured = req
				return &models.GenerateSchedulesResult{
					Message: "2 schedules created",
					Data: &models.GenerateSchedulesData{
						CreatedSchedules: []models.Schedule{{ScheduleID: "s1"}, {ScheduleID: "s2"}},
					},
				}, nil
			},
		}

		gen := NewGenerationService(api, invalidator, log, nil)

		snap, err := gen.Submit(context.Background(), session)
		require.NoError(t, err)

		assert.Equal(t, models.GenerationSucceeded, snap.State)
		assert.Equal(t, "2 schedules created", snap.Message)
		assert.Empty(t, snap.CycleConfigs)
		assert.Empty(t, snap.BuildingDetails)
		assert.Equal(t, []string{session.ManagerID.String()}, invalidator.invalidated)

		require.Len(t, captured.CycleConfigs, 1)
		assert.Equal(t, "cycle-1", captured.CycleConfigs[0].CycleID)
		assert.Equal(t, []string{"building-1"}, captured.BuildingDetails)
	})

	t.Run("transport error fails the session and preserves selections", func(t *testing.T) {
		session := newSubmittableSession(t)
		invalidator := &mockInvalidator{}

		api := &mockGenerationAPI{
			generateFunc: func(ctx context.Context, req models.ScheduleGenerationRequest) (*models.GenerateSchedulesResult, error) {
				return nil, errors.New("connection refused")
			},
		}

		gen := NewGenerationService(api, invalidator, log, nil)

		snap, err := gen.Submit(context.Background(), session)
		require.NoError(t, err)

		assert.Equal(t, models.GenerationFailed, snap.State)
		assert.Equal(t, defaultFailureMessage, snap.Message)
		assert.Len(t, snap.CycleConfigs, 1)
		assert.Len(t, snap.BuildingDetails, 1)
		assert.Empty(t, invalidator.invalidated)
	})

	t.Run("accepted response with no created schedules is a failure", func(t *testing.T) {
		session := newSubmittableSession(t)

		api := &mockGenerationAPI{
			generateFunc: func(ctx context.Context, req models.ScheduleGenerationRequest) (*models.GenerateSchedulesResult, error) {
				return &models.GenerateSchedulesResult{Message: "no eligible buildings"}, nil
			},
		}

		gen := NewGenerationService(api, nil, log, nil)

		snap, err := gen.Submit(context.Background(), session)
		require.NoError(t, err)

		assert.Equal(t, models.GenerationFailed, snap.State)
		assert.Equal(t, "no eligible buildings", snap.Message)
		assert.Len(t, snap.CycleConfigs, 1)
	})

	t.Run("failed session can be resubmitted", func(t *testing.T) {
		session := newSubmittableSession(t)

		calls := 0
		api := &mockGenerationAPI{
			generateFunc: func(ctx context.Context, req models.ScheduleGenerationRequest) (*models.GenerateSchedulesResult, error) {
				calls++
				if calls == 1 {
					return nil, errors.New("transient")
				}
				return &models.GenerateSchedulesResult{
					Data: &models.GenerateSchedulesData{CreatedSchedules: []models.Schedule{{ScheduleID: "s1"}}},
				}, nil
			},
		}

		gen := NewGenerationService(api, nil, log, nil)

		snap, err := gen.Submit(context.Background(), session)
		require.NoError(t, err)
		assert.Equal(t, models.GenerationFailed, snap.State)

		snap, err = gen.Submit(context.Background(), session)
		require.NoError(t, err)
		assert.Equal(t, models.GenerationSucceeded, snap.State)
	})
}

func TestCreateSchedule(t *testing.T) {
	log := logger.NewForTesting()
	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	validRequest := func() *models.CreateScheduleRequest {
		return &models.CreateScheduleRequest{
			ScheduleName:      "Quarterly HVAC check",
			CycleID:           "cycle-1",
			BuildingDetailIDs: []string{"building-1"},
			StartDate:         today,
			EndDate:           tomorrow,
		}
	}

	t.Run("creates schedule with valid dates", func(t *testing.T) {
		invalidator := &mockInvalidator{}
		api := &mockGenerationAPI{
			createFunc: func(ctx context.Context, req *models.CreateScheduleRequest) (*models.Schedule, error) {
				return &models.Schedule{ScheduleID: "sched-9", ScheduleName: req.ScheduleName}, nil
			},
		}

		gen := NewGenerationService(api, invalidator, log, nil)

		schedule, fieldErrs, err := gen.CreateSchedule(context.Background(), "mgr-1", validRequest())
		require.NoError(t, err)
		assert.Empty(t, fieldErrs)
		assert.Equal(t, "sched-9", schedule.ScheduleID)
		assert.Equal(t, []string{"mgr-1"}, invalidator.invalidated)
	})

	t.Run("start date today is allowed", func(t *testing.T) {
		gen := NewGenerationService(&mockGenerationAPI{}, nil, log, nil)

		req := validRequest()
		req.EndDate = today

		_, fieldErrs, err := gen.CreateSchedule(context.Background(), "mgr-1", req)
		require.NoError(t, err)
		assert.Empty(t, fieldErrs)
	})

	t.Run("rejects start date in the past", func(t *testing.T) {
		gen := NewGenerationService(&mockGenerationAPI{}, nil, log, nil)

		req := validRequest()
		req.StartDate = yesterday

		_, fieldErrs, err := gen.CreateSchedule(context.Background(), "mgr-1", req)
		require.NoError(t, err)
		require.Len(t, fieldErrs, 1)
		assert.Equal(t, "start_date", fieldErrs[0].Field)
	})

	t.Run("rejects end date before start date", func(t *testing.T) {
		gen := NewGenerationService(&mockGenerationAPI{}, nil, log, nil)

		req := validRequest()
		req.StartDate = tomorrow
		req.EndDate = today

		_, fieldErrs, err := gen.CreateSchedule(context.Background(), "mgr-1", req)
		require.NoError(t, err)
		require.Len(t, fieldErrs, 1)
		assert.Equal(t, "end_date", fieldErrs[0].Field)
	})
}
