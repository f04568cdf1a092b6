package services

import (
	"context"
	"time"

	"github.com/propertyops/maintenance-console/internal/models"
	"github.com/propertyops/maintenance-console/internal/validation"
	"github.com/propertyops/maintenance-console/pkg/logger"
	"github.com/propertyops/maintenance-console/pkg/metrics"
)

// GenerationAPI is the slice of the facility client the generation service
// needs.
type GenerationAPI interface {
	GenerateSchedules(ctx context.Context, req models.ScheduleGenerationRequest) (*models.GenerateSchedulesResult, error)
	CreateSchedule(ctx context.Context, req *models.CreateScheduleRequest) (*models.Schedule, error)
}

// ReferenceInvalidator drops cached reference data after schedules change.
type ReferenceInvalidator interface {
	InvalidateReference(ctx context.Context, managerID string)
}

const defaultFailureMessage = "schedule generation failed"

// GenerationService submits schedule work to the facility backend: bulk
// generation from a session's selections, and direct single-schedule
// creation.
type GenerationService struct {
	api     GenerationAPI
	cache   ReferenceInvalidator
	logger  *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewGenerationService creates a generation service.
func NewGenerationService(api GenerationAPI, cache ReferenceInvalidator, log *logger.Logger, m *metrics.Metrics) *GenerationService {
	return &GenerationService{
		api:     api,
		cache:   cache,
		logger:  log,
		metrics: m,
		now:     time.Now,
	}
}

// Submit runs a session's selections through bulk generation. Guard
// failures are returned as errors and leave the session untouched; once
// the request is on the wire, the outcome lands in the session state
// instead. Success means at least one schedule was created; an accepted
// request that created nothing is a failure like any other.
func (s *GenerationService) Submit(ctx context.Context, session *Session) (models.SessionSnapshot, error) {
	req, err := session.beginSubmit()
	if err != nil {
		return models.SessionSnapshot{}, err
	}

	start := s.now()
	result, callErr := s.api.GenerateSchedules(ctx, req)
	if s.metrics != nil {
		s.metrics.GenerationDuration.Observe(s.now().Sub(start).Seconds())
	}

	switch {
	case callErr != nil:
		s.logger.WithError(callErr).Errorf("Schedule generation failed for session %s", session.ID)
		session.finishSubmit(false, defaultFailureMessage)
		s.recordOutcome("error")

	case len(result.Created()) == 0:
		message := result.Message
		if message == "" {
			message = defaultFailureMessage
		}
		s.logger.Warnf("Schedule generation created no schedules for session %s", session.ID)
		session.finishSubmit(false, message)
		s.recordOutcome("empty")

	default:
		created := result.Created()
		message := result.Message
		if message == "" {
			message = "schedules generated"
		}
		session.finishSubmit(true, message)
		s.recordOutcome("success")
		if s.cache != nil {
			s.cache.InvalidateReference(ctx, session.ManagerID.String())
		}
		s.logger.Info("Schedules generated",
			logger.String("session_id", session.ID.String()),
			logger.Int("created", len(created)),
		)
	}

	return session.Snapshot(), nil
}

// CreateSchedule creates one schedule with an explicit date range. The
// date checks run before the request leaves the service: the start must
// not be in the past and the end must not precede the start.
func (s *GenerationService) CreateSchedule(ctx context.Context, managerID string, req *models.CreateScheduleRequest) (*models.Schedule, []validation.FieldError, error) {
	if fieldErrs := validation.ValidateDateRange(s.now(), req.StartDate, req.EndDate); len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	schedule, err := s.api.CreateSchedule(ctx, req)
	if err != nil {
		s.logger.WithError(err).Errorf("Schedule creation failed for cycle %s", req.CycleID)
		return nil, nil, err
	}

	if s.cache != nil {
		s.cache.InvalidateReference(ctx, managerID)
	}
	s.logger.Info("Schedule created",
		logger.String("schedule_id", schedule.ScheduleID),
		logger.String("cycle_id", req.CycleID),
	)
	return schedule, nil, nil
}

func (s *GenerationService) recordOutcome(result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.GenerationsTotal.WithLabelValues(result).Inc()
}
