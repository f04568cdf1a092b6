package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/propertyops/maintenance-console/internal/jobs"
	"github.com/propertyops/maintenance-console/internal/models"
	"github.com/propertyops/maintenance-console/internal/pagination"
	"github.com/propertyops/maintenance-console/pkg/logger"
	"github.com/propertyops/maintenance-console/pkg/metrics"
)

var (
	// ErrUnknownJob means the job has never been listed through the
	// console, so there is no observed status to check the action against.
	ErrUnknownJob = errors.New("job not found in listing, refresh the job list")
	// ErrConfirmationRequired guards cancellation behind an explicit
	// confirmed flag. A cancelled job cannot be resumed.
	ErrConfirmationRequired = errors.New("cancellation requires confirmation")
)

// IllegalActionError reports an action requested against a status that
// does not allow it.
type IllegalActionError struct {
	Action models.JobAction
	Status models.JobStatus
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("action %q is not available for a job in status %q", e.Action, e.Status)
}

// JobAPI is the slice of the facility client the job service needs.
type JobAPI interface {
	FetchScheduleJobs(ctx context.Context, scheduleID string, page, limit int) (*models.ScheduleJobPage, error)
	UpdateScheduleJob(ctx context.Context, jobID string, status models.JobStatus) (*models.ScheduleJob, error)
	SendMaintenanceEmail(ctx context.Context, jobID string) error
}

// JobCache caches fetched job pages and the per-job statuses they carried.
type JobCache interface {
	GetPage(ctx context.Context, scheduleID string, page, limit int) (*models.ScheduleJobPage, bool)
	SetPage(ctx context.Context, scheduleID string, page, limit int, result *models.ScheduleJobPage)
	JobStatus(ctx context.Context, scheduleID, jobID string) (models.JobStatus, bool)
	Invalidate(ctx context.Context, scheduleID string)
}

// JobListing is one delivered page of jobs, decorated with the per-status
// actions and the pagination window for rendering.
type JobListing struct {
	Data       []JobItem          `json:"data"`
	Pagination models.Pagination  `json:"pagination"`
	Window     []pagination.Entry `json:"window"`
}

// JobItem is a schedule job together with the actions its status allows.
type JobItem struct {
	models.ScheduleJob
	AvailableActions []models.JobAction `json:"availableActions"`
}

// JobService lists schedule jobs and executes lifecycle actions on them.
// Listing is read-through cached; every successful mutation invalidates
// the schedule's cache instead of patching it, so the next listing shows
// the backend's truth, including transitions the console never requested.
type JobService struct {
	api     JobAPI
	cache   JobCache
	logger  *logger.Logger
	metrics *metrics.Metrics

	mu    sync.Mutex
	views map[string]*jobs.ListView
}

// NewJobService creates a job service.
func NewJobService(api JobAPI, cache JobCache, log *logger.Logger, m *metrics.Metrics) *JobService {
	return &JobService{
		api:     api,
		cache:   cache,
		logger:  log,
		metrics: m,
		views:   make(map[string]*jobs.ListView),
	}
}

func (s *JobService) view(scheduleID string) *jobs.ListView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.views[scheduleID]
	if !ok {
		v = jobs.NewListView()
		s.views[scheduleID] = v
	}
	return v
}

// ListJobs fetches one page of a schedule's jobs. The effective page may
// differ from the requested one: changing the limit restarts browsing at
// page one. A fetch superseded by a newer request for the same schedule
// is discarded and the newest delivered page is returned instead.
func (s *JobService) ListJobs(ctx context.Context, scheduleID string, page, limit int) (*JobListing, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	view := s.view(scheduleID)
	key := view.Begin(page, limit)

	result, err := s.fetchPage(ctx, scheduleID, key.Page, key.Limit)
	if err != nil {
		return nil, err
	}

	if !view.Deliver(key, result) {
		s.logger.Debugf("Discarded superseded job page %d for schedule %s", key.Page, scheduleID)
		if current := view.Current(); current != nil {
			result = current
		}
	}

	return decorate(result), nil
}

func (s *JobService) fetchPage(ctx context.Context, scheduleID string, page, limit int) (*models.ScheduleJobPage, error) {
	if s.cache != nil {
		if cached, ok := s.cache.GetPage(ctx, scheduleID, page, limit); ok {
			s.recordCache("jobs", true)
			return cached, nil
		}
		s.recordCache("jobs", false)
	}

	result, err := s.api.FetchScheduleJobs(ctx, scheduleID, page, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetPage(ctx, scheduleID, page, limit, result)
	}
	return result, nil
}

func decorate(page *models.ScheduleJobPage) *JobListing {
	items := make([]JobItem, 0, len(page.Data))
	for _, job := range page.Data {
		items = append(items, JobItem{
			ScheduleJob:      job,
			AvailableActions: job.Status.AvailableActions(),
		})
	}
	return &JobListing{
		Data:       items,
		Pagination: page.Pagination,
		Window:     pagination.Window(page.Pagination.Page, page.Pagination.TotalPages),
	}
}

// Transition executes a lifecycle action against a job. The action is
// checked against the job's last listed status; a job this console has
// never listed cannot be acted on. Cancel must carry confirmed=true.
// Start and cancel request a status change; notify sends the maintenance
// email without touching the status.
func (s *JobService) Transition(ctx context.Context, scheduleID, jobID string, action models.JobAction, confirmed bool) error {
	status, ok := s.cache.JobStatus(ctx, scheduleID, jobID)
	if !ok {
		return ErrUnknownJob
	}

	if !status.Allows(action) {
		s.recordTransition(action, "rejected")
		return &IllegalActionError{Action: action, Status: status}
	}

	if action == models.JobActionCancel && !confirmed {
		return ErrConfirmationRequired
	}

	if action == models.JobActionNotify {
		return s.notify(ctx, scheduleID, jobID)
	}

	target, ok := action.Target()
	if !ok {
		return &IllegalActionError{Action: action, Status: status}
	}

	if _, err := s.api.UpdateScheduleJob(ctx, jobID, target); err != nil {
		s.recordTransition(action, "error")
		s.logger.WithError(err).Errorf("Job %s action %s failed", jobID, action)
		return err
	}

	s.recordTransition(action, "success")
	if s.cache != nil {
		s.cache.Invalidate(ctx, scheduleID)
	}
	s.logger.Info("Job transition applied",
		logger.String("schedule_id", scheduleID),
		logger.String("job_id", jobID),
		logger.String("action", string(action)),
	)
	return nil
}

func (s *JobService) notify(ctx context.Context, scheduleID, jobID string) error {
	if err := s.api.SendMaintenanceEmail(ctx, jobID); err != nil {
		if s.metrics != nil {
			s.metrics.NotificationsSent.WithLabelValues("error").Inc()
		}
		s.logger.WithError(err).Errorf("Notification for job %s failed", jobID)
		return err
	}

	if s.metrics != nil {
		s.metrics.NotificationsSent.WithLabelValues("success").Inc()
	}
	s.logger.Info("Maintenance notification sent",
		logger.String("schedule_id", scheduleID),
		logger.String("job_id", jobID),
	)
	return nil
}

func (s *JobService) recordTransition(action models.JobAction, result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.JobTransitionsTotal.WithLabelValues(string(action), result).Inc()
}

func (s *JobService) recordCache(cache string, hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.CacheHits.WithLabelValues(cache).Inc()
	} else {
		s.metrics.CacheMisses.WithLabelValues(cache).Inc()
	}
}
