// Package facility is the HTTP client for the facility-management backend,
// the owner of all durable maintenance state. The console never persists
// schedules or jobs itself; everything flows through these calls.
package facility

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/propertyops/maintenance-console/internal/models"
	"github.com/propertyops/maintenance-console/pkg/config"
	"github.com/propertyops/maintenance-console/pkg/logger"
	"github.com/propertyops/maintenance-console/pkg/metrics"
	"github.com/sony/gobreaker"
)

// Client talks to the facility backend over HTTP. Calls are wrapped in a
// circuit breaker so a dead backend fails fast instead of tying up request
// handlers. There are no automatic retries; every retry is a user action.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a facility backend client.
func NewClient(cfg *config.FacilityConfig, log *logger.Logger, m *metrics.Metrics) *Client {
	settings := gobreaker.Settings{
		Name:        "facility",
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnf("Facility circuit breaker state changed: %s -> %s", from.String(), to.String())
		},
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  log,
		metrics: m,
	}
}

// apiError is the facility backend's error envelope.
type apiError struct {
	Message string `json:"message"`
}

func (c *Client) doRequest(ctx context.Context, operation, method, path string, body, out interface{}) error {
	start := time.Now()
	err := c.execute(ctx, method, path, body, out)

	if c.metrics != nil {
		c.metrics.FacilityRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
		if err != nil {
			c.metrics.FacilityRequestErrors.WithLabelValues(operation).Inc()
		}
	}
	return err
}

func (c *Client) execute(ctx context.Context, method, path string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.httpClient.Do(req)
	})
	if err != nil {
		return fmt.Errorf("facility request failed: %w", err)
	}
	resp := result.(*http.Response)
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		var envelope apiError
		if json.Unmarshal(data, &envelope) == nil && envelope.Message != "" {
			return fmt.Errorf("facility returned %d: %s", resp.StatusCode, envelope.Message)
		}
		return fmt.Errorf("facility returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// ListMaintenanceCycles fetches the maintenance cycle reference data.
func (c *Client) ListMaintenanceCycles(ctx context.Context) ([]models.MaintenanceCycle, error) {
	var cycles []models.MaintenanceCycle
	if err := c.doRequest(ctx, "list_cycles", http.MethodGet, "/api/maintenance-cycles", nil, &cycles); err != nil {
		return nil, err
	}
	return cycles, nil
}

// ListBuildingDetailsForManager fetches the building targets visible to the
// acting manager.
func (c *Client) ListBuildingDetailsForManager(ctx context.Context, managerID string) ([]models.BuildingTarget, error) {
	var buildings []models.BuildingTarget
	path := "/api/building-details?managerId=" + url.QueryEscape(managerID)
	if err := c.doRequest(ctx, "list_buildings", http.MethodGet, path, nil, &buildings); err != nil {
		return nil, err
	}
	return buildings, nil
}

// GenerateSchedules submits a bulk cycle-by-building generation request.
// Interpreting the result shape (non-empty createdSchedules = success) is
// the caller's responsibility.
func (c *Client) GenerateSchedules(ctx context.Context, req models.ScheduleGenerationRequest) (*models.GenerateSchedulesResult, error) {
	var result models.GenerateSchedulesResult
	if err := c.doRequest(ctx, "generate_schedules", http.MethodPost, "/api/schedules/generate", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateSchedule creates one schedule with an explicit date range.
func (c *Client) CreateSchedule(ctx context.Context, req *models.CreateScheduleRequest) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := c.doRequest(ctx, "create_schedule", http.MethodPost, "/api/schedules", req, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// FetchScheduleJobs fetches one page of a schedule's jobs.
func (c *Client) FetchScheduleJobs(ctx context.Context, scheduleID string, page, limit int) (*models.ScheduleJobPage, error) {
	var result models.ScheduleJobPage
	path := fmt.Sprintf("/api/schedules/%s/jobs?page=%s&limit=%s",
		url.PathEscape(scheduleID), strconv.Itoa(page), strconv.Itoa(limit))
	if err := c.doRequest(ctx, "fetch_jobs", http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateScheduleJob requests a status transition. The desired target status
// is the only field sent; the backend's answer is authoritative.
func (c *Client) UpdateScheduleJob(ctx context.Context, jobID string, status models.JobStatus) (*models.ScheduleJob, error) {
	payload := map[string]models.JobStatus{"status": status}
	var job models.ScheduleJob
	path := "/api/schedule-jobs/" + url.PathEscape(jobID)
	if err := c.doRequest(ctx, "update_job", http.MethodPatch, path, payload, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// SendMaintenanceEmail dispatches the maintenance notification for a job.
// Fire-and-forget: failure is reported but never affects the job's status.
func (c *Client) SendMaintenanceEmail(ctx context.Context, jobID string) error {
	path := "/api/schedule-jobs/" + url.PathEscape(jobID) + "/notify"
	return c.doRequest(ctx, "send_email", http.MethodPost, path, nil, nil)
}
