package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/propertyops/maintenance-console/internal/models"
	"github.com/propertyops/maintenance-console/internal/services"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	return resp, nil
}

func (c *Client) get(path string, expected int, out interface{}) error {
	resp, err := c.doRequest("GET", path, nil)
	if err != nil {
		return err
	}
	return c.decode(resp, expected, out)
}

func (c *Client) post(path string, body interface{}, expected int, out interface{}) error {
	resp, err := c.doRequest("POST", path, body)
	if err != nil {
		return err
	}
	return c.decode(resp, expected, out)
}

func (c *Client) decode(resp *http.Response, expected int, out interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode != expected {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s (status: %d)", string(bytes.TrimSpace(body)), resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// HealthCheck checks if the API is reachable
func (c *Client) HealthCheck() error {
	resp, err := c.doRequest("GET", "/health", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}
	return nil
}

type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

// GetCycles retrieves the maintenance cycle reference data
func (c *Client) GetCycles() ([]models.MaintenanceCycle, error) {
	var envelope listEnvelope[models.MaintenanceCycle]
	if err := c.get("/api/v1/cycles", http.StatusOK, &envelope); err != nil {
		return nil, fmt.Errorf("failed to get cycles: %w", err)
	}
	return envelope.Data, nil
}

// GetBuildings retrieves the acting manager's building targets
func (c *Client) GetBuildings() ([]models.BuildingTarget, error) {
	var envelope listEnvelope[models.BuildingTarget]
	if err := c.get("/api/v1/buildings", http.StatusOK, &envelope); err != nil {
		return nil, fmt.Errorf("failed to get buildings: %w", err)
	}
	return envelope.Data, nil
}

// OpenSession opens a fresh generation session
func (c *Client) OpenSession() (*models.SessionSnapshot, error) {
	var snap models.SessionSnapshot
	if err := c.post("/api/v1/sessions", nil, http.StatusCreated, &snap); err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	return &snap, nil
}

// ToggleCycle flips a cycle selection in a session
func (c *Client) ToggleCycle(sessionID, cycleID string) (*models.SessionSnapshot, error) {
	var snap models.SessionSnapshot
	path := fmt.Sprintf("/api/v1/sessions/%s/cycles/%s/toggle", sessionID, cycleID)
	if err := c.post(path, nil, http.StatusOK, &snap); err != nil {
		return nil, fmt.Errorf("failed to toggle cycle: %w", err)
	}
	return &snap, nil
}

// ToggleBuilding flips a building selection in a session
func (c *Client) ToggleBuilding(sessionID, buildingID string) (*models.SessionSnapshot, error) {
	var snap models.SessionSnapshot
	path := fmt.Sprintf("/api/v1/sessions/%s/buildings/%s/toggle", sessionID, buildingID)
	if err := c.post(path, nil, http.StatusOK, &snap); err != nil {
		return nil, fmt.Errorf("failed to toggle building: %w", err)
	}
	return &snap, nil
}

// Generate submits a session for bulk schedule generation
func (c *Client) Generate(sessionID string) (*models.SessionSnapshot, error) {
	var snap models.SessionSnapshot
	path := fmt.Sprintf("/api/v1/sessions/%s/generate", sessionID)
	if err := c.post(path, nil, http.StatusOK, &snap); err != nil {
		return nil, fmt.Errorf("failed to generate schedules: %w", err)
	}
	return &snap, nil
}

// GetJobs retrieves one page of a schedule's jobs
func (c *Client) GetJobs(scheduleID string, page, limit int) (*services.JobListing, error) {
	var listing services.JobListing
	path := fmt.Sprintf("/api/v1/schedules/%s/jobs?page=%d&limit=%d", scheduleID, page, limit)
	if err := c.get(path, http.StatusOK, &listing); err != nil {
		return nil, fmt.Errorf("failed to get jobs: %w", err)
	}
	return &listing, nil
}

// JobAction requests a lifecycle action on a job
func (c *Client) JobAction(scheduleID, jobID, action string, confirmed bool) error {
	path := fmt.Sprintf("/api/v1/schedules/%s/jobs/%s/%s", scheduleID, jobID, action)
	body := map[string]bool{"confirmed": confirmed}
	if err := c.post(path, body, http.StatusOK, nil); err != nil {
		return fmt.Errorf("failed to apply job action: %w", err)
	}
	return nil
}
