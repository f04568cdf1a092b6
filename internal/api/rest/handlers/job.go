package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/propertyops/maintenance-console/internal/models"
	"github.com/propertyops/maintenance-console/internal/services"
	"github.com/propertyops/maintenance-console/pkg/logger"
)

// JobHandler handles schedule job listing and lifecycle actions
type JobHandler struct {
	logger *logger.Logger
	jobs   *services.JobService
}

// NewJobHandler creates a new job handler
func NewJobHandler(log *logger.Logger, jobs *services.JobService) *JobHandler {
	return &JobHandler{
		logger: log,
		jobs:   jobs,
	}
}

// List returns one page of a schedule's jobs with per-job actions and the
// pagination window
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "scheduleID")

	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	listing, err := h.jobs.ListJobs(r.Context(), scheduleID, page, limit)
	if err != nil {
		h.logger.Errorf("Failed to list jobs for schedule %s: %v", scheduleID, err)
		respondError(w, http.StatusBadGateway, "Failed to load schedule jobs")
		return
	}

	respondJSON(w, http.StatusOK, listing)
}

// ActionRequest carries the confirmation flag for destructive actions.
type ActionRequest struct {
	Confirmed bool `json:"confirmed"`
}

// Start requests the start transition on a pending job
func (h *JobHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, models.JobActionStart)
}

// Cancel requests cancellation of a job, requiring confirmed=true
func (h *JobHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, models.JobActionCancel)
}

// Notify sends the maintenance notification email for a job
func (h *JobHandler) Notify(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, models.JobActionNotify)
}

func (h *JobHandler) action(w http.ResponseWriter, r *http.Request, action models.JobAction) {
	scheduleID := chi.URLParam(r, "scheduleID")
	jobID := chi.URLParam(r, "jobID")

	var req ActionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	if err := h.jobs.Transition(r.Context(), scheduleID, jobID, action, req.Confirmed); err != nil {
		h.respondActionError(w, scheduleID, jobID, action, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Action applied"})
}

func (h *JobHandler) respondActionError(w http.ResponseWriter, scheduleID, jobID string, action models.JobAction, err error) {
	var illegal *services.IllegalActionError
	switch {
	case errors.Is(err, services.ErrUnknownJob):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrConfirmationRequired):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &illegal):
		respondError(w, http.StatusConflict, illegal.Error())
	default:
		h.logger.Errorf("Job %s action %s on schedule %s failed: %v", jobID, action, scheduleID, err)
		respondError(w, http.StatusBadGateway, "Job action failed")
	}
}
