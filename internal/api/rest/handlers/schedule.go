package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/propertyops/maintenance-console/internal/api/rest/middleware"
	"github.com/propertyops/maintenance-console/internal/models"
	"github.com/propertyops/maintenance-console/internal/services"
	"github.com/propertyops/maintenance-console/pkg/logger"
	"github.com/propertyops/maintenance-console/pkg/validator"
)

// ScheduleHandler handles the single-schedule creation path
type ScheduleHandler struct {
	logger     *logger.Logger
	generation *services.GenerationService
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(log *logger.Logger, generation *services.GenerationService) *ScheduleHandler {
	return &ScheduleHandler{
		logger:     log,
		generation: generation,
	}
}

// Create creates one schedule with an explicit date range
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	managerID := middleware.GetManagerID(r.Context())
	if managerID == uuid.Nil {
		respondError(w, http.StatusUnauthorized, "Manager context required")
		return
	}

	var req models.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validator.Validate(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	schedule, fieldErrs, err := h.generation.CreateSchedule(r.Context(), managerID.String(), &req)
	if err != nil {
		h.logger.Errorf("Failed to create schedule: %v", err)
		respondError(w, http.StatusBadGateway, "Failed to create schedule")
		return
	}
	if len(fieldErrs) > 0 {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": fieldErrs})
		return
	}

	respondJSON(w, http.StatusCreated, schedule)
}
