package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/propertyops/maintenance-console/internal/api/rest/middleware"
	"github.com/propertyops/maintenance-console/internal/services"
	"github.com/propertyops/maintenance-console/pkg/logger"
)

// ReferenceHandler serves the read-only reference data behind the console:
// maintenance cycles and the acting manager's building targets
type ReferenceHandler struct {
	logger  *logger.Logger
	service *services.ReferenceService
}

// NewReferenceHandler creates a new reference handler
func NewReferenceHandler(log *logger.Logger, service *services.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{
		logger:  log,
		service: service,
	}
}

// ListCycles returns all maintenance cycles
func (h *ReferenceHandler) ListCycles(w http.ResponseWriter, r *http.Request) {
	cycles, err := h.service.ListCycles(r.Context())
	if err != nil {
		h.logger.Errorf("Failed to list maintenance cycles: %v", err)
		respondError(w, http.StatusBadGateway, "Failed to load maintenance cycles")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"data": cycles})
}

// ListBuildings returns the building targets assigned to the acting manager
func (h *ReferenceHandler) ListBuildings(w http.ResponseWriter, r *http.Request) {
	managerID := middleware.GetManagerID(r.Context())
	if managerID == uuid.Nil {
		respondError(w, http.StatusUnauthorized, "Manager context required")
		return
	}

	buildings, err := h.service.ListBuildings(r.Context(), managerID.String())
	if err != nil {
		h.logger.Errorf("Failed to list buildings for manager %s: %v", managerID, err)
		respondError(w, http.StatusBadGateway, "Failed to load buildings")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"data": buildings})
}
