package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/propertyops/maintenance-console/internal/services"
	"github.com/propertyops/maintenance-console/pkg/logger"
)

// Handlers aggregates all HTTP handlers
type Handlers struct {
	Health    *HealthHandler
	Reference *ReferenceHandler
	Session   *SessionHandler
	Schedule  *ScheduleHandler
	Job       *JobHandler
}

// NewHandlers creates a new handlers instance
func NewHandlers(
	log *logger.Logger,
	referenceService *services.ReferenceService,
	sessionService *services.SessionService,
	generationService *services.GenerationService,
	jobService *services.JobService,
	redis HealthChecker,
	version string,
) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(log, redis, version),
		Reference: NewReferenceHandler(log, referenceService),
		Session:   NewSessionHandler(log, sessionService, generationService),
		Schedule:  NewScheduleHandler(log, generationService),
		Job:       NewJobHandler(log, jobService),
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
