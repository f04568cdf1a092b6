package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/propertyops/maintenance-console/internal/api/rest/middleware"
	"github.com/propertyops/maintenance-console/internal/builder"
	"github.com/propertyops/maintenance-console/internal/services"
	"github.com/propertyops/maintenance-console/pkg/logger"
)

// SessionHandler handles generation session HTTP requests
type SessionHandler struct {
	logger     *logger.Logger
	sessions   *services.SessionService
	generation *services.GenerationService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(log *logger.Logger, sessions *services.SessionService, generation *services.GenerationService) *SessionHandler {
	return &SessionHandler{
		logger:     log,
		sessions:   sessions,
		generation: generation,
	}
}

// Create opens a generation session for the acting manager
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	managerID := middleware.GetManagerID(r.Context())
	if managerID == uuid.Nil {
		respondError(w, http.StatusUnauthorized, "Manager context required")
		return
	}

	session := h.sessions.Create(managerID)
	respondJSON(w, http.StatusCreated, session.Snapshot())
}

// Get returns the session's selection snapshot and submission state
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

// Close discards the session and its selections
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, managerID, ok := h.identify(w, r)
	if !ok {
		return
	}

	if err := h.sessions.Close(id, managerID); err != nil {
		h.respondSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleCycle flips a cycle selection on or off
func (h *SessionHandler) ToggleCycle(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	if _, err := session.ToggleCycle(chi.URLParam(r, "cycleID")); err != nil {
		h.respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

// UpdateCycleRequest carries the editable fields of a selected cycle.
// Absent fields are left unchanged.
type UpdateCycleRequest struct {
	DurationDays    *int    `json:"duration_days,omitempty"`
	StartDate       *string `json:"start_date,omitempty"`
	AutoCreateTasks *bool   `json:"auto_create_tasks,omitempty"`
}

// UpdateCycle edits the configuration of a selected cycle
func (h *SessionHandler) UpdateCycle(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req UpdateCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := session.UpdateCycleConfig(chi.URLParam(r, "cycleID"), req.DurationDays, req.StartDate, req.AutoCreateTasks)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

// ToggleBuilding flips a building selection on or off
func (h *SessionHandler) ToggleBuilding(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	if _, err := session.ToggleBuilding(chi.URLParam(r, "buildingID")); err != nil {
		h.respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

// Generate submits the session's selections for bulk schedule generation.
// Guard failures return 400 and leave the session untouched; a submission
// that reaches the backend always returns the resulting session state.
func (h *SessionHandler) Generate(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	snapshot, err := h.generation.Submit(r.Context(), session)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snapshot)
}

func (h *SessionHandler) identify(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	managerID := middleware.GetManagerID(r.Context())
	if managerID == uuid.Nil {
		respondError(w, http.StatusUnauthorized, "Manager context required")
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid session ID")
		return uuid.Nil, uuid.Nil, false
	}
	return id, managerID, true
}

func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*services.Session, bool) {
	id, managerID, ok := h.identify(w, r)
	if !ok {
		return nil, false
	}

	session, err := h.sessions.Get(id, managerID)
	if err != nil {
		h.respondSessionError(w, err)
		return nil, false
	}
	return session, true
}

func (h *SessionHandler) respondSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, services.ErrSessionForbidden):
		respondError(w, http.StatusForbidden, "Session belongs to another manager")
	case errors.Is(err, services.ErrSubmissionInFlight):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, builder.ErrNoCycles),
		errors.Is(err, builder.ErrNoBuildings),
		errors.Is(err, builder.ErrCycleNotSelected),
		errors.Is(err, builder.ErrInvalidDuration),
		errors.Is(err, builder.ErrInvalidStartDate):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Errorf("Session operation failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Session operation failed")
	}
}
