package models

import "github.com/google/uuid"

// GenerationState is the submission state of a generation session.
// Idle -> Submitting -> {Succeeded, Failed}; Failed -> Submitting on retry,
// Succeeded -> Idle when the session is reopened.
type GenerationState string

const (
	GenerationIdle       GenerationState = "idle"
	GenerationSubmitting GenerationState = "submitting"
	GenerationSucceeded  GenerationState = "succeeded"
	GenerationFailed     GenerationState = "failed"
)

// SessionSnapshot is the externally visible view of a generation session:
// the current selections plus the submission state and its last message.
type SessionSnapshot struct {
	SessionID       uuid.UUID       `json:"session_id"`
	ManagerID       uuid.UUID       `json:"manager_id"`
	State           GenerationState `json:"state"`
	Message         string          `json:"message,omitempty"`
	CycleConfigs    []CycleConfig   `json:"cycle_configs"`
	BuildingDetails []string        `json:"buildingDetails"`
}
