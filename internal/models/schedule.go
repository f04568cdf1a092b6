package models

import "time"

// Schedule is a concrete maintenance plan owned by the facility backend.
// The console only reads schedules or asks the backend to create them.
type Schedule struct {
	ScheduleID     string    `json:"schedule_id"`
	ScheduleName   string    `json:"schedule_name"`
	Description    string    `json:"description,omitempty"`
	CycleID        string    `json:"cycle_id,omitempty"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date,omitempty"`
	ScheduleStatus string    `json:"schedule_status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ScheduleGenerationRequest is the bulk-generation payload: every selected
// cycle configuration crossed with every selected building target.
// Constructed at submit time and never mutated afterwards.
type ScheduleGenerationRequest struct {
	CycleConfigs    []CycleConfig `json:"cycle_configs"`
	BuildingDetails []string      `json:"buildingDetails"`
}

// CreateScheduleRequest is the single-schedule creation payload: one cycle,
// an explicit date range, and the target buildings.
type CreateScheduleRequest struct {
	ScheduleName      string   `json:"schedule_name" validate:"required"`
	Description       string   `json:"description"`
	CycleID           string   `json:"cycle_id" validate:"required"`
	BuildingDetailIDs []string `json:"buildingDetailIds" validate:"required,min=1"`
	StartDate         string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate           string   `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// GenerateSchedulesResult is the facility backend's response to a bulk
// generation request. Success is defined as CreatedSchedules being
// non-empty; any other shape is treated as a failure.
type GenerateSchedulesResult struct {
	Message string                 `json:"message,omitempty"`
	Data    *GenerateSchedulesData `json:"data,omitempty"`
}

// GenerateSchedulesData holds the created records of a bulk generation.
type GenerateSchedulesData struct {
	CreatedSchedules []Schedule `json:"createdSchedules"`
}

// Created returns the created schedules, tolerating an absent data block.
func (r *GenerateSchedulesResult) Created() []Schedule {
	if r == nil || r.Data == nil {
		return nil
	}
	return r.Data.CreatedSchedules
}
