package models

import "time"

// JobStatus is the lifecycle status of a schedule job. The facility backend
// owns the value; the console never invents a status it did not fetch.
type JobStatus string

const (
	JobStatusPending    JobStatus = "Pending"
	JobStatusInProgress JobStatus = "InProgress"
	JobStatusCompleted  JobStatus = "Completed"
	JobStatusCancel     JobStatus = "Cancel"
)

// JobAction is a user-triggered operation on a schedule job.
type JobAction string

const (
	JobActionStart  JobAction = "start"
	JobActionCancel JobAction = "cancel"
	JobActionNotify JobAction = "notify"
)

// ScheduleJob is one per-building unit of work belonging to a schedule.
// Jobs are created and completed by the facility backend; the console only
// requests the transitions listed in AvailableActions.
type ScheduleJob struct {
	ScheduleJobID string         `json:"schedule_job_id"`
	ScheduleID    string         `json:"schedule_id"`
	Building      BuildingTarget `json:"building"`
	Status        JobStatus      `json:"status"`
	RunDate       string         `json:"run_date"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Terminal reports whether the status admits no further user actions.
// Completion is only ever observed after a refetch; it is moved there by
// the backend's own pipeline, never requested by the console.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancel
}

// AvailableActions returns the actions legal for a job in this status.
// Must be re-derived from the fetched status on every listing, never from
// locally cached intent.
func (s JobStatus) AvailableActions() []JobAction {
	switch s {
	case JobStatusPending:
		return []JobAction{JobActionStart, JobActionCancel, JobActionNotify}
	case JobStatusInProgress:
		return []JobAction{JobActionCancel, JobActionNotify}
	default:
		return nil
	}
}

// Allows reports whether the given action is legal in this status.
func (s JobStatus) Allows(action JobAction) bool {
	for _, a := range s.AvailableActions() {
		if a == action {
			return true
		}
	}
	return false
}

// Target returns the status an action requests. Notify has no target: it
// dispatches a notification without touching the status.
func (a JobAction) Target() (JobStatus, bool) {
	switch a {
	case JobActionStart:
		return JobStatusInProgress, true
	case JobActionCancel:
		return JobStatusCancel, true
	default:
		return "", false
	}
}

// Pagination describes one fetched page of a larger result set.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// ScheduleJobPage is the facility backend's response shape for a job listing.
type ScheduleJobPage struct {
	Data       []ScheduleJob `json:"data"`
	Pagination Pagination    `json:"pagination"`
}
