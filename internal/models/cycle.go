package models

// MaintenanceCycle is a reusable recurrence template owned by the facility
// backend. Read-only reference data from the console's perspective.
type MaintenanceCycle struct {
	CycleID    string `json:"cycle_id"`
	CycleName  string `json:"cycle_name"`
	DeviceType string `json:"device_type"`
	Frequency  string `json:"frequency"`
	Basis      string `json:"basis"`
}

// CycleConfig is the per-cycle configuration a manager attaches to a
// selected cycle inside a generation session. Toggling a cycle off removes
// its config entirely; re-selecting starts over from defaults.
type CycleConfig struct {
	CycleID         string `json:"cycle_id"`
	DurationDays    int    `json:"duration_days"`
	StartDate       string `json:"start_date"`
	AutoCreateTasks bool   `json:"auto_create_tasks"`
}

// DefaultCycleConfig returns the configuration a cycle receives when first
// selected: one-day duration starting today, with task auto-creation on.
func DefaultCycleConfig(cycleID, today string) CycleConfig {
	return CycleConfig{
		CycleID:         cycleID,
		DurationDays:    1,
		StartDate:       today,
		AutoCreateTasks: true,
	}
}
