// Package builder composes the two selection registries of a generation
// session -- maintenance cycles with their per-cycle configuration and
// building-target IDs -- into a single bulk-generation request.
package builder

import (
	"errors"
	"time"

	"github.com/propertyops/maintenance-console/internal/models"
	"github.com/propertyops/maintenance-console/internal/selection"
	"github.com/propertyops/maintenance-console/internal/validation"
)

var (
	// ErrNoCycles rejects submission with an empty cycle selection.
	ErrNoCycles = errors.New("select at least one cycle")
	// ErrNoBuildings rejects submission with an empty building selection.
	ErrNoBuildings = errors.New("select at least one building")
	// ErrCycleNotSelected rejects field edits on unselected cycles. The UI
	// should never surface editing controls for them; this is the backstop.
	ErrCycleNotSelected = errors.New("cycle is not selected")
	// ErrInvalidDuration rejects durations below one day.
	ErrInvalidDuration = errors.New("duration must be at least one day")
	// ErrInvalidStartDate rejects start dates that do not parse as a
	// calendar date.
	ErrInvalidStartDate = errors.New("start date is not a valid date")
)

// Builder accumulates a manager's cycle and building selections and
// produces ScheduleGenerationRequest snapshots on demand. It is not safe
// for concurrent use; the owning session serializes access.
type Builder struct {
	cycles    *selection.Registry[models.CycleConfig]
	buildings *selection.Registry[string]
	now       func() time.Time
}

// New creates an empty builder. The clock is injectable for tests; nil
// falls back to time.Now.
func New(now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	b := &Builder{
		buildings: selection.NewSet(),
		now:       now,
	}
	b.cycles = selection.NewRegistry(func(cycleID string) models.CycleConfig {
		return models.DefaultCycleConfig(cycleID, b.today())
	})
	return b
}

func (b *Builder) today() string {
	return b.now().Format(validation.DateLayout)
}

// ToggleCycle flips selection of a cycle. Selecting installs the default
// configuration; deselecting discards the configuration entirely, so a
// later re-select starts over from defaults. Returns true if the cycle is
// selected after the call.
func (b *Builder) ToggleCycle(cycleID string) bool {
	return b.cycles.Toggle(cycleID)
}

// ToggleBuilding flips selection of a building target.
func (b *Builder) ToggleBuilding(buildingDetailID string) bool {
	return b.buildings.Toggle(buildingDetailID)
}

// SetDuration updates the duration of a selected cycle's configuration.
func (b *Builder) SetDuration(cycleID string, days int) error {
	if days < 1 {
		return ErrInvalidDuration
	}
	if !b.cycles.Update(cycleID, func(c models.CycleConfig) models.CycleConfig {
		c.DurationDays = days
		return c
	}) {
		return ErrCycleNotSelected
	}
	return nil
}

// SetStartDate updates the start date of a selected cycle's configuration.
// Temporal validity of per-cycle start dates is the generation service's
// concern; the builder only guards selection membership.
func (b *Builder) SetStartDate(cycleID, startDate string) error {
	if _, err := time.Parse(validation.DateLayout, startDate); err != nil {
		return ErrInvalidStartDate
	}
	if !b.cycles.Update(cycleID, func(c models.CycleConfig) models.CycleConfig {
		c.StartDate = startDate
		return c
	}) {
		return ErrCycleNotSelected
	}
	return nil
}

// SetAutoCreate updates the auto-create-tasks flag of a selected cycle.
func (b *Builder) SetAutoCreate(cycleID string, autoCreate bool) error {
	if !b.cycles.Update(cycleID, func(c models.CycleConfig) models.CycleConfig {
		c.AutoCreateTasks = autoCreate
		return c
	}) {
		return ErrCycleNotSelected
	}
	return nil
}

// CycleConfigs returns the selected cycle configurations in selection order.
func (b *Builder) CycleConfigs() []models.CycleConfig {
	return b.cycles.Values()
}

// BuildingIDs returns the selected building-target IDs in selection order.
func (b *Builder) BuildingIDs() []string {
	return b.buildings.Values()
}

// HasCycle reports whether the cycle is currently selected.
func (b *Builder) HasCycle(cycleID string) bool {
	return b.cycles.Contains(cycleID)
}

// HasBuilding reports whether the building is currently selected.
func (b *Builder) HasBuilding(buildingDetailID string) bool {
	return b.buildings.Contains(buildingDetailID)
}

// Validate runs the non-emptiness guards that gate submission. These are
// presentation-level guards; per-cycle temporal validation belongs to the
// facility backend, since each selected cycle carries its own start date.
func (b *Builder) Validate() error {
	if b.cycles.Len() == 0 {
		return ErrNoCycles
	}
	if b.buildings.Len() == 0 {
		return ErrNoBuildings
	}
	return nil
}

// Snapshot constructs the immutable generation request from the current
// selections. Callers must Validate first.
func (b *Builder) Snapshot() models.ScheduleGenerationRequest {
	return models.ScheduleGenerationRequest{
		CycleConfigs:    b.cycles.Values(),
		BuildingDetails: b.buildings.Values(),
	}
}

// Reset discards every selection, returning the builder to its opening
// state. Called after a successful generation.
func (b *Builder) Reset() {
	b.cycles.Clear()
	b.buildings.Clear()
}
