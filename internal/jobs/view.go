// Package jobs holds the browsing state for one schedule's job list: which
// page is being requested, and which fetched page is currently displayed.
package jobs

import (
	"sync"

	"github.com/propertyops/maintenance-console/internal/models"
)

// RequestKey identifies one page fetch. A response is only applied while
// its key is still the latest requested key; anything older is discarded
// rather than merged, so a slow early page can never overwrite a newer one.
type RequestKey struct {
	Page  int
	Limit int
	seq   uint64
}

// ListView tracks the requested and displayed page of a job list. Fetches
// resolve in any order; the view supersedes, it never merges.
type ListView struct {
	mu        sync.Mutex
	seq       uint64
	latest    RequestKey
	hasLatest bool
	current   *models.ScheduleJobPage
}

// NewListView creates an empty view.
func NewListView() *ListView {
	return &ListView{}
}

// Begin registers a new page request and returns its key. A limit change
// resets the page to 1, since a browsing position is not meaningful across
// a different page size. The returned key carries the effective page.
func (v *ListView) Begin(page, limit int) RequestKey {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.hasLatest && limit != v.latest.Limit {
		page = 1
	}

	v.seq++
	v.latest = RequestKey{Page: page, Limit: limit, seq: v.seq}
	v.hasLatest = true
	return v.latest
}

// Deliver applies a resolved page if its key is still the latest requested
// one. Returns false when the response was superseded and discarded.
func (v *ListView) Deliver(key RequestKey, page *models.ScheduleJobPage) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if key.seq != v.latest.seq {
		return false
	}
	v.current = page
	return true
}

// Current returns the page on display, or nil before the first delivery.
func (v *ListView) Current() *models.ScheduleJobPage {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}
