package jobs

import (
	"testing"

	"github.com/propertyops/maintenance-console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobPage(page int, ids ...string) *models.ScheduleJobPage {
	data := make([]models.ScheduleJob, 0, len(ids))
	for _, id := range ids {
		data = append(data, models.ScheduleJob{ScheduleJobID: id})
	}
	return &models.ScheduleJobPage{
		Data:       data,
		Pagination: models.Pagination{Page: page, Limit: 10, Total: 100, TotalPages: 10},
	}
}

func TestListView_Deliver(t *testing.T) {
	t.Run("latest request wins", func(t *testing.T) {
		v := NewListView()

		key := v.Begin(2, 10)
		applied := v.Deliver(key, jobPage(2, "job-a"))

		assert.True(t, applied)
		require.NotNil(t, v.Current())
		assert.Equal(t, 2, v.Current().Pagination.Page)
	})

	t.Run("stale response is discarded", func(t *testing.T) {
		v := NewListView()

		key2 := v.Begin(2, 10)
		key3 := v.Begin(3, 10)

		// Page 3 resolves first and is rendered
		assert.True(t, v.Deliver(key3, jobPage(3, "job-c")))

		// Page 2 resolves late; it must not overwrite the displayed page 3
		assert.False(t, v.Deliver(key2, jobPage(2, "job-b")))

		require.NotNil(t, v.Current())
		assert.Equal(t, 3, v.Current().Pagination.Page)
		assert.Equal(t, "job-c", v.Current().Data[0].ScheduleJobID)
	})

	t.Run("same page and limit re-requested supersedes older fetch", func(t *testing.T) {
		v := NewListView()

		old := v.Begin(1, 10)
		fresh := v.Begin(1, 10)

		assert.False(t, v.Deliver(old, jobPage(1, "stale")))
		assert.True(t, v.Deliver(fresh, jobPage(1, "fresh")))
		assert.Equal(t, "fresh", v.Current().Data[0].ScheduleJobID)
	})
}

func TestListView_LimitChangeResetsPage(t *testing.T) {
	v := NewListView()

	v.Begin(5, 10)
	key := v.Begin(5, 25)

	assert.Equal(t, 1, key.Page, "limit change must reset the page to 1")
	assert.Equal(t, 25, key.Limit)

	// Same limit keeps the requested page
	key = v.Begin(4, 25)
	assert.Equal(t, 4, key.Page)
}

func TestListView_CurrentBeforeDelivery(t *testing.T) {
	v := NewListView()
	assert.Nil(t, v.Current())

	v.Begin(1, 10)
	assert.Nil(t, v.Current(), "a request alone renders nothing")
}
