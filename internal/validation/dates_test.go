package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDateRange(t *testing.T) {
	today := time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC)

	t.Run("start date in the past is invalid", func(t *testing.T) {
		errs := ValidateDateRange(today, "2024-06-09", "")

		require.Len(t, errs, 1)
		assert.Equal(t, "start_date", errs[0].Field)
		assert.Equal(t, "start date is in the past", errs[0].Reason)
	})

	t.Run("start date today is valid despite time of day", func(t *testing.T) {
		errs := ValidateDateRange(today, "2024-06-10", "")
		assert.Empty(t, errs)
	})

	t.Run("end date before start date is invalid", func(t *testing.T) {
		future := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		errs := ValidateDateRange(future, "2024-06-01", "2024-05-31")

		require.Len(t, errs, 1)
		assert.Equal(t, "end_date", errs[0].Field)
		assert.Equal(t, "end date precedes start date", errs[0].Reason)
	})

	t.Run("equal start and end dates are valid", func(t *testing.T) {
		future := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		errs := ValidateDateRange(future, "2024-06-01", "2024-06-01")
		assert.Empty(t, errs)
	})

	t.Run("absent fields are not an error", func(t *testing.T) {
		assert.Empty(t, ValidateDateRange(today, "", ""))
		assert.Empty(t, ValidateDateRange(today, "2024-06-11", ""))
		assert.Empty(t, ValidateDateRange(today, "", "2024-06-11"))
	})

	t.Run("both rules can fail together", func(t *testing.T) {
		errs := ValidateDateRange(today, "2024-06-05", "2024-06-01")

		require.Len(t, errs, 2)
		assert.Equal(t, "start_date", errs[0].Field)
		assert.Equal(t, "end_date", errs[1].Field)
	})

	t.Run("malformed dates are flagged", func(t *testing.T) {
		errs := ValidateDateRange(today, "June 10th", "")

		require.Len(t, errs, 1)
		assert.Equal(t, "start_date", errs[0].Field)
		assert.Contains(t, errs[0].Reason, "not a valid date")
	})

	t.Run("revalidation has no memory", func(t *testing.T) {
		// A previously failing pair passes once corrected.
		errs := ValidateDateRange(today, "2024-06-09", "")
		require.NotEmpty(t, errs)

		errs = ValidateDateRange(today, "2024-06-10", "")
		assert.Empty(t, errs)
	})
}
