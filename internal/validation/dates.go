// Package validation holds the pure temporal checks for the
// single-schedule creation path.
package validation

import "time"

// DateLayout is the calendar-date wire format used throughout the console.
const DateLayout = "2006-01-02"

// FieldError flags a single offending field with a human-readable reason.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidateDateRange checks a start/end date pair against the two temporal
// rules: the start date must not lie in the past, and the end date must not
// precede the start date. Comparison is date-only; time of day is ignored.
// An absent field is not an error here -- required-field checks happen
// before submission, not during editing. The function is pure and is meant
// to be re-run on every change to either field.
func ValidateDateRange(today time.Time, startDate, endDate string) []FieldError {
	var errs []FieldError

	todayDay := truncateToDay(today)

	var start time.Time
	haveStart := false
	if startDate != "" {
		parsed, err := time.Parse(DateLayout, startDate)
		if err != nil {
			errs = append(errs, FieldError{Field: "start_date", Reason: "start date is not a valid date"})
		} else {
			start = parsed
			haveStart = true
			if start.Before(todayDay) {
				errs = append(errs, FieldError{Field: "start_date", Reason: "start date is in the past"})
			}
		}
	}

	if endDate != "" {
		end, err := time.Parse(DateLayout, endDate)
		if err != nil {
			errs = append(errs, FieldError{Field: "end_date", Reason: "end date is not a valid date"})
		} else if haveStart && end.Before(start) {
			errs = append(errs, FieldError{Field: "end_date", Reason: "end date precedes start date"})
		}
	}

	return errs
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
