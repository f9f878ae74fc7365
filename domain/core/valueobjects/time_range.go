package valueobjects

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DayLayout is the granularity of the time index
const DayLayout = "2006-01-02"

// TimeRange is an ISO-8601 window supplied by search clients
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Validate requires both bounds with a parseable date part
func (r TimeRange) Validate() error {
	if r.Start == "" || r.End == "" {
		return errors.New("timeRange requires both start and end")
	}
	if _, err := datePart(r.Start); err != nil {
		return fmt.Errorf("timeRange.start: %w", err)
	}
	if _, err := datePart(r.End); err != nil {
		return fmt.Errorf("timeRange.end: %w", err)
	}
	return nil
}

// StartDay returns the YYYY-MM-DD bucket of the start bound.
// The time index is bucketed per day, so only the start day is queried.
func (r TimeRange) StartDay() (string, error) {
	return datePart(r.Start)
}

func datePart(ts string) (string, error) {
	day, _, _ := strings.Cut(ts, "T")
	if _, err := time.Parse(DayLayout, day); err != nil {
		return "", fmt.Errorf("invalid date %q", ts)
	}
	return day, nil
}

// DayOf formats a timestamp into its time index bucket
func DayOf(t time.Time) string {
	return t.UTC().Format(DayLayout)
}
