package eplustime

import (
	"fmt"
	"time"
)

// StartTime normalizes a simulation start specification to a full
// timestamp: a bare year becomes midnight Jan-1 UTC of that year, a
// time.Time passes through unchanged, anything else is a classification
// error. Time-series readers use the result to anchor year-independent
// clocks onto the calendar.
func StartTime(start any) (time.Time, error) {
	switch s := start.(type) {
	case time.Time:
		return s, nil
	case int:
		return time.Date(s, time.January, 1, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, fmt.Errorf("unknown start type %T", start)
	}
}
