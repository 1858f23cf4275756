package core

import (
	"fmt"
	"time"
)

// MonthWindow is a half-open date range [Start, End) covering one calendar
// month of a fixed reference year.
type MonthWindow struct {
	Start time.Time
	End   time.Time
}

// NewMonthWindow builds the window for the given month (1-12) in the given
// reference year. December rolls into January of year+1. Month validation
// for every read operation happens here and nowhere else.
func NewMonthWindow(year, month int) (MonthWindow, error) {
	if month < 1 || month > 12 {
		return MonthWindow{}, fmt.Errorf("%w: month %d must be between 1 and 12", ErrInvalidParameter, month)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes month 13 to January of the next year.
	end := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	return MonthWindow{Start: start, End: end}, nil
}

// Contains reports whether ts falls inside the window. The zero time never
// matches any window.
func (w MonthWindow) Contains(ts time.Time) bool {
	return !ts.Before(w.Start) && ts.Before(w.End)
}
