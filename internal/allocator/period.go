package allocator

import (
	"fmt"
	"time"

	"github.com/username/par-generator/pkg/dateutil"
)

// FirstHalfLastDay is the last day of the first half-month period
const FirstHalfLastDay = 15

// Period is a half-month window, both bounds inclusive
type Period struct {
	Start time.Time
	End   time.Time
}

// PeriodFor returns the half-month period containing the reference date.
// Days 1-15 map to the first half, later days to the 16th..end of month.
func PeriodFor(year, month, day int) (Period, error) {
	if !dateutil.IsValidDate(year, month, day) {
		return Period{}, &InvalidDateError{Year: year, Month: month, Day: day}
	}

	m := time.Month(month)
	if day <= FirstHalfLastDay {
		return Period{
			Start: dateutil.Date(year, m, 1),
			End:   dateutil.Date(year, m, FirstHalfLastDay),
		}, nil
	}

	return Period{
		Start: dateutil.Date(year, m, FirstHalfLastDay+1),
		End:   dateutil.Date(year, m, dateutil.DaysInMonth(year, m)),
	}, nil
}

// Days returns every date of the period in ascending order, weekends included
func (p Period) Days() []time.Time {
	return dateutil.EachDay(p.Start, p.End)
}

// Contains reports whether the calendar date of t falls inside the period
func (p Period) Contains(t time.Time) bool {
	d := dateutil.DateOf(t)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Half returns 1 for the 1st-15th window and 2 for the 16th-end window
func (p Period) Half() int {
	if p.Start.Day() == 1 {
		return 1
	}
	return 2
}

func (p Period) String() string {
	return fmt.Sprintf("%s..%s", p.Start.Format(dateutil.ISODate), p.End.Format(dateutil.ISODate))
}
