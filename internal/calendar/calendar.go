package calendar

import (
	"sort"
	"time"

	"github.com/username/par-generator/pkg/dateutil"
)

// Holiday represents a non-working calendar date
type Holiday struct {
	Date time.Time
	Note string
}

// Source provides holiday dates
type Source interface {
	// Name identifies the source in logs and errors
	Name() string

	// Holidays returns every holiday the source knows about
	Holidays() ([]Holiday, error)
}

// InPeriod returns holidays whose date falls within [from, to], sorted by date
func InPeriod(holidays []Holiday, from, to time.Time) []Holiday {
	start, end := dateutil.DateOf(from), dateutil.DateOf(to)

	result := make([]Holiday, 0, len(holidays))
	for _, h := range holidays {
		d := dateutil.DateOf(h.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		result = append(result, Holiday{Date: d, Note: h.Note})
	}

	sortHolidays(result)
	return result
}

// Dates extracts the dates of the given holidays
func Dates(holidays []Holiday) []time.Time {
	dates := make([]time.Time, len(holidays))
	for i, h := range holidays {
		dates[i] = h.Date
	}
	return dates
}

func sortHolidays(holidays []Holiday) {
	sort.SliceStable(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
}
