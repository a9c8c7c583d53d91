package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// ISODate is the layout used for holiday files, flags and log fields
const ISODate = "2006-01-02"

// ColumnLabel is the layout of report column headers, e.g. "Monday, 05-02-2024"
const ColumnLabel = "Monday, 02-01-2006"

// DateOf returns the calendar date of t as UTC midnight.
// Time-of-day and location are discarded so that dates compare by day only.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Date builds a UTC midnight date
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the month (proleptic Gregorian)
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsValidDate reports whether year/month/day name a real calendar date
func IsValidDate(year, month, day int) bool {
	if year < 1 || year > 9999 {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= DaysInMonth(year, time.Month(month))
}

// IsWeekday returns true if the date is Monday-Friday
func IsWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday >= time.Monday && weekday <= time.Friday
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// EachDay returns every calendar date from start to end inclusive, ascending.
// Returns nil when end is before start.
func EachDay(start, end time.Time) []time.Time {
	from, to := DateOf(start), DateOf(end)
	if to.Before(from) {
		return nil
	}

	days := make([]time.Time, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// FormatLabel formats a date as a report column header
func FormatLabel(date time.Time) string {
	return date.Format(ColumnLabel)
}

// ParseDate parses date string in various formats and returns its calendar date
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		ISODate,
		"02.01.2006",
		"02-01-2006",
		"2006-01-02T15:04:05",
		time.RFC3339,
	}

	value := strings.TrimSpace(dateStr)
	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			return DateOf(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised date %q", dateStr)
}

// Today returns today's date (local calendar day, as UTC midnight)
func Today() time.Time {
	return DateOf(time.Now())
}
