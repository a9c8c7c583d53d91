package allocator

import "fmt"

// InvalidDateError is returned when year/month/day do not form a calendar date
type InvalidDateError struct {
	Year  int
	Month int
	Day   int
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %04d-%02d-%02d is not a calendar date", e.Year, e.Month, e.Day)
}

// InvalidProjectError is returned when a project entry is malformed
type InvalidProjectError struct {
	Index  int
	Name   string
	Reason string
}

func (e *InvalidProjectError) Error() string {
	return fmt.Sprintf("invalid project #%d (%q): %s", e.Index+1, e.Name, e.Reason)
}

// AllocationMismatchError is returned when project percentages do not sum to 100
type AllocationMismatchError struct {
	Sum int
}

func (e *AllocationMismatchError) Error() string {
	return fmt.Sprintf("project percentages sum to %d%%, must be exactly 100%%", e.Sum)
}

// EmptyWorkingPeriodError is returned when weekends and holidays leave no working day
type EmptyWorkingPeriodError struct {
	Period Period
}

func (e *EmptyWorkingPeriodError) Error() string {
	return fmt.Sprintf("no working days left in period %s", e.Period)
}
