package allocator

import "time"

// HoursPerDay is the fixed length of a working day
const HoursPerDay = 8

// TotalLabel names the synthetic total row and column
const TotalLabel = "Total"

// Project is a user-declared project with its share of the period's hours
type Project struct {
	Name       string `mapstructure:"name" json:"name"`
	Percentage int    `mapstructure:"percentage" json:"percentage"`
}

// Input is everything a single allocation run needs
type Input struct {
	Year     int
	Month    int
	Day      int
	Holidays []time.Time
	Projects []Project
}

// Cell is a table value; Valid is false for non-working days
type Cell struct {
	Hours float64
	Valid bool
}

// Column describes one date of the period
type Column struct {
	Date    time.Time
	Label   string
	Working bool
}

// Row holds one cell per column plus the row total
type Row struct {
	Name  string
	Cells []Cell
	Total float64
}

// HoursTable is the day-by-project grid.
// Rows follow the input project order; TotalRow is the synthetic "Total" row.
type HoursTable struct {
	Columns  []Column
	Rows     []Row
	TotalRow Row
}

// Row returns the first project row with the given name
func (t *HoursTable) Row(name string) (Row, bool) {
	for _, row := range t.Rows {
		if row.Name == name {
			return row, true
		}
	}
	return Row{}, false
}

// Report is the result of an allocation run
type Report struct {
	Period      Period
	Days        []time.Time
	WorkingDays []time.Time
	Holidays    []time.Time
	Projects    []Project

	// Per-project values, indexed like Projects
	ProjectHours []float64
	DailyHours   []float64

	Table HoursTable

	TotalHours   int // working hours in the period
	HolidayHours int // HoursPerDay per supplied holiday
	FinalTotal   int // TotalHours + HolidayHours
}
