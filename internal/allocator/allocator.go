package allocator

import (
	"strconv"
	"strings"
	"time"

	"github.com/username/par-generator/pkg/dateutil"
)

// Allocate computes the half-month hours table for the given input.
// Validation failures and an empty working period abort the run with no report.
func Allocate(in Input) (*Report, error) {
	period, err := PeriodFor(in.Year, in.Month, in.Day)
	if err != nil {
		return nil, err
	}

	if err := validateProjects(in.Projects); err != nil {
		return nil, err
	}

	holidaySet := make(map[time.Time]struct{}, len(in.Holidays))
	holidays := make([]time.Time, 0, len(in.Holidays))
	for _, h := range in.Holidays {
		d := dateutil.DateOf(h)
		holidaySet[d] = struct{}{}
		holidays = append(holidays, d)
	}

	days := period.Days()
	columns := make([]Column, len(days))
	workingDays := make([]time.Time, 0, len(days))
	for i, d := range days {
		_, isHoliday := holidaySet[d]
		working := !isHoliday && dateutil.IsWeekday(d)
		if working {
			workingDays = append(workingDays, d)
		}
		columns[i] = Column{Date: d, Label: dateutil.FormatLabel(d), Working: working}
	}

	if len(workingDays) == 0 {
		return nil, &EmptyWorkingPeriodError{Period: period}
	}

	totalHours := len(workingDays) * HoursPerDay

	projectHours := make([]float64, len(in.Projects))
	dailyHours := make([]float64, len(in.Projects))
	rows := make([]Row, len(in.Projects))
	for i, p := range in.Projects {
		projectHours[i] = round1(float64(totalHours) * float64(p.Percentage) / 100)
		dailyHours[i] = round1(projectHours[i] / float64(len(workingDays)))

		row := Row{Name: p.Name, Cells: make([]Cell, len(columns))}
		sum := 0.0
		for j, col := range columns {
			if !col.Working {
				continue
			}
			row.Cells[j] = Cell{Hours: dailyHours[i], Valid: true}
			sum += dailyHours[i]
		}
		row.Total = round1(sum)
		rows[i] = row
	}

	totalRow := Row{Name: TotalLabel, Cells: make([]Cell, len(columns)), Total: float64(totalHours)}
	for j, col := range columns {
		if col.Working {
			totalRow.Cells[j] = Cell{Hours: HoursPerDay, Valid: true}
		}
	}

	holidayHours := len(in.Holidays) * HoursPerDay

	projects := make([]Project, len(in.Projects))
	copy(projects, in.Projects)

	return &Report{
		Period:       period,
		Days:         days,
		WorkingDays:  workingDays,
		Holidays:     holidays,
		Projects:     projects,
		ProjectHours: projectHours,
		DailyHours:   dailyHours,
		Table: HoursTable{
			Columns:  columns,
			Rows:     rows,
			TotalRow: totalRow,
		},
		TotalHours:   totalHours,
		HolidayHours: holidayHours,
		FinalTotal:   totalHours + holidayHours,
	}, nil
}

func validateProjects(projects []Project) error {
	sum := 0
	for i, p := range projects {
		if strings.TrimSpace(p.Name) == "" {
			return &InvalidProjectError{Index: i, Name: p.Name, Reason: "name is required"}
		}
		if p.Percentage < 0 || p.Percentage > 100 {
			return &InvalidProjectError{Index: i, Name: p.Name, Reason: "percentage must be between 0 and 100"}
		}
		sum += p.Percentage
	}

	if sum != 100 {
		return &AllocationMismatchError{Sum: sum}
	}
	return nil
}

// round1 rounds the exact binary value to one decimal, ties to even
func round1(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	return r
}
