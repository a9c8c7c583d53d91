package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/username/par-generator/internal/allocator"
	"github.com/username/par-generator/internal/calendar"
	"github.com/username/par-generator/internal/export"
	"github.com/username/par-generator/pkg/dateutil"
	"go.uber.org/zap"
)

// Request is the input of one report run
type Request struct {
	Year  int
	Month int
	Day   int

	// Holidays supplied explicitly by the user; forwarded as-is
	Holidays []time.Time

	Projects []allocator.Project
}

// Result is a finished run
type Result struct {
	RunID  string
	Report *allocator.Report

	// SourceHolidays are the holidays taken from calendar sources for this period
	SourceHolidays []calendar.Holiday
}

// Generator runs the allocation pipeline
type Generator struct {
	source calendar.Source
	writer *export.Writer
	logger *zap.Logger
}

// NewGenerator creates a new report generator.
// source may be nil when no holiday files are configured.
func NewGenerator(source calendar.Source, writer *export.Writer, logger *zap.Logger) *Generator {
	return &Generator{
		source: source,
		writer: writer,
		logger: logger,
	}
}

// Generate computes the hours table for the request.
// Source holidays are restricted to the computed period; explicit holidays are not.
func (g *Generator) Generate(req Request) (*Result, error) {
	runID := uuid.NewString()
	logger := g.logger.With(zap.String("run_id", runID))

	logger.Info("Starting report generation",
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
		zap.Int("day", req.Day),
		zap.Int("projects", len(req.Projects)),
		zap.Int("explicit_holidays", len(req.Holidays)))

	// 1. Resolve the half-month period
	period, err := allocator.PeriodFor(req.Year, req.Month, req.Day)
	if err != nil {
		return nil, err
	}

	logger.Info("Period resolved",
		zap.String("period", period.String()),
		zap.Int("half", period.Half()))

	// 2. Holidays from calendar sources
	sourceHolidays, err := g.sourceHolidays(period, req.Holidays, logger)
	if err != nil {
		return nil, err
	}

	holidays := make([]time.Time, 0, len(req.Holidays)+len(sourceHolidays))
	holidays = append(holidays, req.Holidays...)
	holidays = append(holidays, calendar.Dates(sourceHolidays)...)

	// 3. Allocate
	report, err := allocator.Allocate(allocator.Input{
		Year:     req.Year,
		Month:    req.Month,
		Day:      req.Day,
		Holidays: holidays,
		Projects: req.Projects,
	})
	if err != nil {
		logger.Warn("Allocation rejected", zap.Error(err))
		return nil, err
	}

	for i, p := range report.Projects {
		logger.Debug("Project allocated",
			zap.String("project", p.Name),
			zap.Int("percentage", p.Percentage),
			zap.Float64("period_hours", report.ProjectHours[i]),
			zap.Float64("daily_hours", report.DailyHours[i]))
	}

	logger.Info("Report generated",
		zap.Int("days", len(report.Days)),
		zap.Int("working_days", len(report.WorkingDays)),
		zap.Int("total_hours", report.TotalHours),
		zap.Int("holiday_hours", report.HolidayHours),
		zap.Int("final_total", report.FinalTotal))

	return &Result{
		RunID:          runID,
		Report:         report,
		SourceHolidays: sourceHolidays,
	}, nil
}

// Export writes the result's table to an xlsx file
func (g *Generator) Export(result *Result, path string) error {
	if g.writer == nil {
		return fmt.Errorf("export is not configured")
	}
	if result == nil {
		return export.ErrNoReport
	}

	if err := g.writer.WriteFile(result.Report, path); err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}

	g.logger.Info("Report exported",
		zap.String("run_id", result.RunID),
		zap.String("path", path))
	return nil
}

// sourceHolidays loads holidays from the configured source, keeps those inside
// the period and drops dates already supplied explicitly.
func (g *Generator) sourceHolidays(period allocator.Period, explicit []time.Time, logger *zap.Logger) ([]calendar.Holiday, error) {
	if g.source == nil {
		return nil, nil
	}

	all, err := g.source.Holidays()
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}

	inPeriod := calendar.InPeriod(all, period.Start, period.End)

	result := make([]calendar.Holiday, 0, len(inPeriod))
	for _, h := range inPeriod {
		if containsDay(explicit, h.Date) {
			continue
		}
		result = append(result, h)
	}

	logger.Info("Holidays loaded from calendar",
		zap.String("source", g.source.Name()),
		zap.Int("known", len(all)),
		zap.Int("in_period", len(result)))

	return result, nil
}

func containsDay(dates []time.Time, day time.Time) bool {
	for _, d := range dates {
		if dateutil.IsSameDay(d, day) {
			return true
		}
	}
	return false
}
