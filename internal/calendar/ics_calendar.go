package calendar

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/username/par-generator/pkg/dateutil"
	"go.uber.org/zap"
)

const icsMaxEventDays = 31

// ICSCalendar implements Source using an iCalendar (RFC 5545) file.
// Every VEVENT is a holiday; all-day events spanning several days yield one
// holiday per day (DTEND is exclusive). Recurrence rules are not expanded.
type ICSCalendar struct {
	filePath string
	logger   *zap.Logger
}

// NewICSCalendar creates a new ICSCalendar instance
func NewICSCalendar(filePath string, logger *zap.Logger) *ICSCalendar {
	return &ICSCalendar{
		filePath: filePath,
		logger:   logger,
	}
}

// Name returns the file path
func (c *ICSCalendar) Name() string {
	return c.filePath
}

// Holidays parses the file and returns its events as holidays
func (c *ICSCalendar) Holidays() ([]Holiday, error) {
	file, err := os.Open(c.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open ics file: %w", err)
	}
	defer file.Close()

	holidays, err := c.parse(file)
	if err != nil {
		return nil, err
	}

	c.logger.Info("ICS holidays loaded",
		zap.String("file", c.filePath),
		zap.Int("holidays", len(holidays)))

	return holidays, nil
}

func (c *ICSCalendar) parse(r io.Reader) ([]Holiday, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ics: %w", err)
	}

	holidays := []Holiday{}
	for _, evt := range cal.Events() {
		note := ""
		if summary := evt.GetProperty(ics.ComponentPropertySummary); summary != nil {
			note = strings.TrimSpace(summary.Value)
		}

		start, allDay, err := icsDate(evt, ics.ComponentPropertyDtStart)
		if err != nil {
			c.logger.Warn("Skipping event without usable DTSTART",
				zap.String("file", c.filePath),
				zap.String("summary", note),
				zap.Error(err))
			continue
		}

		if evt.GetProperty(ics.ComponentPropertyRrule) != nil {
			c.logger.Debug("Recurrence rule ignored, using first occurrence",
				zap.String("summary", note),
				zap.String("date", start.Format(dateutil.ISODate)))
		}

		end := start
		if allDay {
			if dtEnd, _, err := icsDate(evt, ics.ComponentPropertyDtEnd); err == nil && dtEnd.After(start) {
				end = dtEnd.AddDate(0, 0, -1)
			}
		}
		if days := dateutil.EachDay(start, end); len(days) > icsMaxEventDays {
			c.logger.Warn("Event too long, keeping its first day only",
				zap.String("summary", note),
				zap.Int("days", len(days)))
			end = start
		}

		for _, d := range dateutil.EachDay(start, end) {
			holidays = append(holidays, Holiday{Date: d, Note: note})
		}
	}

	return holidays, nil
}

// icsDate reads a DATE or DATE-TIME property and returns its calendar date.
// allDay is true for DATE values.
func icsDate(evt *ics.VEvent, prop ics.ComponentProperty) (time.Time, bool, error) {
	p := evt.GetProperty(prop)
	if p == nil {
		return time.Time{}, false, fmt.Errorf("missing property %s", prop)
	}
	value := strings.TrimSpace(p.Value)

	if t, err := time.Parse("20060102", value); err == nil {
		return dateutil.DateOf(t), true, nil
	}

	formats := []string{
		"20060102T150405Z",
		"20060102T150405",
	}
	for _, layout := range formats {
		if t, err := time.Parse(layout, value); err == nil {
			return dateutil.DateOf(t), false, nil
		}
	}

	return time.Time{}, false, fmt.Errorf("cannot parse %s value %q", prop, value)
}
