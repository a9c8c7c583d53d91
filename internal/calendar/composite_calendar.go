package calendar

import (
	"fmt"

	"github.com/username/par-generator/pkg/dateutil"
	"go.uber.org/zap"
)

// CompositeCalendar merges several holiday sources into one.
// Dates are de-duplicated; the first note seen for a date wins.
type CompositeCalendar struct {
	sources []Source
	logger  *zap.Logger
}

// NewCompositeCalendar creates a new CompositeCalendar
func NewCompositeCalendar(logger *zap.Logger, sources ...Source) *CompositeCalendar {
	return &CompositeCalendar{
		sources: sources,
		logger:  logger,
	}
}

// Name returns a fixed identifier
func (cc *CompositeCalendar) Name() string {
	return "composite"
}

// Holidays returns the merged holidays of all sources, sorted by date.
// A failing source fails the whole merge.
func (cc *CompositeCalendar) Holidays() ([]Holiday, error) {
	seen := make(map[string]struct{})
	merged := []Holiday{}

	for _, src := range cc.sources {
		holidays, err := src.Holidays()
		if err != nil {
			return nil, fmt.Errorf("holiday source %s: %w", src.Name(), err)
		}

		added := 0
		for _, h := range holidays {
			d := dateutil.DateOf(h.Date)
			key := d.Format(dateutil.ISODate)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, Holiday{Date: d, Note: h.Note})
			added++
		}

		cc.logger.Debug("Holiday source merged",
			zap.String("source", src.Name()),
			zap.Int("holidays", len(holidays)),
			zap.Int("added", added))
	}

	sortHolidays(merged)
	return merged, nil
}
