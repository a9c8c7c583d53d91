package main

import (
	"github.com/spf13/cobra"
	"github.com/username/par-generator/internal/allocator"
	"github.com/username/par-generator/pkg/dateutil"
)

func periodCmd() *cobra.Command {
	var year, month, day int
	today := dateutil.Today()

	cmd := &cobra.Command{
		Use:   "period",
		Short: "Show the half-month period and its weekdays for a reference date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeriod(year, month, day)
		},
	}

	cmd.Flags().IntVar(&year, "year", today.Year(), "Reference year")
	cmd.Flags().IntVar(&month, "month", int(today.Month()), "Reference month (1-12)")
	cmd.Flags().IntVar(&day, "day", today.Day(), "Reference day (1-31)")

	return cmd
}

func runPeriod(year, month, day int) error {
	period, err := allocator.PeriodFor(year, month, day)
	if err != nil {
		return err
	}

	weekdays := 0
	outPrintf("📅 %s (half %d)\n", period, period.Half())
	for _, d := range period.Days() {
		mark := "weekday"
		if dateutil.IsWeekend(d) {
			mark = "weekend"
		} else {
			weekdays++
		}
		outPrintf("  %-22s %s\n", dateutil.FormatLabel(d), mark)
	}
	outPrintf("\n  %d weekdays, %d h before holidays\n", weekdays, weekdays*allocator.HoursPerDay)
	return nil
}
