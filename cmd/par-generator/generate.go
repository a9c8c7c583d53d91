package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/par-generator/internal/allocator"
	"github.com/username/par-generator/internal/calendar"
	"github.com/username/par-generator/internal/config"
	"github.com/username/par-generator/internal/export"
	"github.com/username/par-generator/internal/report"
	"github.com/username/par-generator/pkg/dateutil"
	"go.uber.org/zap"
)

type generateOptions struct {
	year, month, day int
	holidays         []string
	projects         []string
	holidayFiles     []string
	icsFiles         []string
	output           string
	sheet            string
	noExport         bool
}

func generateCmd() *cobra.Command {
	opts := generateOptions{}
	today := dateutil.Today()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compute the half-month hours table and export it",
		Example: `  par-generator generate --year 2024 --month 2 --day 20 \
    --project "Health=60" --project "Education=40" --holiday 2024-02-20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cfg, opts)
		},
	}

	cmd.Flags().IntVar(&opts.year, "year", today.Year(), "Reference year")
	cmd.Flags().IntVar(&opts.month, "month", int(today.Month()), "Reference month (1-12)")
	cmd.Flags().IntVar(&opts.day, "day", today.Day(), "Reference day (1-31); 1-15 selects the first half of the month")
	cmd.Flags().StringArrayVar(&opts.holidays, "holiday", nil, "Holiday date (YYYY-MM-DD or DD.MM.YYYY), repeatable")
	cmd.Flags().StringArrayVarP(&opts.projects, "project", "p", nil, `Project allocation "Name=percentage", repeatable; replaces configured projects`)
	cmd.Flags().StringArrayVar(&opts.holidayFiles, "holiday-file", nil, "Holiday text file, repeatable")
	cmd.Flags().StringArrayVar(&opts.icsFiles, "holiday-ics", nil, "Holiday iCalendar file, repeatable")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Excel output path (default from config)")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "Excel sheet name (default from config)")
	cmd.Flags().BoolVar(&opts.noExport, "no-export", false, "Print the table without writing the Excel file")

	return cmd
}

func runGenerate(cfg *config.Config, opts generateOptions) error {
	req, err := buildRequest(cfg, opts)
	if err != nil {
		return err
	}

	source := holidaySource(cfg, opts)

	sheet := cfg.Export.SheetName
	if opts.sheet != "" {
		sheet = opts.sheet
	}
	writer, err := export.NewWriter(sheet, logger)
	if err != nil {
		return err
	}

	generator := report.NewGenerator(source, writer, logger)

	result, err := generator.Generate(req)
	if err != nil {
		return err
	}

	printReport(result)

	if opts.noExport || !cfg.Export.Enabled && opts.output == "" {
		return nil
	}

	output := cfg.Export.Output
	if opts.output != "" {
		output = opts.output
	}
	if err := generator.Export(result, output); err != nil {
		return err
	}
	outPrintf("\n✅ Exported to %s (sheet %q)\n", output, writer.SheetName())

	return nil
}

// buildRequest merges command-line flags over configured defaults
func buildRequest(cfg *config.Config, opts generateOptions) (report.Request, error) {
	req := report.Request{
		Year:     opts.year,
		Month:    opts.month,
		Day:      opts.day,
		Projects: cfg.Report.Projects,
	}

	if len(opts.projects) > 0 {
		projects := make([]allocator.Project, 0, len(opts.projects))
		for _, raw := range opts.projects {
			p, err := parseProject(raw)
			if err != nil {
				return report.Request{}, err
			}
			projects = append(projects, p)
		}
		req.Projects = projects
	}

	holidays, err := cfg.Report.HolidayDates()
	if err != nil {
		return report.Request{}, err
	}
	for _, raw := range opts.holidays {
		d, err := dateutil.ParseDate(raw)
		if err != nil {
			return report.Request{}, fmt.Errorf("invalid --holiday: %w", err)
		}
		holidays = append(holidays, d)
	}
	req.Holidays = holidays

	return req, nil
}

// parseProject parses "Name=percentage"; the name may itself contain '='
func parseProject(raw string) (allocator.Project, error) {
	idx := strings.LastIndex(raw, "=")
	if idx < 0 {
		return allocator.Project{}, fmt.Errorf("invalid --project %q: expected Name=percentage", raw)
	}

	name := strings.TrimSpace(raw[:idx])
	pct, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw[idx+1:]), "%")))
	if err != nil {
		return allocator.Project{}, fmt.Errorf("invalid --project %q: percentage must be an integer", raw)
	}

	return allocator.Project{Name: name, Percentage: pct}, nil
}

func holidaySource(cfg *config.Config, opts generateOptions) calendar.Source {
	var sources []calendar.Source
	for _, path := range append(append([]string{}, cfg.Calendar.HolidayFiles...), opts.holidayFiles...) {
		sources = append(sources, calendar.NewFileCalendar(path, logger))
	}
	for _, path := range append(append([]string{}, cfg.Calendar.ICSFiles...), opts.icsFiles...) {
		sources = append(sources, calendar.NewICSCalendar(path, logger))
	}

	if len(sources) == 0 {
		return nil
	}

	logger.Debug("Holiday sources configured", zap.Int("count", len(sources)))
	return calendar.NewCompositeCalendar(logger, sources...)
}

func printReport(result *report.Result) {
	r := result.Report

	outPrintf("📅 Period %s (half %d): %d days, %d working\n",
		r.Period, r.Period.Half(), len(r.Days), len(r.WorkingDays))

	if len(r.Holidays) > 0 {
		outPrintln("\nExcluded holidays:")
		notes := make(map[time.Time]string, len(result.SourceHolidays))
		for _, h := range result.SourceHolidays {
			notes[h.Date] = h.Note
		}
		for _, d := range r.Holidays {
			line := "  • " + dateutil.FormatLabel(d)
			if note := notes[d]; note != "" {
				line += " (" + note + ")"
			}
			if !r.Period.Contains(d) {
				line += " [outside period]"
			}
			outPrintln(line)
		}
	}

	outPrintln("\n📊 Hours per project and day")
	outPrintln("═══════════════════════════════════════════════════════")
	printTable(&r.Table)

	outPrintln()
	outPrintf("  Total hours:          %d h\n", r.TotalHours)
	outPrintf("  Holiday hours:        %d h\n", r.HolidayHours)
	outPrintf("  Total with holidays:  %d h\n", r.FinalTotal)
}

// printTable prints the table transposed (one line per date) to fit a terminal
func printTable(table *allocator.HoursTable) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := []string{"Date"}
	for _, row := range table.Rows {
		header = append(header, row.Name)
	}
	header = append(header, allocator.TotalLabel)
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for i, col := range table.Columns {
		line := []string{col.Label}
		for _, row := range table.Rows {
			line = append(line, formatCell(row.Cells[i]))
		}
		line = append(line, formatCell(table.TotalRow.Cells[i]))
		fmt.Fprintln(tw, strings.Join(line, "\t")+"\t")
	}

	totals := []string{allocator.TotalLabel}
	for _, row := range table.Rows {
		totals = append(totals, formatHours(row.Total))
	}
	totals = append(totals, formatHours(table.TotalRow.Total))
	fmt.Fprintln(tw, strings.Join(totals, "\t")+"\t")

	tw.Flush()
}

func formatCell(c allocator.Cell) string {
	if !c.Valid {
		return "-"
	}
	return formatHours(c.Hours)
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 1, 64)
}
