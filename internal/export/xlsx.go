package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/username/par-generator/internal/allocator"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	// Extension is the file extension of the exported workbook
	Extension = ".xlsx"
	// DefaultSheetName names the single sheet of the workbook
	DefaultSheetName = "Calculated Hours"

	maxSheetNameLen = 31
	defaultSheet    = "Sheet1"
)

var (
	// ErrSheetName is returned for names Excel refuses as sheet titles
	ErrSheetName = errors.New("invalid sheet name")
	// ErrNoReport is returned when Write is given a nil report
	ErrNoReport = errors.New("nothing to export")
)

// Writer renders an hours table into a single-sheet workbook
type Writer struct {
	sheetName string
	logger    *zap.Logger
}

// NewWriter creates a Writer; an empty sheet name falls back to DefaultSheetName
func NewWriter(sheetName string, logger *zap.Logger) (*Writer, error) {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	if err := ValidateSheetName(sheetName); err != nil {
		return nil, err
	}

	return &Writer{sheetName: sheetName, logger: logger}, nil
}

// SheetName returns the sheet the table is written to
func (w *Writer) SheetName() string {
	return w.sheetName
}

// ValidateSheetName checks the spreadsheet naming rules
func ValidateSheetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty", ErrSheetName)
	}
	if len([]rune(name)) > maxSheetNameLen {
		return fmt.Errorf("%w: %q is longer than %d characters", ErrSheetName, name, maxSheetNameLen)
	}
	if strings.ContainsAny(name, `:\/?*[]`) {
		return fmt.Errorf("%w: %q contains one of : \\ / ? * [ ]", ErrSheetName, name)
	}
	return nil
}

// Write renders the report table as xlsx into out
func (w *Writer) Write(report *allocator.Report, out io.Writer) error {
	if report == nil {
		return ErrNoReport
	}

	f, err := w.build(&report.Table)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteFile renders the report table into the xlsx file at path
func (w *Writer) WriteFile(report *allocator.Report, path string) error {
	if !strings.EqualFold(filepath.Ext(path), Extension) {
		return fmt.Errorf("export path %q must end with %s", path, Extension)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open export file: %w", err)
	}

	if err := w.Write(report, file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}

	w.logger.Info("Workbook exported",
		zap.String("path", path),
		zap.String("sheet", w.sheetName),
		zap.Int("rows", len(report.Table.Rows)+1),
		zap.Int("columns", len(report.Table.Columns)+1))

	return nil
}

// build lays the table out as:
//
//	      | <label> ... | Total
//	<row> | hours  ... | total
//	Total | 8      ... | grand total
func (w *Writer) build(table *allocator.HoursTable) (*excelize.File, error) {
	f := excelize.NewFile()

	idx, err := f.NewSheet(w.sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if w.sheetName != defaultSheet {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to drop default sheet: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		NumFmt: 2, // 0.00
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create total style: %w", err)
	}

	lastCol := len(table.Columns) + 2

	// header row
	for i, col := range table.Columns {
		if err := f.SetCellStr(w.sheetName, cell(i+2, 1), col.Label); err != nil {
			f.Close()
			return nil, err
		}
	}
	if err := f.SetCellStr(w.sheetName, cell(lastCol, 1), allocator.TotalLabel); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetCellStyle(w.sheetName, cell(1, 1), cell(lastCol, 1), headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	rows := append(append([]allocator.Row{}, table.Rows...), table.TotalRow)
	for r, row := range rows {
		rowNum := r + 2
		if err := w.writeRow(f, rowNum, row, lastCol); err != nil {
			f.Close()
			return nil, err
		}
	}

	totalRowNum := len(rows) + 1
	if err := f.SetCellStyle(w.sheetName, cell(lastCol, 2), cell(lastCol, totalRowNum), totalStyle); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetCellStyle(w.sheetName, cell(1, totalRowNum), cell(lastCol, totalRowNum), totalStyle); err != nil {
		f.Close()
		return nil, err
	}

	lastColName, err := excelize.ColumnNumberToName(lastCol)
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetColWidth(w.sheetName, "A", "A", 24); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetColWidth(w.sheetName, "B", lastColName, 14); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetPanes(w.sheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	}); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func (w *Writer) writeRow(f *excelize.File, rowNum int, row allocator.Row, lastCol int) error {
	if err := f.SetCellStr(w.sheetName, cell(1, rowNum), row.Name); err != nil {
		return err
	}
	for i, c := range row.Cells {
		if !c.Valid {
			continue
		}
		if err := f.SetCellFloat(w.sheetName, cell(i+2, rowNum), c.Hours, -1, 64); err != nil {
			return err
		}
	}
	return f.SetCellFloat(w.sheetName, cell(lastCol, rowNum), row.Total, -1, 64)
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
