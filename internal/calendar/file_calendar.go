package calendar

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FileCalendar implements Source using a local text file
type FileCalendar struct {
	filePath string
	logger   *zap.Logger
}

// NewFileCalendar creates a new FileCalendar instance
func NewFileCalendar(filePath string, logger *zap.Logger) *FileCalendar {
	return &FileCalendar{
		filePath: filePath,
		logger:   logger,
	}
}

// Name returns the file path
func (fc *FileCalendar) Name() string {
	return fc.filePath
}

// Holidays loads holiday dates from file
func (fc *FileCalendar) Holidays() ([]Holiday, error) {
	file, err := os.Open(fc.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	holidays := []Holiday{}
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Format: YYYY-MM-DD [note]
		// Example: 2024-06-30 Independence Day
		parts := strings.SplitN(line, " ", 2)
		dateStr := parts[0]
		note := ""
		if len(parts) == 2 {
			note = strings.TrimSpace(parts[1])
		}

		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			fc.logger.Warn("Failed to parse holiday date",
				zap.String("file", fc.filePath),
				zap.Int("line", lineNo),
				zap.String("date", dateStr),
				zap.Error(err))
			continue
		}

		holidays = append(holidays, Holiday{Date: date, Note: note})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading holiday file: %w", err)
	}

	fc.logger.Info("Holiday file loaded",
		zap.String("file", fc.filePath),
		zap.Int("holidays", len(holidays)))

	return holidays, nil
}
