package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/username/par-generator/internal/allocator"
	"github.com/username/par-generator/internal/export"
)

const sampleConfig = `
report:
  projects:
    - name: Health
      percentage: 60
    - name: Education
      percentage: 40
  holidays:
    - "2024-02-20"
    - "17.01.2024"
calendar:
  holiday_files:
    - "${PAR_TEST_DIR}/holidays.txt"
export:
  output: "out/february.xlsx"
  sheet_name: "February"
log:
  level: debug
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("PAR_TEST_DIR", "/data")
	path := writeConfig(t, sampleConfig)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	wantProjects := []allocator.Project{{Name: "Health", Percentage: 60}, {Name: "Education", Percentage: 40}}
	if len(cfg.Report.Projects) != len(wantProjects) {
		t.Fatalf("Projects = %+v, want %+v", cfg.Report.Projects, wantProjects)
	}
	for i, p := range wantProjects {
		if cfg.Report.Projects[i] != p {
			t.Errorf("Projects[%d] = %+v, want %+v", i, cfg.Report.Projects[i], p)
		}
	}

	dates, err := cfg.Report.HolidayDates()
	if err != nil {
		t.Fatalf("HolidayDates() error = %v", err)
	}
	wantDates := []time.Time{
		time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC),
	}
	for i, d := range wantDates {
		if !dates[i].Equal(d) {
			t.Errorf("HolidayDates()[%d] = %v, want %v", i, dates[i], d)
		}
	}

	if got := cfg.Calendar.HolidayFiles[0]; got != "/data/holidays.txt" {
		t.Errorf("HolidayFiles[0] = %q, want expanded path", got)
	}
	if !cfg.Export.Enabled {
		t.Error("Export.Enabled should default to true")
	}
	if cfg.Export.Output != "out/february.xlsx" || cfg.Export.SheetName != "February" {
		t.Errorf("Export = %+v", cfg.Export)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PAR_EXPORT_OUTPUT", "override.xlsx")
	path := writeConfig(t, "log:\n  level: info\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Export.Output != "override.xlsx" {
		t.Errorf("Export.Output = %q, want override.xlsx", cfg.Export.Output)
	}
	if cfg.Export.SheetName != export.DefaultSheetName {
		t.Errorf("Export.SheetName = %q, want default", cfg.Export.SheetName)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing explicit file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"Defaults", func(c *Config) {}, false},
		{"Blank project name", func(c *Config) {
			c.Report.Projects = []allocator.Project{{Name: " ", Percentage: 100}}
		}, true},
		{"Percentage out of range", func(c *Config) {
			c.Report.Projects = []allocator.Project{{Name: "A", Percentage: 101}}
		}, true},
		{"Percentages not summing to 100 are left to the run", func(c *Config) {
			c.Report.Projects = []allocator.Project{{Name: "A", Percentage: 50}}
		}, false},
		{"Bad holiday", func(c *Config) { c.Report.Holidays = []string{"someday"} }, true},
		{"Wrong export extension", func(c *Config) { c.Export.Output = "hours.csv" }, true},
		{"Export disabled ignores output", func(c *Config) {
			c.Export.Enabled = false
			c.Export.Output = ""
		}, false},
		{"Long sheet name", func(c *Config) { c.Export.SheetName = "This sheet name is far too long for excel" }, true},
		{"Unknown log level", func(c *Config) { c.Log.Level = "verbose" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
