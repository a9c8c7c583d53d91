package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/username/par-generator/internal/allocator"
	"github.com/username/par-generator/internal/export"
	"github.com/username/par-generator/pkg/dateutil"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes environment overrides, e.g. PAR_EXPORT_OUTPUT
const EnvPrefix = "PAR"

// Config represents application configuration
type Config struct {
	Report   ReportConfig   `mapstructure:"report"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Export   ExportConfig   `mapstructure:"export"`
	Log      LogConfig      `mapstructure:"log"`
}

// ReportConfig holds the default inputs of a run
type ReportConfig struct {
	Projects []allocator.Project `mapstructure:"projects"`
	Holidays []string            `mapstructure:"holidays"` // YYYY-MM-DD or DD.MM.YYYY
}

// CalendarConfig lists holiday files consulted on every run
type CalendarConfig struct {
	HolidayFiles []string `mapstructure:"holiday_files"` // "YYYY-MM-DD note" per line
	ICSFiles     []string `mapstructure:"ics_files"`
}

// ExportConfig represents spreadsheet export configuration
type ExportConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Output    string `mapstructure:"output"`
	SheetName string `mapstructure:"sheet_name"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Default returns the configuration used when no file is found
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			Enabled:   true,
			Output:    "calculated_hours.xlsx",
			SheetName: export.DefaultSheetName,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from file.
// With an empty configPath the usual locations are searched and a missing
// file falls back to defaults; an explicit path must exist.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.par-generator")
		v.AddConfigPath("/etc/par-generator")
	}

	// Read environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("export.enabled", d.Export.Enabled)
	v.SetDefault("export.output", d.Export.Output)
	v.SetDefault("export.sheet_name", d.Export.SheetName)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
}

// Validate validates the configuration.
// Percentages are not summed here; that check belongs to the allocation run.
func (c *Config) Validate() error {
	for i, p := range c.Report.Projects {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("report.projects[%d].name is required", i)
		}
		if p.Percentage < 0 || p.Percentage > 100 {
			return fmt.Errorf("report.projects[%d].percentage must be between 0 and 100", i)
		}
	}

	for i, h := range c.Report.Holidays {
		if _, err := dateutil.ParseDate(h); err != nil {
			return fmt.Errorf("report.holidays[%d]: %w", i, err)
		}
	}

	if c.Export.Enabled {
		if c.Export.Output == "" {
			return fmt.Errorf("export.output is required when export is enabled")
		}
		if !strings.EqualFold(filepath.Ext(c.Export.Output), export.Extension) {
			return fmt.Errorf("export.output must end with %s", export.Extension)
		}
	}
	if err := export.ValidateSheetName(c.Export.SheetName); err != nil {
		return fmt.Errorf("export.sheet_name: %w", err)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	return nil
}

// HolidayDates parses the configured holiday list
func (c *ReportConfig) HolidayDates() ([]time.Time, error) {
	dates := make([]time.Time, 0, len(c.Holidays))
	for i, h := range c.Holidays {
		d, err := dateutil.ParseDate(h)
		if err != nil {
			return nil, fmt.Errorf("report.holidays[%d]: %w", i, err)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Export.Output = os.ExpandEnv(c.Export.Output)
	c.Log.File = os.ExpandEnv(c.Log.File)
	for i := range c.Calendar.HolidayFiles {
		c.Calendar.HolidayFiles[i] = os.ExpandEnv(c.Calendar.HolidayFiles[i])
	}
	for i := range c.Calendar.ICSFiles {
		c.Calendar.ICSFiles[i] = os.ExpandEnv(c.Calendar.ICSFiles[i])
	}
}
