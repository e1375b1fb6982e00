package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/disaster-census-report/internal/domain"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all report settings, populated from environment variables.
type Config struct {
	CensusFile string
	FEMAFile   string
	OutputDir  string
	JoinMode   domain.JoinMode

	ChartDPI   int
	XLSXExport bool

	// MetricsTextfile is where run metrics are written at exit; empty disables it.
	MetricsTextfile string

	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	joinMode, err := domain.ParseJoinMode(sharedcfg.EnvOrDefault("JOIN_MODE", string(domain.JoinDisasters)))
	if err != nil {
		return nil, fmt.Errorf("invalid JOIN_MODE: %w", err)
	}

	dpi, err := parseChartDPI()
	if err != nil {
		return nil, err
	}

	xlsx, err := strconv.ParseBool(sharedcfg.EnvOrDefault("XLSX_EXPORT", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid XLSX_EXPORT: %w", err)
	}

	cfg := &Config{
		CensusFile:      sharedcfg.EnvOrDefault("CENSUS_FILE", "DECENNIALCD1182020.P1-2025-06-08T162550.csv"),
		FEMAFile:        sharedcfg.EnvOrDefault("FEMA_FILE", "FemaWebDisasterDeclarations.csv"),
		OutputDir:       sharedcfg.EnvOrDefault("OUTPUT_DIR", "Sample Outputs"),
		JoinMode:        joinMode,
		ChartDPI:        dpi,
		XLSXExport:      xlsx,
		MetricsTextfile: strings.TrimSpace(sharedcfg.EnvOrDefault("METRICS_TEXTFILE", "")),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		ShutdownTimeout: shutdownTimeout,
	}

	if strings.TrimSpace(cfg.OutputDir) == "" {
		return nil, errors.New("OUTPUT_DIR is required")
	}

	return cfg, nil
}

// parseChartDPI reads CHART_DPI. Default: 300. Range: 1-1200.
func parseChartDPI() (int, error) {
	s := sharedcfg.EnvOrDefault("CHART_DPI", "300")
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 1200 {
		return 0, fmt.Errorf("invalid CHART_DPI %q: must be 1-1200", s)
	}
	return n, nil
}
