package config

import (
	"testing"
	"time"

	"github.com/couchcryptid/disaster-census-report/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "DECENNIALCD1182020.P1-2025-06-08T162550.csv", cfg.CensusFile)
	assert.Equal(t, "FemaWebDisasterDeclarations.csv", cfg.FEMAFile)
	assert.Equal(t, "Sample Outputs", cfg.OutputDir)
	assert.Equal(t, domain.JoinDisasters, cfg.JoinMode)
	assert.Equal(t, 300, cfg.ChartDPI)
	assert.False(t, cfg.XLSXExport)
	assert.Empty(t, cfg.MetricsTextfile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("CENSUS_FILE", "census.xlsx")
	t.Setenv("FEMA_FILE", "fema.xls")
	t.Setenv("OUTPUT_DIR", "out")
	t.Setenv("JOIN_MODE", "population")
	t.Setenv("CHART_DPI", "72")
	t.Setenv("XLSX_EXPORT", "true")
	t.Setenv("METRICS_TEXTFILE", "/var/lib/node_exporter/report.prom")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "census.xlsx", cfg.CensusFile)
	assert.Equal(t, "fema.xls", cfg.FEMAFile)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, domain.JoinPopulation, cfg.JoinMode)
	assert.Equal(t, 72, cfg.ChartDPI)
	assert.True(t, cfg.XLSXExport)
	assert.Equal(t, "/var/lib/node_exporter/report.prom", cfg.MetricsTextfile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown join mode", "JOIN_MODE", "states"},
		{"dpi not a number", "CHART_DPI", "high"},
		{"dpi zero", "CHART_DPI", "0"},
		{"dpi too large", "CHART_DPI", "2400"},
		{"xlsx flag", "XLSX_EXPORT", "maybe"},
		{"shutdown timeout", "SHUTDOWN_TIMEOUT", "-1s"},
		{"blank output dir", "OUTPUT_DIR", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
