package observability

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/disaster-census-report/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsForTesting_Independent(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	a.RecordsLoaded.WithLabelValues("census").Add(52)
	a.ReportsWritten.Inc()

	assert.InDelta(t, 52, testutil.ToFloat64(a.RecordsLoaded.WithLabelValues("census")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(b.ReportsWritten), 0)
}

func TestWriteTextfile(t *testing.T) {
	m := NewMetricsForTesting()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.RecordsLoaded, m.ReportRows)

	m.RecordsLoaded.WithLabelValues("fema").Add(3)
	m.ReportRows.Set(2)

	path := filepath.Join(t.TempDir(), "report.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `disaster_report_records_loaded_total{source="fema"} 3`)
	assert.Contains(t, string(data), "disaster_report_report_rows 2")
}

func TestWriteTextfile_BadPath(t *testing.T) {
	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "report.prom"), prometheus.NewRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report.prom")
}

func TestNewLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := NewLogger(&config.Config{LogLevel: "warn", LogFormat: "json"})
	require.NotNil(t, logger)
	assert.Same(t, logger, slog.Default())
	assert.True(t, logger.Enabled(t.Context(), slog.LevelWarn))
	assert.False(t, logger.Enabled(t.Context(), slog.LevelInfo))
}
