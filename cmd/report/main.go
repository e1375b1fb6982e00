// Command report joins state populations with FEMA disaster declarations and
// writes a timestamped CSV and chart (plus an optional workbook) to OUTPUT_DIR.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/disaster-census-report/internal/adapter/report"
	"github.com/couchcryptid/disaster-census-report/internal/adapter/tabular"
	"github.com/couchcryptid/disaster-census-report/internal/config"
	"github.com/couchcryptid/disaster-census-report/internal/observability"
	"github.com/couchcryptid/disaster-census-report/internal/pipeline"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// A missing .env is fine; real environment variables always win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	logger.Info("starting report",
		"census_file", cfg.CensusFile,
		"fema_file", cfg.FEMAFile,
		"output_dir", cfg.OutputDir,
		"join_mode", cfg.JoinMode,
		"chart_dpi", cfg.ChartDPI,
		"xlsx_export", cfg.XLSXExport,
	)

	p := pipeline.New(
		tabular.NewCensusLoader(cfg.CensusFile, logger),
		tabular.NewDisasterLoader(cfg.FEMAFile, logger),
		pipeline.NewIntegrator(cfg.JoinMode, logger),
		report.NewWriter(cfg, logger),
		logger,
		metrics,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	var runErr error
	select {
	case runErr = <-done:
	case <-ctx.Done():
		logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
		select {
		case runErr = <-done:
		case <-time.After(cfg.ShutdownTimeout):
			runErr = errors.New("pipeline did not stop before SHUTDOWN_TIMEOUT")
		}
	}

	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile, prometheus.DefaultGatherer); err != nil {
			logger.Error("metrics export failed", "error", err)
		}
	}

	if runErr != nil {
		logger.Error("report failed", "error", runErr)
		stop()
		os.Exit(1)
	}
	logger.Info("report complete")
}
