// Package report turns integrated records into the summary CSV, the
// population/disaster chart and an optional workbook.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/disaster-census-report/internal/config"
	"github.com/couchcryptid/disaster-census-report/internal/domain"
)

const baseName = "Population_and_Disaster_Declarations"

// Writer writes report artifacts into an output directory.
// It implements pipeline.ReportLoader.
type Writer struct {
	dir      string
	dpi      int
	workbook bool
	logger   *slog.Logger
}

// NewWriter creates a report writer for the configured output directory.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	return &Writer{
		dir:      cfg.OutputDir,
		dpi:      cfg.ChartDPI,
		workbook: cfg.XLSXExport,
		logger:   logger,
	}
}

// Load summarizes records and writes the CSV and PNG (plus XLSX when enabled)
// sharing one timestamped base name. It returns domain.ErrNoReportData without
// touching the filesystem when no record survives the filter. If any artifact
// fails, the ones already written by this call are removed.
func (w *Writer) Load(ctx context.Context, records []domain.IntegratedRecord) (files domain.ReportFiles, err error) {
	ts := domain.Now().Format(domain.ReportTimestampLayout)

	rows := domain.Summarize(records)
	if len(rows) == 0 {
		return domain.ReportFiles{}, domain.ErrNoReportData
	}
	if err := ctx.Err(); err != nil {
		return domain.ReportFiles{}, err
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return domain.ReportFiles{}, fmt.Errorf("create output dir %s: %w", w.dir, err)
	}

	base := filepath.Join(w.dir, baseName+"_"+ts)
	files = domain.ReportFiles{
		CSV:   base + ".csv",
		Chart: base + ".png",
		Rows:  len(rows),
	}

	var written []string
	defer func() {
		if err != nil {
			w.remove(written)
			files = domain.ReportFiles{}
		}
	}()

	if err := writeCSV(files.CSV, rows); err != nil {
		return files, fmt.Errorf("%s: %w", files.CSV, err)
	}
	written = append(written, files.CSV)
	w.logger.Info("report csv written", "path", files.CSV, "rows", len(rows))

	if err := writeChart(files.Chart, rows, w.dpi); err != nil {
		return files, fmt.Errorf("%s: %w", files.Chart, err)
	}
	written = append(written, files.Chart)
	w.logger.Info("report chart written", "path", files.Chart, "dpi", w.dpi)

	if w.workbook {
		files.Workbook = base + ".xlsx"
		if err := writeWorkbook(files.Workbook, rows); err != nil {
			return files, fmt.Errorf("%s: %w", files.Workbook, err)
		}
		w.logger.Info("report workbook written", "path", files.Workbook)
	}

	return files, nil
}

func (w *Writer) remove(paths []string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			w.logger.Error("remove partial report artifact", "path", path, "error", err)
			continue
		}
		w.logger.Info("removed partial report artifact", "path", path)
	}
}
