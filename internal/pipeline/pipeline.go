package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/disaster-census-report/internal/domain"
	"github.com/couchcryptid/disaster-census-report/internal/observability"
	"github.com/davecgh/go-spew/spew"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	loadPreview      = 10
	integratePreview = 5
)

// CensusExtractor loads state populations.
type CensusExtractor interface {
	LoadCensus(ctx context.Context) (*domain.CensusData, error)
}

// DisasterExtractor loads declarations grouped by state code.
type DisasterExtractor interface {
	LoadDisasters(ctx context.Context) (*domain.DisasterIndex, error)
}

// Integrator reconciles the two sources into integrated records.
type Integrator interface {
	Integrate(census *domain.CensusData, disasters *domain.DisasterIndex) ([]domain.IntegratedRecord, domain.SkipCounts)
}

// ReportLoader writes the summary artifacts for integrated records.
type ReportLoader interface {
	Load(ctx context.Context, records []domain.IntegratedRecord) (domain.ReportFiles, error)
}

// Pipeline runs census load, disaster load, integration and reporting once.
type Pipeline struct {
	census     CensusExtractor
	disasters  DisasterExtractor
	integrator Integrator
	loader     ReportLoader
	logger     *slog.Logger
	metrics    *observability.Metrics
	printer    *message.Printer
}

// New creates a Pipeline with the given stages and observability.
func New(c CensusExtractor, d DisasterExtractor, i Integrator, l ReportLoader, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		census:     c,
		disasters:  d,
		integrator: i,
		loader:     l,
		logger:     logger,
		metrics:    metrics,
		printer:    message.NewPrinter(language.English),
	}
}

// Run executes every stage in order. Cancellation is honoured between stages.
// An empty report is logged as a warning and is not an error.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started")

	census, err := p.loadCensus(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	disasters, err := p.loadDisasters(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	records := p.integrate(ctx, census, disasters)
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	files, err := p.loader.Load(ctx, records)
	p.observe("report", start)
	switch {
	case errors.Is(err, domain.ErrNoReportData):
		p.logger.Warn("no data available for the report, nothing written", "records", len(records))
		p.metrics.ReportRows.Set(0)
	case err != nil:
		return fmt.Errorf("write report: %w", err)
	default:
		p.metrics.ReportsWritten.Inc()
		p.metrics.ReportRows.Set(float64(files.Rows))
		p.logger.Info("report written",
			"csv", files.CSV,
			"chart", files.Chart,
			"workbook", files.Workbook,
			"rows", files.Rows,
		)
	}

	p.metrics.LastSuccess.Set(float64(domain.Now().Unix()))
	p.logger.Info("pipeline finished")
	return nil
}

func (p *Pipeline) loadCensus(ctx context.Context) (*domain.CensusData, error) {
	start := time.Now()
	census, err := p.census.LoadCensus(ctx)
	p.observe("census", start)
	if err != nil {
		return nil, fmt.Errorf("load census: %w", err)
	}

	p.metrics.RecordsLoaded.WithLabelValues("census").Add(float64(census.Len()))
	names := census.Names()
	p.logger.Info("census loaded", "states", census.Len(), "first", head(names, loadPreview))
	return census, nil
}

func (p *Pipeline) loadDisasters(ctx context.Context) (*domain.DisasterIndex, error) {
	start := time.Now()
	index, err := p.disasters.LoadDisasters(ctx)
	p.observe("fema", start)
	if err != nil {
		return nil, fmt.Errorf("load disasters: %w", err)
	}

	codes := index.Codes()
	declarations := 0
	for _, code := range codes {
		group, _ := index.Disasters(code)
		declarations += len(group)
	}
	p.metrics.RecordsLoaded.WithLabelValues("fema").Add(float64(declarations))
	p.logger.Info("disasters loaded",
		"codes", len(codes),
		"declarations", declarations,
		"first", head(codes, loadPreview),
	)
	return index, nil
}

func (p *Pipeline) integrate(ctx context.Context, census *domain.CensusData, disasters *domain.DisasterIndex) []domain.IntegratedRecord {
	start := time.Now()
	records, skips := p.integrator.Integrate(census, disasters)
	p.observe("integrate", start)

	p.metrics.IntegratedRecords.Set(float64(len(records)))
	p.metrics.ReconcileSkips.WithLabelValues("unknown_code").Add(float64(skips.UnknownCode))
	p.metrics.ReconcileSkips.WithLabelValues("no_population").Add(float64(skips.NoPopulation))
	p.metrics.ReconcileSkips.WithLabelValues("unknown_name").Add(float64(skips.UnknownName))

	p.logger.Info("integration complete",
		"records", len(records),
		"skipped_unknown_code", skips.UnknownCode,
		"skipped_no_population", skips.NoPopulation,
		"skipped_unknown_name", skips.UnknownName,
	)
	for _, rec := range head(records, integratePreview) {
		p.logger.Info(p.printer.Sprintf("%s | %d | %d", rec.StateName, rec.Population, rec.DisasterCount()))
	}
	if len(records) > 0 && p.logger.Enabled(ctx, slog.LevelDebug) {
		p.logger.Debug("first record sources", "state_code", records[0].StateCode, "dump", spew.Sdump(records[0].Source))
	}
	return records
}

func (p *Pipeline) observe(stage string, start time.Time) {
	p.metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
