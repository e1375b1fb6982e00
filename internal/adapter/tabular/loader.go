package tabular

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/disaster-census-report/internal/domain"
)

// CensusLoader reads the wide-format population file.
// It implements pipeline.CensusExtractor.
type CensusLoader struct {
	path   string
	logger *slog.Logger
}

// NewCensusLoader creates a loader for the census file at path.
func NewCensusLoader(path string, logger *slog.Logger) *CensusLoader {
	return &CensusLoader{path: path, logger: logger}
}

// LoadCensus reads and parses the whole file.
func (l *CensusLoader) LoadCensus(ctx context.Context) (*domain.CensusData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := Read(l.path)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("census file read", "path", l.path, "columns", len(table.Header), "rows", len(table.Rows))

	census, err := domain.ParseCensus(table.Header, table.Rows)
	if err != nil {
		return nil, fmt.Errorf("parse census %s: %w", l.path, err)
	}
	return census, nil
}

// DisasterLoader reads the FEMA declarations file.
// It implements pipeline.DisasterExtractor.
type DisasterLoader struct {
	path   string
	logger *slog.Logger
}

// NewDisasterLoader creates a loader for the FEMA file at path.
func NewDisasterLoader(path string, logger *slog.Logger) *DisasterLoader {
	return &DisasterLoader{path: path, logger: logger}
}

// LoadDisasters reads the file and groups its rows by state code.
func (l *DisasterLoader) LoadDisasters(ctx context.Context) (*domain.DisasterIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := Read(l.path)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("fema file read", "path", l.path, "columns", len(table.Header), "rows", len(table.Rows))

	index, err := domain.ParseDisasters(table.Header, table.Rows)
	if err != nil {
		var rowErr *domain.RowError
		if errors.As(err, &rowErr) {
			return nil, fmt.Errorf("parse disasters %s: line %d: %w", l.path, table.Line(rowErr.Row), err)
		}
		return nil, fmt.Errorf("parse disasters %s: %w", l.path, err)
	}
	return index, nil
}
