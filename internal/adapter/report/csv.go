package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/couchcryptid/disaster-census-report/internal/domain"
)

var csvHeader = []string{"State", "Population", "Disaster Declarations"}

// writeCSV writes the summary table with a header row and no index column.
func writeCSV(path string, rows []domain.SummaryRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		rec := []string{row.State, strconv.Itoa(row.Population), strconv.Itoa(row.DisasterDeclarations)}
		if err := w.Write(rec); err != nil {
			f.Close()
			return fmt.Errorf("write csv row %q: %w", row.State, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}
