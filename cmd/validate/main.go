// Command validate checks a generated report CSV for integrity: header and
// row shape, ordering and filter invariants, and agreement with a fresh
// reconciliation of the census and FEMA inputs it was built from.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -census data/mock/census_mock.csv \
//	  -fema data/mock/fema_mock.csv \
//	  -report "Sample Outputs/Population_and_Disaster_Declarations_20250608_162550.csv" \
//	  -join disasters
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"

	"github.com/couchcryptid/disaster-census-report/internal/adapter/tabular"
	"github.com/couchcryptid/disaster-census-report/internal/domain"
)

var reportHeader = []string{"State", "Population", "Disaster Declarations"}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	censusPath := flag.String("census", "", "census input file")
	femaPath := flag.String("fema", "", "FEMA declarations input file")
	reportPath := flag.String("report", "", "report CSV to validate")
	join := flag.String("join", string(domain.JoinDisasters), "join mode the report was produced with")
	flag.Parse()

	if *censusPath == "" || *femaPath == "" || *reportPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*censusPath, *femaPath, *reportPath, *join); code != 0 {
		os.Exit(code)
	}
}

func run(censusPath, femaPath, reportPath, join string) int {
	fmt.Println("=== Disaster Report Integrity Validation ===")
	fmt.Println()

	mode, err := domain.ParseJoinMode(join)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	table, err := tabular.Read(reportPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load report: %v\n", err)
		return 1
	}

	expected, err := reconcile(censusPath, femaPath, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	shape, rows := validateShape(table)
	phases := []*phase{
		shape,
		validateInvariants(rows),
		validateAgainstInputs(rows, expected),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d in report, %d expected (join=%s)\n", len(rows), len(expected), mode)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// reconcile rebuilds the summary rows the report should contain.
func reconcile(censusPath, femaPath string, mode domain.JoinMode) ([]domain.SummaryRow, error) {
	ctx := context.Background()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	census, err := tabular.NewCensusLoader(censusPath, quiet).LoadCensus(ctx)
	if err != nil {
		return nil, fmt.Errorf("load census: %w", err)
	}
	disasters, err := tabular.NewDisasterLoader(femaPath, quiet).LoadDisasters(ctx)
	if err != nil {
		return nil, fmt.Errorf("load disasters: %w", err)
	}

	var records []domain.IntegratedRecord
	if mode == domain.JoinPopulation {
		records, _ = domain.IntegrateFromPopulation(census, disasters)
	} else {
		records, _ = domain.Integrate(census, disasters)
	}
	return domain.Summarize(records), nil
}

// ── Phase 1: header and row shape ──

func validateShape(table tabular.Table) (*phase, []domain.SummaryRow) {
	p := &phase{name: "Phase 1: Header and row shape"}
	fmt.Println("Phase 1: Header and row shape")

	if !slices.Equal(table.Header, reportHeader) {
		p.errorf("header = %q, want %q", table.Header, reportHeader)
	}

	rows := make([]domain.SummaryRow, 0, len(table.Rows))
	for i, rec := range table.Rows {
		line := i + 2
		if len(rec) != len(reportHeader) {
			p.errorf("line %d: %d fields, want %d", line, len(rec), len(reportHeader))
			continue
		}
		pop, err := strconv.Atoi(rec[1])
		if err != nil {
			p.errorf("line %d: population %q is not an integer", line, rec[1])
			continue
		}
		count, err := strconv.Atoi(rec[2])
		if err != nil {
			p.errorf("line %d: disaster declarations %q is not an integer", line, rec[2])
			continue
		}
		rows = append(rows, domain.SummaryRow{State: rec[0], Population: pop, DisasterDeclarations: count})
	}

	fmt.Printf("  %d data rows parsed\n", len(rows))
	return p, rows
}

// ── Phase 2: ordering and filter invariants ──

func validateInvariants(rows []domain.SummaryRow) *phase {
	p := &phase{name: "Phase 2: Ordering and filter invariants"}
	fmt.Println("Phase 2: Ordering and filter invariants")

	seen := make(map[string]bool, len(rows))
	for i, r := range rows {
		if r.State == "" {
			p.errorf("row %d: empty state name", i+1)
		}
		if r.Population <= 0 {
			p.errorf("row %d (%s): population %d is not positive", i+1, r.State, r.Population)
		}
		if r.DisasterDeclarations < 0 {
			p.errorf("row %d (%s): negative disaster count %d", i+1, r.State, r.DisasterDeclarations)
		}
		if seen[r.State] {
			p.errorf("row %d: duplicate state %q", i+1, r.State)
		}
		seen[r.State] = true
		if i > 0 && rows[i-1].Population < r.Population {
			p.errorf("row %d (%s): population %d exceeds previous row's %d",
				i+1, r.State, r.Population, rows[i-1].Population)
		}
	}

	fmt.Printf("  %d states checked\n", len(seen))
	return p
}

// ── Phase 3: agreement with the inputs ──

func validateAgainstInputs(rows, expected []domain.SummaryRow) *phase {
	p := &phase{name: "Phase 3: Cross-check against inputs"}
	fmt.Println("Phase 3: Cross-check against inputs")

	if len(rows) != len(expected) {
		p.errorf("report has %d rows, inputs produce %d", len(rows), len(expected))
	}
	for i := range min(len(rows), len(expected)) {
		got, want := rows[i], expected[i]
		if got != want {
			p.errorf("row %d: got %s/%d/%d, want %s/%d/%d", i+1,
				got.State, got.Population, got.DisasterDeclarations,
				want.State, want.Population, want.DisasterDeclarations)
		}
	}

	fmt.Printf("  %d expected rows compared\n", len(expected))
	return p
}
