// Command genmock writes a deterministic pair of input files for the report:
// a wide census CSV (BOM, quoted labels, grouped digits) and a FEMA
// declarations CSV that includes territories outside the state table and a
// row with no state code. The expected report rows are printed to stdout.
//
// Usage:
//
//	go run ./cmd/genmock -out-dir data/mock -seed 7
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/couchcryptid/disaster-census-report/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	censusFile = "census_mock.csv"
	femaFile   = "fema_mock.csv"
)

var (
	baseDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	femaHeader = []string{
		"femaDeclarationString", domain.ColDisasterNumber, domain.ColStateCode, "declarationType",
		domain.ColDeclarationDate, domain.ColIncidentType, domain.ColDeclarationTitle, domain.ColIncidentBeginDate,
	}

	incidents = []struct{ kind, title string }{
		{"Fire", "WILDFIRES"},
		{"Flood", "SEVERE STORMS AND FLOODING"},
		{"Hurricane", "HURRICANE"},
		{"Severe Storm", "SEVERE STORMS, STRAIGHT-LINE WINDS, AND TORNADOES"},
		{"Snowstorm", "SEVERE WINTER STORM"},
		{"Earthquake", "EARTHQUAKE"},
	}
)

// expectation is one state's inputs as the report should see them.
type expectation struct {
	code       string
	name       string
	population int
	disasters  int
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "", "directory to write the mock census and FEMA files into")
	seed := flag.Uint64("seed", 1, "random seed; equal seeds give identical files")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out-dir")
	}

	expected, err := generate(*outDir, *seed)
	if err != nil {
		return err
	}
	printExpectations(expected)
	return nil
}

// generate writes both mock files into outDir and returns the per-state inputs.
func generate(outDir string, seed uint64) ([]expectation, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	codes := domain.StateCodes()
	expected := make([]expectation, 0, len(codes))
	for _, code := range codes {
		name, _ := domain.StateNameForCode(code)
		expected = append(expected, expectation{
			code:       code,
			name:       name,
			population: 500_000 + rng.IntN(39_000_000),
			disasters:  rng.IntN(5),
		})
	}

	censusPath := filepath.Join(outDir, censusFile)
	if err := writeCensus(censusPath, expected); err != nil {
		return nil, fmt.Errorf("writing census: %w", err)
	}
	log.Printf("wrote census: %s (%d states)", censusPath, len(expected))

	femaPath := filepath.Join(outDir, femaFile)
	rows, err := writeFEMA(femaPath, expected, rng)
	if err != nil {
		return nil, fmt.Errorf("writing fema: %w", err)
	}
	log.Printf("wrote fema: %s (%d declarations)", femaPath, rows)

	return expected, nil
}

func writeCensus(path string, expected []expectation) error {
	printer := message.NewPrinter(language.English)

	var b strings.Builder
	b.WriteString("\ufeff\"Label (Grouping)\"")
	for _, e := range expected {
		fmt.Fprintf(&b, ",\"%s\"", e.name)
	}
	b.WriteString("\n\"Total:\"")
	for _, e := range expected {
		b.WriteString(printer.Sprintf(",\"%d\"", e.population))
	}
	b.WriteString("\n")

	return os.WriteFile(path, []byte(b.String()), 0o600)
}

func writeFEMA(path string, expected []expectation, rng *rand.Rand) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(femaHeader); err != nil {
		return 0, err
	}

	number := 4000
	write := func(code string) error {
		number++
		inc := incidents[rng.IntN(len(incidents))]
		begin := baseDate.AddDate(0, 0, rng.IntN(365))
		declared := begin.AddDate(0, 0, 1+rng.IntN(20))
		return w.Write([]string{
			fmt.Sprintf("DR-%d-%s", number, code),
			fmt.Sprint(number),
			code,
			"DR",
			declared.Format("2006-01-02T15:04:05.000Z"),
			inc.kind,
			inc.title,
			begin.Format("2006-01-02T15:04:05.000Z"),
		})
	}

	// Interleave states so grouping has to preserve first-appearance order.
	pending := make(map[string]int, len(expected))
	for _, e := range expected {
		pending[e.code] = e.disasters
	}
	for round := 0; ; round++ {
		wrote := false
		for _, e := range expected {
			if pending[e.code] == 0 {
				continue
			}
			pending[e.code]--
			if err := write(e.code); err != nil {
				return 0, err
			}
			wrote = true
		}
		if !wrote {
			break
		}
		// Territories without a state-table entry are skipped by the report.
		if round == 0 {
			for _, code := range []string{"GU", "AS"} {
				if err := write(code); err != nil {
					return 0, err
				}
			}
		}
	}
	if err := write(""); err != nil {
		return 0, err
	}

	w.Flush()
	return number - 4000, w.Error()
}

func printExpectations(expected []expectation) {
	rows := make([]expectation, 0, len(expected))
	for _, e := range expected {
		if e.disasters > 0 {
			rows = append(rows, e)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].population > rows[j].population })

	fmt.Println("\n=== Expected report (JOIN_MODE=disasters) ===")
	fmt.Printf("Rows: %d of %d states (states without declarations drop out)\n", len(rows), len(expected))
	for i, e := range rows {
		fmt.Printf("%2d. %-22s %s  population=%d disasters=%d\n", i+1, e.name, e.code, e.population, e.disasters)
	}
	fmt.Println("Skipped codes: GU, AS and one blank stateCode")
}
