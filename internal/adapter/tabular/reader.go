// Package tabular reads the census and FEMA inputs from CSV, XLSX or legacy
// XLS files into a header plus data rows.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anrid/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Table is a header row followed by data rows. Rows may be shorter or longer
// than the header.
type Table struct {
	Header []string
	Rows   [][]string
	// Lines holds the 1-based source line (or sheet row) each entry of Rows
	// starts on. It may be nil for tables built by hand.
	Lines []int
}

// Line returns the source line of Rows[i], falling back to the position
// implied by a header plus contiguous rows.
func (t Table) Line(i int) int {
	if i >= 0 && i < len(t.Lines) {
		return t.Lines[i]
	}
	return i + 2
}

// Read loads the file at path, choosing the format by extension: ".xlsx" and
// ".xls" read the first sheet, anything else is parsed as CSV.
func Read(path string) (Table, error) {
	var (
		records [][]string
		lines   []int
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		records, lines, err = readXLSX(path)
	case ".xls":
		records, lines, err = readXLS(path)
	default:
		records, lines, err = readCSV(path)
	}
	if err != nil {
		return Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	return newTable(records, lines), nil
}

func newTable(records [][]string, lines []int) Table {
	if len(records) == 0 {
		return Table{}
	}
	return Table{Header: records[0], Rows: records[1:], Lines: lines[1:]}
}

func readCSV(path string) ([][]string, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return parseCSV(f)
}

// parseCSV drops a leading UTF-8 or UTF-16 byte-order mark before handing the
// stream to encoding/csv. Record lengths are not enforced and stray quotes
// inside unquoted fields are kept as data. Alongside each record it returns
// the line the record starts on.
func parseCSV(r io.Reader) ([][]string, []int, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		records [][]string
		lines   []int
	)
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, lines, nil
		}
		if err != nil {
			return nil, nil, err
		}
		line, _ := reader.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}
}

func readXLSX(path string) ([][]string, []int, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, nil
	}
	records, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}
	lines := make([]int, len(records))
	for i := range lines {
		lines[i] = i + 1
	}
	return records, lines, nil
}

func readXLS(path string) ([][]string, []int, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, nil, err
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, nil, nil
	}

	var (
		records [][]string
		lines   []int
	)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		var cols []string
		for j := 0; j <= row.LastCol(); j++ {
			cols = append(cols, row.Col(j))
		}
		records = append(records, cols)
		lines = append(lines, i+1)
	}
	return records, lines, nil
}
