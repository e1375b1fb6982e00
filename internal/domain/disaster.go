package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// FEMA column names read by ParseDisasters.
const (
	ColStateCode         = "stateCode"
	ColDisasterNumber    = "disasterNumber"
	ColDeclarationTitle  = "declarationTitle"
	ColIncidentType      = "incidentType"
	ColDeclarationDate   = "declarationDate"
	ColIncidentBeginDate = "incidentBeginDate"
)

// RowError locates a parse failure. Row is the 0-based index into the rows
// handed to the parser; callers that know the file layout map it to a line.
type RowError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("data row %d: %s: %v: %q", e.Row+1, e.Column, e.Err, e.Value)
}

func (e *RowError) Unwrap() error { return e.Err }

// DisasterIndex groups declarations by state code. Codes keep the order of
// their first appearance and each group keeps file order.
type DisasterIndex struct {
	codes  []string
	byCode map[string][]DisasterRecord
}

// NewDisasterIndex returns an empty index.
func NewDisasterIndex() *DisasterIndex {
	return &DisasterIndex{byCode: make(map[string][]DisasterRecord)}
}

// Add appends rec to the group for code, creating the group on first use.
// The empty code is a valid key.
func (d *DisasterIndex) Add(code string, rec DisasterRecord) {
	group, ok := d.byCode[code]
	if !ok {
		d.codes = append(d.codes, code)
		group = make([]DisasterRecord, 0, 1)
	}
	d.byCode[code] = append(group, rec)
}

// Disasters returns the group for code.
func (d *DisasterIndex) Disasters(code string) ([]DisasterRecord, bool) {
	group, ok := d.byCode[code]
	return group, ok
}

// Codes returns state codes in order of first appearance.
func (d *DisasterIndex) Codes() []string {
	out := make([]string, len(d.codes))
	copy(out, d.codes)
	return out
}

// Len is the number of distinct codes, including the empty code.
func (d *DisasterIndex) Len() int {
	return len(d.codes)
}

// ParseDisasters groups FEMA declaration rows by state code. Absent columns
// default to "" (or 0 for the disaster number); a disaster number that is
// present but not an integer fails the whole parse.
func ParseDisasters(header []string, rows [][]string) (*DisasterIndex, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := normalizeLabel(h)
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	index := NewDisasterIndex()
	for i, row := range rows {
		get := func(col string) (string, bool) {
			j, ok := cols[col]
			if !ok || j >= len(row) {
				return "", false
			}
			return strings.TrimSpace(row[j]), true
		}

		number := 0
		if raw, ok := get(ColDisasterNumber); ok {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, &RowError{Row: i, Column: ColDisasterNumber, Value: raw, Err: ErrMalformedNumber}
			}
			number = n
		}

		code, _ := get(ColStateCode)
		title, _ := get(ColDeclarationTitle)
		incident, _ := get(ColIncidentType)
		declared, _ := get(ColDeclarationDate)
		began, _ := get(ColIncidentBeginDate)

		index.Add(code, DisasterRecord{
			DisasterNumber:    number,
			DeclarationTitle:  title,
			IncidentType:      incident,
			DeclarationDate:   declared,
			IncidentBeginDate: began,
		})
	}
	return index, nil
}
