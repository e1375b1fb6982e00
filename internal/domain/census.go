package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// CensusData indexes population records by normalized state name and keeps
// the order in which names first appeared in the header.
type CensusData struct {
	names  []string
	byName map[string]PopulationRecord
}

// NewCensusData returns an empty index.
func NewCensusData() *CensusData {
	return &CensusData{byName: make(map[string]PopulationRecord)}
}

// Put stores rec under its state name. A repeated name overwrites the value
// but keeps its original position.
func (c *CensusData) Put(rec PopulationRecord) {
	if _, ok := c.byName[rec.StateName]; !ok {
		c.names = append(c.names, rec.StateName)
	}
	c.byName[rec.StateName] = rec
}

// Lookup returns the record for a normalized state name.
func (c *CensusData) Lookup(name string) (PopulationRecord, bool) {
	rec, ok := c.byName[name]
	return rec, ok
}

// Names returns state names in header order.
func (c *CensusData) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len is the number of distinct state names.
func (c *CensusData) Len() int {
	return len(c.names)
}

// ParseCensus reads a wide-format population table: the header labels after
// the first (geography id) column are state names, and the first data row
// holds the matching population counts. Later rows are ignored.
func ParseCensus(header []string, rows [][]string) (*CensusData, error) {
	if len(header) == 0 {
		return nil, ErrNoHeader
	}
	if len(rows) == 0 {
		return nil, ErrNoDataRow
	}
	values := rows[0]

	census := NewCensusData()
	for i := 1; i < len(header); i++ {
		name := normalizeLabel(header[i])

		var raw string
		if i < len(values) {
			raw = values[i]
		}
		population, err := parsePopulation(raw)
		if err != nil {
			return nil, fmt.Errorf("parse population for %q: %w", name, err)
		}

		census.Put(PopulationRecord{
			StateName:  name,
			Population: population,
			Source:     PopulationSource{StateName: name, Population: population},
		})
	}
	return census, nil
}

// normalizeLabel strips double quotes and byte-order marks, then trims
// surrounding whitespace.
func normalizeLabel(s string) string {
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.ReplaceAll(s, "\ufeff", "")
	return strings.TrimSpace(s)
}

// parsePopulation parses counts such as "39,538,223". Empty input is 0.
func parsePopulation(s string) (int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
	}
	return n, nil
}
