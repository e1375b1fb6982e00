package domain

import "fmt"

// JoinMode selects which side drives integration.
type JoinMode string

const (
	// JoinDisasters emits a record only for states that have at least one
	// declaration (semi-join driven by the disaster index).
	JoinDisasters JoinMode = "disasters"

	// JoinPopulation emits a record for every census state with a known
	// code, including states with zero declarations.
	JoinPopulation JoinMode = "population"
)

// ParseJoinMode validates a JOIN_MODE value.
func ParseJoinMode(s string) (JoinMode, error) {
	switch m := JoinMode(s); m {
	case JoinDisasters, JoinPopulation:
		return m, nil
	default:
		return "", fmt.Errorf("unknown join mode %q (want %q or %q)", s, JoinDisasters, JoinPopulation)
	}
}

// SkipCounts tallies inputs that could not be reconciled. Skips are not errors.
type SkipCounts struct {
	UnknownCode  int // disaster code with no entry in the state table
	NoPopulation int // resolved state name missing from the census
	UnknownName  int // census name with no code (population join only)
}

// Integrate joins disasters to census populations through the state table.
// Records follow the order in which codes first appear in the disaster data.
func Integrate(census *CensusData, disasters *DisasterIndex) ([]IntegratedRecord, SkipCounts) {
	var skips SkipCounts
	records := make([]IntegratedRecord, 0, disasters.Len())

	for _, code := range disasters.Codes() {
		name, ok := StateNameForCode(code)
		if !ok {
			skips.UnknownCode++
			continue
		}
		pop, ok := census.Lookup(name)
		if !ok {
			skips.NoPopulation++
			continue
		}

		group, _ := disasters.Disasters(code)
		rec := newIntegratedRecord(code, pop, group)
		for _, d := range group {
			rec.AddDisaster(d)
		}
		records = append(records, rec)
	}
	return records, skips
}

// IntegrateFromPopulation is the left join from the census side: every census
// state with a known code yields a record, in header order, with whatever
// declarations exist for it (possibly none).
func IntegrateFromPopulation(census *CensusData, disasters *DisasterIndex) ([]IntegratedRecord, SkipCounts) {
	var skips SkipCounts
	records := make([]IntegratedRecord, 0, census.Len())

	for _, name := range census.Names() {
		code, ok := StateCodeForName(name)
		if !ok {
			skips.UnknownName++
			continue
		}
		pop, _ := census.Lookup(name)

		group, _ := disasters.Disasters(code)
		rec := newIntegratedRecord(code, pop, group)
		for _, d := range group {
			rec.AddDisaster(d)
		}
		records = append(records, rec)
	}

	for _, code := range disasters.Codes() {
		if _, ok := StateNameForCode(code); !ok {
			skips.UnknownCode++
		}
	}
	return records, skips
}
