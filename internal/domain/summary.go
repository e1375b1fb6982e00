package domain

import "sort"

// Summarize derives the report table: records with an empty name or a
// non-positive population are dropped, and the rest are sorted by population,
// largest first. Ties keep their input order.
func Summarize(records []IntegratedRecord) []SummaryRow {
	rows := make([]SummaryRow, 0, len(records))
	for i := range records {
		r := &records[i]
		if r.StateName == "" || r.Population <= 0 {
			continue
		}
		rows = append(rows, SummaryRow{
			State:                r.StateName,
			Population:           r.Population,
			DisasterDeclarations: r.DisasterCount(),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Population > rows[j].Population
	})
	return rows
}
