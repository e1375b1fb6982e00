package domain

import "errors"

var (
	// ErrNoHeader is returned when an input table has no header row.
	ErrNoHeader = errors.New("input has no header row")

	// ErrNoDataRow is returned when the census table has a header but no
	// population row.
	ErrNoDataRow = errors.New("census input has no data row")

	// ErrMalformedNumber wraps every numeric field that fails to parse.
	ErrMalformedNumber = errors.New("malformed number")

	// ErrNoReportData signals that nothing survived the report filter and no
	// files were written.
	ErrNoReportData = errors.New("no data to report")
)

// PopulationSource is the raw (name, population) pair kept for traceability.
type PopulationSource struct {
	StateName  string `json:"state_name"`
	Population int    `json:"population"`
}

// PopulationRecord is one state's census population.
type PopulationRecord struct {
	StateName  string
	Population int
	Source     PopulationSource
}

// DisasterRecord is one FEMA disaster declaration row.
type DisasterRecord struct {
	DisasterNumber    int    `json:"disaster_number"`
	DeclarationTitle  string `json:"declaration_title"`
	IncidentType      string `json:"incident_type"`
	DeclarationDate   string `json:"declaration_date"`
	IncidentBeginDate string `json:"incident_begin_date"`
}

// SourceSnapshot retains the source entries an integrated record was built from.
type SourceSnapshot struct {
	Census PopulationSource `json:"census"`
	FEMA   []DisasterRecord `json:"fema"`
}

// IntegratedRecord joins one state's population with its disaster declarations.
type IntegratedRecord struct {
	StateCode  string
	StateName  string
	Population int
	Disasters  []DisasterRecord
	Source     SourceSnapshot
}

// newIntegratedRecord builds a record with an empty disaster list. Disasters
// are attached afterwards with AddDisaster.
func newIntegratedRecord(code string, census PopulationRecord, fema []DisasterRecord) IntegratedRecord {
	return IntegratedRecord{
		StateCode:  code,
		StateName:  census.StateName,
		Population: census.Population,
		Disasters:  make([]DisasterRecord, 0, len(fema)),
		Source: SourceSnapshot{
			Census: census.Source,
			FEMA:   fema,
		},
	}
}

// AddDisaster appends a declaration to the record.
func (r *IntegratedRecord) AddDisaster(d DisasterRecord) {
	r.Disasters = append(r.Disasters, d)
}

// DisasterCount is the number of declarations attached to the record.
func (r *IntegratedRecord) DisasterCount() int {
	return len(r.Disasters)
}

// SummaryRow is one line of the report table.
type SummaryRow struct {
	State                string
	Population           int
	DisasterDeclarations int
}

// ReportFiles lists the artifacts written by one report run. Workbook is
// empty unless XLSX export is enabled.
type ReportFiles struct {
	CSV      string
	Chart    string
	Workbook string
	Rows     int
}
