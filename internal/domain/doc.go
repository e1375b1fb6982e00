// Package domain models US census population counts and FEMA disaster
// declarations, and the per-state summary built by joining them.
//
// # Data Sources
//
// Population comes from the 2020 Decennial Census table P1 ("Total
// Population") as exported by data.census.gov. The export is wide: one
// column per state, with the geography id in the first column.
//
//	GEO_ID,"Alabama","Alaska",...
//	0100000US,"5,024,279","733,391",...
//
// Labels may carry a UTF-8 byte-order mark and stray double quotes, and
// counts use thousands separators. [ParseCensus] reads the header as the
// list of state names and the first data row as their populations.
//
// Disaster declarations come from the OpenFEMA "FEMA Web Disaster
// Declarations" dataset, one row per declaration:
//
//	disasterNumber,declarationTitle,incidentType,declarationDate,incidentBeginDate,stateCode,...
//	4834,"SEVERE STORMS AND FLOODING",Flood,2025-04-24T00:00:00.000Z,2025-04-02T00:00:00.000Z,KY,...
//
// [ParseDisasters] groups them by stateCode in file order.
//
// # Reconciliation
//
// The datasets share no key. FEMA rows carry USPS codes ("TX") while the
// census labels carry full names ("Texas"); [StateNameForCode] bridges them
// with a fixed table of the 50 states, DC and Puerto Rico. Codes outside that
// table (GU, AS, VI, MP, FM, MH, PW) and names missing from the census are
// skipped and counted in [SkipCounts], never reported as errors.
//
// [Integrate] is a semi-join driven by the disaster data: a state with no
// declarations produces no record. [IntegrateFromPopulation] is the
// census-driven left join that keeps those states with a count of zero.
//
// # Report Table
//
// [Summarize] drops records with an empty name or a population of zero or
// less, then orders the rest by population, largest first, using a stable
// sort so equal populations keep their integration order.
package domain
