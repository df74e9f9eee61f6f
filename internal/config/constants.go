package config

// Well-known artifact filenames inside the output directory.
const (
	FileReplicatesCSV       = "replicates.csv"
	FileReplicateSummaryCSV = "replicate_summary.csv"
	FileEstimateJSON        = "population_estimate.json"
	FilePlotSpecsJSON       = "specs.json"
	FileRunReportTXT        = "run_report.txt"
)

// Canonical logical column names of the 4-column sheet contract.
const (
	ColumnTimestamp = "timestamp"
	ColumnGroup     = "group"
	ColumnManual    = "manual"
	ColumnAutomated = "automated"
)

// ExpectedColumns is the width of the positional fallback contract: a sheet
// with an unrecognizable header is accepted only when it has exactly this
// many columns, in timestamp/group/manual/automated order.
const ExpectedColumns = 4
