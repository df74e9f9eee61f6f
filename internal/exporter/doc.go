// Package exporter writes tabular run artifacts to disk.
//
// The CSV writer resolves relative artifact names against the run's
// output directory, prefixes files with a UTF-8 BOM so spreadsheet
// tools open them cleanly, and offers both whole-table and streaming
// writes. Callers compose the records; this package only handles
// placement and encoding.
package exporter
