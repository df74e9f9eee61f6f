// Package source fetches the crowd-sourced response sheet from its
// configured location and hands it to the pipeline as an untyped row set.
//
// Three loaders cover the ways the sheet is reachable in practice:
//
//  1. HTTPLoader: the published-CSV export URL of the sheet (default)
//  2. SheetsLoader: the Google Sheets API, for keyed access to a range
//  3. XLSXLoader: a local workbook snapshot, for offline reruns
//
// All loaders perform exactly one synchronous read. There is no retry or
// backoff: a failed fetch aborts the whole run with a SOURCE_UNAVAILABLE
// error and no partial output is produced.
package source
