package sphase

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"sphasecli/internal/config"
	"sphasecli/internal/errors"
	"sphasecli/internal/exporter"
	"sphasecli/pkg/contracts/domain"
)

// Column layouts of the exported CSV artifacts. The replicate-report
// tool reads these back by header name, so renames break round trips.
var (
	replicateHeaders = []string{"row", "replicate", "method", "S_phase", "day", "month", "year", "time"}
	summaryHeaders   = []string{"replicate", "method", "n", "percentage"}
)

// RunArtifacts bundles everything a finished run persists.
type RunArtifacts struct {
	Metadata  domain.RunMetadata        `json:"metadata"`
	Cleaning  *domain.CleanReport       `json:"cleaning,omitempty"`
	Estimate  domain.PopulationEstimate `json:"estimate"`
	Summaries []domain.ReplicateSummary `json:"-"`
}

// SaveReplicateRows writes the cleaned manual observations to
// replicates.csv, one row per technical replicate. Values are written at
// full precision so a re-run over the exported file reproduces the same
// statistics.
func SaveReplicateRows(w *exporter.CSVWriter, rows []domain.DatedObservation) error {
	if len(rows) == 0 {
		return errors.NewEmptyDatasetError("no replicate rows to save")
	}

	records := make([][]string, 0, len(rows))
	for i, row := range rows {
		records = append(records, []string{
			strconv.Itoa(i + 1),
			row.ReplicateKey(),
			string(row.Method),
			formatFloat(row.Value, -1),
			strconv.Itoa(row.Day),
			strconv.Itoa(row.Month),
			strconv.Itoa(row.Year),
			row.TimeOfDay,
		})
	}

	if err := w.WriteSimpleCSV(config.FileReplicatesCSV, replicateHeaders, records); err != nil {
		return errors.NewStorageError("failed to save replicate rows", err)
	}
	return nil
}

// SaveReplicateSummaries writes the per-replicate summary table to
// replicate_summary.csv.
func SaveReplicateSummaries(w *exporter.CSVWriter, summaries []domain.ReplicateSummary) error {
	if len(summaries) == 0 {
		return errors.NewEmptyDatasetError("no replicate summaries to save")
	}

	records := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		records = append(records, []string{
			s.Replicate,
			string(s.Method),
			strconv.Itoa(s.N),
			formatFloat(s.Percentage, -1),
		})
	}

	if err := w.WriteSimpleCSV(config.FileReplicateSummaryCSV, summaryHeaders, records); err != nil {
		return errors.NewStorageError("failed to save replicate summaries", err)
	}
	return nil
}

// SaveEstimateJSON writes the population estimate together with the run
// metadata and cleaning report as indented JSON.
func SaveEstimateJSON(path string, artifacts RunArtifacts) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create output directory", err)
	}

	data, err := json.MarshalIndent(artifacts, "", "  ")
	if err != nil {
		return errors.NewStorageError("failed to marshal estimate document", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewStorageError("failed to write estimate document", err)
	}
	return nil
}

// SaveRunReport writes the human-readable run summary.
func SaveRunReport(path string, artifacts RunArtifacts) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create output directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create run report", err)
	}
	defer file.Close()

	meta := artifacts.Metadata

	fmt.Fprintf(file, "S-PHASE PIPELINE RUN REPORT\n")
	fmt.Fprintf(file, "===========================\n\n")
	fmt.Fprintf(file, "Generated: %s\n", meta.Finished.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(file, "Run ID: %s\n", meta.RunID)
	fmt.Fprintf(file, "Source: %s\n", meta.Source)
	fmt.Fprintf(file, "Pipeline version: %s\n", meta.Version)
	fmt.Fprintf(file, "Elapsed: %s\n", meta.Finished.Sub(meta.StartedAt).Round(time.Millisecond))

	if len(meta.Stages) > 0 {
		fmt.Fprintf(file, "\nSTAGE COUNTS\n")
		fmt.Fprintf(file, "------------\n")
		for _, s := range meta.Stages {
			fmt.Fprintf(file, "%-12s in=%-5d out=%-5d %s\n",
				s.Stage, s.RowsIn, s.RowsOut, s.Duration.Round(time.Microsecond))
		}
	}

	if artifacts.Cleaning != nil {
		writeCleaningSection(file, artifacts.Cleaning)
	}

	if len(artifacts.Summaries) > 0 {
		fmt.Fprintf(file, "\nREPLICATE SUMMARY\n")
		fmt.Fprintf(file, "-----------------\n")
		for _, s := range artifacts.Summaries {
			fmt.Fprintf(file, "%-30s %-10s n=%-4d mean=%s%%\n",
				s.Replicate, s.Method, s.N, formatFloat(s.Percentage, 1))
		}
	}

	display := artifacts.Estimate.Display()
	fmt.Fprintf(file, "\nPOPULATION ESTIMATE\n")
	fmt.Fprintf(file, "-------------------\n")
	fmt.Fprintf(file, "Replicates (N): %d\n", display.N)
	fmt.Fprintf(file, "Average S-phase: %s%%\n", display.Average)
	fmt.Fprintf(file, "Standard deviation: %s\n", display.StdDev)
	fmt.Fprintf(file, "Standard error: %s\n", display.StdErr)
	fmt.Fprintf(file, "95%% CI: %s\n", display.Interval)

	return nil
}

func writeCleaningSection(file *os.File, report *domain.CleanReport) {
	fmt.Fprintf(file, "\nCLEANING\n")
	fmt.Fprintf(file, "--------\n")
	fmt.Fprintf(file, "Rows fetched: %d\n", report.RowsFetched)
	fmt.Fprintf(file, "Rows retained: %d\n", report.RowsRetained)
	fmt.Fprintf(file, "Rows dropped: %d\n", report.Dropped())

	reasons := make([]string, 0, len(report.DropsByReason))
	for reason := range report.DropsByReason {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Fprintf(file, "  %-20s %d\n", reason, report.Count(domain.DropReason(reason)))
	}
}

// formatFloat formats a float64 for output. A precision of -1 keeps the
// shortest exact representation.
func formatFloat(value float64, precision int) string {
	return strconv.FormatFloat(value, 'f', precision, 64)
}
