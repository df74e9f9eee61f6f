package pipeline

import (
	"log/slog"

	"sphasecli/internal/config"
	"sphasecli/internal/errors"
	"sphasecli/internal/exporter"
	"sphasecli/internal/plotspec"
	"sphasecli/internal/sphase"
)

// Persist writes every artifact of a finished run into the output tree:
// replicates.csv, replicate_summary.csv, population_estimate.json,
// plots/specs.json, and run_report.txt.
func Persist(state *State, paths *config.Paths, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if err := paths.EnsureDirectories(); err != nil {
		return errors.NewStorageError("failed to prepare output directories", err)
	}

	writer := exporter.NewCSVWriter(paths)

	if err := sphase.SaveReplicateRows(writer, state.Manual); err != nil {
		return err
	}
	if err := sphase.SaveReplicateSummaries(writer, state.Summaries); err != nil {
		return err
	}

	artifacts := sphase.RunArtifacts{
		Metadata:  state.Metadata,
		Cleaning:  state.Cleaning,
		Estimate:  state.Estimate,
		Summaries: state.Summaries,
	}
	if err := sphase.SaveEstimateJSON(paths.EstimateJSON, artifacts); err != nil {
		return err
	}

	if err := plotspec.SaveSpecs(paths.PlotSpecsJSON, plotspec.Document{
		Metadata: state.Metadata,
		Specs:    state.Specs,
	}); err != nil {
		return err
	}

	if err := sphase.SaveRunReport(paths.RunReportTXT, artifacts); err != nil {
		return err
	}

	logger.Info("run artifacts written",
		slog.String("output_dir", paths.OutDir),
		slog.Int("replicate_rows", len(state.Manual)),
		slog.Int("plot_specs", len(state.Specs)))

	return nil
}
