package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"sphasecli/internal/config"
	"sphasecli/internal/exporter"
	"sphasecli/internal/infrastructure"
	"sphasecli/internal/sphase"
	"sphasecli/pkg/contracts"
	"sphasecli/pkg/contracts/domain"
)

func main() {
	inPath := flag.String("in", "", "path to a previously exported replicates.csv")
	outDir := flag.String("out-dir", "", "output directory for regenerated artifacts (defaults to the input file's directory)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, or error")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: replicate-report -in <replicates.csv> [-out-dir <dir>]")
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(config.LoggingConfig{
		Level:  *logLevel,
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	if *outDir == "" {
		*outDir = filepath.Dir(*inPath)
	}
	paths, err := config.NewPaths(*outDir)
	if err != nil {
		logger.Error("Failed to resolve output paths", "error", err)
		os.Exit(1)
	}

	started := time.Now()
	ctx := infrastructure.ContextWithRunID(context.Background())

	rows, report, err := sphase.LoadReplicateRows(*inPath, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load replicates file", "error", err)
		os.Exit(1)
	}

	summaries := sphase.NewAggregator(logger).Summarize(ctx, rows)
	estimate := sphase.NewEstimator(logger).Estimate(ctx, summaries)

	writer := exporter.NewCSVWriter(paths)
	if err := sphase.SaveReplicateSummaries(writer, summaries); err != nil {
		logger.ErrorContext(ctx, "Failed to save replicate summaries", "error", err)
		os.Exit(1)
	}

	artifacts := sphase.RunArtifacts{
		Metadata: domain.RunMetadata{
			RunID:     infrastructure.GetRunID(ctx),
			Source:    *inPath,
			StartedAt: started,
			Finished:  time.Now(),
			Version:   contracts.Version,
		},
		Cleaning:  report,
		Estimate:  estimate,
		Summaries: summaries,
	}
	if err := sphase.SaveEstimateJSON(paths.EstimateJSON, artifacts); err != nil {
		logger.ErrorContext(ctx, "Failed to save estimate document", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Replicate report regenerated",
		slog.String("input", *inPath),
		slog.Int("replicates", estimate.N),
		slog.String("output_dir", paths.OutDir))

	display := estimate.Display()
	fmt.Printf("\nPercentage of cells in S phase (from %s)\n", filepath.Base(*inPath))
	fmt.Printf("  Replicates: %d\n", display.N)
	fmt.Printf("  Average:    %s%%\n", display.Average)
	fmt.Printf("  SD:         %s\n", display.StdDev)
	fmt.Printf("  SEM:        %s\n", display.StdErr)
	fmt.Printf("  95%% CI:     %s\n", display.Interval)
}
