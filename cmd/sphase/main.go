package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"sphasecli/internal/config"
	"sphasecli/internal/infrastructure"
	"sphasecli/internal/pipeline"
	"sphasecli/internal/source"
	"sphasecli/pkg/contracts"
)

func main() {
	configFile := flag.String("config", "", "path to YAML config file (searched in the usual locations when empty)")
	sourceMode := flag.String("source", "", "source mode override: url, sheets, or xlsx")
	sourceURL := flag.String("url", "", "published CSV URL override")
	sheetID := flag.String("sheet-id", "", "Google Sheets spreadsheet ID override")
	sheetRange := flag.String("sheet-range", "", "Google Sheets range override")
	xlsxPath := flag.String("xlsx", "", "local XLSX snapshot path override")
	outDir := flag.String("out", "", "output directory for run artifacts")
	logLevel := flag.String("log-level", "", "log level override: debug, info, warn, or error")
	traceSpans := flag.Bool("trace", false, "emit per-stage tracing spans to stdout")
	quiet := flag.Bool("quiet", false, "suppress the stdout summary")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetVersionString())
		return
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	applyOverrides(cfg, overrides{
		sourceMode: *sourceMode,
		sourceURL:  *sourceURL,
		sheetID:    *sheetID,
		sheetRange: *sheetRange,
		xlsxPath:   *xlsxPath,
		outDir:     *outDir,
		logLevel:   *logLevel,
		trace:      *traceSpans,
	})
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration after flag overrides", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	tracing, err := infrastructure.InitializeTracing(cfg.Tracing, logger)
	if err != nil {
		logger.Error("Failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer tracing.Shutdown(context.Background())

	paths, err := config.NewPaths(cfg.Output.Dir)
	if err != nil {
		logger.Error("Failed to resolve output paths", "error", err)
		os.Exit(1)
	}

	loader, err := source.New(cfg.Source, logger)
	if err != nil {
		logger.Error("Failed to configure source", "error", err)
		os.Exit(1)
	}

	ctx := infrastructure.ContextWithRunID(context.Background())
	runner := pipeline.New(loader, logger, tracing.Tracer)

	state, err := runner.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Pipeline run failed", "error", err)
		os.Exit(1)
	}

	if err := pipeline.Persist(state, paths, logger); err != nil {
		logger.ErrorContext(ctx, "Failed to write run artifacts", "error", err)
		os.Exit(1)
	}

	if !*quiet {
		printSummary(state, paths)
	}
}

// overrides carries the flag values that take precedence over the
// loaded configuration.
type overrides struct {
	sourceMode string
	sourceURL  string
	sheetID    string
	sheetRange string
	xlsxPath   string
	outDir     string
	logLevel   string
	trace      bool
}

func applyOverrides(cfg *config.Config, o overrides) {
	if o.sourceMode != "" {
		cfg.Source.Mode = o.sourceMode
	}
	if o.sourceURL != "" {
		cfg.Source.URL = o.sourceURL
	}
	if o.sheetID != "" {
		cfg.Source.SheetID = o.sheetID
	}
	if o.sheetRange != "" {
		cfg.Source.SheetRange = o.sheetRange
	}
	if o.xlsxPath != "" {
		cfg.Source.XLSXPath = o.xlsxPath
	}
	if o.outDir != "" {
		cfg.Output.Dir = o.outDir
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.trace {
		cfg.Tracing.Enabled = true
		cfg.Tracing.Exporter = "stdout"
	}
}

func printSummary(state *pipeline.State, paths *config.Paths) {
	display := state.Estimate.Display()

	fmt.Printf("\nPercentage of cells in S phase\n")
	fmt.Printf("  Replicates: %d\n", display.N)
	fmt.Printf("  Average:    %s%%\n", display.Average)
	fmt.Printf("  SD:         %s\n", display.StdDev)
	fmt.Printf("  SEM:        %s\n", display.StdErr)
	fmt.Printf("  95%% CI:     %s\n", display.Interval)

	fmt.Printf("\nRows: %d fetched, %d retained, %d dropped\n",
		state.Cleaning.RowsFetched,
		state.Cleaning.RowsRetained,
		state.Cleaning.Dropped())
	fmt.Printf("Artifacts written to %s\n", paths.OutDir)
}
