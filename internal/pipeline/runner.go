package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"sphasecli/internal/dataset"
	"sphasecli/internal/infrastructure"
	"sphasecli/internal/source"
	"sphasecli/internal/sphase"
	"sphasecli/pkg/contracts"
	"sphasecli/pkg/contracts/domain"
)

const spanPrefix = "pipeline.stage."

// Runner executes the pipeline stages sequentially, recording a tracing
// span and the row flow of each.
type Runner struct {
	stages []Stage
	tracer trace.Tracer
	logger *slog.Logger
}

// New assembles the standard run in execution order: fetch, normalize,
// reshape, clean, date, aggregate, estimate, plots. A nil logger falls
// back to the default logger; a nil tracer falls back to the global
// tracer provider.
func New(loader source.Loader, logger *slog.Logger, tracer trace.Tracer) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	stages := []Stage{
		&fetchStage{loader: loader},
		&normalizeStage{normalizer: dataset.NewNormalizer(logger)},
		&reshapeStage{},
		&cleanStage{cleaner: dataset.NewCleaner(logger)},
		&dateStage{splitter: dataset.NewTemporalSplitter(logger)},
		&aggregateStage{aggregator: sphase.NewAggregator(logger)},
		&estimateStage{estimator: sphase.NewEstimator(logger)},
		&plotStage{},
	}
	return NewWithStages(logger, tracer, stages...)
}

// NewWithStages builds a runner over a custom stage list.
func NewWithStages(logger *slog.Logger, tracer trace.Tracer, stages ...Stage) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = otel.Tracer(infrastructure.TracerName)
	}
	return &Runner{
		stages: stages,
		tracer: tracer,
		logger: logger,
	}
}

// Run executes the stages in order against a fresh state. The first
// stage error aborts the run; the returned state carries whatever the
// completed stages produced, including the partial stage counts.
func (r *Runner) Run(ctx context.Context) (*State, error) {
	ctx = infrastructure.EnsureRunID(ctx)

	state := newState()
	state.Metadata = domain.RunMetadata{
		RunID:     infrastructure.GetRunID(ctx),
		StartedAt: time.Now(),
		Version:   contracts.Version,
	}

	logger := r.logger.With(slog.String("run_id", state.Metadata.RunID))
	logger.InfoContext(ctx, "pipeline run starting",
		slog.Int("stage_count", len(r.stages)))

	rowsIn := 0
	for _, stage := range r.stages {
		stageCtx, span := r.tracer.Start(ctx, spanPrefix+stage.ID(),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attribute.String("stage.id", stage.ID())))

		start := time.Now()
		rowsOut, err := stage.Run(stageCtx, state)
		duration := time.Since(start)

		state.Metadata.Stages = append(state.Metadata.Stages, domain.StageCount{
			Stage:    stage.ID(),
			RowsIn:   rowsIn,
			RowsOut:  rowsOut,
			Duration: duration,
		})

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "stage execution failed")
			span.End()

			state.Metadata.Finished = time.Now()
			infrastructure.WithError(logger, err).ErrorContext(ctx, "pipeline stage failed",
				slog.String("stage", stage.ID()))
			return state, fmt.Errorf("stage %s: %w", stage.ID(), err)
		}

		span.SetAttributes(
			attribute.Int("stage.rows_in", rowsIn),
			attribute.Int("stage.rows_out", rowsOut),
		)
		span.SetStatus(codes.Ok, "stage completed")
		span.End()

		logger.InfoContext(ctx, "pipeline stage completed",
			slog.String("stage", stage.ID()),
			slog.Int("rows_in", rowsIn),
			slog.Int("rows_out", rowsOut),
			slog.Duration("duration", duration))

		rowsIn = rowsOut
	}

	state.Metadata.Finished = time.Now()
	logger.InfoContext(ctx, "pipeline run complete",
		slog.Int("rows_retained", state.Cleaning.RowsRetained),
		slog.Int("rows_dropped", state.Cleaning.Dropped()),
		slog.Int("replicates", state.Estimate.N),
		slog.Duration("elapsed", state.Metadata.Finished.Sub(state.Metadata.StartedAt)))

	return state, nil
}
