package pipeline

import (
	"context"

	"sphasecli/internal/dataset"
	"sphasecli/internal/errors"
	"sphasecli/internal/plotspec"
	"sphasecli/internal/source"
	"sphasecli/internal/sphase"
)

// Stage is one synchronous step of a run. Run transforms the shared
// state and returns the number of rows flowing out of the stage.
type Stage interface {
	ID() string
	Run(ctx context.Context, state *State) (int, error)
}

// fetchStage reads the raw table from the configured source.
type fetchStage struct {
	loader source.Loader
}

func (s *fetchStage) ID() string { return "fetch" }

func (s *fetchStage) Run(ctx context.Context, state *State) (int, error) {
	table, err := s.loader.Load(ctx)
	if err != nil {
		return 0, err
	}
	state.Table = table
	state.Metadata.Source = table.Source
	return table.RowCount(), nil
}

// normalizeStage maps the source columns onto the submission contract
// and drops rows with null cells.
type normalizeStage struct {
	normalizer *dataset.Normalizer
}

func (s *normalizeStage) ID() string { return "normalize" }

func (s *normalizeStage) Run(ctx context.Context, state *State) (int, error) {
	submissions, err := s.normalizer.Normalize(ctx, state.Table, state.Cleaning)
	if err != nil {
		return 0, err
	}
	state.Submissions = submissions
	return len(submissions), nil
}

// reshapeStage melts each submission into its two observations.
type reshapeStage struct{}

func (s *reshapeStage) ID() string { return "reshape" }

func (s *reshapeStage) Run(ctx context.Context, state *State) (int, error) {
	state.Observations = dataset.Reshape(state.Submissions)
	return len(state.Observations), nil
}

// cleanStage parses values and enforces the open (0, 100) interval.
type cleanStage struct {
	cleaner *dataset.Cleaner
}

func (s *cleanStage) ID() string { return "clean" }

func (s *cleanStage) Run(ctx context.Context, state *State) (int, error) {
	state.Cleaned = s.cleaner.Clean(ctx, state.Observations, state.Cleaning)
	return len(state.Cleaned), nil
}

// dateStage splits timestamps into date parts. A run with nothing left
// after cleaning has no analysis to do and fails here.
type dateStage struct {
	splitter *dataset.TemporalSplitter
}

func (s *dateStage) ID() string { return "date" }

func (s *dateStage) Run(ctx context.Context, state *State) (int, error) {
	state.Dated = s.splitter.Split(ctx, state.Cleaned, state.Cleaning)
	state.Cleaning.RowsRetained = len(state.Dated)
	if len(state.Dated) == 0 {
		return 0, errors.NewEmptyDatasetError("no observations survived cleaning")
	}
	return len(state.Dated), nil
}

// aggregateStage selects the manual subset and collapses it to one
// summary per replicate.
type aggregateStage struct {
	aggregator *sphase.Aggregator
}

func (s *aggregateStage) ID() string { return "aggregate" }

func (s *aggregateStage) Run(ctx context.Context, state *State) (int, error) {
	state.Manual = sphase.ManualOnly(state.Dated)
	if len(state.Manual) == 0 {
		return 0, errors.NewEmptyDatasetError("no manual observations after cleaning")
	}
	state.Summaries = s.aggregator.Summarize(ctx, state.Manual)
	return len(state.Summaries), nil
}

// estimateStage computes the population estimate over the replicate
// means.
type estimateStage struct {
	estimator *sphase.Estimator
}

func (s *estimateStage) ID() string { return "estimate" }

func (s *estimateStage) Run(ctx context.Context, state *State) (int, error) {
	state.Estimate = s.estimator.Estimate(ctx, state.Summaries)
	return state.Estimate.N, nil
}

// plotStage composes the chart specifications for the external
// renderer.
type plotStage struct{}

func (s *plotStage) ID() string { return "plots" }

func (s *plotStage) Run(ctx context.Context, state *State) (int, error) {
	state.Specs = plotspec.NewBuilder().
		WithObservations(state.Dated).
		WithSummaries(state.Summaries).
		WithEstimate(state.Estimate).
		Build()
	return len(state.Specs), nil
}
