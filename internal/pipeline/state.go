package pipeline

import (
	"sphasecli/internal/plotspec"
	"sphasecli/pkg/contracts/domain"
)

// State is the shared working set of one run. Stages execute in order;
// each reads the fields earlier stages filled in and writes its own
// output. Nothing is mutated in place: every stage produces a fresh
// slice.
type State struct {
	Table        *domain.RawTable
	Submissions  []domain.Submission
	Observations []domain.Observation
	Cleaned      []domain.Observation
	Dated        []domain.DatedObservation
	Manual       []domain.DatedObservation
	Summaries    []domain.ReplicateSummary
	Estimate     domain.PopulationEstimate
	Specs        []plotspec.Spec

	Cleaning *domain.CleanReport
	Metadata domain.RunMetadata
}

func newState() *State {
	return &State{Cleaning: domain.NewCleanReport()}
}
