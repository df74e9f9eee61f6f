package sphase

import (
	"context"
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"sphasecli/pkg/contracts/domain"
)

// Aggregator collapses row-level observations into one summary per
// replicate and counting method.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an aggregator. A nil logger falls back to the
// default logger.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// ManualOnly returns the observations counted with the manual protocol.
// The replicate dataset and everything downstream of it is defined over
// manual counts; automated counts are kept only for the comparison plots.
func ManualOnly(observations []domain.DatedObservation) []domain.DatedObservation {
	manual := make([]domain.DatedObservation, 0, len(observations))
	for _, obs := range observations {
		if obs.Method == domain.MethodManual {
			manual = append(manual, obs)
		}
	}
	return manual
}

// Summarize groups manual observations by replicate and method and
// reduces each group to its row count and mean percentage. Observations
// from other counting methods are skipped. The result is ordered by
// replicate, then method, so repeated runs over the same input produce
// identical output.
func (a *Aggregator) Summarize(ctx context.Context, observations []domain.DatedObservation) []domain.ReplicateSummary {
	a.logger.InfoContext(ctx, "aggregating observations into replicate summaries",
		slog.Int("observation_count", len(observations)))

	if len(observations) == 0 {
		return []domain.ReplicateSummary{}
	}

	groups := groupByReplicate(observations)

	summaries := make([]domain.ReplicateSummary, 0, len(groups))
	for key, values := range groups {
		summaries = append(summaries, domain.ReplicateSummary{
			Replicate:  key.replicate,
			Method:     key.method,
			N:          len(values),
			Percentage: stat.Mean(values, nil),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Replicate != summaries[j].Replicate {
			return summaries[i].Replicate < summaries[j].Replicate
		}
		return summaries[i].Method < summaries[j].Method
	})

	a.logger.InfoContext(ctx, "aggregation complete",
		slog.Int("replicate_count", len(summaries)))

	return summaries
}

type replicateKey struct {
	replicate string
	method    domain.Method
}

func groupByReplicate(observations []domain.DatedObservation) map[replicateKey][]float64 {
	groups := make(map[replicateKey][]float64)
	for _, obs := range observations {
		if obs.Method != domain.MethodManual {
			continue
		}
		key := replicateKey{replicate: obs.ReplicateKey(), method: obs.Method}
		groups[key] = append(groups[key], obs.Value)
	}
	return groups
}
