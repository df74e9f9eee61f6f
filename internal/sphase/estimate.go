package sphase

import (
	"context"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"sphasecli/pkg/contracts/domain"
)

// lowerTail is the lower tail probability of the two-sided 95%
// confidence interval.
const lowerTail = 0.025

// Estimator reduces the replicate means to a single population estimate
// of the S-phase percentage.
type Estimator struct {
	logger *slog.Logger
}

// NewEstimator creates an estimator. A nil logger falls back to the
// default logger.
func NewEstimator(logger *slog.Logger) *Estimator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Estimator{logger: logger}
}

// Estimate computes the mean of the replicate means, its standard
// deviation and standard error, and a 95% confidence interval from
// Student's t distribution with N-1 degrees of freedom. Every replicate
// contributes one sample regardless of how many rows it collapsed.
//
// With one replicate or none the spread statistics are undefined and
// come back as NaN; callers should check Defined before formatting them.
func (e *Estimator) Estimate(ctx context.Context, summaries []domain.ReplicateSummary) domain.PopulationEstimate {
	values := make([]float64, 0, len(summaries))
	for _, s := range summaries {
		values = append(values, s.Percentage)
	}

	n := len(values)
	estimate := domain.PopulationEstimate{
		N:       n,
		Average: math.NaN(),
		StdDev:  math.NaN(),
		StdErr:  math.NaN(),
		CILower: math.NaN(),
		CIUpper: math.NaN(),
	}

	if n == 0 {
		e.logger.WarnContext(ctx, "no replicates to estimate from")
		return estimate
	}

	estimate.Average = stat.Mean(values, nil)
	if n == 1 {
		e.logger.WarnContext(ctx, "single replicate, spread statistics are undefined",
			slog.Float64("average", estimate.Average))
		return estimate
	}

	estimate.StdDev = stat.StdDev(values, nil)
	// The standard error divides by sqrt(N-1), not sqrt(N). Published
	// intervals depend on this convention.
	estimate.StdErr = estimate.StdDev / math.Sqrt(float64(n-1))

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	q := tDist.Quantile(lowerTail)

	estimate.CILower = estimate.Average + q*estimate.StdErr
	estimate.CIUpper = estimate.Average - q*estimate.StdErr

	e.logger.InfoContext(ctx, "population estimate computed",
		slog.Int("replicates", n),
		slog.Float64("average", estimate.Average),
		slog.Float64("sd", estimate.StdDev),
		slog.Float64("sem", estimate.StdErr),
		slog.Float64("ci_lower", estimate.CILower),
		slog.Float64("ci_upper", estimate.CIUpper))

	return estimate
}
