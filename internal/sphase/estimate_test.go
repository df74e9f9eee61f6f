package sphase

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sphasecli/pkg/contracts/domain"
)

func summariesOf(percentages ...float64) []domain.ReplicateSummary {
	summaries := make([]domain.ReplicateSummary, 0, len(percentages))
	for i, p := range percentages {
		summaries = append(summaries, domain.ReplicateSummary{
			Replicate:  string(rune('A' + i)),
			Method:     domain.MethodManual,
			N:          3,
			Percentage: p,
		})
	}
	return summaries
}

func TestEstimator_Estimate_ThreeReplicates(t *testing.T) {
	est := NewEstimator(nil)

	result := est.Estimate(context.Background(), summariesOf(30, 35, 40))

	assert.Equal(t, 3, result.N)
	assert.InDelta(t, 35.0, result.Average, 1e-9)
	assert.InDelta(t, 5.0, result.StdDev, 1e-9)
	assert.InDelta(t, 3.5355, result.StdErr, 1e-4)
	assert.InDelta(t, 19.787, result.CILower, 1e-2)
	assert.InDelta(t, 50.213, result.CIUpper, 1e-2)
	assert.True(t, result.Defined())
}

func TestEstimator_Estimate_IntervalBracketsAverage(t *testing.T) {
	est := NewEstimator(nil)

	tests := []struct {
		name        string
		percentages []float64
	}{
		{name: "two replicates", percentages: []float64{20, 60}},
		{name: "five replicates", percentages: []float64{31, 34, 35, 38, 42}},
		{name: "no spread", percentages: []float64{37, 37, 37}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := est.Estimate(context.Background(), summariesOf(tt.percentages...))

			require.True(t, result.CILower <= result.Average)
			require.True(t, result.Average <= result.CIUpper)
			assert.InDelta(t, result.Average, (result.CILower+result.CIUpper)/2, 1e-9)
		})
	}
}

func TestEstimator_Estimate_SingleReplicate(t *testing.T) {
	est := NewEstimator(nil)

	result := est.Estimate(context.Background(), summariesOf(42))

	assert.Equal(t, 1, result.N)
	assert.InDelta(t, 42.0, result.Average, 1e-9)
	assert.True(t, math.IsNaN(result.StdDev))
	assert.True(t, math.IsNaN(result.StdErr))
	assert.True(t, math.IsNaN(result.CILower))
	assert.True(t, math.IsNaN(result.CIUpper))
	assert.False(t, result.Defined())
}

func TestEstimator_Estimate_NoReplicates(t *testing.T) {
	est := NewEstimator(nil)

	result := est.Estimate(context.Background(), nil)

	assert.Equal(t, 0, result.N)
	assert.True(t, math.IsNaN(result.Average))
	assert.False(t, result.Defined())
}

func TestEstimator_Estimate_WidensWithFewerReplicates(t *testing.T) {
	est := NewEstimator(nil)
	ctx := context.Background()

	// Same spread, fewer samples: the t quantile grows and so must the
	// interval.
	wide := est.Estimate(ctx, summariesOf(30, 40))
	narrow := est.Estimate(ctx, summariesOf(30, 40, 30, 40, 30, 40))

	assert.Greater(t, wide.CIUpper-wide.CILower, narrow.CIUpper-narrow.CILower)
}
