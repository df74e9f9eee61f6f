package sphase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sphasecli/pkg/contracts/domain"
)

func manualObservation(year int, group string, value float64) domain.DatedObservation {
	return domain.DatedObservation{
		Observation: domain.Observation{
			Group:  group,
			Method: domain.MethodManual,
			Value:  value,
		},
		Day:       12,
		Month:     4,
		Year:      year,
		TimeOfDay: "09:30:00",
	}
}

func automatedObservation(year int, group string, value float64) domain.DatedObservation {
	obs := manualObservation(year, group, value)
	obs.Method = domain.MethodAutomated
	return obs
}

func TestAggregator_Summarize_CollapsesTechnicalReplicates(t *testing.T) {
	agg := NewAggregator(nil)

	observations := []domain.DatedObservation{
		manualObservation(2021, "Team Rocket", 40),
		manualObservation(2021, "Team Rocket", 50),
	}

	summaries := agg.Summarize(context.Background(), observations)

	require.Len(t, summaries, 1)
	assert.Equal(t, "2021 Team Rocket", summaries[0].Replicate)
	assert.Equal(t, domain.MethodManual, summaries[0].Method)
	assert.Equal(t, 2, summaries[0].N)
	assert.InDelta(t, 45.0, summaries[0].Percentage, 1e-9)
}

func TestAggregator_Summarize_SameGroupDifferentYearIsDistinct(t *testing.T) {
	agg := NewAggregator(nil)

	observations := []domain.DatedObservation{
		manualObservation(2021, "Team Rocket", 30),
		manualObservation(2022, "Team Rocket", 50),
	}

	summaries := agg.Summarize(context.Background(), observations)

	require.Len(t, summaries, 2)
	assert.Equal(t, "2021 Team Rocket", summaries[0].Replicate)
	assert.Equal(t, "2022 Team Rocket", summaries[1].Replicate)
	for _, s := range summaries {
		assert.Equal(t, 1, s.N)
	}
}

func TestAggregator_Summarize_SkipsAutomatedCounts(t *testing.T) {
	agg := NewAggregator(nil)

	observations := []domain.DatedObservation{
		manualObservation(2021, "Team Rocket", 40),
		automatedObservation(2021, "Team Rocket", 90),
		manualObservation(2021, "Team Rocket", 50),
	}

	summaries := agg.Summarize(context.Background(), observations)

	require.Len(t, summaries, 1)
	assert.Equal(t, 2, summaries[0].N)
	assert.InDelta(t, 45.0, summaries[0].Percentage, 1e-9)
}

func TestAggregator_Summarize_DeterministicOrder(t *testing.T) {
	agg := NewAggregator(nil)

	observations := []domain.DatedObservation{
		manualObservation(2022, "Zebrafish", 20),
		manualObservation(2021, "Amoeba", 30),
		manualObservation(2021, "Zebrafish", 40),
	}

	first := agg.Summarize(context.Background(), observations)
	second := agg.Summarize(context.Background(), observations)

	require.Equal(t, first, second)
	require.Len(t, first, 3)
	assert.Equal(t, "2021 Amoeba", first[0].Replicate)
	assert.Equal(t, "2021 Zebrafish", first[1].Replicate)
	assert.Equal(t, "2022 Zebrafish", first[2].Replicate)
}

func TestAggregator_Summarize_Empty(t *testing.T) {
	agg := NewAggregator(nil)

	summaries := agg.Summarize(context.Background(), nil)

	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}

func TestManualOnly(t *testing.T) {
	observations := []domain.DatedObservation{
		manualObservation(2021, "A", 40),
		automatedObservation(2021, "A", 60),
		manualObservation(2021, "B", 50),
	}

	manual := ManualOnly(observations)

	require.Len(t, manual, 2)
	for _, obs := range manual {
		assert.Equal(t, domain.MethodManual, obs.Method)
	}
}
