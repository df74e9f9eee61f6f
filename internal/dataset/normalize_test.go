package dataset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sphasecli/internal/errors"
	"sphasecli/pkg/contracts/domain"
)

func TestNormalizer_NamedColumnLookup(t *testing.T) {
	table := &domain.RawTable{
		Header: []string{
			"Timestamp",
			"What is your group name?",
			"Manual count (%)",
			"Automated count (%)",
		},
		Rows: [][]string{
			{"12-04-2021 09:30:00", "alpha", "45", "47.2"},
			{"13-04-2021 10:00:00", "beta", "50", "48"},
		},
	}
	report := domain.NewCleanReport()

	subs, err := NewNormalizer(nil).Normalize(context.Background(), table, report)
	require.NoError(t, err)

	require.Len(t, subs, 2)
	assert.Equal(t, domain.Submission{
		Timestamp: "12-04-2021 09:30:00",
		Group:     "alpha",
		Manual:    "45",
		Automated: "47.2",
	}, subs[0])
	assert.Equal(t, 2, report.RowsFetched)
	assert.Equal(t, 0, report.Dropped())
}

func TestNormalizer_NamedLookupIgnoresColumnOrder(t *testing.T) {
	table := &domain.RawTable{
		Header: []string{"Automated count", "Tijdstempel", "Manual count", "Group name"},
		Rows: [][]string{
			{"47.2", "12-04-2021 09:30:00", "45", "alpha"},
		},
	}
	report := domain.NewCleanReport()

	subs, err := NewNormalizer(nil).Normalize(context.Background(), table, report)
	require.NoError(t, err)

	require.Len(t, subs, 1)
	assert.Equal(t, "12-04-2021 09:30:00", subs[0].Timestamp)
	assert.Equal(t, "alpha", subs[0].Group)
	assert.Equal(t, "45", subs[0].Manual)
	assert.Equal(t, "47.2", subs[0].Automated)
}

func TestNormalizer_PositionalFallback(t *testing.T) {
	table := &domain.RawTable{
		Header: []string{"A", "B", "C", "D"},
		Rows: [][]string{
			{"12-04-2021 09:30:00", "alpha", "45", "47.2"},
		},
	}
	report := domain.NewCleanReport()

	subs, err := NewNormalizer(nil).Normalize(context.Background(), table, report)
	require.NoError(t, err)

	require.Len(t, subs, 1)
	assert.Equal(t, "alpha", subs[0].Group)
	assert.Equal(t, "45", subs[0].Manual)
}

func TestNormalizer_SchemaMismatch(t *testing.T) {
	tests := []struct {
		name   string
		header []string
	}{
		{
			name:   "unrecognizable and wrong width",
			header: []string{"A", "B", "C", "D", "E"},
		},
		{
			name:   "partially recognizable",
			header: []string{"Timestamp", "Group", "Count one", "Count two"},
		},
		{
			name:   "duplicate group columns",
			header: []string{"Timestamp", "Group 1", "Group 2", "Manual", "Automated"},
		},
		{
			name:   "empty header",
			header: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &domain.RawTable{Header: tt.header}
			_, err := NewNormalizer(nil).Normalize(context.Background(), table, domain.NewCleanReport())
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchemaMismatch), "got %v", err)
		})
	}
}

func TestNormalizer_DropsNullRows(t *testing.T) {
	table := &domain.RawTable{
		Header: []string{"Timestamp", "Group", "Manual", "Automated"},
		Rows: [][]string{
			{"12-04-2021 09:30:00", "alpha", "45", "47.2"},
			{"13-04-2021 10:00:00", "", "50", "48"},
			{"14-04-2021 11:00:00", "gamma", "", "49"},
			{"15-04-2021 12:00:00", "delta", "51"},
			{"16-04-2021 13:00:00", "epsilon", "52", "50"},
		},
	}
	report := domain.NewCleanReport()

	subs, err := NewNormalizer(nil).Normalize(context.Background(), table, report)
	require.NoError(t, err)

	require.Len(t, subs, 2)
	assert.Equal(t, "alpha", subs[0].Group)
	assert.Equal(t, "epsilon", subs[1].Group)
	assert.Equal(t, 5, report.RowsFetched)
	assert.Equal(t, 3, report.Count(domain.DropEmptyCell))
}
