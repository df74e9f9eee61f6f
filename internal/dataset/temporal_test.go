package dataset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sphasecli/internal/errors"
	"sphasecli/pkg/contracts/domain"
)

func TestSplitTimestamp(t *testing.T) {
	tests := []struct {
		name      string
		timestamp string
		wantDay   int
		wantMonth int
		wantYear  int
		wantTime  string
		wantErr   bool
	}{
		{
			name:      "well formed",
			timestamp: "12-04-2021 09:30:00",
			wantDay:   12, wantMonth: 4, wantYear: 2021,
			wantTime: "09:30:00",
		},
		{
			name:      "unpadded parts",
			timestamp: "2-4-2021 9:30:00",
			wantDay:   2, wantMonth: 4, wantYear: 2021,
			wantTime: "9:30:00",
		},
		{
			name:      "time keeps everything after first space",
			timestamp: "12-04-2021 09:30:00 GMT+1",
			wantDay:   12, wantMonth: 4, wantYear: 2021,
			wantTime: "09:30:00 GMT+1",
		},
		{
			name:      "no space",
			timestamp: "12-04-2021",
			wantErr:   true,
		},
		{
			name:      "leading space",
			timestamp: " 09:30:00",
			wantErr:   true,
		},
		{
			name:      "trailing space only",
			timestamp: "12-04-2021 ",
			wantErr:   true,
		},
		{
			name:      "slash-delimited date",
			timestamp: "12/04/2021 09:30:00",
			wantErr:   true,
		},
		{
			name:      "too many date parts",
			timestamp: "12-04-2021-00 09:30:00",
			wantErr:   true,
		},
		{
			name:      "alphabetic month",
			timestamp: "12-apr-2021 09:30:00",
			wantErr:   true,
		},
		{
			name:      "empty",
			timestamp: "",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, month, year, timeOfDay, err := SplitTimestamp(tt.timestamp)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMalformedTimestamp), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDay, day)
			assert.Equal(t, tt.wantMonth, month)
			assert.Equal(t, tt.wantYear, year)
			assert.Equal(t, tt.wantTime, timeOfDay)
		})
	}
}

func TestTemporalSplitter_DropsMalformedRows(t *testing.T) {
	input := []domain.Observation{
		{Timestamp: "12-04-2021 09:30:00", Group: "alpha", Method: domain.MethodManual, Value: 45},
		{Timestamp: "not a timestamp", Group: "beta", Method: domain.MethodManual, Value: 50},
		{Timestamp: "13-04-2022 10:00:00", Group: "gamma", Method: domain.MethodAutomated, Value: 48},
	}
	report := domain.NewCleanReport()

	dated := NewTemporalSplitter(nil).Split(context.Background(), input, report)

	require.Len(t, dated, 2)
	assert.Equal(t, 1, report.Count(domain.DropMalformedTimestamp))

	first := dated[0]
	assert.Equal(t, 12, first.Day)
	assert.Equal(t, 4, first.Month)
	assert.Equal(t, 2021, first.Year)
	assert.Equal(t, "09:30:00", first.TimeOfDay)
	assert.Equal(t, 45.0, first.Value)

	second := dated[1]
	assert.Equal(t, 2022, second.Year)
	assert.Equal(t, "2022 gamma", second.ReplicateKey())
}

func TestDatedObservation_ReplicateKey(t *testing.T) {
	obs := domain.DatedObservation{
		Observation: domain.Observation{Group: "Team Rocket"},
		Year:        2021,
	}
	assert.Equal(t, "2021 Team Rocket", obs.ReplicateKey())
}
