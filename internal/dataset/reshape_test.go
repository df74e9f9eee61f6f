package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sphasecli/pkg/contracts/domain"
)

func TestReshape_Cardinality(t *testing.T) {
	subs := []domain.Submission{
		{Timestamp: "12-04-2021 09:30:00", Group: "alpha", Manual: "45", Automated: "47.2"},
		{Timestamp: "13-04-2021 10:00:00", Group: "beta", Manual: "50", Automated: "48"},
		{Timestamp: "14-04-2021 11:00:00", Group: "gamma", Manual: "55", Automated: "53"},
	}

	obs := Reshape(subs)

	require.Len(t, obs, 2*len(subs))
	for i, sub := range subs {
		manual := obs[2*i]
		automated := obs[2*i+1]

		assert.Equal(t, domain.MethodManual, manual.Method)
		assert.Equal(t, domain.MethodAutomated, automated.Method)

		// Both output rows preserve timestamp and group unchanged.
		for _, o := range []domain.Observation{manual, automated} {
			assert.Equal(t, sub.Timestamp, o.Timestamp)
			assert.Equal(t, sub.Group, o.Group)
			assert.True(t, o.Method.IsValid())
		}

		assert.Equal(t, sub.Manual, manual.RawValue)
		assert.Equal(t, sub.Automated, automated.RawValue)
	}
}

func TestReshape_Empty(t *testing.T) {
	assert.Empty(t, Reshape(nil))
	assert.Empty(t, Reshape([]domain.Submission{}))
}

func TestReshape_StripsWhitespaceFromValues(t *testing.T) {
	subs := []domain.Submission{
		{Timestamp: "ts", Group: "g", Manual: " 45 ", Automated: "47.2\t"},
		{Timestamp: "ts", Group: "g", Manual: "45 %", Automated: "4 8"},
	}

	obs := Reshape(subs)

	require.Len(t, obs, 4)
	assert.Equal(t, "45", obs[0].RawValue)
	assert.Equal(t, "47.2", obs[1].RawValue)
	// Stripping never validates: "45%" stays for the cleaner to reject.
	assert.Equal(t, "45%", obs[2].RawValue)
	assert.Equal(t, "48", obs[3].RawValue)
}

func TestStripWhitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "45", "45"},
		{"padded", "  45  ", "45"},
		{"interior", "4 5.5", "45.5"},
		{"tabs and newlines", "\t45\n", "45"},
		{"non-breaking space", "45 ", "45"},
		{"unit noise kept", "45%", "45%"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripWhitespace(tt.in))
		})
	}
}
