package plotspec

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sphasecli/pkg/contracts/domain"
)

func TestSaveSpecs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plots", "specs.json")

	specs := NewBuilder().
		WithObservations(fixtureObservations()).
		WithSummaries(fixtureSummaries()).
		Build()

	doc := Document{
		Metadata: domain.RunMetadata{
			RunID:   "b2428ef9-3dd4-4f1e-9aa1-2f3bd8f1b9c1",
			Source:  "https://example.com/responses.csv",
			Version: "0.3.0",
		},
		Specs: specs,
	}
	require.NoError(t, SaveSpecs(path, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc.Metadata.RunID, decoded.Metadata.RunID)
	require.Len(t, decoded.Specs, len(specs))
	assert.Equal(t, "method_density", decoded.Specs[0].ID)
	assert.NotEmpty(t, decoded.Specs[0].Series[0].Samples)
}
