package plotspec

import (
	"encoding/json"
	"os"
	"path/filepath"

	"sphasecli/internal/errors"
	"sphasecli/pkg/contracts/domain"
)

// Document pairs the composed specs with the run that produced them.
type Document struct {
	Metadata domain.RunMetadata `json:"metadata"`
	Specs    []Spec             `json:"specs"`
}

// SaveSpecs writes the spec document as indented JSON for the external
// renderer.
func SaveSpecs(path string, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create plots directory", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.NewStorageError("failed to marshal plot specs", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewStorageError("failed to write plot specs", err)
	}
	return nil
}
