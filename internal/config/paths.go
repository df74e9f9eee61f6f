package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths locates every artifact a run writes. All paths hang off the output
// directory so a run can be pointed anywhere with a single flag.
type Paths struct {
	OutDir   string
	PlotsDir string
	LogsDir  string

	// Well-known artifact files
	ReplicatesCSV       string
	ReplicateSummaryCSV string
	EstimateJSON        string
	PlotSpecsJSON       string
	RunReportTXT        string
}

// NewPaths builds the artifact tree rooted at outDir. Relative outDir is
// resolved against the current working directory.
func NewPaths(outDir string) (*Paths, error) {
	if outDir == "" {
		outDir = "reports"
	}
	abs, err := filepath.Abs(outDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory %s: %w", outDir, err)
	}

	p := &Paths{
		OutDir:   abs,
		PlotsDir: filepath.Join(abs, "plots"),
		LogsDir:  filepath.Join(abs, "logs"),
	}
	p.ReplicatesCSV = filepath.Join(p.OutDir, FileReplicatesCSV)
	p.ReplicateSummaryCSV = filepath.Join(p.OutDir, FileReplicateSummaryCSV)
	p.EstimateJSON = filepath.Join(p.OutDir, FileEstimateJSON)
	p.PlotSpecsJSON = filepath.Join(p.PlotsDir, FilePlotSpecsJSON)
	p.RunReportTXT = filepath.Join(p.OutDir, FileRunReportTXT)

	return p, nil
}

// EnsureDirectories creates the output tree if it does not exist yet.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.OutDir, p.PlotsDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetReportPath returns the path of a named file inside the output
// directory.
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.OutDir, filename)
}

// GetPlotPath returns the path of a named file inside the plots directory.
func (p *Paths) GetPlotPath(filename string) string {
	return filepath.Join(p.PlotsDir, filename)
}
