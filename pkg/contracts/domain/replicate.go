package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ReplicateSummary collapses the technical replicates of one independent
// replicate down to a single value per method: the row count and the
// arithmetic mean of the measured percentages.
type ReplicateSummary struct {
	Replicate  string  `json:"replicate" validate:"required"`
	Method     Method  `json:"method" validate:"oneof=manual automated"`
	N          int     `json:"n" validate:"min=1"`
	Percentage float64 `json:"percentage"`
}

// PopulationEstimate is the two-stage estimate over replicate-level means:
// each independent replicate contributes exactly one sample, regardless of
// how many technical replicates it collapsed.
//
// StdErr divides by sqrt(N-1) rather than the textbook sqrt(N). That is the
// established convention of this analysis and downstream consumers depend
// on it.
type PopulationEstimate struct {
	N       int     `json:"n"`
	Average float64 `json:"average"`
	StdDev  float64 `json:"sd"`
	StdErr  float64 `json:"sem"`
	CILower float64 `json:"ci_lower"`
	CIUpper float64 `json:"ci_upper"`
}

// Defined reports whether the spread statistics exist. With a single
// replicate the mean is still reportable but sd, sem and the interval are
// NaN.
func (p PopulationEstimate) Defined() bool {
	return p.N > 1 && !math.IsNaN(p.StdDev)
}

// MarshalJSON encodes undefined statistics as null. NaN has no JSON
// encoding, and a single-replicate run still has to produce a report.
func (p PopulationEstimate) MarshalJSON() ([]byte, error) {
	type document struct {
		N       int      `json:"n"`
		Average *float64 `json:"average"`
		StdDev  *float64 `json:"sd"`
		StdErr  *float64 `json:"sem"`
		CILower *float64 `json:"ci_lower"`
		CIUpper *float64 `json:"ci_upper"`
	}
	return json.Marshal(document{
		N:       p.N,
		Average: nullableFloat(p.Average),
		StdDev:  nullableFloat(p.StdDev),
		StdErr:  nullableFloat(p.StdErr),
		CILower: nullableFloat(p.CILower),
		CIUpper: nullableFloat(p.CIUpper),
	})
}

func nullableFloat(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// EstimateDisplay is the human-readable rendering of a
// PopulationEstimate: one decimal per statistic, "n/a" where undefined.
type EstimateDisplay struct {
	N        int
	Average  string
	StdDev   string
	StdErr   string
	Interval string
}

// Display renders the estimate for reports and terminal output. The
// confidence interval renders as "lo - hi".
func (p PopulationEstimate) Display() EstimateDisplay {
	d := EstimateDisplay{
		N:        p.N,
		Average:  displayFloat(p.Average),
		StdDev:   displayFloat(p.StdDev),
		StdErr:   displayFloat(p.StdErr),
		Interval: "n/a",
	}
	if p.Defined() {
		d.Interval = fmt.Sprintf("%s - %s", displayFloat(p.CILower), displayFloat(p.CIUpper))
	}
	return d
}

func displayFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
