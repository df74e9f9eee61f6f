package domain

import "fmt"

// Method identifies how a measurement was taken.
type Method string

const (
	// MethodManual is the hand-counted measurement, treated as ground truth
	// for the population estimate.
	MethodManual Method = "manual"

	// MethodAutomated is the image-analysis measurement. It participates in
	// the distribution and pairing plots but not in the final estimate.
	MethodAutomated Method = "automated"
)

// IsValid reports whether m is one of the two known methods.
func (m Method) IsValid() bool {
	return m == MethodManual || m == MethodAutomated
}

// String returns the method label as written to exports.
func (m Method) String() string {
	return string(m)
}

// Observation is one long-form measurement row: a single (submission,
// method, value) triple. Two Observations are produced per Submission.
// RawValue keeps the whitespace-stripped source text; Value is only
// meaningful once the cleaner has coerced it.
type Observation struct {
	Timestamp string  `json:"timestamp"`
	Group     string  `json:"group"`
	Method    Method  `json:"method" validate:"oneof=manual automated"`
	RawValue  string  `json:"raw_value,omitempty"`
	Value     float64 `json:"value"`
}

// DatedObservation extends a cleaned Observation with the date components
// split out of its timestamp. Day, Month and Year are only present
// together; rows whose timestamp could not be decomposed never reach this
// type.
type DatedObservation struct {
	Observation
	Day       int    `json:"day"`
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	TimeOfDay string `json:"time"`
}

// ReplicateKey derives the independent-replicate identifier for the
// observation: the year and group label joined by a single space. One key
// names one independent biological/experimental unit.
func (d DatedObservation) ReplicateKey() string {
	return fmt.Sprintf("%d %s", d.Year, d.Group)
}
