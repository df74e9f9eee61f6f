package domain

import "time"

// RawTable holds a source sheet exactly as fetched: one header row and the
// untyped data rows beneath it. It is the loader's output and is never
// mutated by later stages.
type RawTable struct {
	Header    []string   `json:"header"`
	Rows      [][]string `json:"rows"`
	Source    string     `json:"source"`
	FetchedAt time.Time  `json:"fetched_at"`
}

// RowCount returns the number of data rows (the header is not counted).
func (t *RawTable) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Submission represents one normalized sheet row: a single crowd-sourced
// measurement entry carrying both method values as raw text.
type Submission struct {
	Timestamp string `json:"timestamp" validate:"required"`
	Group     string `json:"group" validate:"required"`
	Manual    string `json:"manual" validate:"required"`
	Automated string `json:"automated" validate:"required"`
}

// IsComplete reports whether every cell carries a value. Empty strings are
// the null sentinel of the source sheet; a row with any null cell is
// dropped before reshaping.
func (s Submission) IsComplete() bool {
	return s.Timestamp != "" && s.Group != "" && s.Manual != "" && s.Automated != ""
}
