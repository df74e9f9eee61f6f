package domain

// DropReason classifies why a row was excluded from the pipeline.
type DropReason string

const (
	DropEmptyCell          DropReason = "empty_cell"
	DropNonNumeric         DropReason = "non_numeric"
	DropOutOfRange         DropReason = "out_of_range"
	DropBoundaryValue      DropReason = "boundary_value"
	DropMalformedTimestamp DropReason = "malformed_timestamp"
)

// CleanReport is the inspectable record of data loss: every row excluded
// anywhere in the pipeline is tallied here by reason. Rows are never
// dropped silently.
type CleanReport struct {
	RowsFetched   int                `json:"rows_fetched"`
	RowsRetained  int                `json:"rows_retained"`
	DropsByReason map[DropReason]int `json:"drops_by_reason,omitempty"`
}

// NewCleanReport returns an empty report ready for tallying.
func NewCleanReport() *CleanReport {
	return &CleanReport{DropsByReason: make(map[DropReason]int)}
}

// Add records n dropped rows under the given reason.
func (r *CleanReport) Add(reason DropReason, n int) {
	if n == 0 {
		return
	}
	if r.DropsByReason == nil {
		r.DropsByReason = make(map[DropReason]int)
	}
	r.DropsByReason[reason] += n
}

// Dropped returns the total number of excluded rows across all reasons.
func (r *CleanReport) Dropped() int {
	total := 0
	for _, n := range r.DropsByReason {
		total += n
	}
	return total
}

// Count returns the tally for one reason.
func (r *CleanReport) Count(reason DropReason) int {
	return r.DropsByReason[reason]
}
