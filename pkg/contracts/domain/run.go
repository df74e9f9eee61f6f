package domain

import "time"

// StageCount records the row flow through one pipeline stage.
type StageCount struct {
	Stage    string        `json:"stage"`
	RowsIn   int           `json:"rows_in"`
	RowsOut  int           `json:"rows_out"`
	Duration time.Duration `json:"duration_ns"`
}

// RunMetadata identifies one pipeline run for audit purposes. It is stamped
// into every JSON artifact and the text report.
type RunMetadata struct {
	RunID     string       `json:"run_id" validate:"required,uuid"`
	Source    string       `json:"source"`
	StartedAt time.Time    `json:"started_at"`
	Finished  time.Time    `json:"finished_at"`
	Stages    []StageCount `json:"stages,omitempty"`
	Version   string       `json:"version"`
}
