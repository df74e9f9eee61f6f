package dataset

import (
	"context"
	"log/slog"
	"math"
	"strconv"

	"sphasecli/pkg/contracts/domain"
)

// Cleaner coerces observation values to numbers and enforces the domain:
// an S-phase percentage is only plausible strictly between 0 and 100. The
// boundary values themselves are treated as erroneous entries (an exact 0
// or 100 from a counting exercise is a form mistake, not a measurement).
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a Cleaner. A nil logger falls back to the default
// logger.
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger}
}

// Clean returns the observations whose value coerces to a number inside
// the open interval (0, 100). Excluded rows are tallied in the report by
// reason. Cleaning an already-clean table is a no-op.
func (c *Cleaner) Clean(ctx context.Context, observations []domain.Observation, report *domain.CleanReport) []domain.Observation {
	cleaned := make([]domain.Observation, 0, len(observations))

	var nonNumeric, outOfRange, boundary int
	for _, obs := range observations {
		value, err := strconv.ParseFloat(obs.RawValue, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			nonNumeric++
			c.logger.DebugContext(ctx, "dropping non-numeric value",
				slog.String("raw", obs.RawValue),
				slog.String("group", obs.Group),
				slog.String("method", obs.Method.String()))
			continue
		}

		switch {
		case value == 0 || value == 100:
			boundary++
			c.logger.DebugContext(ctx, "dropping boundary value",
				slog.Float64("value", value),
				slog.String("group", obs.Group),
				slog.String("method", obs.Method.String()))
			continue
		case value < 0 || value > 100:
			outOfRange++
			c.logger.DebugContext(ctx, "dropping out-of-range value",
				slog.Float64("value", value),
				slog.String("group", obs.Group),
				slog.String("method", obs.Method.String()))
			continue
		}

		obs.Value = value
		cleaned = append(cleaned, obs)
	}

	report.Add(domain.DropNonNumeric, nonNumeric)
	report.Add(domain.DropOutOfRange, outOfRange)
	report.Add(domain.DropBoundaryValue, boundary)

	c.logger.InfoContext(ctx, "cleaned observations",
		slog.Int("rows_in", len(observations)),
		slog.Int("rows_out", len(cleaned)),
		slog.Int("non_numeric", nonNumeric),
		slog.Int("out_of_range", outOfRange),
		slog.Int("boundary", boundary))

	return cleaned
}
