package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	apperrors "sphasecli/internal/errors"
	"sphasecli/pkg/contracts/domain"
)

// SplitTimestamp decomposes a DD-MM-YYYY HH:MM:SS timestamp: the date and
// time halves are separated by the first space, and the date half carries
// exactly three hyphen-delimited integer parts in day-month-year order.
// Anything else returns a MALFORMED_TIMESTAMP error.
func SplitTimestamp(timestamp string) (day, month, year int, timeOfDay string, err error) {
	idx := strings.Index(timestamp, " ")
	if idx <= 0 || idx == len(timestamp)-1 {
		return 0, 0, 0, "", apperrors.NewMalformedTimestampError(
			"expected date and time separated by a space", nil).
			WithContext("timestamp", timestamp)
	}

	datePart := timestamp[:idx]
	timeOfDay = timestamp[idx+1:]

	parts := strings.Split(datePart, "-")
	if len(parts) != 3 {
		return 0, 0, 0, "", apperrors.NewMalformedTimestampError(
			fmt.Sprintf("expected 3 hyphen-delimited date parts, got %d", len(parts)), nil).
			WithContext("timestamp", timestamp)
	}

	numbers := make([]int, 3)
	for i, part := range parts {
		n, convErr := strconv.Atoi(part)
		if convErr != nil {
			return 0, 0, 0, "", apperrors.NewMalformedTimestampError(
				fmt.Sprintf("date part %q is not an integer", part), convErr).
				WithContext("timestamp", timestamp)
		}
		numbers[i] = n
	}

	return numbers[0], numbers[1], numbers[2], timeOfDay, nil
}

// TemporalSplitter derives the date components every observation is grouped
// by. The batch policy for a timestamp that fails to parse is to drop the
// row and tally it, matching how malformed values are handled elsewhere.
type TemporalSplitter struct {
	logger *slog.Logger
}

// NewTemporalSplitter creates a TemporalSplitter. A nil logger falls back
// to the default logger.
func NewTemporalSplitter(logger *slog.Logger) *TemporalSplitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TemporalSplitter{logger: logger}
}

// Split converts cleaned observations to dated ones. Rows whose timestamp
// does not decompose are excluded and counted in the report.
func (t *TemporalSplitter) Split(ctx context.Context, observations []domain.Observation, report *domain.CleanReport) []domain.DatedObservation {
	dated := make([]domain.DatedObservation, 0, len(observations))

	dropped := 0
	for _, obs := range observations {
		day, month, year, timeOfDay, err := SplitTimestamp(obs.Timestamp)
		if err != nil {
			dropped++
			t.logger.WarnContext(ctx, "dropping row with malformed timestamp",
				slog.String("timestamp", obs.Timestamp),
				slog.String("group", obs.Group))
			continue
		}
		dated = append(dated, domain.DatedObservation{
			Observation: obs,
			Day:         day,
			Month:       month,
			Year:        year,
			TimeOfDay:   timeOfDay,
		})
	}
	report.Add(domain.DropMalformedTimestamp, dropped)

	t.logger.InfoContext(ctx, "split timestamps",
		slog.Int("rows_in", len(observations)),
		slog.Int("rows_out", len(dated)),
		slog.Int("malformed", dropped))

	return dated
}
