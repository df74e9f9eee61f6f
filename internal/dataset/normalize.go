package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"sphasecli/internal/config"
	apperrors "sphasecli/internal/errors"
	"sphasecli/pkg/contracts/domain"
)

// headerFragments maps each canonical column to the substrings that
// identify it in a sheet header. Form sheets phrase their headers as full
// questions ("What is your group name?"), so matching is by fragment, not
// equality. The Dutch form localizes the timestamp column.
var headerFragments = map[string][]string{
	config.ColumnTimestamp: {"timestamp", "tijdstempel"},
	config.ColumnGroup:     {"group"},
	config.ColumnManual:    {"manual"},
	config.ColumnAutomated: {"automated", "automatic"},
}

// canonicalOrder is the positional fallback contract: timestamp, group,
// manual, automated.
var canonicalOrder = []string{
	config.ColumnTimestamp,
	config.ColumnGroup,
	config.ColumnManual,
	config.ColumnAutomated,
}

// Normalizer maps raw sheet columns onto the fixed logical schema and
// applies the null-row policy: any row with an empty cell in a canonical
// column is dropped and tallied.
type Normalizer struct {
	logger *slog.Logger
}

// NewNormalizer creates a Normalizer. A nil logger falls back to the
// default logger.
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// Normalize resolves the column mapping and converts the raw rows to
// Submissions. Rows with null cells are excluded and counted in the report.
// An unmappable header is a SCHEMA_MISMATCH and fatal for the run.
func (n *Normalizer) Normalize(ctx context.Context, table *domain.RawTable, report *domain.CleanReport) ([]domain.Submission, error) {
	if table == nil || len(table.Header) == 0 {
		return nil, apperrors.NewSchemaMismatchError("source table has no header row", nil)
	}

	columns, err := mapColumns(table.Header)
	if err != nil {
		return nil, err
	}

	report.RowsFetched = len(table.Rows)

	submissions := make([]domain.Submission, 0, len(table.Rows))
	dropped := 0
	for i, row := range table.Rows {
		sub := domain.Submission{
			Timestamp: cellAt(row, columns[config.ColumnTimestamp]),
			Group:     cellAt(row, columns[config.ColumnGroup]),
			Manual:    cellAt(row, columns[config.ColumnManual]),
			Automated: cellAt(row, columns[config.ColumnAutomated]),
		}
		if !sub.IsComplete() {
			dropped++
			n.logger.DebugContext(ctx, "dropping row with empty cell",
				slog.Int("row", i+1))
			continue
		}
		submissions = append(submissions, sub)
	}
	report.Add(domain.DropEmptyCell, dropped)

	n.logger.InfoContext(ctx, "normalized sheet",
		slog.Int("rows_in", len(table.Rows)),
		slog.Int("rows_out", len(submissions)),
		slog.Int("dropped_empty", dropped))

	return submissions, nil
}

// mapColumns resolves the canonical column indexes from the header. Named
// lookup wins; a header with no recognizable names is accepted positionally
// only when the sheet is exactly as wide as the contract.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(canonicalOrder))

	for _, canonical := range canonicalOrder {
		idx, err := findColumn(header, canonical)
		if err != nil {
			return nil, err
		}
		if idx >= 0 {
			columns[canonical] = idx
		}
	}

	if len(columns) == len(canonicalOrder) {
		return columns, nil
	}

	if len(columns) == 0 {
		if len(header) != config.ExpectedColumns {
			return nil, apperrors.NewSchemaMismatchError(
				fmt.Sprintf("header has no recognizable columns and %d columns instead of %d",
					len(header), config.ExpectedColumns), nil).
				WithContext("header", strings.Join(header, ", "))
		}
		for i, canonical := range canonicalOrder {
			columns[canonical] = i
		}
		return columns, nil
	}

	missing := make([]string, 0, len(canonicalOrder))
	for _, canonical := range canonicalOrder {
		if _, ok := columns[canonical]; !ok {
			missing = append(missing, canonical)
		}
	}
	return nil, apperrors.NewSchemaMismatchError(
		fmt.Sprintf("header is missing columns: %s", strings.Join(missing, ", ")), nil).
		WithContext("header", strings.Join(header, ", "))
}

// findColumn returns the index of the header cell matching the canonical
// column's fragments, -1 when absent, or a SCHEMA_MISMATCH when two cells
// match the same column.
func findColumn(header []string, canonical string) (int, error) {
	found := -1
	for i, cell := range header {
		lower := strings.ToLower(cell)
		for _, fragment := range headerFragments[canonical] {
			if strings.Contains(lower, fragment) {
				if found >= 0 {
					return 0, apperrors.NewSchemaMismatchError(
						fmt.Sprintf("columns %d and %d both look like %q", found+1, i+1, canonical), nil)
				}
				found = i
				break
			}
		}
	}
	return found, nil
}

// cellAt returns the cell at idx, or an empty string when the row is too
// short. Short rows happen with ragged CSV exports; the missing cell reads
// as null and the row is dropped by the completeness check.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
