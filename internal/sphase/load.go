package sphase

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"sphasecli/internal/errors"
	"sphasecli/pkg/contracts/domain"
)

// LoadReplicateRows reads a previously exported replicates.csv back into
// dated observations. Columns are located by header name so the file
// survives reordering. Rows that no longer parse are dropped and tallied
// in the returned report.
func LoadReplicateRows(path string, logger *slog.Logger) ([]domain.DatedObservation, *domain.CleanReport, error) {
	if logger == nil {
		logger = slog.Default()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.NewSourceUnavailableError(
			fmt.Sprintf("failed to open replicates file %s", path), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, errors.NewSchemaMismatchError("failed to read replicates header", err)
	}
	// Exported files carry a UTF-8 BOM for spreadsheet tools.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	columns, err := mapReplicateColumns(header)
	if err != nil {
		return nil, nil, err
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.NewSchemaMismatchError("failed to read replicates rows", err)
	}

	report := domain.NewCleanReport()
	report.RowsFetched = len(records)

	rows := make([]domain.DatedObservation, 0, len(records))
	for i, record := range records {
		row, ok := parseReplicateRow(record, columns)
		if !ok {
			report.Add(domain.DropNonNumeric, 1)
			logger.Warn("dropping unparsable replicate row",
				slog.Int("row", i+1),
				slog.String("file", path))
			continue
		}
		rows = append(rows, row)
	}
	report.RowsRetained = len(rows)

	if len(rows) == 0 {
		return nil, report, errors.NewEmptyDatasetError(
			fmt.Sprintf("no usable rows in replicates file %s", path))
	}

	logger.Info("loaded replicate rows",
		slog.String("file", path),
		slog.Int("rows", len(rows)),
		slog.Int("dropped", report.Dropped()))

	return rows, report, nil
}

// replicateColumns holds the index of each replicates.csv column.
type replicateColumns struct {
	replicate int
	method    int
	value     int
	day       int
	month     int
	year      int
	timeOfDay int
}

func mapReplicateColumns(header []string) (replicateColumns, error) {
	columns := replicateColumns{
		replicate: -1, method: -1, value: -1,
		day: -1, month: -1, year: -1, timeOfDay: -1,
	}

	for i, name := range header {
		switch name {
		case "replicate":
			columns.replicate = i
		case "method":
			columns.method = i
		case "S_phase":
			columns.value = i
		case "day":
			columns.day = i
		case "month":
			columns.month = i
		case "year":
			columns.year = i
		case "time":
			columns.timeOfDay = i
		}
	}

	var missing []string
	for _, col := range []struct {
		name  string
		index int
	}{
		{"replicate", columns.replicate},
		{"method", columns.method},
		{"S_phase", columns.value},
		{"day", columns.day},
		{"month", columns.month},
		{"year", columns.year},
		{"time", columns.timeOfDay},
	} {
		if col.index < 0 {
			missing = append(missing, col.name)
		}
	}
	if len(missing) > 0 {
		return columns, errors.NewSchemaMismatchError(
			fmt.Sprintf("replicates file is missing columns: %s", strings.Join(missing, ", ")), nil)
	}

	return columns, nil
}

func parseReplicateRow(record []string, columns replicateColumns) (domain.DatedObservation, bool) {
	var row domain.DatedObservation

	cell := func(index int) (string, bool) {
		if index >= len(record) {
			return "", false
		}
		return record[index], true
	}

	rawValue, ok := cell(columns.value)
	if !ok {
		return row, false
	}
	value, err := strconv.ParseFloat(rawValue, 64)
	if err != nil {
		return row, false
	}

	day, ok := parseIntCell(record, columns.day)
	if !ok {
		return row, false
	}
	month, ok := parseIntCell(record, columns.month)
	if !ok {
		return row, false
	}
	year, ok := parseIntCell(record, columns.year)
	if !ok {
		return row, false
	}

	methodCell, ok := cell(columns.method)
	if !ok {
		return row, false
	}
	method := domain.Method(methodCell)
	if !method.IsValid() {
		return row, false
	}

	replicate, ok := cell(columns.replicate)
	if !ok || replicate == "" {
		return row, false
	}
	timeOfDay, ok := cell(columns.timeOfDay)
	if !ok {
		return row, false
	}

	row = domain.DatedObservation{
		Observation: domain.Observation{
			Timestamp: fmt.Sprintf("%02d-%02d-%04d %s", day, month, year, timeOfDay),
			Group:     groupFromReplicate(replicate, year),
			Method:    method,
			RawValue:  rawValue,
			Value:     value,
		},
		Day:       day,
		Month:     month,
		Year:      year,
		TimeOfDay: timeOfDay,
	}
	return row, true
}

func parseIntCell(record []string, index int) (int, bool) {
	if index >= len(record) {
		return 0, false
	}
	value, err := strconv.Atoi(record[index])
	if err != nil {
		return 0, false
	}
	return value, true
}

// groupFromReplicate strips the leading year from a replicate key,
// recovering the original group label.
func groupFromReplicate(replicate string, year int) string {
	prefix := strconv.Itoa(year) + " "
	if strings.HasPrefix(replicate, prefix) {
		return strings.TrimPrefix(replicate, prefix)
	}
	return replicate
}
