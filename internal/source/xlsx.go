package source

import (
	"context"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "sphasecli/internal/errors"
	"sphasecli/pkg/contracts/domain"
)

// XLSXLoader reads a local snapshot of the response sheet. Useful for
// re-running an analysis offline on a sheet downloaded earlier.
type XLSXLoader struct {
	path   string
	logger *slog.Logger
}

// NewXLSXLoader creates a loader for the given workbook path. The first
// sheet of the workbook is read.
func NewXLSXLoader(path string, logger *slog.Logger) *XLSXLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXLoader{path: path, logger: logger}
}

// Load opens the workbook and extracts the first sheet as rows.
func (l *XLSXLoader) Load(ctx context.Context) (*domain.RawTable, error) {
	start := time.Now()

	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, apperrors.NewSourceUnavailableError("opening workbook", err).
			WithContext("path", l.path)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, apperrors.NewSourceUnavailableError("workbook has no sheets", nil).
			WithContext("path", l.path)
	}
	sheetName := sheetList[0]

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, apperrors.NewSourceUnavailableError("reading sheet rows", err).
			WithContext("path", l.path).
			WithContext("sheet", sheetName)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewSourceUnavailableError("sheet contained no rows", nil).
			WithContext("path", l.path).
			WithContext("sheet", sheetName)
	}

	header := rows[0]
	// GetRows trims trailing empty cells; pad so every row is as wide as
	// the header and missing cells read as empty strings.
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		padded := make([]string, len(header))
		copy(padded, row)
		data = append(data, padded)
	}

	table := &domain.RawTable{
		Header:    header,
		Rows:      data,
		Source:    l.path,
		FetchedAt: time.Now(),
	}

	l.logger.InfoContext(ctx, "loaded workbook snapshot",
		slog.String("path", l.path),
		slog.String("sheet", sheetName),
		slog.Int("rows", table.RowCount()),
		slog.Duration("duration", time.Since(start)))

	return table, nil
}
