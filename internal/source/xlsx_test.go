package source

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "sphasecli/internal/errors"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "snapshot.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestXLSXLoader_Load(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Timestamp", "Group", "Manual", "Automated"},
		{"12-04-2021 09:30:00", "alpha", "45", "47.2"},
		{"13-04-2021 10:00:00", "beta", "50", "48"},
	})

	loader := NewXLSXLoader(path, nil)
	table, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Timestamp", "Group", "Manual", "Automated"}, table.Header)
	require.Equal(t, 2, table.RowCount())
	assert.Equal(t, "alpha", table.Rows[0][1])
	assert.Equal(t, path, table.Source)
}

func TestXLSXLoader_Load_PadsShortRows(t *testing.T) {
	// excelize trims trailing empty cells, so a row with an empty last
	// column comes back short. The loader pads to header width.
	path := writeWorkbook(t, [][]interface{}{
		{"Timestamp", "Group", "Manual", "Automated"},
		{"12-04-2021 09:30:00", "alpha", "45"},
	})

	loader := NewXLSXLoader(path, nil)
	table, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, table.RowCount())
	require.Len(t, table.Rows[0], 4)
	assert.Equal(t, "", table.Rows[0][3])
}

func TestXLSXLoader_Load_MissingFile(t *testing.T) {
	loader := NewXLSXLoader(filepath.Join(t.TempDir(), "nope.xlsx"), nil)
	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSourceUnavailable))
}
