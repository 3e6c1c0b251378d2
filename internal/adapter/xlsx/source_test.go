package xlsx

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "registry.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestSource_Load(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"Municipality_City", "Province", "Number of Evacuation Center"},
		{"Legazpi", "Albay", 42},
		{"Tacloban", "Leyte", 17},
	})
	source := NewSource(path, slog.Default())

	columns, rows, err := source.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Municipality_City", "Province", "Number of Evacuation Center"}, columns)
	require.Len(t, rows, 2)
	assert.Equal(t, "Legazpi", rows[0]["Municipality_City"])
	assert.Equal(t, "42", rows[0]["Number of Evacuation Center"])
	assert.Equal(t, "Leyte", rows[1]["Province"])
}

func TestSource_Load_ShortRows(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"Province", "Region", "Households"},
		{"Albay"},
	})
	source := NewSource(path, slog.Default())

	_, rows, err := source.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Albay", rows[0]["Province"])
	assert.NotContains(t, rows[0], "Households")
}

func TestSource_Load_MissingFile(t *testing.T) {
	source := NewSource(filepath.Join(t.TempDir(), "nope.xlsx"), slog.Default())
	_, _, err := source.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open xlsx source")
}

func TestSource_Fingerprint(t *testing.T) {
	path := writeWorkbook(t, [][]any{{"Province"}})
	source := NewSource(path, slog.Default())

	fp, err := source.Fingerprint(context.Background())
	require.NoError(t, err)
	assert.Contains(t, fp, "registry.xlsx")
}
