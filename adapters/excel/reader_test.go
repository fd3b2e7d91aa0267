package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadTable_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trial.csv")
	contents := "group,response\ncontrol,10.5\ntreated, 12.25 \ntreated,\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	table, err := NewDataReader(path).ReadTable()
	require.NoError(t, err)

	require.Equal(t, 3, table.Len())
	assert.Equal(t, "control", table.Rows[0]["group"])
	assert.Equal(t, "10.5", table.Rows[0]["response"])
	// Cells are trimmed on the way in
	assert.Equal(t, "12.25", table.Rows[1]["response"])
	// Empty cells stay as empty strings and read as missing downstream
	assert.Equal(t, "", table.Rows[2]["response"])
}

func TestReadTable_CSVHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("group,response\n"), 0o644))

	_, err := NewDataReader(path).ReadTable()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one data row")
}

func TestReadTable_MissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "nope.csv")).ReadTable()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReadTable_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trial.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"group", "response"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"control", 10.5}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"treated", 12.0}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := NewDataReader(path).ReadTable()
	require.NoError(t, err)

	require.Equal(t, 2, table.Len())
	assert.Equal(t, "control", table.Rows[0]["group"])
	assert.Equal(t, "10.5", table.Rows[0]["response"])
	assert.Equal(t, "treated", table.Rows[1]["group"])
}
