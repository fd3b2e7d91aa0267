package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"scifig/domain/dataset"
	"scifig/internal"
)

// DataReader loads Excel and CSV files into row-oriented tables
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and
// CSV files, dispatching on the file extension.
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType, logger: internal.DefaultLogger}
}

// ReadTable reads the file into the engine's table form. Cell values
// stay as trimmed strings; numeric coercion happens downstream where
// the variable roles are known.
func (r *DataReader) ReadTable() (dataset.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return dataset.Table{}, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return dataset.Table{}, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *DataReader) readExcel() (dataset.Table, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return dataset.Table{}, fmt.Errorf("Excel file must have a header row and at least one data row")
	}

	r.logger.Debug("read %d rows from %s sheet %q", len(rows), r.filePath, sheet)
	return tableFromRows(rows), nil
}

func (r *DataReader) readCSV() (dataset.Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return dataset.Table{}, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(rows) < 2 {
		return dataset.Table{}, fmt.Errorf("CSV file must have a header row and at least one data row")
	}

	r.logger.Debug("read %d rows from %s", len(rows), r.filePath)
	return tableFromRows(rows), nil
}

// tableFromRows converts header + string rows into a table. Cells past
// the header width are dropped; short rows simply omit those columns.
func tableFromRows(rows [][]string) dataset.Table {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	table := dataset.Table{Rows: make([]dataset.Row, 0, len(rows)-1)}
	for _, raw := range rows[1:] {
		row := make(dataset.Row, len(headers))
		for j, cell := range raw {
			if j < len(headers) {
				row[headers[j]] = strings.TrimSpace(cell)
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
