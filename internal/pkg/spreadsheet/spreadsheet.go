package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/opsdash/checkin-report-go/internal/domain/dataset"
	"github.com/xuri/excelize/v2"
)

const maxXLSRows = 100000

// ReadRows loads every cell of the first worksheet (or the whole CSV) as
// strings. The format is picked from the file extension: .xlsx via
// excelize, legacy .xls via extrame/xls, .csv via encoding/csv.
func ReadRows(reader io.Reader, filename string) ([][]string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xls":
		workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", filename, err)
		}
		if workbook.NumSheets() == 0 {
			return nil, fmt.Errorf("%s: %w", filename, dataset.ErrNoWorksheet)
		}
		rows := workbook.ReadAllCells(maxXLSRows)
		if len(rows) == 0 {
			return nil, fmt.Errorf("%s: %w", filename, dataset.ErrNoWorksheet)
		}
		return rows, nil
	case ".xlsx":
		file, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", filename, err)
		}
		defer func() { _ = file.Close() }()

		sheetName := file.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("%s: %w", filename, dataset.ErrNoWorksheet)
		}
		rows, err := file.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filename, err)
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("%s: %w", filename, dataset.ErrNoWorksheet)
		}
		return rows, nil
	case ".csv":
		r := csv.NewReader(bytes.NewReader(data))
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
		rows, err := r.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filename, err)
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("%s: %w", filename, dataset.ErrNoWorksheet)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("%s: %w", filename, dataset.ErrUnsupportedFormat)
	}
}

// CellValue returns the trimmed cell at idx, tolerating short rows.
func CellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
