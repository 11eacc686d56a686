package spreadsheet

import (
	"errors"
	"strings"
	"testing"

	"github.com/opsdash/checkin-report-go/internal/domain/dataset"
)

func TestReadRowsCSV(t *testing.T) {
	csvData := "User Role,User Name,Check-In Time\n" +
		"RA,alice,08:45:00\n" +
		"SUP,bob,09:15:00\n"

	rows, err := ReadRows(strings.NewReader(csvData), "checkins.csv")
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[1][1] != "alice" {
		t.Errorf("expected alice, got %q", rows[1][1])
	}
}

func TestReadRowsEmptyCSV(t *testing.T) {
	_, err := ReadRows(strings.NewReader(""), "empty.csv")
	if !errors.Is(err, dataset.ErrNoWorksheet) {
		t.Fatalf("expected ErrNoWorksheet, got %v", err)
	}
}

func TestReadRowsUnsupportedFormat(t *testing.T) {
	_, err := ReadRows(strings.NewReader("data"), "checkins.pdf")
	if !errors.Is(err, dataset.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestCellValue(t *testing.T) {
	row := []string{" RA ", "alice"}
	if got := CellValue(row, 0); got != "RA" {
		t.Errorf("CellValue(0) = %q, want RA", got)
	}
	if got := CellValue(row, 5); got != "" {
		t.Errorf("CellValue(5) = %q, want empty", got)
	}
	if got := CellValue(row, -1); got != "" {
		t.Errorf("CellValue(-1) = %q, want empty", got)
	}
}
