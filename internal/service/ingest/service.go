package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/opsdash/checkin-report-go/internal/domain/dataset"
	"github.com/opsdash/checkin-report-go/internal/pkg/spreadsheet"
)

// Source column headers expected in every uploaded file. Matching is
// case- and surrounding-space-insensitive; the date column is optional and
// only needed for multi-month analysis.
const (
	headerRole   = "user role"
	headerUser   = "user name"
	headerArea   = "assigned area"
	headerRegion = "assigned region"
	headerTime   = "check-in time"
	headerDate   = "check-in date"
)

var requiredHeaders = []string{headerRole, headerUser, headerArea, headerRegion, headerTime}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

type IngestServiceImpl struct {
	store dataset.Repository
}

func NewIngestService(store dataset.Repository) dataset.IngestService {
	return &IngestServiceImpl{store: store}
}

// Ingest implements dataset.IngestService. Files are normalized
// independently; a schema or parse failure in any file rejects the whole
// batch so a bad file can never contaminate a combined result.
func (s *IngestServiceImpl) Ingest(ctx context.Context, req dataset.IngestRequest) (dataset.IngestReport, error) {
	if err := req.Validate(); err != nil {
		return dataset.IngestReport{}, err
	}

	var records []dataset.CheckInRecord
	files := make([]dataset.FileStat, 0, len(req.Files))
	for _, f := range req.Files {
		fileRecords, err := normalizeFile(f)
		if err != nil {
			return dataset.IngestReport{}, err
		}
		records = append(records, fileRecords...)
		files = append(files, dataset.FileStat{Name: f.Name, Records: len(fileRecords)})
	}

	if len(records) == 0 {
		return dataset.IngestReport{}, dataset.ErrEmptyDataset
	}

	ds := &dataset.Dataset{
		Records:    records,
		Files:      files,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.store.Replace(ctx, ds); err != nil {
		return dataset.IngestReport{}, fmt.Errorf("failed to store dataset: %w", err)
	}

	months := ds.Months()
	return dataset.IngestReport{
		Files:        files,
		TotalRecords: len(records),
		Months:       months,
		MultiMonth:   len(months) > 1,
		UploadedAt:   ds.UploadedAt.Format(time.RFC3339),
	}, nil
}

// ActiveInfo implements dataset.IngestService.
func (s *IngestServiceImpl) ActiveInfo(ctx context.Context) (dataset.DatasetInfo, error) {
	ds, err := s.store.Active(ctx)
	if err != nil {
		return dataset.DatasetInfo{}, err
	}
	return dataset.DatasetInfo{
		Files:        ds.Files,
		TotalRecords: len(ds.Records),
		Months:       ds.Months(),
		UploadedAt:   ds.UploadedAt.Format(time.RFC3339),
	}, nil
}

// columnIndex maps each expected header to its position in the header row,
// or -1 when absent.
type columnIndex struct {
	role   int
	user   int
	area   int
	region int
	time   int
	date   int
}

func mapHeaders(header []string) (columnIndex, error) {
	idx := columnIndex{role: -1, user: -1, area: -1, region: -1, time: -1, date: -1}
	for i, cell := range header {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case headerRole:
			idx.role = i
		case headerUser:
			idx.user = i
		case headerArea:
			idx.area = i
		case headerRegion:
			idx.region = i
		case headerTime:
			idx.time = i
		case headerDate:
			idx.date = i
		}
	}

	var missing []string
	for name, pos := range map[string]int{
		headerRole:   idx.role,
		headerUser:   idx.user,
		headerArea:   idx.area,
		headerRegion: idx.region,
		headerTime:   idx.time,
	} {
		if pos < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		// Report every missing column, in the documented order.
		ordered := make([]string, 0, len(missing))
		for _, h := range requiredHeaders {
			for _, m := range missing {
				if h == m {
					ordered = append(ordered, h)
				}
			}
		}
		return idx, fmt.Errorf("%w: %s", dataset.ErrMissingColumn, strings.Join(ordered, ", "))
	}
	return idx, nil
}

func normalizeFile(f dataset.UploadFile) ([]dataset.CheckInRecord, error) {
	rows, err := spreadsheet.ReadRows(f.Reader, f.Name)
	if err != nil {
		return nil, err
	}

	idx, err := mapHeaders(rows[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name, err)
	}

	var records []dataset.CheckInRecord
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rowNum := i + 2 // 1-based, after the header

		timeCell := spreadsheet.CellValue(row, idx.time)
		checkInTime, err := dataset.ParseClockTime(timeCell)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", f.Name, rowNum, err)
		}

		record := dataset.CheckInRecord{
			Role:        spreadsheet.CellValue(row, idx.role),
			User:        spreadsheet.CellValue(row, idx.user),
			Area:        spreadsheet.CellValue(row, idx.area),
			Region:      spreadsheet.CellValue(row, idx.region),
			CheckInTime: checkInTime,
			SourceFile:  f.Name,
		}

		if idx.date >= 0 {
			if dateCell := spreadsheet.CellValue(row, idx.date); dateCell != "" {
				date, err := parseDate(dateCell)
				if err != nil {
					return nil, fmt.Errorf("%s row %d: %w", f.Name, rowNum, err)
				}
				record.CheckInDate = &date
			}
		}

		records = append(records, record)
	}
	return records, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", dataset.ErrUnparsableDate, value)
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
