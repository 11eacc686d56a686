package ingest

import (
	"context"
	"strings"
	"testing"

	"github.com/opsdash/checkin-report-go/internal/domain/dataset"
	"github.com/opsdash/checkin-report-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullHeader = "User Role,User Name,Assigned Area,Assigned Region,Check-In Time,Check-In Date\n"

func uploadCSV(name, content string) dataset.UploadFile {
	return dataset.UploadFile{Name: name, Reader: strings.NewReader(content)}
}

func TestIngest_NormalizesRecords(t *testing.T) {
	t.Parallel()
	store := memory.NewDatasetStore()
	svc := NewIngestService(store)

	csvData := fullHeader +
		"RA,alice,North,R1,08:45:00,2024-01-15\n" +
		"SUP,bob,South,R2,09:15:00,2024-01-16\n"

	report, err := svc.Ingest(context.Background(), dataset.IngestRequest{
		Files: []dataset.UploadFile{uploadCSV("january.csv", csvData)},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalRecords)
	assert.Equal(t, []string{"2024-01"}, report.Months)
	assert.False(t, report.MultiMonth)

	ds, err := store.Active(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)

	first := ds.Records[0]
	assert.Equal(t, "RA", first.Role)
	assert.Equal(t, "alice", first.User)
	assert.Equal(t, "North", first.Area)
	assert.Equal(t, "R1", first.Region)
	assert.Equal(t, "08:45:00", first.CheckInTime.String())
	require.NotNil(t, first.CheckInDate)
	assert.Equal(t, "2024-01", first.Month())
	assert.Equal(t, "january.csv", first.SourceFile)
}

func TestIngest_MissingTimeColumnIsSchemaError(t *testing.T) {
	t.Parallel()
	svc := NewIngestService(memory.NewDatasetStore())

	csvData := "User Role,User Name,Assigned Area,Assigned Region\n" +
		"RA,alice,North,R1\n"

	_, err := svc.Ingest(context.Background(), dataset.IngestRequest{
		Files: []dataset.UploadFile{uploadCSV("broken.csv", csvData)},
	})

	require.ErrorIs(t, err, dataset.ErrMissingColumn)
	assert.Contains(t, err.Error(), "check-in time")
	assert.Contains(t, err.Error(), "broken.csv")
}

func TestIngest_ReportsEveryMissingColumn(t *testing.T) {
	t.Parallel()
	svc := NewIngestService(memory.NewDatasetStore())

	csvData := "User Name,Assigned Region\nalice,R1\n"

	_, err := svc.Ingest(context.Background(), dataset.IngestRequest{
		Files: []dataset.UploadFile{uploadCSV("broken.csv", csvData)},
	})

	require.ErrorIs(t, err, dataset.ErrMissingColumn)
	assert.Contains(t, err.Error(), "user role")
	assert.Contains(t, err.Error(), "assigned area")
	assert.Contains(t, err.Error(), "check-in time")
}

func TestIngest_HeaderMatchingIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	svc := NewIngestService(memory.NewDatasetStore())

	csvData := "USER ROLE, User Name ,assigned area,Assigned Region,CHECK-IN TIME\n" +
		"RA,alice,North,R1,08:45:00\n"

	report, err := svc.Ingest(context.Background(), dataset.IngestRequest{
		Files: []dataset.UploadFile{uploadCSV("mixed.csv", csvData)},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalRecords)
}

func TestIngest_UnparsableTimeRejectsDataset(t *testing.T) {
	t.Parallel()
	svc := NewIngestService(memory.NewDatasetStore())

	csvData := fullHeader +
		"RA,alice,North,R1,08:45:00,2024-01-15\n" +
		"RA,bob,North,R1,not-a-time,2024-01-15\n"

	_, err := svc.Ingest(context.Background(), dataset.IngestRequest{
		Files: []dataset.UploadFile{uploadCSV("january.csv", csvData)},
	})

	require.ErrorIs(t, err, dataset.ErrUnparsableTime)
	assert.Contains(t, err.Error(), "january.csv row 3")
}

func TestIngest_UnparsableDateRejectsDataset(t *testing.T) {
	t.Parallel()
	svc := NewIngestService(memory.NewDatasetStore())

	csvData := fullHeader +
		"RA,alice,North,R1,08:45:00,someday\n"

	_, err := svc.Ingest(context.Background(), dataset.IngestRequest{
		Files: []dataset.UploadFile{uploadCSV("january.csv", csvData)},
	})

	require.ErrorIs(t, err, dataset.ErrUnparsableDate)
}

func TestIngest_DateColumnOptional(t *testing.T) {
	t.Parallel()
	svc := NewIngestService(memory.NewDatasetStore())

	csvData := "User Role,User Name,Assigned Area,Assigned Region,Check-In Time\n" +
		"RA,alice,North,R1,08:45:00\n"

	report, err := svc.Ingest(context.Background(), dataset.IngestRequest{
		Files: []dataset.UploadFile{uploadCSV("nodates.csv", csvData)},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalRecords)
	assert.Empty(t, report.Months)
}

func TestIngest_BlankRowsSkipped(t *testing.T) {
	t.Parallel()
	svc := NewIngestService(memory.NewDatasetStore())

	csvData := fullHeader +
		"RA,alice,North,R1,08:45:00,2024-01-15\n" +
		",,,,,\n" +
		"RA,bob,North,R1,09:45:00,2024-01-15\n"

	report, err := svc.Ingest(context.Background(), dataset.IngestRequest{
		Files: []dataset.UploadFile{uploadCSV("january.csv", csvData)},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalRecords)
}

func TestIngest_MultiFileConcatenation(t *testing.T) {
	t.Parallel()
	store := memory.NewDatasetStore()
	svc := NewIngestService(store)

	january := fullHeader + "RA,alice,North,R1,08:45:00,2024-01-15\n"
	february := fullHeader + "RA,alice,North,R1,09:45:00,2024-02-15\n"

	report, err := svc.Ingest(context.Background(), dataset.IngestRequest{
		Files: []dataset.UploadFile{
			uploadCSV("january.csv", january),
			uploadCSV("february.csv", february),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalRecords)
	assert.Equal(t, []string{"2024-01", "2024-02"}, report.Months)
	assert.True(t, report.MultiMonth)
	require.Len(t, report.Files, 2)
	assert.Equal(t, dataset.FileStat{Name: "january.csv", Records: 1}, report.Files[0])
	assert.Equal(t, dataset.FileStat{Name: "february.csv", Records: 1}, report.Files[1])
}

func TestIngest_BadFileRejectsWholeBatch(t *testing.T) {
	t.Parallel()
	store := memory.NewDatasetStore()
	svc := NewIngestService(store)

	good := fullHeader + "RA,alice,North,R1,08:45:00,2024-01-15\n"
	_, err := svc.Ingest(context.Background(), dataset.IngestRequest{
		Files: []dataset.UploadFile{uploadCSV("good.csv", good)},
	})
	require.NoError(t, err)

	bad := "User Role,User Name\nRA,alice\n"
	_, err = svc.Ingest(context.Background(), dataset.IngestRequest{
		Files: []dataset.UploadFile{
			uploadCSV("good.csv", good),
			uploadCSV("bad.csv", bad),
		},
	})
	require.ErrorIs(t, err, dataset.ErrMissingColumn)

	// The previous dataset stays active after a rejected batch.
	ds, err := store.Active(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Records, 1)
}

func TestIngest_HeaderOnlyFileIsEmptyDataset(t *testing.T) {
	t.Parallel()
	svc := NewIngestService(memory.NewDatasetStore())

	_, err := svc.Ingest(context.Background(), dataset.IngestRequest{
		Files: []dataset.UploadFile{uploadCSV("empty.csv", fullHeader)},
	})

	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)
}

func TestIngest_RejectsUnsupportedExtension(t *testing.T) {
	t.Parallel()
	svc := NewIngestService(memory.NewDatasetStore())

	_, err := svc.Ingest(context.Background(), dataset.IngestRequest{
		Files: []dataset.UploadFile{uploadCSV("records.pdf", "whatever")},
	})

	assert.Error(t, err)
}

func TestActiveInfo_NoDataset(t *testing.T) {
	t.Parallel()
	svc := NewIngestService(memory.NewDatasetStore())

	_, err := svc.ActiveInfo(context.Background())

	assert.ErrorIs(t, err, dataset.ErrNoDataset)
}

func TestActiveInfo_AfterUpload(t *testing.T) {
	t.Parallel()
	svc := NewIngestService(memory.NewDatasetStore())

	csvData := fullHeader + "RA,alice,North,R1,08:45:00,2024-01-15\n"
	_, err := svc.Ingest(context.Background(), dataset.IngestRequest{
		Files: []dataset.UploadFile{uploadCSV("january.csv", csvData)},
	})
	require.NoError(t, err)

	info, err := svc.ActiveInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, info.TotalRecords)
	assert.Equal(t, []string{"2024-01"}, info.Months)
	assert.NotEmpty(t, info.UploadedAt)
}
