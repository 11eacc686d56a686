package dataset

import "context"

// IngestService normalizes uploaded spreadsheets into the active dataset.
type IngestService interface {
	// Ingest validates, normalizes and concatenates the uploaded files,
	// then replaces the active dataset. A schema or parse failure in any
	// file rejects the whole batch.
	Ingest(ctx context.Context, req IngestRequest) (IngestReport, error)

	// ActiveInfo returns metadata for the currently active dataset.
	ActiveInfo(ctx context.Context) (DatasetInfo, error)
}
