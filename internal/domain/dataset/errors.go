package dataset

import "errors"

// Dataset domain errors
var (
	// Ingestion errors
	ErrMissingColumn     = errors.New("required column missing")
	ErrUnparsableTime    = errors.New("check-in time is not a valid time of day")
	ErrUnparsableDate    = errors.New("check-in date is not a valid date")
	ErrEmptyDataset      = errors.New("dataset contains no records")
	ErrNoWorksheet       = errors.New("no worksheet found in file")
	ErrUnsupportedFormat = errors.New("unsupported file format, expected xlsx, xls or csv")

	// General errors
	ErrNoDataset        = errors.New("no dataset has been uploaded yet")
	ErrInvalidDimension = errors.New("dimension must be either area or region")
)
