package response

import (
	"errors"
	"net/http"

	"github.com/opsdash/checkin-report-go/internal/domain/analysis"
	"github.com/opsdash/checkin-report-go/internal/domain/dataset"
	"github.com/opsdash/checkin-report-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Dataset domain errors
	case errors.Is(err, dataset.ErrNoDataset):
		NotFound(w, "No dataset has been uploaded yet")
	case errors.Is(err, dataset.ErrMissingColumn),
		errors.Is(err, dataset.ErrUnparsableTime),
		errors.Is(err, dataset.ErrUnparsableDate),
		errors.Is(err, dataset.ErrEmptyDataset),
		errors.Is(err, dataset.ErrNoWorksheet),
		errors.Is(err, dataset.ErrUnsupportedFormat):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, dataset.ErrInvalidDimension):
		BadRequest(w, err.Error(), nil)

	// Analysis domain errors
	case errors.Is(err, analysis.ErrNoDatedRecords):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, analysis.ErrMonthNotFound):
		NotFound(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
