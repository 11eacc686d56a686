package dataset

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/opsdash/checkin-report-go/internal/pkg/validator"
)

// ========================================
// DATASET DTOs
// ========================================

// UploadFile is one spreadsheet in an upload batch.
type UploadFile struct {
	Name   string
	Reader io.Reader
}

type IngestRequest struct {
	Files []UploadFile
}

func (r *IngestRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Files) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "files",
			Message: "at least one file is required",
		})
	}

	allowed := []string{".xlsx", ".xls", ".csv"}
	for i, f := range r.Files {
		if validator.IsEmpty(f.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("files[%d]", i),
				Message: "file name is required",
			})
			continue
		}
		ext := strings.ToLower(filepath.Ext(f.Name))
		if !validator.IsInSlice(ext, allowed) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("files[%d]", i),
				Message: "invalid file type: only xlsx, xls, csv allowed",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// IngestReport describes the dataset built from one upload batch.
type IngestReport struct {
	Files        []FileStat `json:"files"`
	TotalRecords int        `json:"total_records"`
	Months       []string   `json:"months"`
	MultiMonth   bool       `json:"multi_month"`
	UploadedAt   string     `json:"uploaded_at"`
}

// DatasetInfo is the metadata view of the active dataset.
type DatasetInfo struct {
	Files        []FileStat `json:"files"`
	TotalRecords int        `json:"total_records"`
	Months       []string   `json:"months"`
	UploadedAt   string     `json:"uploaded_at"`
}
