package http

import (
	"net/http"

	"github.com/opsdash/checkin-report-go/internal/domain/dataset"
	"github.com/opsdash/checkin-report-go/internal/handler/http/response"
)

type DatasetHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	GetActive(w http.ResponseWriter, r *http.Request)
}

type datasetHandlerImpl struct {
	ingestService  dataset.IngestService
	maxUploadBytes int64
}

func NewDatasetHandler(ingestService dataset.IngestService, maxUploadBytes int64) DatasetHandler {
	return &datasetHandlerImpl{
		ingestService:  ingestService,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload handles POST /datasets. The multipart field "files" carries one
// spreadsheet per month; more than one file enables multi-month analysis.
func (h *datasetHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		response.BadRequest(w, "invalid multipart request or upload too large", nil)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		response.BadRequest(w, "at least one file is required in the files field", nil)
		return
	}

	req := dataset.IngestRequest{}
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			response.BadRequest(w, "failed to open uploaded file "+header.Filename, nil)
			return
		}
		defer file.Close()
		req.Files = append(req.Files, dataset.UploadFile{
			Name:   header.Filename,
			Reader: file,
		})
	}

	result, err := h.ingestService.Ingest(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "dataset uploaded", result)
}

// GetActive handles GET /datasets/active
func (h *datasetHandlerImpl) GetActive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.ingestService.ActiveInfo(ctx)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
