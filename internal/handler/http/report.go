package http

import (
	"net/http"
	"strconv"

	"github.com/opsdash/checkin-report-go/internal/config"
	"github.com/opsdash/checkin-report-go/internal/domain/analysis"
	"github.com/opsdash/checkin-report-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Dataset summary metrics
	GetSummary(w http.ResponseWriter, r *http.Request)

	// False check-ins by area/region
	GetGroupReport(w http.ResponseWriter, r *http.Request)

	// Late RA users at or above the cutoff
	GetLateUserReport(w http.ResponseWriter, r *http.Request)

	// Monthly false percentage trend
	GetTrend(w http.ResponseWriter, r *http.Request)

	// Months present in the active dataset
	GetMonths(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	analysisService analysis.AnalysisService
	defaults        config.ReportConfig
}

func NewReportHandler(analysisService analysis.AnalysisService, defaults config.ReportConfig) ReportHandler {
	return &reportHandlerImpl{
		analysisService: analysisService,
		defaults:        defaults,
	}
}

func (h *reportHandlerImpl) queryOrDefault(r *http.Request, key, fallback string) string {
	if value := r.URL.Query().Get(key); value != "" {
		return value
	}
	return fallback
}

// GetSummary handles GET /reports/summary
func (h *reportHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := analysis.SummaryRequest{
		Threshold: h.queryOrDefault(r, "threshold", h.defaults.DefaultThreshold),
		Month:     r.URL.Query().Get("month"),
	}

	result, err := h.analysisService.Summary(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetGroupReport handles GET /reports/groups
func (h *reportHandlerImpl) GetGroupReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := analysis.GroupReportRequest{
		Dimension: h.queryOrDefault(r, "dimension", h.defaults.DefaultDimension),
		Threshold: h.queryOrDefault(r, "threshold", h.defaults.DefaultThreshold),
		Month:     r.URL.Query().Get("month"),
	}

	result, err := h.analysisService.GroupReport(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetLateUserReport handles GET /reports/late-users
func (h *reportHandlerImpl) GetLateUserReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cutoffPct := h.defaults.DefaultCutoffPct
	if cutoffStr := r.URL.Query().Get("cutoff"); cutoffStr != "" {
		parsed, err := strconv.Atoi(cutoffStr)
		if err != nil {
			response.BadRequest(w, "invalid cutoff parameter", nil)
			return
		}
		cutoffPct = parsed
	}

	req := analysis.LateUserReportRequest{
		Dimension: h.queryOrDefault(r, "dimension", h.defaults.DefaultDimension),
		Threshold: h.queryOrDefault(r, "threshold", h.defaults.DefaultThreshold),
		CutoffPct: cutoffPct,
		Month:     r.URL.Query().Get("month"),
	}

	result, err := h.analysisService.LateUserReport(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.NoneFlagged {
		// Informational outcome, not an error: nobody met the cutoff.
		response.SuccessWithMessage(w, "no users at or above the cutoff", result)
		return
	}
	response.Success(w, result)
}

// GetTrend handles GET /reports/trend
func (h *reportHandlerImpl) GetTrend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := analysis.TrendRequest{
		Threshold: h.queryOrDefault(r, "threshold", h.defaults.DefaultThreshold),
	}

	result, err := h.analysisService.Trend(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMonths handles GET /reports/months
func (h *reportHandlerImpl) GetMonths(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	months, err := h.analysisService.Months(ctx)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, months)
}
