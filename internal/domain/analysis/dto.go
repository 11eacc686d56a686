package analysis

import (
	"github.com/opsdash/checkin-report-go/internal/pkg/validator"
)

// ========================================
// GROUP LATENESS REPORT
// ========================================

type GroupReportRequest struct {
	Dimension string `json:"dimension"`
	Threshold string `json:"threshold"`
	Month     string `json:"month,omitempty"`
}

func (r *GroupReportRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = append(errs, validateDimension(r.Dimension)...)
	errs = append(errs, validateThreshold(r.Threshold)...)
	errs = append(errs, validateMonth(r.Month)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// GroupSummary is one row of the "false check-ins by group" table.
type GroupSummary struct {
	GroupKey      string  `json:"group_key"`
	TotalCheckIns int     `json:"total_checkins"`
	FalseCheckIns int     `json:"false_checkins"`
	FalsePct      float64 `json:"false_pct"`
}

type GroupReport struct {
	Dimension   string         `json:"dimension"`
	Threshold   string         `json:"threshold"`
	Month       string         `json:"month,omitempty"`
	GeneratedAt string         `json:"generated_at"`
	Groups      []GroupSummary `json:"groups"`
}

// ========================================
// LATE USER REPORT
// ========================================

type LateUserReportRequest struct {
	Dimension string `json:"dimension"`
	Threshold string `json:"threshold"`
	CutoffPct int    `json:"cutoff_pct"`
	Month     string `json:"month,omitempty"`
}

func (r *LateUserReportRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = append(errs, validateDimension(r.Dimension)...)
	errs = append(errs, validateThreshold(r.Threshold)...)
	errs = append(errs, validateMonth(r.Month)...)

	if r.CutoffPct < 0 || r.CutoffPct > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "cutoff_pct",
			Message: "cutoff_pct must be between 0 and 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UserLatenessSummary is one (group, RA user) row with its lateness ratio.
type UserLatenessSummary struct {
	GroupKey      string  `json:"group_key"`
	User          string  `json:"user"`
	TotalCheckIns int     `json:"total_checkins"`
	FalseCheckIns int     `json:"false_checkins"`
	FalsePct      float64 `json:"false_pct"`
}

// FlaggedGroupSummary counts the distinct RA users at or above the cutoff
// per group. TotalRAUsers is drawn from the unfiltered population of the
// same period; Applicable is false when a group has no RA users at all, in
// which case FlaggedPct is 0 and must be rendered as not-applicable.
type FlaggedGroupSummary struct {
	GroupKey     string  `json:"group_key"`
	FlaggedUsers int     `json:"flagged_users"`
	TotalRAUsers int     `json:"total_ra_users"`
	FlaggedPct   float64 `json:"flagged_pct"`
	Applicable   bool    `json:"applicable"`
}

type LateUserReport struct {
	Dimension   string                `json:"dimension"`
	Threshold   string                `json:"threshold"`
	CutoffPct   int                   `json:"cutoff_pct"`
	Month       string                `json:"month,omitempty"`
	GeneratedAt string                `json:"generated_at"`
	Users       []UserLatenessSummary `json:"users"`
	Groups      []FlaggedGroupSummary `json:"groups"`

	// NoneFlagged distinguishes "nobody met the cutoff" from "no data".
	NoneFlagged bool `json:"none_flagged"`
}

// ========================================
// DATASET SUMMARY
// ========================================

type SummaryRequest struct {
	Threshold string `json:"threshold"`
	Month     string `json:"month,omitempty"`
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = append(errs, validateThreshold(r.Threshold)...)
	errs = append(errs, validateMonth(r.Month)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DatasetSummary struct {
	Threshold     string  `json:"threshold"`
	Month         string  `json:"month,omitempty"`
	GeneratedAt   string  `json:"generated_at"`
	TotalRAUsers  int     `json:"total_ra_users"`
	TotalSUPUsers int     `json:"total_sup_users"`
	TotalCheckIns int     `json:"total_checkins"`
	TrueCheckIns  int     `json:"true_checkins"`
	FalseCheckIns int     `json:"false_checkins"`
	TruePct       float64 `json:"true_pct"`
	FalsePct      float64 `json:"false_pct"`
}

// ========================================
// MONTHLY TREND
// ========================================

type TrendRequest struct {
	Threshold string `json:"threshold"`
}

func (r *TrendRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = append(errs, validateThreshold(r.Threshold)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MonthlyTrendPoint is one month's overall false percentage, for the
// over-time line view. Points are ordered by month ascending.
type MonthlyTrendPoint struct {
	Month         string  `json:"month"`
	TotalCheckIns int     `json:"total_checkins"`
	FalseCheckIns int     `json:"false_checkins"`
	FalsePct      float64 `json:"false_pct"`
}

type TrendReport struct {
	Threshold   string              `json:"threshold"`
	GeneratedAt string              `json:"generated_at"`
	Points      []MonthlyTrendPoint `json:"points"`
}

// ========================================
// SHARED FIELD VALIDATORS
// ========================================

func validateDimension(dimension string) validator.ValidationErrors {
	if dimension != "area" && dimension != "region" {
		return validator.ValidationErrors{{
			Field:   "dimension",
			Message: "dimension must be either area or region",
		}}
	}
	return nil
}

func validateThreshold(threshold string) validator.ValidationErrors {
	if !validator.IsValidTimeOfDay(threshold) {
		return validator.ValidationErrors{{
			Field:   "threshold",
			Message: "threshold must be a time of day in HH:MM:SS format",
		}}
	}
	return nil
}

func validateMonth(month string) validator.ValidationErrors {
	if month != "" && !validator.IsValidMonthKey(month) {
		return validator.ValidationErrors{{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		}}
	}
	return nil
}
