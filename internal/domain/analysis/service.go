package analysis

import "context"

// AnalysisService defines the aggregation engine. Every operation is a
// stateless, idempotent transformation of the active dataset and the
// request parameters: identical inputs yield identical output values and
// ordering.
type AnalysisService interface {
	// GroupReport computes per-group check-in totals, false counts and
	// false percentages on the requested dimension, sorted by false
	// percentage descending, group key ascending.
	GroupReport(ctx context.Context, req GroupReportRequest) (GroupReport, error)

	// LateUserReport computes per-(group, RA user) lateness, keeps users at
	// or above the cutoff, and derives per-group flagged-user counts
	// against the unfiltered RA population.
	LateUserReport(ctx context.Context, req LateUserReportRequest) (LateUserReport, error)

	// Summary computes the global metrics: distinct users by role, total
	// check-ins, on-time and late totals with percentages.
	Summary(ctx context.Context, req SummaryRequest) (DatasetSummary, error)

	// Trend computes each month's overall false percentage, ordered by
	// month ascending.
	Trend(ctx context.Context, req TrendRequest) (TrendReport, error)

	// Months lists the distinct months present in the active dataset.
	Months(ctx context.Context) ([]string, error)
}
