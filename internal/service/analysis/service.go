package analysis

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/opsdash/checkin-report-go/internal/domain/analysis"
	"github.com/opsdash/checkin-report-go/internal/domain/dataset"
)

type AnalysisServiceImpl struct {
	store dataset.Repository
}

func NewAnalysisService(store dataset.Repository) analysis.AnalysisService {
	return &AnalysisServiceImpl{store: store}
}

// roundPct returns part/total as a percentage rounded half away from zero
// to one decimal place. A zero denominator yields 0.
func roundPct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// GroupReport implements analysis.AnalysisService.
func (s *AnalysisServiceImpl) GroupReport(ctx context.Context, req analysis.GroupReportRequest) (analysis.GroupReport, error) {
	if err := req.Validate(); err != nil {
		return analysis.GroupReport{}, err
	}

	records, dim, threshold, err := s.slice(ctx, req.Dimension, req.Threshold, req.Month)
	if err != nil {
		return analysis.GroupReport{}, err
	}

	return analysis.GroupReport{
		Dimension:   string(dim),
		Threshold:   threshold.String(),
		Month:       req.Month,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Groups:      aggregateGroups(records, dim, threshold),
	}, nil
}

// LateUserReport implements analysis.AnalysisService.
func (s *AnalysisServiceImpl) LateUserReport(ctx context.Context, req analysis.LateUserReportRequest) (analysis.LateUserReport, error) {
	if err := req.Validate(); err != nil {
		return analysis.LateUserReport{}, err
	}

	records, dim, threshold, err := s.slice(ctx, req.Dimension, req.Threshold, req.Month)
	if err != nil {
		return analysis.LateUserReport{}, err
	}

	users := aggregateUsers(records, dim, threshold)
	flagged := filterUsers(users, req.CutoffPct)
	groups := flaggedGroups(flagged, records, dim)

	return analysis.LateUserReport{
		Dimension:   string(dim),
		Threshold:   threshold.String(),
		CutoffPct:   req.CutoffPct,
		Month:       req.Month,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Users:       flagged,
		Groups:      groups,
		NoneFlagged: len(flagged) == 0,
	}, nil
}

// Summary implements analysis.AnalysisService.
func (s *AnalysisServiceImpl) Summary(ctx context.Context, req analysis.SummaryRequest) (analysis.DatasetSummary, error) {
	if err := req.Validate(); err != nil {
		return analysis.DatasetSummary{}, err
	}

	records, _, threshold, err := s.slice(ctx, "area", req.Threshold, req.Month)
	if err != nil {
		return analysis.DatasetSummary{}, err
	}

	raUsers := make(map[string]struct{})
	supUsers := make(map[string]struct{})
	trueCount := 0
	for _, r := range records {
		switch r.Role {
		case dataset.RoleRA:
			raUsers[r.User] = struct{}{}
		case dataset.RoleSUP:
			supUsers[r.User] = struct{}{}
		}
		if r.CheckInTime <= threshold {
			trueCount++
		}
	}

	total := len(records)
	falseCount := total - trueCount
	return analysis.DatasetSummary{
		Threshold:     threshold.String(),
		Month:         req.Month,
		GeneratedAt:   time.Now().Format(time.RFC3339),
		TotalRAUsers:  len(raUsers),
		TotalSUPUsers: len(supUsers),
		TotalCheckIns: total,
		TrueCheckIns:  trueCount,
		FalseCheckIns: falseCount,
		TruePct:       roundPct(trueCount, total),
		FalsePct:      roundPct(falseCount, total),
	}, nil
}

// Trend implements analysis.AnalysisService.
func (s *AnalysisServiceImpl) Trend(ctx context.Context, req analysis.TrendRequest) (analysis.TrendReport, error) {
	if err := req.Validate(); err != nil {
		return analysis.TrendReport{}, err
	}

	ds, err := s.store.Active(ctx)
	if err != nil {
		return analysis.TrendReport{}, err
	}
	threshold, err := dataset.ParseClockTime(req.Threshold)
	if err != nil {
		return analysis.TrendReport{}, err
	}

	type monthAcc struct {
		total      int
		falseCount int
	}
	byMonth := make(map[string]*monthAcc)
	for _, r := range ds.Records {
		m := r.Month()
		if m == "" {
			continue
		}
		acc := byMonth[m]
		if acc == nil {
			acc = &monthAcc{}
			byMonth[m] = acc
		}
		acc.total++
		if r.CheckInTime > threshold {
			acc.falseCount++
		}
	}
	if len(byMonth) == 0 {
		return analysis.TrendReport{}, analysis.ErrNoDatedRecords
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	// Lexicographic order of YYYY-MM keys is chronological.
	sort.Strings(months)

	points := make([]analysis.MonthlyTrendPoint, 0, len(months))
	for _, m := range months {
		acc := byMonth[m]
		points = append(points, analysis.MonthlyTrendPoint{
			Month:         m,
			TotalCheckIns: acc.total,
			FalseCheckIns: acc.falseCount,
			FalsePct:      roundPct(acc.falseCount, acc.total),
		})
	}

	return analysis.TrendReport{
		Threshold:   threshold.String(),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Points:      points,
	}, nil
}

// Months implements analysis.AnalysisService.
func (s *AnalysisServiceImpl) Months(ctx context.Context) ([]string, error) {
	ds, err := s.store.Active(ctx)
	if err != nil {
		return nil, err
	}
	return ds.Months(), nil
}

// slice fetches the active dataset, parses the request parameters into
// typed values and applies the optional month restriction.
func (s *AnalysisServiceImpl) slice(ctx context.Context, dimension, threshold, month string) ([]dataset.CheckInRecord, dataset.Dimension, dataset.ClockTime, error) {
	ds, err := s.store.Active(ctx)
	if err != nil {
		return nil, "", 0, err
	}
	dim, err := dataset.ParseDimension(dimension)
	if err != nil {
		return nil, "", 0, err
	}
	clock, err := dataset.ParseClockTime(threshold)
	if err != nil {
		return nil, "", 0, err
	}

	if month == "" {
		return ds.Records, dim, clock, nil
	}
	var records []dataset.CheckInRecord
	for _, r := range ds.Records {
		if r.Month() == month {
			records = append(records, r)
		}
	}
	if len(records) == 0 {
		return nil, "", 0, analysis.ErrMonthNotFound
	}
	return records, dim, clock, nil
}

type accumulator struct {
	total      int
	falseCount int
}

// aggregateGroups partitions records by the chosen dimension value and
// derives each group's totals. Output is sorted by false percentage
// descending, then group key ascending as the stable tie-break.
func aggregateGroups(records []dataset.CheckInRecord, dim dataset.Dimension, threshold dataset.ClockTime) []analysis.GroupSummary {
	byGroup := make(map[string]*accumulator)
	for _, r := range records {
		key := r.GroupKey(dim)
		acc := byGroup[key]
		if acc == nil {
			acc = &accumulator{}
			byGroup[key] = acc
		}
		acc.total++
		if r.CheckInTime > threshold {
			acc.falseCount++
		}
	}

	groups := make([]analysis.GroupSummary, 0, len(byGroup))
	for key, acc := range byGroup {
		groups = append(groups, analysis.GroupSummary{
			GroupKey:      key,
			TotalCheckIns: acc.total,
			FalseCheckIns: acc.falseCount,
			FalsePct:      roundPct(acc.falseCount, acc.total),
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].FalsePct != groups[j].FalsePct {
			return groups[i].FalsePct > groups[j].FalsePct
		}
		return groups[i].GroupKey < groups[j].GroupKey
	})
	return groups
}

// aggregateUsers partitions RA records by (group, user) and derives each
// user's lateness ratio. Same sort convention as aggregateGroups, with the
// user name as the final tie-break.
func aggregateUsers(records []dataset.CheckInRecord, dim dataset.Dimension, threshold dataset.ClockTime) []analysis.UserLatenessSummary {
	type userKey struct {
		group string
		user  string
	}
	byUser := make(map[userKey]*accumulator)
	for _, r := range records {
		if r.Role != dataset.RoleRA {
			continue
		}
		key := userKey{group: r.GroupKey(dim), user: r.User}
		acc := byUser[key]
		if acc == nil {
			acc = &accumulator{}
			byUser[key] = acc
		}
		acc.total++
		if r.CheckInTime > threshold {
			acc.falseCount++
		}
	}

	users := make([]analysis.UserLatenessSummary, 0, len(byUser))
	for key, acc := range byUser {
		users = append(users, analysis.UserLatenessSummary{
			GroupKey:      key.group,
			User:          key.user,
			TotalCheckIns: acc.total,
			FalseCheckIns: acc.falseCount,
			FalsePct:      roundPct(acc.falseCount, acc.total),
		})
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].FalsePct != users[j].FalsePct {
			return users[i].FalsePct > users[j].FalsePct
		}
		if users[i].GroupKey != users[j].GroupKey {
			return users[i].GroupKey < users[j].GroupKey
		}
		return users[i].User < users[j].User
	})
	return users
}

// filterUsers keeps users whose false percentage meets or exceeds the
// cutoff. The boundary is inclusive: exactly at the cutoff qualifies.
func filterUsers(users []analysis.UserLatenessSummary, cutoffPct int) []analysis.UserLatenessSummary {
	var flagged []analysis.UserLatenessSummary
	for _, u := range users {
		if u.FalsePct >= float64(cutoffPct) {
			flagged = append(flagged, u)
		}
	}
	return flagged
}

// flaggedGroups counts distinct flagged users per group and sizes them
// against the distinct RA users of the unfiltered population, so the
// denominator reflects everyone eligible for the period. Groups present in
// the population but without flagged users are omitted; a group whose RA
// population is somehow zero is reported as not applicable.
func flaggedGroups(flagged []analysis.UserLatenessSummary, records []dataset.CheckInRecord, dim dataset.Dimension) []analysis.FlaggedGroupSummary {
	if len(flagged) == 0 {
		return nil
	}

	raPopulation := make(map[string]map[string]struct{})
	for _, r := range records {
		if r.Role != dataset.RoleRA {
			continue
		}
		key := r.GroupKey(dim)
		if raPopulation[key] == nil {
			raPopulation[key] = make(map[string]struct{})
		}
		raPopulation[key][r.User] = struct{}{}
	}

	flaggedByGroup := make(map[string]map[string]struct{})
	for _, u := range flagged {
		if flaggedByGroup[u.GroupKey] == nil {
			flaggedByGroup[u.GroupKey] = make(map[string]struct{})
		}
		flaggedByGroup[u.GroupKey][u.User] = struct{}{}
	}

	groups := make([]analysis.FlaggedGroupSummary, 0, len(flaggedByGroup))
	for key, users := range flaggedByGroup {
		totalRA := len(raPopulation[key])
		groups = append(groups, analysis.FlaggedGroupSummary{
			GroupKey:     key,
			FlaggedUsers: len(users),
			TotalRAUsers: totalRA,
			FlaggedPct:   roundPct(len(users), totalRA),
			Applicable:   totalRA > 0,
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].FlaggedUsers != groups[j].FlaggedUsers {
			return groups[i].FlaggedUsers > groups[j].FlaggedUsers
		}
		return groups[i].GroupKey < groups[j].GroupKey
	})
	return groups
}
