package dataset

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Role values recognized by the reporting engine. Records with other role
// strings are kept and counted in group totals but excluded from per-role
// metrics.
const (
	RoleRA  = "RA"
	RoleSUP = "SUP"
)

// ClockTime is a time of day stored as seconds since midnight. Check-in
// times carry no date and no timezone; all comparisons are plain ordinal
// comparisons under an implicit shared local convention.
type ClockTime int

// ParseClockTime accepts "HH:MM:SS" and "HH:MM" values, plus the full
// datetime forms spreadsheet cells commonly carry, in which case only the
// time part is used.
func ParseClockTime(value string) (ClockTime, error) {
	value = strings.TrimSpace(value)
	layouts := []string{
		"15:04:05",
		"15:04",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"01/02/2006 15:04:05",
		"3:04:05 PM",
		"3:04 PM",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return ClockTime(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnparsableTime, value)
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(c)/3600, int(c)/60%60, int(c)%60)
}

// Dimension is the grouping axis selected for a report run: either the
// assigned area or the assigned region. Exactly one dimension applies per
// report.
type Dimension string

const (
	DimensionArea   Dimension = "area"
	DimensionRegion Dimension = "region"
)

func ParseDimension(value string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "area":
		return DimensionArea, nil
	case "region":
		return DimensionRegion, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDimension, value)
	}
}

// CheckInRecord is one normalized check-in row. OnTime is deliberately not
// part of the record: lateness is derived per report run from the requested
// threshold, so changing the threshold never requires re-normalizing.
type CheckInRecord struct {
	Role        string
	User        string
	Area        string
	Region      string
	CheckInTime ClockTime
	CheckInDate *time.Time
	SourceFile  string
}

// GroupKey returns the record's value on the chosen dimension. Keys are
// opaque: no trimming or case folding, textually distinct values are
// distinct groups.
func (r CheckInRecord) GroupKey(dim Dimension) string {
	if dim == DimensionRegion {
		return r.Region
	}
	return r.Area
}

// Month returns the "YYYY-MM" key of the check-in date, or "" when the
// record carries no date.
func (r CheckInRecord) Month() string {
	if r.CheckInDate == nil {
		return ""
	}
	return r.CheckInDate.Format("2006-01")
}

// FileStat records how many rows each uploaded file contributed.
type FileStat struct {
	Name    string `json:"name"`
	Records int    `json:"records"`
}

// Dataset is an immutable snapshot of one uploaded file set. It is built
// once per upload and replaced wholesale on the next upload; computations
// never mutate it.
type Dataset struct {
	Records    []CheckInRecord
	Files      []FileStat
	UploadedAt time.Time
}

// Months returns the sorted distinct month keys present in the dataset.
// Records without a check-in date contribute no month.
func (d *Dataset) Months() []string {
	seen := make(map[string]struct{})
	for _, r := range d.Records {
		if m := r.Month(); m != "" {
			seen[m] = struct{}{}
		}
	}
	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}
