package analysis

import "errors"

var (
	ErrNoDatedRecords = errors.New("no records carry a check-in date, trend analysis requires the Check-In Date column")
	ErrMonthNotFound  = errors.New("no records found for the requested month")
)
