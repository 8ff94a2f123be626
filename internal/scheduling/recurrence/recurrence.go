// Package recurrence resolves slot configurations into concrete calendar
// dates. The resolver is pure: same inputs, same output, no clock, no store.
package recurrence

import (
	"time"

	"turnero/internal/scheduling/models"
)

// Resolve returns the ascending list of dates in [start, end] (inclusive)
// matching the recurrence rule.
//
// Weekly and Custom interpret the filter as ISO days of week (1=Monday ..
// 7=Sunday); Monthly interprets it as days of month. An empty filter matches
// every date in range. A start after end yields no dates.
func Resolve(start, end time.Time, rec models.Recurrence, days map[int]struct{}) []time.Time {
	start, end = models.DateOf(start), models.DateOf(end)

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if matches(rec, d, days) {
			dates = append(dates, d)
		}
	}
	return dates
}

func matches(rec models.Recurrence, date time.Time, days map[int]struct{}) bool {
	if len(days) == 0 {
		return true
	}
	if rec == models.RecurrenceMonthly {
		_, ok := days[date.Day()]
		return ok
	}
	_, ok := days[isoWeekday(date)]
	return ok
}

// isoWeekday maps Go's Sunday-first weekday onto ISO-8601 (1=Monday .. 7=Sunday).
func isoWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
