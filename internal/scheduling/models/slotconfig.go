package models

import (
	"strconv"
	"strings"
	"time"

	id "turnero/pkg/domain"
	dErrors "turnero/pkg/domain-errors"
)

// Recurrence selects how a slot configuration's day filter is interpreted.
type Recurrence string

const (
	// RecurrenceWeekly and RecurrenceCustom read the day filter as ISO
	// days of week (1=Monday .. 7=Sunday).
	RecurrenceWeekly Recurrence = "weekly"
	RecurrenceCustom Recurrence = "custom"
	// RecurrenceMonthly reads the day filter as days of month.
	RecurrenceMonthly Recurrence = "monthly"
)

func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceWeekly, RecurrenceMonthly, RecurrenceCustom:
		return true
	}
	return false
}

// SlotConfiguration is a declarative recurrence rule from which batches of
// training sessions are generated.
//
// DayFilter is kept in its external comma-separated form ("1,3,5") and
// parsed on use; that form is the compatibility contract with configuration
// authors. Updates to a configuration never touch sessions already generated
// from it.
type SlotConfiguration struct {
	ID         id.SlotConfigID `json:"id"`
	Name       string          `json:"name"`
	Recurrence Recurrence      `json:"recurrence"`
	DayFilter  string          `json:"day_filter"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
	Deleted    bool            `json:"-"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewSlotConfiguration validates and builds a configuration. The date range
// is inclusive on both ends; a single-day range is allowed.
func NewSlotConfiguration(configID id.SlotConfigID, name string, rec Recurrence, dayFilter string, startDate, endDate time.Time, now time.Time) (*SlotConfiguration, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "configuration name is required")
	}
	if !rec.Valid() {
		return nil, dErrors.New(dErrors.CodeValidation, "unknown recurrence type")
	}
	start, end := DateOf(startDate), DateOf(endDate)
	if end.Before(start) {
		return nil, dErrors.New(dErrors.CodeValidation, "end date must be after start date")
	}
	return &SlotConfiguration{
		ID:         configID,
		Name:       name,
		Recurrence: rec,
		DayFilter:  dayFilter,
		StartDate:  start,
		EndDate:    end,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Days parses the comma-separated day filter. Malformed tokens are dropped
// silently per the configuration contract; an empty result means "match
// every date".
func (c *SlotConfiguration) Days() map[int]struct{} {
	return ParseDayFilter(c.DayFilter)
}

// ParseDayFilter parses a comma-separated integer list, ignoring whitespace
// and anything that does not parse as an integer.
func ParseDayFilter(filter string) map[int]struct{} {
	days := make(map[int]struct{})
	if strings.TrimSpace(filter) == "" {
		return days
	}
	for _, token := range strings.Split(filter, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			continue
		}
		days[n] = struct{}{}
	}
	return days
}
