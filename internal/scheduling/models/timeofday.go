package models

import (
	"fmt"
	"time"

	dErrors "turnero/pkg/domain-errors"
)

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
// Sessions never cross midnight, so this is enough for overlap math and it
// keeps date arithmetic out of the stores.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from wall-clock components.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay parses "HH:MM" (24h).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeValidation, "time must be HH:MM")
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Duration returns the offset from midnight.
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t) * time.Minute
}

// Valid reports whether t is within a single day.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < 24*60
}
