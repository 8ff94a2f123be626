package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turnero/internal/scheduling/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve_WeeklyFilter(t *testing.T) {
	days := models.ParseDayFilter("1,3") // Mondays, Wednesdays

	got := Resolve(date(2024, time.January, 1), date(2024, time.January, 31), models.RecurrenceWeekly, days)

	want := []time.Time{
		date(2024, time.January, 1), date(2024, time.January, 3),
		date(2024, time.January, 8), date(2024, time.January, 10),
		date(2024, time.January, 15), date(2024, time.January, 17),
		date(2024, time.January, 22), date(2024, time.January, 24),
		date(2024, time.January, 29), date(2024, time.January, 31),
	}
	assert.Equal(t, want, got)
}

func TestResolve_MonthlyFilter(t *testing.T) {
	days := models.ParseDayFilter("1,15")

	got := Resolve(date(2024, time.January, 1), date(2024, time.March, 31), models.RecurrenceMonthly, days)

	want := []time.Time{
		date(2024, time.January, 1), date(2024, time.January, 15),
		date(2024, time.February, 1), date(2024, time.February, 15),
		date(2024, time.March, 1), date(2024, time.March, 15),
	}
	assert.Equal(t, want, got)
}

func TestResolve_EmptyFilterMatchesAll(t *testing.T) {
	got := Resolve(date(2024, time.June, 10), date(2024, time.June, 14), models.RecurrenceWeekly, nil)
	assert.Len(t, got, 5)
}

func TestResolve_SingleDayRange(t *testing.T) {
	d := date(2024, time.June, 10) // a Monday
	got := Resolve(d, d, models.RecurrenceWeekly, models.ParseDayFilter("1"))
	require.Len(t, got, 1)
	assert.Equal(t, d, got[0])

	got = Resolve(d, d, models.RecurrenceWeekly, models.ParseDayFilter("2"))
	assert.Empty(t, got)
}

func TestResolve_StartAfterEnd(t *testing.T) {
	got := Resolve(date(2024, time.June, 14), date(2024, time.June, 10), models.RecurrenceWeekly, nil)
	assert.Empty(t, got)
}

func TestResolve_SundayIsSeven(t *testing.T) {
	got := Resolve(date(2024, time.June, 3), date(2024, time.June, 9), models.RecurrenceCustom, models.ParseDayFilter("7"))
	require.Len(t, got, 1)
	assert.Equal(t, date(2024, time.June, 9), got[0])
}

func TestResolve_Ordering(t *testing.T) {
	got := Resolve(date(2024, time.January, 1), date(2024, time.February, 29), models.RecurrenceWeekly, models.ParseDayFilter("5"))
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i].After(got[i-1]), "dates must be strictly ascending")
	}
}
