package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestForDateMondayAlignment(t *testing.T) {
	// 2025-03-12 is a Wednesday; its week runs Mon 10th to Sun 16th.
	w := ForDate(date(2025, time.March, 12))

	assert.Equal(t, date(2025, time.March, 10), w.WeekStartDate)
	assert.Equal(t, date(2025, time.March, 16), w.WeekEndDate)
	assert.Equal(t, time.Monday, w.WeekStartDate.Weekday())
	assert.Equal(t, time.Sunday, w.WeekEndDate.Weekday())
	assert.Equal(t, 2025, w.Year)
}

func TestForDateIdempotent(t *testing.T) {
	d := date(2025, time.June, 5)
	assert.Equal(t, ForDate(d), ForDate(d))
}

func TestForDateSameWeekSameWindow(t *testing.T) {
	// Every day of the Mon-Sun span maps to the identical window.
	monday := date(2025, time.March, 10)
	want := ForDate(monday)
	for i := 0; i < 7; i++ {
		got := ForDate(monday.AddDate(0, 0, i))
		assert.Equal(t, want, got, "day offset %d", i)
	}

	next := ForDate(monday.AddDate(0, 0, 7))
	assert.NotEqual(t, want, next)
}

func TestForDateIgnoresTimeOfDay(t *testing.T) {
	noon := time.Date(2025, time.March, 12, 12, 30, 45, 0, time.UTC)
	assert.Equal(t, ForDate(date(2025, time.March, 12)), ForDate(noon))
}

func TestWeekNumberCountsPartialFirstWeek(t *testing.T) {
	// 2025-01-01 is a Wednesday. Jan 1-5 counts as the partial week 1, so
	// the first Monday-started week of 2025 (Jan 6) is week 2.
	second := ForDate(date(2025, time.January, 6))
	assert.Equal(t, 2, second.WeekNumber)
	assert.Equal(t, 2025, second.Year)

	// Jan 2 still belongs to the window started Mon 2024-12-30, which is
	// numbered under 2024.
	spill := ForDate(date(2025, time.January, 2))
	assert.Equal(t, date(2024, time.December, 30), spill.WeekStartDate)
	assert.Equal(t, 53, spill.WeekNumber)
	assert.Equal(t, 2024, spill.Year)
}

func TestWeekNumberWhenJanFirstIsMonday(t *testing.T) {
	// 2024-01-01 is a Monday: week 1 is a full week.
	w := ForDate(date(2024, time.January, 1))
	assert.Equal(t, 1, w.WeekNumber)
	assert.Equal(t, date(2024, time.January, 1), w.WeekStartDate)

	w2 := ForDate(date(2024, time.January, 8))
	assert.Equal(t, 2, w2.WeekNumber)
}

func TestYearFollowsWeekStart(t *testing.T) {
	// 2026-01-01 is a Thursday; its week started Mon 2025-12-29.
	w := ForDate(date(2026, time.January, 1))
	assert.Equal(t, 2025, w.Year)
	assert.Equal(t, date(2025, time.December, 29), w.WeekStartDate)
}

func TestCurrentWeekAgreesWithForDate(t *testing.T) {
	now := time.Now()
	assert.Equal(t, ForDate(now), CurrentWeek(now))
}

func TestOptionsOrder(t *testing.T) {
	ref := ForDate(date(2025, time.March, 12))
	options := Options(ref, 2, 1)

	require.Len(t, options, 4)
	assert.Equal(t, ref, options[0])
	assert.Equal(t, date(2025, time.March, 3), options[1].WeekStartDate)
	assert.Equal(t, date(2025, time.February, 24), options[2].WeekStartDate)
	assert.Equal(t, date(2025, time.March, 17), options[3].WeekStartDate)
}

func TestOptionsNoPastNoFuture(t *testing.T) {
	ref := ForDate(date(2025, time.March, 12))
	options := Options(ref, 0, 0)
	require.Len(t, options, 1)
	assert.Equal(t, ref, options[0])
}

func TestPrevious(t *testing.T) {
	w := ForDate(date(2025, time.March, 12))
	prev := Previous(w)
	assert.Equal(t, date(2025, time.March, 3), prev.WeekStartDate)
	assert.Equal(t, date(2025, time.March, 9), prev.WeekEndDate)
	assert.Equal(t, w.WeekNumber-1, prev.WeekNumber)
}
