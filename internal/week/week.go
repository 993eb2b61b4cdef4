// internal/week/week.go

// Package week computes Monday-aligned reporting windows. All functions are
// pure: the same input date always yields the same window.
package week

import (
	"time"

	"fillrate/internal/domain"
)

// CurrentWeek returns the Monday-aligned window containing today.
func CurrentWeek(today time.Time) domain.WeekWindow {
	return ForDate(today)
}

// ForDate returns the Monday-aligned window containing the given date.
// The week number is the 1-based count of 7-day blocks since January 1 of the
// window's year, counting the partial first week when January 1 is not a
// Monday.
func ForDate(date time.Time) domain.WeekWindow {
	d := truncate(date)
	monday := d.AddDate(0, 0, -mondayOffset(d))
	sunday := monday.AddDate(0, 0, 6)

	year := monday.Year()
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	daysSinceJan1 := int(monday.Sub(jan1).Hours() / 24)
	weekNumber := (daysSinceJan1+mondayOffset(jan1))/7 + 1

	return domain.WeekWindow{
		WeekStartDate: monday,
		WeekEndDate:   sunday,
		WeekNumber:    weekNumber,
		Year:          year,
	}
}

// Options returns the reference window followed by pastCount successively
// earlier windows and futureCount successively later ones, 7 days apart.
func Options(ref domain.WeekWindow, pastCount, futureCount int) []domain.WeekWindow {
	options := make([]domain.WeekWindow, 0, 1+pastCount+futureCount)
	options = append(options, ref)
	for i := 1; i <= pastCount; i++ {
		options = append(options, ForDate(ref.WeekStartDate.AddDate(0, 0, -7*i)))
	}
	for i := 1; i <= futureCount; i++ {
		options = append(options, ForDate(ref.WeekStartDate.AddDate(0, 0, 7*i)))
	}
	return options
}

// Previous returns the window exactly 7 days before the given one.
func Previous(w domain.WeekWindow) domain.WeekWindow {
	return ForDate(w.WeekStartDate.AddDate(0, 0, -7))
}

// mondayOffset is the number of days since the most recent Monday (Monday=0).
func mondayOffset(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

func truncate(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
