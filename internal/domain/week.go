package domain

import (
	"fmt"
	"math"
	"time"
)

// WeekID returns the "YYYY-WW" label of the Monday-started week containing t,
// evaluated in t's location.
//
// The week number is counted from January 1st of t's calendar year and the label
// always carries t's year, even when the Monday that starts the week falls in the
// previous year. Early-January dates can therefore be labelled week 00 or 01 of
// the new year while the rest of their week is labelled with the old year.
// Persisted snapshots and history entries depend on these exact labels.
func WeekID(t time.Time) string {
	dayOfWeek := int(t.Weekday())
	daysSinceMonday := dayOfWeek - 1
	if dayOfWeek == 0 {
		daysSinceMonday = 6
	}

	weekStart := t.AddDate(0, 0, -daysSinceMonday)
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())

	days := weekStart.Sub(jan1).Hours() / 24
	weekNum := int(math.Ceil((days + float64(jan1.Weekday()) + 1) / 7))

	return fmt.Sprintf("%d-%02d", t.Year(), weekNum)
}

// StartOfWeek returns midnight of the Monday starting t's week, in t's location
func StartOfWeek(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, -daysSinceMonday)
}

// NextWeekStart returns the first Monday midnight strictly after t
func NextWeekStart(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 7)
}
