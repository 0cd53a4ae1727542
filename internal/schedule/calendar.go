// Package schedule contains the pure calendar logic behind the dispatch
// views: date-range classification, appointment filtering and the
// day/week/month view state machine. It never touches the database.
package schedule

import "time"

// ViewMode selects the period used to filter the schedule.
type ViewMode string

const (
	ModeDay   ViewMode = "day"
	ModeWeek  ViewMode = "week"
	ModeMonth ViewMode = "month"
)

// Valid reports whether m is one of the three supported view modes.
func (m ViewMode) Valid() bool {
	switch m {
	case ModeDay, ModeWeek, ModeMonth:
		return true
	}
	return false
}

// MatchesPeriod reports whether t falls in the same period as ref for the
// given mode. Both instants are interpreted in ref's location so that a
// UTC-stored timestamp lands on the calendar day the operator sees.
//
//   - day: equal year, month and day-of-month
//   - week: equal week start (weeks begin Sunday, midnight)
//   - month: equal year and month
//
// Unknown modes match nothing.
func MatchesPeriod(t, ref time.Time, mode ViewMode) bool {
	loc := ref.Location()
	t = t.In(loc)

	switch mode {
	case ModeDay:
		return t.Year() == ref.Year() && t.Month() == ref.Month() && t.Day() == ref.Day()
	case ModeWeek:
		return StartOfWeek(t).Equal(StartOfWeek(ref))
	case ModeMonth:
		return t.Year() == ref.Year() && t.Month() == ref.Month()
	}
	return false
}

// StartOfWeek returns midnight of the Sunday on or before t, in t's
// location.
func StartOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
