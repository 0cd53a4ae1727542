package schedule

import (
	"testing"
	"time"
)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewViewStateInitial(t *testing.T) {
	now := time.Date(2026, 2, 25, 14, 30, 0, 0, time.UTC)
	s := NewViewState(fixedNow(now))

	if s.Mode != ModeDay {
		t.Errorf("initial mode = %s, want day", s.Mode)
	}
	if !s.SelectedDate.Equal(time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("initial selected date = %v", s.SelectedDate)
	}
	if !s.MonthCursor.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("initial month cursor = %v", s.MonthCursor)
	}
}

func TestSelectDateKeepsCursorInsideMonth(t *testing.T) {
	s := NewViewState(fixedNow(time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC)))
	cursor := s.MonthCursor

	s.SelectDate(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC))
	if !s.MonthCursor.Equal(cursor) {
		t.Error("cursor moved although the selection stayed in the displayed month")
	}
}

func TestSelectDateOutsideMonthMovesCursor(t *testing.T) {
	s := NewViewState(fixedNow(time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC)))

	s.SelectDate(time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC))
	if !s.MonthCursor.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("cursor = %v, want April 2026", s.MonthCursor)
	}
}

func TestNavigateMonthLeavesSelectionAlone(t *testing.T) {
	s := NewViewState(fixedNow(time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC)))
	selected := s.SelectedDate

	s.NavigateMonth(1)
	s.NavigateMonth(1)
	s.NavigateMonth(-1)

	if !s.MonthCursor.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("cursor = %v, want March 2026", s.MonthCursor)
	}
	if !s.SelectedDate.Equal(selected) {
		t.Error("selected date changed during month navigation")
	}
}

func TestNavigateMonthAcrossYear(t *testing.T) {
	s := NewViewState(fixedNow(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)))

	s.NavigateMonth(-1)
	if !s.MonthCursor.Equal(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("cursor = %v, want December 2025", s.MonthCursor)
	}
	s.NavigateMonth(1)
	if !s.MonthCursor.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("cursor = %v, want January 2026", s.MonthCursor)
	}
}

func TestGoToTodayAlwaysMatchesDayFilter(t *testing.T) {
	now := time.Date(2026, 2, 25, 9, 30, 0, 0, time.UTC)
	s := NewViewState(fixedNow(now))

	// scramble state first
	s.SelectDate(time.Date(2030, 7, 4, 0, 0, 0, 0, time.UTC))
	s.NavigateMonth(-14)
	s.SetViewMode(ModeMonth)

	s.GoToToday()
	if !MatchesPeriod(s.SelectedDate, now, ModeDay) {
		t.Errorf("GoToToday selected %v which is not today's calendar day", s.SelectedDate)
	}
	if !s.MonthCursor.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("GoToToday cursor = %v, want February 2026", s.MonthCursor)
	}
}

func TestSetViewModeIgnoresInvalid(t *testing.T) {
	s := NewViewState(fixedNow(time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC)))

	s.SetViewMode(ModeWeek)
	if s.Mode != ModeWeek {
		t.Errorf("mode = %s, want week", s.Mode)
	}
	s.SetViewMode(ViewMode("quarter"))
	if s.Mode != ModeWeek {
		t.Errorf("invalid mode applied, got %s", s.Mode)
	}
}
