package schedule

import (
	"time"

	"github.com/opsforge/fieldops/internal/domain"
)

// ViewState is the long-lived UI state behind the schedule page: the active
// view mode, the selected date and the month shown in the mini calendar.
// The month cursor navigates independently of the selection. Transitions
// are plain methods with no side effects beyond the struct itself.
type ViewState struct {
	Mode         ViewMode
	SelectedDate time.Time
	MonthCursor  time.Time // first day of the displayed month

	now func() time.Time
}

// NewViewState builds the initial state: mode day, selection and cursor on
// the current calendar date.
func NewViewState(now func() time.Time) *ViewState {
	if now == nil {
		now = time.Now
	}
	s := &ViewState{Mode: ModeDay, now: now}
	s.GoToToday()
	return s
}

// SelectDate sets the selected date. The month cursor follows only when the
// new date falls outside the displayed month.
func (s *ViewState) SelectDate(d time.Time) {
	s.SelectedDate = StartOfDay(d)
	if !MatchesPeriod(d, s.MonthCursor, ModeMonth) {
		s.MonthCursor = startOfMonth(d)
	}
}

// NavigateMonth moves the calendar cursor by delta months without touching
// the selected date.
func (s *ViewState) NavigateMonth(delta int) {
	c := s.MonthCursor
	s.MonthCursor = time.Date(c.Year(), c.Month()+time.Month(delta), 1, 0, 0, 0, 0, c.Location())
}

// GoToToday snaps both the selection and the cursor back to the current
// calendar date.
func (s *ViewState) GoToToday() {
	now := s.now()
	s.SelectedDate = StartOfDay(now)
	s.MonthCursor = startOfMonth(now)
}

// SetViewMode switches the active view mode. Invalid modes are ignored.
func (s *ViewState) SetViewMode(mode ViewMode) {
	if mode.Valid() {
		s.Mode = mode
	}
}

// Visible applies the current mode and selection to an appointment
// snapshot.
func (s *ViewState) Visible(apps []domain.CrmAppointment) []domain.CrmAppointment {
	return FilterAppointments(apps, s.SelectedDate, s.Mode)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
