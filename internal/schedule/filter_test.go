package schedule

import (
	"reflect"
	"testing"
	"time"

	"github.com/opsforge/fieldops/internal/domain"
)

func apptAt(id int64, t time.Time) domain.CrmAppointment {
	return domain.CrmAppointment{ID: id, ScheduledAt: t, Status: domain.AppointmentScheduled}
}

func ids(apps []domain.CrmAppointment) []int64 {
	out := make([]int64, len(apps))
	for i, a := range apps {
		out[i] = a.ID
	}
	return out
}

// The reference scenario: three appointments around the end of February
// filtered against Wednesday 2026-02-25.
func TestFilterAppointmentsModes(t *testing.T) {
	apps := []domain.CrmAppointment{
		apptAt(1, time.Date(2026, 2, 24, 9, 0, 0, 0, time.UTC)),
		apptAt(2, time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)),
		apptAt(3, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)),
	}
	ref := time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		mode ViewMode
		want []int64
	}{
		{ModeDay, []int64{2}},
		{ModeWeek, []int64{1, 2}},
		{ModeMonth, []int64{1, 2}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := ids(FilterAppointments(apps, ref, tt.mode))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("filter(%s) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestFilterAppointmentsIdempotent(t *testing.T) {
	apps := []domain.CrmAppointment{
		apptAt(1, time.Date(2026, 2, 25, 8, 0, 0, 0, time.UTC)),
		apptAt(2, time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)),
		apptAt(3, time.Date(2026, 2, 26, 10, 0, 0, 0, time.UTC)),
	}
	ref := time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC)

	once := FilterAppointments(apps, ref, ModeDay)
	twice := FilterAppointments(once, ref, ModeDay)
	if !reflect.DeepEqual(ids(once), ids(twice)) {
		t.Errorf("filter not idempotent: %v vs %v", ids(once), ids(twice))
	}
}

func TestFilterAppointmentsDoesNotMutateInput(t *testing.T) {
	apps := []domain.CrmAppointment{
		apptAt(1, time.Date(2026, 2, 25, 8, 0, 0, 0, time.UTC)),
		apptAt(2, time.Date(2026, 2, 26, 8, 0, 0, 0, time.UTC)),
	}
	before := ids(apps)

	FilterAppointments(apps, time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC), ModeDay)
	FilterAppointments(apps, time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC), ModeDay)

	if !reflect.DeepEqual(ids(apps), before) {
		t.Error("input snapshot mutated by filtering")
	}
}

func TestFilterAppointmentsEmpty(t *testing.T) {
	got := FilterAppointments(nil, time.Now(), ModeDay)
	if len(got) != 0 {
		t.Errorf("empty input should yield empty output, got %d", len(got))
	}
}

func TestTechnicians(t *testing.T) {
	apps := []domain.CrmAppointment{
		{ID: 1, TechnicianName: "Mike D."},
		{ID: 2, TechnicianName: "Steve R."},
		{ID: 3, TechnicianName: "Mike D."},
		{ID: 4, TechnicianName: ""},
	}
	got := Technicians(apps)
	want := []string{"Mike D.", "Steve R."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Technicians = %v, want %v", got, want)
	}
}
