package schedule

import (
	"time"

	"github.com/opsforge/fieldops/internal/domain"
)

// FilterAppointments returns the appointments whose scheduled time falls in
// ref's period for the given mode. The result preserves the input order and
// the input slice is never mutated, so the same snapshot can be re-filtered
// with different reference dates.
func FilterAppointments(apps []domain.CrmAppointment, ref time.Time, mode ViewMode) []domain.CrmAppointment {
	out := make([]domain.CrmAppointment, 0, len(apps))
	for _, a := range apps {
		if MatchesPeriod(a.ScheduledAt, ref, mode) {
			out = append(out, a)
		}
	}
	return out
}

// Technicians returns the distinct technician names across the snapshot,
// first occurrence order.
func Technicians(apps []domain.CrmAppointment) []string {
	seen := make(map[string]struct{}, len(apps))
	var names []string
	for _, a := range apps {
		if a.TechnicianName == "" {
			continue
		}
		if _, ok := seen[a.TechnicianName]; ok {
			continue
		}
		seen[a.TechnicianName] = struct{}{}
		names = append(names, a.TechnicianName)
	}
	return names
}
