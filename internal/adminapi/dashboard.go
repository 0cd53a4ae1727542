package adminapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/opsforge/fieldops/internal/billing"
	"github.com/opsforge/fieldops/internal/domain"
	"github.com/opsforge/fieldops/internal/schedule"
	"github.com/opsforge/fieldops/internal/webserver"
)

func registerDashboardRoutes() {
	webserver.ApiGET("/dashboard", dashboard)
}

// dashboard aggregates the landing-page widgets in one response: today's
// jobs, active customers, unpaid invoices and month-to-date revenue. The
// snapshot queries run in parallel.
func dashboard(c echo.Context) error {
	uid, _ := CurrentOperator(c)
	db := GetDB(c)
	now := time.Now()

	var (
		appointments    []domain.CrmAppointment
		invoices        []domain.CrmInvoice
		activeCustomers int64
	)

	g, _ := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		rows, err := queryAppointments(db.Session(&gormSession), uid)
		appointments = rows
		return err
	})
	g.Go(func() error {
		rows, err := queryInvoices(db.Session(&gormSession), uid)
		invoices = rows
		return err
	})
	g.Go(func() error {
		return db.Session(&gormSession).Model(&domain.CrmCustomer{}).
			Where("user_id = ? AND status = ?", uid, domain.CustomerActive).
			Count(&activeCustomers).Error
	})
	if err := g.Wait(); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load dashboard", err.Error())
	}

	todays := schedule.FilterAppointments(appointments, now, schedule.ModeDay)
	completed := 0
	for _, a := range todays {
		if a.Status == domain.AppointmentCompleted {
			completed++
		}
	}

	sum := billing.Summarize(invoices)

	// Month-to-date revenue: paid invoices created this month
	var mtdCents int64
	for _, inv := range invoices {
		if inv.Status == domain.InvoicePaid && schedule.MatchesPeriod(inv.CreatedAt, now, schedule.ModeMonth) {
			mtdCents += inv.AmountCents
		}
	}

	return ok(c, map[string]interface{}{
		"todays_jobs":      len(todays),
		"todays_completed": completed,
		"active_customers": activeCustomers,
		"unpaid_invoices":  sum.PendingCount + sum.OverdueCount,
		"overdue_invoices": sum.OverdueCount,
		"outstanding":      billing.FormatAmountGrouped(sum.OutstandingCents),
		"revenue_mtd":      billing.FormatAmountGrouped(mtdCents),
	})
}
