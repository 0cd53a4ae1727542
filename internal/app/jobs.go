package app

import (
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/opsforge/fieldops/internal/domain"
	"github.com/opsforge/fieldops/internal/schedule"
)

// initJob starts the cron runner with the recurring maintenance jobs.
func (a *Application) initJob() {
	a.sched = cron.New()

	spec := a.GetSettingsStringValue("billing", "overdue_sweep_cron")
	if spec == "" {
		spec = "@hourly"
	}
	_, err := a.sched.AddFunc(spec, func() {
		if !a.GetSettingsBoolValue("billing", "overdue_sweep_enabled") {
			return
		}
		n, err := a.SweepOverdueInvoices()
		if err != nil {
			zap.L().Error("overdue invoice sweep failed", zap.Error(err))
			return
		}
		if n > 0 {
			zap.L().Info("overdue invoice sweep", zap.Int64("updated", n))
		}
	})
	if err != nil {
		zap.L().Error("failed to register overdue sweep job", zap.Error(err))
	}

	a.sched.Start()
}

// SweepOverdueInvoices marks Pending invoices whose due date has passed as
// Overdue. Due dates are date-only; an invoice due today is not overdue
// until tomorrow.
func (a *Application) SweepOverdueInvoices() (int64, error) {
	today := schedule.StartOfDay(time.Now())
	res := a.gormDB.Model(&domain.CrmInvoice{}).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", domain.InvoicePending, today).
		Updates(map[string]interface{}{"status": domain.InvoiceOverdue, "updated_at": time.Now()})
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "overdue sweep")
	}
	return res.RowsAffected, nil
}
