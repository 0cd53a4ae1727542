package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/opsforge/fieldops/internal/domain"
	"github.com/opsforge/fieldops/pkg/common"
)

// Event topics published by the admin API after successful mutations.
const (
	EvtCustomerChanged    = "crm.customer.changed"
	EvtAppointmentChanged = "crm.appointment.changed"
	EvtInvoiceChanged     = "crm.invoice.changed"
)

// initEventSubscribers wires the audit-log writer onto the CRM topics.
func (a *Application) initEventSubscribers() {
	for _, topic := range []string{EvtCustomerChanged, EvtAppointmentChanged, EvtInvoiceChanged} {
		topic := topic
		if err := a.bus.SubscribeAsync(topic, func(oprName, oprIP, action, desc string) {
			a.writeOprLog(oprName, oprIP, action, desc)
		}, false); err != nil {
			zap.L().Error("failed to subscribe audit logger", zap.String("topic", topic), zap.Error(err))
		}
	}
}

func (a *Application) writeOprLog(oprName, oprIP, action, desc string) {
	if err := a.gormDB.Create(&domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   oprName,
		OprIp:     oprIP,
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	}).Error; err != nil {
		zap.L().Error("failed to write operator log", zap.String("action", action), zap.Error(err))
	}
}
