package app

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/opsforge/fieldops/internal/domain"
	"github.com/opsforge/fieldops/pkg/common"
)

func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "fieldops"

	hashedPassword, err := common.HashPassword(defaultPassword)
	if err != nil {
		zap.L().Error("failed to hash default password", zap.Error(err))
		return
	}

	var operator domain.SysOpr
	err = a.gormDB.Where("username = ?", superUsername).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.SysOpr{
			ID:        common.UUIDint64(),
			Realname:  "administrator",
			Mobile:    "0000",
			Email:     common.NA,
			Username:  superUsername,
			Password:  hashedPassword,
			Level:     "super",
			Status:    common.ENABLED,
			Remark:    "super",
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default super admin account", zap.String("username", superUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(operator.Password) == ""
	resetStatus := !strings.EqualFold(operator.Status, common.ENABLED)

	if !resetPassword && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = hashedPassword
	}
	if resetStatus {
		updates["status"] = common.ENABLED
	}

	if err := a.gormDB.Model(&domain.SysOpr{}).Where("id = ?", operator.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair super admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default super admin account",
		zap.String("username", superUsername),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("statusEnabled", resetStatus))
}

// defaultConfigs system settings seeded on first start
var defaultConfigs = []domain.SysConfig{
	{Sort: 1, Type: "system", Name: "currency_symbol", Value: "$", Remark: "Currency symbol used in exports and summaries"},
	{Sort: 2, Type: "system", Name: "default_duration", Value: "1 hour", Remark: "Default appointment duration label"},
	{Sort: 3, Type: "billing", Name: "overdue_sweep_enabled", Value: "true", Remark: "Automatically mark past-due pending invoices as Overdue"},
	{Sort: 4, Type: "billing", Name: "overdue_sweep_cron", Value: "@hourly", Remark: "Cron spec for the overdue invoice sweep"},
}

func (a *Application) checkSettings() {
	for _, cfg := range defaultConfigs {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", cfg.Type, cfg.Name).
			Count(&count)

		if count == 0 {
			cfg.ID = common.UUIDint64()
			a.gormDB.Create(&cfg)
			zap.L().Info("initialized config",
				zap.String("key", cfg.Type+"."+cfg.Name),
				zap.String("default", cfg.Value))
		}
	}
}
