package app

import (
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/opsforge/fieldops/internal/domain"
	"github.com/opsforge/fieldops/pkg/common"
)

// ConfigManager caches sys_config rows and hands out typed values.
type ConfigManager struct {
	app   *Application
	mu    sync.RWMutex
	cache map[string]string
}

func NewConfigManager(app *Application) *ConfigManager {
	cm := &ConfigManager{app: app, cache: map[string]string{}}
	cm.Reload()
	return cm
}

// Reload refreshes the in-memory settings cache from the store.
func (cm *ConfigManager) Reload() {
	var rows []domain.SysConfig
	if err := cm.app.gormDB.Find(&rows).Error; err != nil {
		zap.L().Error("failed to load sys_config", zap.Error(err))
		return
	}
	next := make(map[string]string, len(rows))
	for _, r := range rows {
		next[r.Type+"."+r.Name] = r.Value
	}
	cm.mu.Lock()
	cm.cache = next
	cm.mu.Unlock()
}

func (cm *ConfigManager) get(category, key string) string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.cache[category+"."+key]
}

func (cm *ConfigManager) GetString(category, key string) string {
	return cm.get(category, key)
}

func (cm *ConfigManager) GetInt64(category, key string) int64 {
	return cast.ToInt64(cm.get(category, key))
}

func (cm *ConfigManager) GetBool(category, key string) bool {
	return cast.ToBool(cm.get(category, key))
}

// SetValue updates one setting row and the cache.
func (cm *ConfigManager) SetValue(category, key, value string) error {
	err := cm.app.gormDB.Model(&domain.SysConfig{}).
		Where("type = ? and name = ?", category, key).
		Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}).Error
	if err != nil {
		return errors.Wrap(err, "update sys_config")
	}
	cm.mu.Lock()
	cm.cache[category+"."+key] = value
	cm.mu.Unlock()
	return nil
}

// BusinessSettingsInput is the shape accepted by SaveBusinessSettings;
// handlers pass the raw payload map and mapstructure does the field
// mapping.
type BusinessSettingsInput struct {
	CompanyName     string `mapstructure:"company_name"`
	BusinessAddress string `mapstructure:"business_address"`
	ServiceAreas    string `mapstructure:"service_areas"`
}

// GetBusinessSettings loads the one-per-account settings row, returning an
// empty record when none exists yet.
func GetBusinessSettings(db *gorm.DB, userID int64) (domain.CrmSettings, error) {
	var s domain.CrmSettings
	err := db.Where("user_id = ?", userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.CrmSettings{UserID: userID}, nil
	}
	if err != nil {
		return s, errors.Wrap(err, "query crm_settings")
	}
	return s, nil
}

// SaveBusinessSettings upserts the account's settings row from a raw
// payload map.
func SaveBusinessSettings(db *gorm.DB, userID int64, payload map[string]interface{}) (domain.CrmSettings, error) {
	var in BusinessSettingsInput
	if err := mapstructure.Decode(payload, &in); err != nil {
		return domain.CrmSettings{}, errors.Wrap(err, "decode settings payload")
	}

	row := domain.CrmSettings{
		ID:              common.UUIDint64(),
		UserID:          userID,
		CompanyName:     in.CompanyName,
		BusinessAddress: in.BusinessAddress,
		ServiceAreas:    in.ServiceAreas,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"company_name", "business_address", "service_areas", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		return domain.CrmSettings{}, errors.Wrap(err, "upsert crm_settings")
	}
	return GetBusinessSettings(db, userID)
}
