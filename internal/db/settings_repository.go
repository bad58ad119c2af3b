package db

import (
	"fmt"

	"github.com/wrenbird/cycla/internal/models"
	"github.com/wrenbird/cycla/internal/security"
	"gorm.io/gorm"
)

const settingsRowID = 1

type SettingsRepository struct {
	database *gorm.DB
}

func NewSettingsRepository(database *gorm.DB) *SettingsRepository {
	return &SettingsRepository{database: database}
}

// Ensure loads the settings row, creating it with a freshly generated
// signing secret on first boot. The passcode hash starts empty, which is
// what gates the one-time setup endpoint.
func (repo *SettingsRepository) Ensure() (models.AppSettings, error) {
	settings := models.AppSettings{}
	result := repo.database.Where("id = ?", settingsRowID).Limit(1).Find(&settings)
	if result.Error != nil {
		return models.AppSettings{}, fmt.Errorf("load app settings: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return settings, nil
	}

	secret, err := security.NewSigningSecret()
	if err != nil {
		return models.AppSettings{}, fmt.Errorf("generate signing secret: %w", err)
	}

	settings = models.AppSettings{ID: settingsRowID, SigningSecret: secret}
	if err := repo.database.Create(&settings).Error; err != nil {
		return models.AppSettings{}, fmt.Errorf("create app settings: %w", err)
	}
	return settings, nil
}

func (repo *SettingsRepository) Load() (models.AppSettings, error) {
	settings := models.AppSettings{}
	if err := repo.database.Where("id = ?", settingsRowID).First(&settings).Error; err != nil {
		return models.AppSettings{}, fmt.Errorf("load app settings: %w", err)
	}
	return settings, nil
}

func (repo *SettingsRepository) SavePasscodeHash(hash string) error {
	if err := repo.database.Model(&models.AppSettings{ID: settingsRowID}).
		Update("passcode_hash", hash).Error; err != nil {
		return fmt.Errorf("save passcode hash: %w", err)
	}
	return nil
}
