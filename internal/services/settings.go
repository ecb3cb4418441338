package services

import (
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/breaching/moodix/data"
	"github.com/breaching/moodix/internal/models"
)

// MaxSettingsBytes caps the serialized size of a settings payload. This is a
// deliberately coarse ceiling, unlike the field-level discipline applied to
// journal entries: settings never carry markup that is rendered raw, so only
// resource exhaustion is bounded here.
const MaxSettingsBytes = 100000

// ErrSettingsTooLarge signals a settings payload over MaxSettingsBytes.
var ErrSettingsTooLarge = errors.New("settings data too large")

// GetSettings returns the user's settings blob, or the embedded defaults when
// the user has never saved any.
func GetSettings(db *gorm.DB, userID uint64) (map[string]any, error) {
	var setting models.Setting
	err := db.Where("user_id = ?", userID).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return defaultSettings()
		}
		return nil, err
	}

	result := make(map[string]any)
	if len(setting.Data.JSON) > 0 {
		if err := json.Unmarshal([]byte(setting.Data.JSON), &result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// SaveSettings upserts the user's settings blob, rejecting payloads whose
// serialization exceeds MaxSettingsBytes.
func SaveSettings(db *gorm.DB, userID uint64, payload map[string]any) error {
	blob, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if len(blob) > MaxSettingsBytes {
		return ErrSettingsTooLarge
	}

	var setting models.Setting
	err = db.Where("user_id = ?", userID).First(&setting).Error
	switch {
	case err == nil:
		setting.Data = models.JSON{JSON: datatypes.JSON(blob)}
		return db.Save(&setting).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = models.Setting{
			UserID: userID,
			Data:   models.JSON{JSON: datatypes.JSON(blob)},
		}
		return db.Create(&setting).Error
	default:
		return err
	}
}

func defaultSettings() (map[string]any, error) {
	result := make(map[string]any)
	if err := json.Unmarshal([]byte(data.DefaultSettings), &result); err != nil {
		return nil, err
	}
	return result, nil
}
