package models

import (
	"time"
)

// Setting holds a user's UI preference blob. Settings are not field-validated
// like entries; only an overall serialized-size ceiling applies on write.
type Setting struct {
	SettingID uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    uint64 `gorm:"uniqueIndex;not null"`
	Data      JSON   `gorm:"type:json;not null"`
	UpdatedAt time.Time
}

// TableName overrides the table name for Setting
func (Setting) TableName() string {
	return "settings"
}
