package models

import (
	"time"
)

// JournalEntry represents one day's sanitized journal content for a user.
// The content blob is opaque to the storage layer: it is replaced wholesale
// on every save for the same (user, date) key, never merged field by field.
type JournalEntry struct {
	EntryID   uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    uint64 `gorm:"not null;index:idx_user_date,unique"`
	Date      string `gorm:"size:10;not null;index:idx_user_date,unique"`
	Content   JSON   `gorm:"type:json;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for JournalEntry
func (JournalEntry) TableName() string {
	return "entries"
}
