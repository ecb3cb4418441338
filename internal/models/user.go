package models

import (
	"time"
)

// User represents an account able to own journal entries and settings.
type User struct {
	UserID       uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Email        *string   `gorm:"uniqueIndex;size:255" json:"email,omitempty"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Entries  []JournalEntry `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Settings *Setting       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
