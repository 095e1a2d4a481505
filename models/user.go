package models

import (
	"time"

	"studyhub-backend/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`

	IsAdmin bool `gorm:"default:false" json:"isAdmin"`

	// Notification preferences, e.g. {"examReminders": true}
	NotificationPrefs datatypes.JSON `gorm:"type:jsonb" json:"notificationPrefs"`

	LastLogin *time.Time `json:"lastLogin"`

	gorm.Model `json:"-"`
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	u.ID = uuid.New()
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
