package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Exam is a scheduled exam with an advance email reminder. ReminderSent
// flips false -> true exactly once, after a confirmed advance-reminder
// delivery; same-day reminders never read or write it.
type Exam struct {
	ID     uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID  `gorm:"type:uuid;index;not null" json:"userId"`
	AreaID *uuid.UUID `gorm:"type:uuid;index" json:"areaId"`

	Title       string    `gorm:"not null" json:"title"`
	DueDate     time.Time `gorm:"type:date;not null;index" json:"dueDate"`
	Description string    `gorm:"type:text" json:"description"`

	ReminderSent bool `gorm:"default:false" json:"reminderSent"`

	User User `gorm:"foreignKey:UserID" json:"-"`

	gorm.Model `json:"-"`
}

func (e *Exam) BeforeCreate(tx *gorm.DB) (err error) {
	e.ID = uuid.New()
	return
}
