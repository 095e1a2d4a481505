package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AreaID uuid.UUID `gorm:"type:uuid;index;not null" json:"areaId"`

	Title       string     `gorm:"not null" json:"title"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`

	gorm.Model `json:"-"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) (err error) {
	t.ID = uuid.New()
	return
}
