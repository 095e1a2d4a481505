package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Area struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Tasks []Task `gorm:"foreignKey:AreaID" json:"-"`

	gorm.Model `json:"-"`
}

func (a *Area) BeforeCreate(tx *gorm.DB) (err error) {
	a.ID = uuid.New()
	return
}
