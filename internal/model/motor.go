package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Motor struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Name        string    `json:"name" gorm:"size:120;not null"`
	Brand       string    `json:"brand" gorm:"size:64;not null;index"`
	Model       string    `json:"model" gorm:"size:64;not null"`
	Year        int       `json:"year" gorm:"not null"`
	Price       int64     `json:"price" gorm:"not null"`
	Stock       int       `json:"stock" gorm:"not null;default:0"`
	Image       *string   `json:"image,omitempty" gorm:"size:512"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Motor) TableName() string {
	return "motors"
}

func (m *Motor) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
