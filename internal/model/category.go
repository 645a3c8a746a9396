package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is the record type managed by the store API.
type Category struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;size:255;not null"`
	Note      string    `json:"note,omitempty" gorm:"size:1024"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
