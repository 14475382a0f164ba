package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Calendar is a schedule owner (a guide, a room, a piece of equipment) that
// availability rules can be scoped to.
type Calendar struct {
	ID          string `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string `json:"name" gorm:"size:200;not null"`
	Description string `json:"description" gorm:"type:text"`
	OwnerEmail  string `json:"ownerEmail" gorm:"size:200"`
	Color       string `json:"color" gorm:"size:7"` // hex, for the back-office UI
	IsActive    bool   `json:"isActive" gorm:"default:true"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Calendar) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
