package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product is a sellable item in the site shop.
type Product struct {
	gorm.Model
	Name        string  `json:"name" gorm:"size:200;not null"`
	Slug        string  `json:"slug" gorm:"size:200;uniqueIndex;not null"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"price" gorm:"not null"`
	Currency    string  `json:"currency" gorm:"size:3;default:'EUR'"`
	Stock       int     `json:"stock" gorm:"default:0"`
	IsActive    bool    `json:"isActive" gorm:"default:true;index"`

	Images datatypes.JSON `json:"images" gorm:"type:jsonb"` // array of image URLs
}
