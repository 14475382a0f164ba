package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Experience struct {
	gorm.Model

	// Basic Info
	Title string `json:"title" gorm:"not null"`
	Slug  string `json:"slug" gorm:"size:200;uniqueIndex;not null"` // public identifier, human readable
	City  string `json:"city"`

	// Details
	Description string `json:"description" gorm:"type:text"`
	Duration    int    `json:"duration"` // in minutes
	Highlights  string `json:"highlights" gorm:"type:text"`

	// Logistics
	GroupSize      int     `json:"groupSize"`
	StartTime      string  `json:"startTime"` // "09:00"
	EndTime        string  `json:"endTime"`   // "17:00"
	PricePerPerson float64 `json:"pricePerPerson"`

	// Media
	CoverImageURL string         `json:"coverImageURL"`
	Photos        datatypes.JSON `json:"photos" gorm:"type:jsonb"` // array of image URLs

	// Status
	IsActive bool `json:"isActive" gorm:"default:true;index"`
}

// ExperienceSummary is the compact shape embedded in availability responses.
type ExperienceSummary struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	City  string `json:"city"`
}

func (e *Experience) Summary() ExperienceSummary {
	return ExperienceSummary{Slug: e.Slug, Title: e.Title, City: e.City}
}
