package models

import "gorm.io/gorm"

// Booking is a customer reservation of an experience on a given date.
// ExperienceSlug is the free-form identifier used across the site; it is not
// a foreign key so bookings survive experience renames.
type Booking struct {
	gorm.Model
	ExperienceSlug string `json:"experienceSlug" gorm:"size:200;not null;index"`

	CustomerName  string `json:"customerName" gorm:"size:200;not null"`
	CustomerEmail string `json:"customerEmail" gorm:"size:200;not null;index"`
	CustomerPhone string `json:"customerPhone" gorm:"size:50"`

	Date      string `json:"date" gorm:"size:10;not null;index"` // "2006-01-02"
	StartTime string `json:"startTime" gorm:"size:5"`
	PartySize int    `json:"partySize" gorm:"default:1"`

	Status     string  `json:"status" gorm:"size:20;default:'pending';index"` // pending | confirmed | cancelled
	TotalPrice float64 `json:"totalPrice"`
	Notes      string  `json:"notes" gorm:"type:text"`

	// Set when the booking was paid through a product order; used to
	// de-duplicate the merged purchase history.
	OrderID *uint `json:"orderID" gorm:"index"`
}
