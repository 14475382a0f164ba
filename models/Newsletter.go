package models

import "gorm.io/gorm"

type NewsletterSubscriber struct {
	gorm.Model
	Email        string `json:"email" gorm:"size:200;uniqueIndex;not null"`
	Name         string `json:"name" gorm:"size:200"`
	Source       string `json:"source" gorm:"size:100"` // footer, checkout, popup
	IsSubscribed bool   `json:"isSubscribed" gorm:"default:true"`
}
