package models

import "gorm.io/gorm"

// ContactMessage is a contact-form submission shown in the back-office inbox.
type ContactMessage struct {
	gorm.Model
	Name    string `json:"name" gorm:"size:200;not null"`
	Email   string `json:"email" gorm:"size:200;not null"`
	Subject string `json:"subject" gorm:"size:300"`
	Message string `json:"message" gorm:"type:text;not null"`
	IsRead  bool   `json:"isRead" gorm:"default:false;index"`
}
