package models

import "gorm.io/gorm"

// AdminUser is a back-office account. Passwords are bcrypt hashes; sessions
// are server-issued JWT pairs with the refresh token allowlisted in Redis.
type AdminUser struct {
	gorm.Model
	Email    string `json:"email" gorm:"size:200;uniqueIndex;not null"`
	Name     string `json:"name" gorm:"size:200"`
	Password string `json:"-" gorm:"size:100;not null"`
	Role     string `json:"role" gorm:"size:20;default:'admin'"` // admin | super_admin
	IsActive bool   `json:"isActive" gorm:"default:true"`
}
