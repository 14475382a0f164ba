package main

import (
	"fmt"
	"log"
	"os"

	"fougue-server/models"
	"fougue-server/storage"

	"golang.org/x/crypto/bcrypt"
)

// Seeds (or updates) the back-office account from ADMIN_EMAIL / ADMIN_PASSWORD.
// Run once per environment: go run ./scripts
func main() {
	storage.InitializeDB()

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var admin models.AdminUser
	result := storage.DB.Where("email = ?", email).First(&admin)
	if result.Error == nil {
		admin.Password = string(hash)
		admin.IsActive = true
		if err := storage.DB.Save(&admin).Error; err != nil {
			log.Fatalf("failed to update admin: %v", err)
		}
		fmt.Println("Updated admin account:", email)
		return
	}

	admin = models.AdminUser{
		Email:    email,
		Name:     os.Getenv("ADMIN_NAME"),
		Password: string(hash),
		Role:     "super_admin",
		IsActive: true,
	}
	if err := storage.DB.Create(&admin).Error; err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}
	fmt.Println("Created admin account:", email)
}
