package routes

import (
	"fougue-server/models"
	"fougue-server/storage"
	"fougue-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"
)

type AdminLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminLogin exchanges credentials for a server-issued token pair. The bcrypt
// comparison and the Redis-backed refresh allowlist keep all credential
// checking on the server.
func AdminLogin(ctx iris.Context) {
	var input AdminLoginInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	errorMsg := "invalid email or password"

	var admin models.AdminUser
	if err := storage.DB.Where("email = ? AND is_active = ?", input.Email, true).First(&admin).Error; err != nil {
		utils.JSONError(ctx, iris.StatusUnauthorized, errorMsg)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.Password)); err != nil {
		utils.JSONError(ctx, iris.StatusUnauthorized, errorMsg)
		return
	}

	tokenPair, err := utils.CreateTokenPair(admin.ID, admin.Role)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
		"admin": iris.Map{
			"id":    admin.ID,
			"email": admin.Email,
			"name":  admin.Name,
			"role":  admin.Role,
		},
	})
}

// AdminRefresh rotates a verified refresh token.
func AdminRefresh(ctx iris.Context) {
	utils.RefreshToken(ctx, func(id uint) (string, error) {
		var admin models.AdminUser
		if err := storage.DB.Where("id = ? AND is_active = ?", id, true).First(&admin).Error; err != nil {
			return "", err
		}
		return admin.Role, nil
	})
}

// AdminLogout revokes the submitted refresh token.
func AdminLogout(ctx iris.Context) {
	var input utils.RefreshTokenInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	utils.RevokeRefreshToken(input.RefreshToken)
	ctx.JSON(iris.Map{"success": true})
}

// AdminStats powers the back-office dashboard tiles.
func AdminStats(ctx iris.Context) {
	var experiences, bookings, orders, subscribers, unreadMessages int64

	storage.DB.Model(&models.Experience{}).Count(&experiences)
	storage.DB.Model(&models.Booking{}).Count(&bookings)
	storage.DB.Model(&models.Order{}).Count(&orders)
	storage.DB.Model(&models.NewsletterSubscriber{}).Where("is_subscribed = ?", true).Count(&subscribers)
	storage.DB.Model(&models.ContactMessage{}).Where("is_read = ?", false).Count(&unreadMessages)

	ctx.JSON(iris.Map{
		"experiences":    experiences,
		"bookings":       bookings,
		"orders":         orders,
		"subscribers":    subscribers,
		"unreadMessages": unreadMessages,
	})
}

// AdminActivity lists the most recent audit entries.
func AdminActivity(ctx iris.Context) {
	limit := ctx.URLParamIntDefault("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var entries []models.AuditLog
	if err := storage.DB.Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	ctx.JSON(iris.Map{"data": entries})
}
