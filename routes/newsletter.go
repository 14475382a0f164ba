package routes

import (
	"errors"
	"strings"

	"fougue-server/models"
	"fougue-server/services"
	"fougue-server/storage"
	"fougue-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type SubscribeInput struct {
	Email  string `json:"email" validate:"required,email"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

// POST /api/newsletter/subscribe — idempotent on email; re-subscribing an
// unsubscribed address flips it back on.
func SubscribeNewsletter(ctx iris.Context) {
	var input SubscribeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing models.NewsletterSubscriber
	err := storage.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		if !existing.IsSubscribed {
			existing.IsSubscribed = true
			if err := storage.DB.Save(&existing).Error; err != nil {
				utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
				return
			}
		}
		ctx.JSON(iris.Map{"data": existing})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}

	subscriber := models.NewsletterSubscriber{
		Email:        email,
		Name:         input.Name,
		Source:       input.Source,
		IsSubscribed: true,
	}
	if err := storage.DB.Create(&subscriber).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}

	services.Mailer.SendNewsletterWelcome(subscriber)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": subscriber})
}

// POST /api/newsletter/unsubscribe
func UnsubscribeNewsletter(ctx iris.Context) {
	var input struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Matching zero rows is fine, the address was never subscribed.
	err := storage.DB.Model(&models.NewsletterSubscriber{}).
		Where("email = ?", email).
		Update("is_subscribed", false).Error
	if err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}

	ctx.JSON(iris.Map{"success": true})
}

// GET /api/admin/newsletter
func AdminListSubscribers(ctx iris.Context) {
	var subscribers []models.NewsletterSubscriber
	if err := storage.DB.Where("is_subscribed = ?", true).Order("created_at DESC").Find(&subscribers).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	ctx.JSON(iris.Map{"data": subscribers})
}
