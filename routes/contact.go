package routes

import (
	"fougue-server/models"
	"fougue-server/services"
	"fougue-server/storage"
	"fougue-server/utils"

	"github.com/kataras/iris/v12"
)

type ContactInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

// POST /api/contact
func CreateContactMessage(ctx iris.Context) {
	var input ContactInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	message := models.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	}
	if err := storage.DB.Create(&message).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}

	// Inbox notification is best effort; the row is already saved.
	services.Mailer.SendContactNotification(message)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": message})
}

// GET /api/admin/contact?unread=true
func AdminListContactMessages(ctx iris.Context) {
	q := storage.DB.Model(&models.ContactMessage{})
	if ctx.URLParam("unread") == "true" {
		q = q.Where("is_read = ?", false)
	}
	var messages []models.ContactMessage
	if err := q.Order("created_at DESC").Find(&messages).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	ctx.JSON(iris.Map{"data": messages})
}

// PATCH /api/admin/contact/{id}/read
func AdminMarkContactRead(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid message id")
		return
	}

	var message models.ContactMessage
	if err := storage.DB.First(&message, id).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "message not found")
		return
	}

	message.IsRead = true
	if err := storage.DB.Save(&message).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	ctx.JSON(iris.Map{"data": message})
}
