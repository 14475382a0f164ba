package routes

import (
	"errors"

	"fougue-server/models"
	"fougue-server/storage"
	"fougue-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type CalendarInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	OwnerEmail  string `json:"ownerEmail"`
	Color       string `json:"color"`
	IsActive    *bool  `json:"isActive"`
}

// GET /api/admin/calendars
func AdminListCalendars(ctx iris.Context) {
	var calendars []models.Calendar
	if err := storage.DB.Order("name ASC").Find(&calendars).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	ctx.JSON(iris.Map{"data": calendars})
}

// POST /api/admin/calendars
func AdminCreateCalendar(ctx iris.Context) {
	var input CalendarInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	calendar := models.Calendar{
		Name:        input.Name,
		Description: input.Description,
		OwnerEmail:  input.OwnerEmail,
		Color:       input.Color,
		IsActive:    true,
	}
	if input.IsActive != nil {
		calendar.IsActive = *input.IsActive
	}

	if err := storage.DB.Create(&calendar).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	utils.Audit(ctx, "calendar.create", "calendar", calendar.ID, nil, calendar)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": calendar})
}

// PUT /api/admin/calendars/{id}
func AdminUpdateCalendar(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var input CalendarInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var calendar models.Calendar
	err := storage.DB.Where("id = ?", id).First(&calendar).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(ctx, iris.StatusNotFound, "calendar not found")
		return
	}
	if err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}

	before := calendar
	calendar.Name = input.Name
	calendar.Description = input.Description
	calendar.OwnerEmail = input.OwnerEmail
	calendar.Color = input.Color
	if input.IsActive != nil {
		calendar.IsActive = *input.IsActive
	}

	if err := storage.DB.Save(&calendar).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	utils.Audit(ctx, "calendar.update", "calendar", calendar.ID, before, calendar)
	ctx.JSON(iris.Map{"data": calendar})
}

// DELETE /api/admin/calendars/{id}
func AdminDeleteCalendar(ctx iris.Context) {
	id := ctx.Params().Get("id")

	if err := storage.DB.Where("id = ?", id).Delete(&models.Calendar{}).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	utils.Audit(ctx, "calendar.delete", "calendar", id, nil, nil)
	ctx.JSON(iris.Map{"success": true})
}
