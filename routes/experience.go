package routes

import (
	"encoding/json"
	"errors"

	"fougue-server/models"
	"fougue-server/storage"
	"fougue-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ExperienceInput struct {
	Title          string   `json:"title" validate:"required"`
	Slug           string   `json:"slug" validate:"required"`
	City           string   `json:"city"`
	Description    string   `json:"description"`
	Duration       int      `json:"duration"`
	Highlights     string   `json:"highlights"`
	GroupSize      int      `json:"groupSize"`
	StartTime      string   `json:"startTime"`
	EndTime        string   `json:"endTime"`
	PricePerPerson float64  `json:"pricePerPerson"`
	CoverImageURL  string   `json:"coverImageURL"`
	Photos         []string `json:"photos"`
	IsActive       *bool    `json:"isActive"`
}

// GET /api/experiences — public listing, active experiences only.
func GetPublicExperiences(ctx iris.Context) {
	var experiences []models.Experience
	if err := storage.DB.Where("is_active = ?", true).Order("created_at DESC").Find(&experiences).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	ctx.JSON(iris.Map{"data": experiences})
}

// GET /api/experiences/{slug}
func GetExperienceBySlug(ctx iris.Context) {
	slug := ctx.Params().Get("slug")

	var experience models.Experience
	err := storage.DB.Where("slug = ? AND is_active = ?", slug, true).First(&experience).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(ctx, iris.StatusNotFound, "experience not found")
		return
	}
	if err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	ctx.JSON(iris.Map{"data": experience})
}

func applyExperienceInput(experience *models.Experience, input ExperienceInput) {
	experience.Title = input.Title
	experience.Slug = input.Slug
	experience.City = input.City
	experience.Description = input.Description
	experience.Duration = input.Duration
	experience.Highlights = input.Highlights
	experience.GroupSize = input.GroupSize
	experience.StartTime = input.StartTime
	experience.EndTime = input.EndTime
	experience.PricePerPerson = input.PricePerPerson
	experience.CoverImageURL = input.CoverImageURL
	if input.Photos != nil {
		if b, err := json.Marshal(input.Photos); err == nil {
			experience.Photos = datatypes.JSON(b)
		}
	}
	if input.IsActive != nil {
		experience.IsActive = *input.IsActive
	}
}

// POST /api/admin/experiences
func AdminCreateExperience(ctx iris.Context) {
	var input ExperienceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	experience := models.Experience{IsActive: true}
	applyExperienceInput(&experience, input)

	if err := storage.DB.Create(&experience).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	utils.Audit(ctx, "experience.create", "experience", experience.Slug, nil, experience)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": experience})
}

// PUT /api/admin/experiences/{slug}
func AdminUpdateExperience(ctx iris.Context) {
	slug := ctx.Params().Get("slug")

	var input ExperienceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var experience models.Experience
	err := storage.DB.Where("slug = ?", slug).First(&experience).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(ctx, iris.StatusNotFound, "experience not found")
		return
	}
	if err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}

	before := experience
	applyExperienceInput(&experience, input)

	if err := storage.DB.Save(&experience).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	utils.Audit(ctx, "experience.update", "experience", experience.Slug, before, experience)
	ctx.JSON(iris.Map{"data": experience})
}

// DELETE /api/admin/experiences/{slug}
func AdminDeleteExperience(ctx iris.Context) {
	slug := ctx.Params().Get("slug")

	if err := storage.DB.Where("slug = ?", slug).Delete(&models.Experience{}).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	utils.Audit(ctx, "experience.delete", "experience", slug, nil, nil)
	ctx.JSON(iris.Map{"success": true})
}
