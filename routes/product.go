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

type ProductInput struct {
	Name        string   `json:"name" validate:"required"`
	Slug        string   `json:"slug" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"required,min=0"`
	Currency    string   `json:"currency"`
	Stock       int      `json:"stock" validate:"min=0"`
	Images      []string `json:"images"`
	IsActive    *bool    `json:"isActive"`
}

// GET /api/products — public catalog, active products only.
func GetPublicProducts(ctx iris.Context) {
	var products []models.Product
	if err := storage.DB.Where("is_active = ?", true).Order("created_at DESC").Find(&products).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	ctx.JSON(iris.Map{"data": products})
}

// GET /api/products/{slug}
func GetProductBySlug(ctx iris.Context) {
	slug := ctx.Params().Get("slug")

	var product models.Product
	err := storage.DB.Where("slug = ? AND is_active = ?", slug, true).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(ctx, iris.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	ctx.JSON(iris.Map{"data": product})
}

func applyProductInput(product *models.Product, input ProductInput) {
	product.Name = input.Name
	product.Slug = input.Slug
	product.Description = input.Description
	product.Price = input.Price
	if input.Currency != "" {
		product.Currency = input.Currency
	}
	product.Stock = input.Stock
	if input.Images != nil {
		if b, err := json.Marshal(input.Images); err == nil {
			product.Images = datatypes.JSON(b)
		}
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
}

// POST /api/admin/products
func AdminCreateProduct(ctx iris.Context) {
	var input ProductInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	product := models.Product{IsActive: true}
	applyProductInput(&product, input)

	if err := storage.DB.Create(&product).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	utils.Audit(ctx, "product.create", "product", product.Slug, nil, product)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": product})
}

// PUT /api/admin/products/{slug}
func AdminUpdateProduct(ctx iris.Context) {
	slug := ctx.Params().Get("slug")

	var input ProductInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var product models.Product
	err := storage.DB.Where("slug = ?", slug).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(ctx, iris.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}

	before := product
	applyProductInput(&product, input)

	if err := storage.DB.Save(&product).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	utils.Audit(ctx, "product.update", "product", product.Slug, before, product)
	ctx.JSON(iris.Map{"data": product})
}

// DELETE /api/admin/products/{slug}
func AdminDeleteProduct(ctx iris.Context) {
	slug := ctx.Params().Get("slug")

	if err := storage.DB.Where("slug = ?", slug).Delete(&models.Product{}).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	utils.Audit(ctx, "product.delete", "product", slug, nil, nil)
	ctx.JSON(iris.Map{"success": true})
}
