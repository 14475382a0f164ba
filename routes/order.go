package routes

import (
	"strconv"

	"fougue-server/models"
	"fougue-server/storage"
	"fougue-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type OrderItemInput struct {
	ProductID uint `json:"productID" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

type OrderInput struct {
	CustomerName    string           `json:"customerName" validate:"required"`
	CustomerEmail   string           `json:"customerEmail" validate:"required,email"`
	ShippingAddress string           `json:"shippingAddress"`
	Notes           string           `json:"notes"`
	Items           []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// POST /api/orders — create an order from the public shop. Prices are read
// from the catalog at purchase time, never trusted from the client.
func CreateOrder(ctx iris.Context) {
	var input OrderInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var order models.Order
	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			CustomerName:    input.CustomerName,
			CustomerEmail:   input.CustomerEmail,
			Status:          "pending",
			ShippingAddress: input.ShippingAddress,
			Notes:           input.Notes,
		}

		var total float64
		items := make([]models.OrderItem, 0, len(input.Items))
		for _, it := range input.Items {
			var product models.Product
			if err := tx.Where("id = ? AND is_active = ?", it.ProductID, true).First(&product).Error; err != nil {
				return err
			}
			total += product.Price * float64(it.Quantity)
			order.Currency = product.Currency
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  it.Quantity,
				UnitPrice: product.Price,
			})
		}

		order.TotalPrice = total
		order.Items = items
		return tx.Create(&order).Error
	})
	if txErr != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, txErr.Error())
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": order})
}

// GET /api/admin/orders?status=
func AdminListOrders(ctx iris.Context) {
	q := storage.DB.Model(&models.Order{}).Preload("Items").Preload("Items.Product")
	if status := ctx.URLParam("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	var orders []models.Order
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	ctx.JSON(iris.Map{"data": orders})
}

// PATCH /api/admin/orders/{id}/status
func AdminUpdateOrderStatus(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid order id")
		return
	}

	var input struct {
		Status string `json:"status" validate:"required,oneof=pending paid shipped cancelled"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var order models.Order
	if err := storage.DB.First(&order, id).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "order not found")
		return
	}

	before := order
	order.Status = input.Status
	if err := storage.DB.Save(&order).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	utils.Audit(ctx, "order.status", "order", strconv.FormatUint(uint64(order.ID), 10), before, order)
	ctx.JSON(iris.Map{"data": order})
}
