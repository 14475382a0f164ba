package routes

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"fougue-server/models"
	"fougue-server/services"
	"fougue-server/storage"
	"fougue-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type BookingInput struct {
	ExperienceSlug string `json:"experienceSlug" validate:"required"`
	CustomerName   string `json:"customerName" validate:"required"`
	CustomerEmail  string `json:"customerEmail" validate:"required,email"`
	CustomerPhone  string `json:"customerPhone"`
	Date           string `json:"date" validate:"required"`
	StartTime      string `json:"startTime"`
	PartySize      int    `json:"partySize" validate:"min=1"`
	Notes          string `json:"notes"`
}

// POST /api/bookings — public booking request for an experience.
func CreateBooking(ctx iris.Context) {
	var input BookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		return
	}

	var experience models.Experience
	err := storage.DB.Where("slug = ? AND is_active = ?", input.ExperienceSlug, true).First(&experience).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(ctx, iris.StatusNotFound, "experience not found")
		return
	}
	if err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}

	if input.CustomerPhone != "" && !utils.ValidatePhoneNumber(input.CustomerPhone) {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid phone number")
		return
	}

	booking := models.Booking{
		ExperienceSlug: input.ExperienceSlug,
		CustomerName:   input.CustomerName,
		CustomerEmail:  input.CustomerEmail,
		CustomerPhone:  utils.NormalizePhoneNumber(input.CustomerPhone),
		Date:           input.Date,
		StartTime:      input.StartTime,
		PartySize:      input.PartySize,
		Status:         "pending",
		TotalPrice:     experience.PricePerPerson * float64(input.PartySize),
		Notes:          input.Notes,
	}
	if err := storage.DB.Create(&booking).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}

	// Confirmation mail is best effort; the booking row is the source of truth.
	services.Mailer.SendBookingConfirmation(booking, experience)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": booking})
}

// GET /api/admin/bookings?status=
func AdminListBookings(ctx iris.Context) {
	q := storage.DB.Model(&models.Booking{})
	if status := ctx.URLParam("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	var bookings []models.Booking
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	ctx.JSON(iris.Map{"data": bookings})
}

// PATCH /api/admin/bookings/{id}/status
func AdminUpdateBookingStatus(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid booking id")
		return
	}

	var input struct {
		Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var booking models.Booking
	if err := storage.DB.First(&booking, id).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "booking not found")
		return
	}

	before := booking
	booking.Status = input.Status
	if err := storage.DB.Save(&booking).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}
	utils.Audit(ctx, "booking.status", "booking", strconv.FormatUint(uint64(booking.ID), 10), before, booking)
	ctx.JSON(iris.Map{"data": booking})
}

// PurchaseHistoryEntry is one line of a customer's merged history: product
// orders and experience bookings folded into a single list.
type PurchaseHistoryEntry struct {
	Kind      string    `json:"kind"` // order | booking
	ID        uint      `json:"id"`
	Status    string    `json:"status"`
	Total     float64   `json:"total"`
	Reference string    `json:"reference"` // order number or experience slug
	CreatedAt time.Time `json:"createdAt"`
}

// mergePurchaseHistory combines orders and bookings for one customer.
// A booking paid through an order carries that order's id; such bookings are
// already represented by the order line and are dropped to avoid double
// counting.
func mergePurchaseHistory(orders []models.Order, bookings []models.Booking) []PurchaseHistoryEntry {
	orderIDs := make(map[uint]bool, len(orders))
	entries := make([]PurchaseHistoryEntry, 0, len(orders)+len(bookings))

	for _, o := range orders {
		orderIDs[o.ID] = true
		entries = append(entries, PurchaseHistoryEntry{
			Kind:      "order",
			ID:        o.ID,
			Status:    o.Status,
			Total:     o.TotalPrice,
			CreatedAt: o.CreatedAt,
		})
	}

	for _, b := range bookings {
		if b.OrderID != nil && orderIDs[*b.OrderID] {
			continue
		}
		entries = append(entries, PurchaseHistoryEntry{
			Kind:      "booking",
			ID:        b.ID,
			Status:    b.Status,
			Total:     b.TotalPrice,
			Reference: b.ExperienceSlug,
			CreatedAt: b.CreatedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries
}

// GET /api/user/orders?email= — merged purchase history for a customer.
func GetUserOrders(ctx iris.Context) {
	email := ctx.URLParam("email")
	if email == "" {
		utils.JSONError(ctx, iris.StatusBadRequest, "email is required")
		return
	}

	var orders []models.Order
	if err := storage.DB.Preload("Items").Where("customer_email = ?", email).Find(&orders).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}

	var bookings []models.Booking
	if err := storage.DB.Where("customer_email = ?", email).Find(&bookings).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}

	ctx.JSON(iris.Map{"data": mergePurchaseHistory(orders, bookings)})
}
