package routes

import (
	"testing"
	"time"

	"fougue-server/models"

	"gorm.io/gorm"
)

func orderAt(id uint, total float64, created time.Time) models.Order {
	return models.Order{
		Model:      gorm.Model{ID: id, CreatedAt: created},
		Status:     "paid",
		TotalPrice: total,
	}
}

func bookingAt(id uint, slug string, created time.Time, orderID *uint) models.Booking {
	return models.Booking{
		Model:          gorm.Model{ID: id, CreatedAt: created},
		ExperienceSlug: slug,
		Status:         "confirmed",
		TotalPrice:     50,
		OrderID:        orderID,
	}
}

func TestMergePurchaseHistory(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	orderID := uint(7)

	orders := []models.Order{
		orderAt(7, 120, base),
		orderAt(8, 30, base.Add(2*time.Hour)),
	}
	bookings := []models.Booking{
		bookingAt(1, "sunset-kayak-tour", base.Add(time.Hour), nil),
		// paid through order 7, must not appear twice
		bookingAt(2, "wine-tasting", base.Add(3*time.Hour), &orderID),
	}

	entries := mergePurchaseHistory(orders, bookings)

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(entries), entries)
	}

	// newest first
	for i := 1; i < len(entries); i++ {
		if entries[i].CreatedAt.After(entries[i-1].CreatedAt) {
			t.Errorf("entries out of order at %d: %+v", i, entries)
		}
	}

	for _, e := range entries {
		if e.Kind == "booking" && e.ID == 2 {
			t.Errorf("booking linked to a listed order should be folded into it: %+v", e)
		}
	}
}

func TestMergePurchaseHistoryKeepsUnlinkedBookings(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// The linked order is not in the result set (other customer, stale link);
	// the booking must survive on its own.
	ghostOrder := uint(99)
	bookings := []models.Booking{
		bookingAt(1, "sunset-kayak-tour", base, &ghostOrder),
	}

	entries := mergePurchaseHistory(nil, bookings)
	if len(entries) != 1 || entries[0].Kind != "booking" {
		t.Fatalf("expected the lone booking to be kept, got %+v", entries)
	}
	if entries[0].Reference != "sunset-kayak-tour" {
		t.Errorf("booking reference should be the experience slug, got %q", entries[0].Reference)
	}
}

func TestMergePurchaseHistoryEmpty(t *testing.T) {
	if entries := mergePurchaseHistory(nil, nil); len(entries) != 0 {
		t.Errorf("expected no entries, got %+v", entries)
	}
}
