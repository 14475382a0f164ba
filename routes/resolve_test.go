package routes

import (
	"testing"
	"time"

	"fougue-server/models"

	"gorm.io/datatypes"
)

func strPtr(s string) *string { return &s }

func weekdayRule(days string, slots ...models.TimeSlot) models.RecurringAvailabilityRule {
	return models.RecurringAvailabilityRule{
		ID:         "rule",
		DaysOfWeek: datatypes.JSON([]byte(days)),
		StartTime:  "09:00",
		EndTime:    "18:00",
		IsActive:   true,
		TimeSlots:  slots,
	}
}

func TestRuleAppliesOn(t *testing.T) {
	rule := weekdayRule("[1,3,5]")

	for _, day := range []int{1, 3, 5} {
		if !ruleAppliesOn(rule, day) {
			t.Errorf("rule should apply on weekday %d", day)
		}
	}
	for _, day := range []int{0, 2, 4, 6} {
		if ruleAppliesOn(rule, day) {
			t.Errorf("rule should not apply on weekday %d", day)
		}
	}

	if ruleAppliesOn(weekdayRule("not json"), 1) {
		t.Error("unparseable weekday set should never match")
	}
}

func TestWindowsOverlap(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aEnd string
		bStart, bEnd string
		want         bool
	}{
		{"disjoint", "09:00", "10:00", "11:00", "12:00", false},
		{"touching edges", "09:00", "10:00", "10:00", "11:00", false},
		{"partial overlap", "09:00", "11:00", "10:00", "12:00", true},
		{"contained", "09:00", "18:00", "10:00", "11:00", true},
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := windowsOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("windowsOverlap(%s-%s, %s-%s) = %v, want %v", tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}
		})
	}
}

func TestResolveDay(t *testing.T) {
	// 2026-01-05 is a Monday (weekday 1).
	monday := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	morningAndAfternoon := weekdayRule("[1]",
		models.TimeSlot{StartTime: "10:00", EndTime: "12:00", OrderIndex: 0},
		models.TimeSlot{StartTime: "14:00", EndTime: "16:00", OrderIndex: 1},
	)

	t.Run("recurring slots on a matching weekday", func(t *testing.T) {
		windows := resolveDay(monday, []models.RecurringAvailabilityRule{morningAndAfternoon}, nil)
		if len(windows) != 2 {
			t.Fatalf("expected 2 windows, got %d", len(windows))
		}
		if windows[0].StartTime != "10:00" || windows[1].StartTime != "14:00" {
			t.Errorf("unexpected windows: %+v", windows)
		}
	})

	t.Run("non-matching weekday yields nothing", func(t *testing.T) {
		tuesday := monday.AddDate(0, 0, 1)
		if windows := resolveDay(tuesday, []models.RecurringAvailabilityRule{morningAndAfternoon}, nil); len(windows) != 0 {
			t.Errorf("expected no windows, got %+v", windows)
		}
	})

	t.Run("legacy pair used when rule has no slots", func(t *testing.T) {
		windows := resolveDay(monday, []models.RecurringAvailabilityRule{weekdayRule("[1]")}, nil)
		if len(windows) != 1 || windows[0].StartTime != "09:00" || windows[0].EndTime != "18:00" {
			t.Errorf("unexpected windows: %+v", windows)
		}
	})

	t.Run("full-day block closes the day", func(t *testing.T) {
		overrides := []models.SpecificAvailabilityOverride{
			{Date: "2026-01-05", IsBlocked: true},
		}
		if windows := resolveDay(monday, []models.RecurringAvailabilityRule{morningAndAfternoon}, overrides); len(windows) != 0 {
			t.Errorf("expected day closed, got %+v", windows)
		}
	})

	t.Run("timed block removes only overlapping windows", func(t *testing.T) {
		overrides := []models.SpecificAvailabilityOverride{
			{Date: "2026-01-05", IsBlocked: true, StartTime: strPtr("11:00"), EndTime: strPtr("15:00")},
		}
		windows := resolveDay(monday, []models.RecurringAvailabilityRule{morningAndAfternoon}, overrides)
		if len(windows) != 0 {
			t.Errorf("both windows overlap the block, got %+v", windows)
		}

		overrides[0].StartTime = strPtr("13:00")
		overrides[0].EndTime = strPtr("13:30")
		windows = resolveDay(monday, []models.RecurringAvailabilityRule{morningAndAfternoon}, overrides)
		if len(windows) != 2 {
			t.Errorf("block between windows should remove nothing, got %+v", windows)
		}
	})

	t.Run("hours override redefines the day", func(t *testing.T) {
		overrides := []models.SpecificAvailabilityOverride{
			{Date: "2026-01-05", StartTime: strPtr("08:00"), EndTime: strPtr("09:30")},
		}
		windows := resolveDay(monday, []models.RecurringAvailabilityRule{morningAndAfternoon}, overrides)
		if len(windows) != 1 || windows[0].StartTime != "08:00" || windows[0].EndTime != "09:30" {
			t.Errorf("expected single redefined window, got %+v", windows)
		}
	})

	t.Run("override on another date is ignored", func(t *testing.T) {
		overrides := []models.SpecificAvailabilityOverride{
			{Date: "2026-01-06", IsBlocked: true},
		}
		if windows := resolveDay(monday, []models.RecurringAvailabilityRule{morningAndAfternoon}, overrides); len(windows) != 2 {
			t.Errorf("expected both windows, got %+v", windows)
		}
	})
}
