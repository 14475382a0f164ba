package routes

import (
	"encoding/json"
	"sort"
	"time"

	"fougue-server/models"
	"fougue-server/storage"
	"fougue-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// Availability resolution: merges recurring rules and specific overrides
// into concrete per-day open windows so clients don't have to reimplement
// the reconciliation themselves.

const maxResolveDays = 92

type ResolvedWindow struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type ResolvedDay struct {
	Date    string           `json:"date"`
	Windows []ResolvedWindow `json:"windows"`
}

// ruleAppliesOn reports whether the rule's weekday set contains the given
// weekday (0=Sunday .. 6=Saturday).
func ruleAppliesOn(rule models.RecurringAvailabilityRule, weekday int) bool {
	var days []int
	if err := json.Unmarshal(rule.DaysOfWeek, &days); err != nil {
		return false
	}
	for _, d := range days {
		if d == weekday {
			return true
		}
	}
	return false
}

// ruleWindows returns the rule's open windows: the ordered slot children when
// present, otherwise the legacy top-level pair.
func ruleWindows(rule models.RecurringAvailabilityRule) []ResolvedWindow {
	if len(rule.TimeSlots) > 0 {
		out := make([]ResolvedWindow, 0, len(rule.TimeSlots))
		for _, s := range rule.TimeSlots {
			out = append(out, ResolvedWindow{StartTime: s.StartTime, EndTime: s.EndTime})
		}
		return out
	}
	if rule.StartTime == "" || rule.EndTime == "" {
		return nil
	}
	return []ResolvedWindow{{StartTime: rule.StartTime, EndTime: rule.EndTime}}
}

// windowsOverlap works on "HH:MM" strings, which compare correctly as text.
func windowsOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// resolveDay computes the open windows for one date. Overrides win over
// recurring rules: a non-blocked override with times redefines the day's
// hours outright, a full-day block closes the day, and a timed block removes
// every window it overlaps.
func resolveDay(date time.Time, rules []models.RecurringAvailabilityRule, overrides []models.SpecificAvailabilityOverride) []ResolvedWindow {
	dateStr := date.Format("2006-01-02")
	weekday := int(date.Weekday())

	var windows []ResolvedWindow
	for _, rule := range rules {
		if !ruleAppliesOn(rule, weekday) {
			continue
		}
		windows = append(windows, ruleWindows(rule)...)
	}

	for _, o := range overrides {
		if o.Date != dateStr {
			continue
		}
		switch {
		case !o.IsBlocked && o.StartTime != nil && o.EndTime != nil:
			windows = []ResolvedWindow{{StartTime: *o.StartTime, EndTime: *o.EndTime}}
		case o.IsBlocked && (o.StartTime == nil || o.EndTime == nil):
			windows = nil
		case o.IsBlocked:
			kept := windows[:0]
			for _, w := range windows {
				if !windowsOverlap(w.StartTime, w.EndTime, *o.StartTime, *o.EndTime) {
					kept = append(kept, w)
				}
			}
			windows = kept
		}
	}

	sort.Slice(windows, func(i, j int) bool { return windows[i].StartTime < windows[j].StartTime })
	return windows
}

// GET /api/availability/resolved?experienceId&calendarId&startDate&endDate
func GetResolvedAvailability(ctx iris.Context) {
	startStr := ctx.URLParam("startDate")
	endStr := ctx.URLParam("endDate")
	if startStr == "" || endStr == "" {
		utils.JSONError(ctx, iris.StatusBadRequest, "startDate and endDate are required")
		return
	}
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "startDate must be formatted as YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "endDate must be formatted as YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		utils.JSONError(ctx, iris.StatusBadRequest, "endDate must not be before startDate")
		return
	}
	if end.Sub(start) > maxResolveDays*24*time.Hour {
		utils.JSONError(ctx, iris.StatusBadRequest, "date range too large")
		return
	}

	experienceID := ctx.URLParam("experienceId")
	calendarID := ctx.URLParam("calendarId")

	var rules []models.RecurringAvailabilityRule
	err = recurringQuery(experienceID, calendarID).
		Preload("TimeSlots", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Find(&rules).Error
	if err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}

	q := storage.DB.Model(&models.SpecificAvailabilityOverride{}).
		Where("date >= ? AND date <= ?", startStr, endStr)
	if experienceID != "" {
		q = q.Where("experience_id = ?", experienceID)
	}
	if cal := normalizeCalendarID(calendarID); cal != nil {
		q = q.Where("calendar_id = ?", *cal)
	}
	var overrides []models.SpecificAvailabilityOverride
	if err := q.Find(&overrides).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
		return
	}

	var days []ResolvedDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, ResolvedDay{
			Date:    d.Format("2006-01-02"),
			Windows: resolveDay(d, rules, overrides),
		})
	}

	ctx.JSON(iris.Map{"days": days})
}
