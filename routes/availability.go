package routes

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"fougue-server/models"
	"fougue-server/storage"
	"fougue-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Availability Rule Store
//
// Recurring rules and specific overrides live in separate tables and are
// queried independently; the read endpoint returns them side by side and
// leaves reconciliation to the resolver (see resolve.go) or the client.

const (
	availabilityRecurring = "recurring"
	availabilitySpecific  = "specific"
	availabilityAll       = "all"

	defaultRuleStart = "09:00"
	defaultRuleEnd   = "18:00"
)

type TimeSlotInput struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type AvailabilityInput struct {
	Type string `json:"type"`

	// recurring fields
	Name       string          `json:"name"`
	DaysOfWeek []int           `json:"daysOfWeek"`
	StartTime  string          `json:"startTime"`
	EndTime    string          `json:"endTime"`
	Slots      []TimeSlotInput `json:"slots"`
	IsActive   *bool           `json:"isActive"`

	// specific fields
	Date      string `json:"date"`
	IsBlocked bool   `json:"isBlocked"`
	Reason    string `json:"reason"`

	// shared scoping
	CalendarID   string `json:"calendarId"`
	ExperienceID string `json:"experienceId"`
}

// normalizeCalendarID returns the id when it is UUID-shaped, otherwise nil.
// Invalid calendar references are dropped silently, never rejected.
func normalizeCalendarID(id string) *string {
	if id == "" {
		return nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	return &id
}

// normalizeExperienceID accepts any non-empty identifier; experiences use
// human-readable slugs, so no format check is applied.
func normalizeExperienceID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// monthBounds expands "YYYY-MM" into the first and last day of that month,
// both inclusive.
func monthBounds(month string) (string, string, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return "", "", errors.New("month must be formatted as YYYY-MM")
	}
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02"), nil
}

// ruleWindow picks the rule's legacy top-level start/end pair: the first
// slot's times win, then the flat input pair, then the site defaults.
func ruleWindow(slots []TimeSlotInput, start, end string) (string, string) {
	if len(slots) > 0 {
		return slots[0].StartTime, slots[0].EndTime
	}
	if start == "" {
		start = defaultRuleStart
	}
	if end == "" {
		end = defaultRuleEnd
	}
	return start, end
}

// slotRows maps submitted slots onto child rows with dense zero-based
// OrderIndex matching submission order.
func slotRows(ruleID string, slots []TimeSlotInput) []models.TimeSlot {
	rows := make([]models.TimeSlot, 0, len(slots))
	for i, s := range slots {
		rows = append(rows, models.TimeSlot{
			RuleID:     ruleID,
			StartTime:  s.StartTime,
			EndTime:    s.EndTime,
			OrderIndex: i,
		})
	}
	return rows
}

func daysOfWeekJSON(days []int) datatypes.JSON {
	if days == nil {
		days = []int{}
	}
	b, _ := json.Marshal(days)
	return datatypes.JSON(b)
}

func recurringQuery(experienceID, calendarID string) *gorm.DB {
	q := storage.DB.Model(&models.RecurringAvailabilityRule{}).Where("is_active = ?", true)
	if experienceID != "" {
		q = q.Where("experience_id = ?", experienceID)
	}
	if cal := normalizeCalendarID(calendarID); cal != nil {
		q = q.Where("calendar_id = ?", *cal)
	}
	return q
}

func specificQuery(ctx iris.Context, experienceID, calendarID string) (*gorm.DB, error) {
	q := storage.DB.Model(&models.SpecificAvailabilityOverride{})
	if experienceID != "" {
		q = q.Where("experience_id = ?", experienceID)
	}
	if cal := normalizeCalendarID(calendarID); cal != nil {
		q = q.Where("calendar_id = ?", *cal)
	}
	if date := ctx.URLParam("date"); date != "" {
		q = q.Where("date = ?", date)
	} else if month := ctx.URLParam("month"); month != "" {
		first, last, err := monthBounds(month)
		if err != nil {
			return nil, err
		}
		q = q.Where("date >= ? AND date <= ?", first, last)
	}
	return q, nil
}

// GET /api/availability?experienceId&calendarId&type&date&month
func GetAvailability(ctx iris.Context) {
	kind := ctx.URLParamDefault("type", availabilityAll)
	if kind != availabilityRecurring && kind != availabilitySpecific && kind != availabilityAll {
		utils.JSONError(ctx, iris.StatusBadRequest, "type must be recurring, specific or all")
		return
	}

	experienceID := ctx.URLParam("experienceId")
	calendarID := ctx.URLParam("calendarId")

	response := iris.Map{}

	if kind == availabilityRecurring || kind == availabilityAll {
		var rules []models.RecurringAvailabilityRule
		err := recurringQuery(experienceID, calendarID).
			Preload("TimeSlots", func(db *gorm.DB) *gorm.DB {
				return db.Order("order_index ASC")
			}).
			Order("created_at DESC").
			Find(&rules).Error
		if err != nil {
			utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
			return
		}
		response["recurring"] = rules
	}

	if kind == availabilitySpecific || kind == availabilityAll {
		q, err := specificQuery(ctx, experienceID, calendarID)
		if err != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, err.Error())
			return
		}
		var overrides []models.SpecificAvailabilityOverride
		if err := q.Order("date ASC").Find(&overrides).Error; err != nil {
			utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
			return
		}
		response["specific"] = overrides
	}

	ctx.JSON(response)
}

// POST /api/availability — create a rule or an override depending on type.
func CreateAvailability(ctx iris.Context) {
	var input AvailabilityInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	switch input.Type {
	case availabilityRecurring:
		start, end := ruleWindow(input.Slots, input.StartTime, input.EndTime)
		rule := models.RecurringAvailabilityRule{
			Name:         input.Name,
			CalendarID:   normalizeCalendarID(input.CalendarID),
			ExperienceID: normalizeExperienceID(input.ExperienceID),
			DaysOfWeek:   daysOfWeekJSON(input.DaysOfWeek),
			StartTime:    start,
			EndTime:      end,
			IsActive:     true,
		}
		if input.IsActive != nil {
			rule.IsActive = *input.IsActive
		}
		if err := storage.DB.Create(&rule).Error; err != nil {
			utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
			return
		}
		// Slot insertion is best effort: the rule row already exists, so a
		// failure here is logged and the create still reports success.
		if len(input.Slots) > 0 {
			rows := slotRows(rule.ID, input.Slots)
			if err := storage.DB.Create(&rows).Error; err != nil {
				log.Printf("availability: failed to insert %d slots for rule %s: %v", len(rows), rule.ID, err)
			} else {
				rule.TimeSlots = rows
			}
		}
		utils.Audit(ctx, "availability.create", "recurring_rule", rule.ID, nil, rule)
		ctx.StatusCode(iris.StatusCreated)
		ctx.JSON(rule)

	case availabilitySpecific:
		override := models.SpecificAvailabilityOverride{
			CalendarID:   normalizeCalendarID(input.CalendarID),
			ExperienceID: normalizeExperienceID(input.ExperienceID),
			Date:         input.Date,
			IsBlocked:    input.IsBlocked,
			Reason:       input.Reason,
		}
		if input.Date == "" {
			utils.JSONError(ctx, iris.StatusBadRequest, "date is required for specific availability")
			return
		}
		if _, err := time.Parse("2006-01-02", input.Date); err != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
			return
		}
		if input.StartTime != "" {
			override.StartTime = &input.StartTime
		}
		if input.EndTime != "" {
			override.EndTime = &input.EndTime
		}
		if err := storage.DB.Create(&override).Error; err != nil {
			utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
			return
		}
		utils.Audit(ctx, "availability.create", "specific_override", override.ID, nil, override)
		ctx.StatusCode(iris.StatusCreated)
		ctx.JSON(override)

	default:
		utils.JSONError(ctx, iris.StatusBadRequest, "type must be recurring or specific")
	}
}

// GET /api/availability/{id}?type=recurring|specific
func GetAvailabilityByID(ctx iris.Context) {
	id := ctx.Params().Get("id")
	kind := ctx.URLParam("type")

	switch kind {
	case availabilityRecurring:
		var rule models.RecurringAvailabilityRule
		err := storage.DB.
			Preload("TimeSlots", func(db *gorm.DB) *gorm.DB {
				return db.Order("order_index ASC")
			}).
			Where("id = ?", id).First(&rule).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(ctx, iris.StatusNotFound, "availability rule not found")
			return
		}
		if err != nil {
			utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
			return
		}
		ctx.JSON(iris.Map{
			"data":       rule,
			"experience": experienceSummaryFor(rule.ExperienceID),
			"calendar":   calendarSummaryFor(rule.CalendarID),
		})

	case availabilitySpecific:
		var override models.SpecificAvailabilityOverride
		err := storage.DB.Where("id = ?", id).First(&override).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(ctx, iris.StatusNotFound, "availability override not found")
			return
		}
		if err != nil {
			utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
			return
		}
		ctx.JSON(iris.Map{
			"data":       override,
			"experience": experienceSummaryFor(override.ExperienceID),
			"calendar":   calendarSummaryFor(override.CalendarID),
		})

	default:
		utils.JSONError(ctx, iris.StatusBadRequest, "type must be recurring or specific")
	}
}

// PUT /api/availability/{id} — full-document update, same shape as create.
func UpdateAvailability(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var input AvailabilityInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	switch input.Type {
	case availabilityRecurring:
		// TimeSlots are preloaded so the response carries the existing
		// children when the request leaves the slot list untouched.
		var rule models.RecurringAvailabilityRule
		err := storage.DB.
			Preload("TimeSlots", func(db *gorm.DB) *gorm.DB {
				return db.Order("order_index ASC")
			}).
			Where("id = ?", id).First(&rule).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(ctx, iris.StatusNotFound, "availability rule not found")
			return
		}
		if err != nil {
			utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
			return
		}

		rule.Name = input.Name
		rule.CalendarID = normalizeCalendarID(input.CalendarID)
		rule.ExperienceID = normalizeExperienceID(input.ExperienceID)
		rule.DaysOfWeek = daysOfWeekJSON(input.DaysOfWeek)
		if input.IsActive != nil {
			rule.IsActive = *input.IsActive
		}
		rule.StartTime, rule.EndTime = ruleWindow(input.Slots, input.StartTime, input.EndTime)

		// A submitted slot list replaces the old set in full. The delete and
		// insert run in one transaction so readers never observe a rule with
		// zero slots mid-update.
		txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&rule).Error; err != nil {
				return err
			}
			if input.Slots == nil {
				return nil
			}
			if err := tx.Where("rule_id = ?", rule.ID).Delete(&models.TimeSlot{}).Error; err != nil {
				return err
			}
			if len(input.Slots) == 0 {
				rule.TimeSlots = []models.TimeSlot{}
				return nil
			}
			rows := slotRows(rule.ID, input.Slots)
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
			rule.TimeSlots = rows
			return nil
		})
		if txErr != nil {
			utils.JSONError(ctx, iris.StatusInternalServerError, txErr.Error())
			return
		}
		utils.Audit(ctx, "availability.update", "recurring_rule", rule.ID, nil, rule)
		ctx.JSON(rule)

	case availabilitySpecific:
		var override models.SpecificAvailabilityOverride
		err := storage.DB.Where("id = ?", id).First(&override).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(ctx, iris.StatusNotFound, "availability override not found")
			return
		}
		if err != nil {
			utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
			return
		}

		if input.Date != "" {
			if _, err := time.Parse("2006-01-02", input.Date); err != nil {
				utils.JSONError(ctx, iris.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
				return
			}
			override.Date = input.Date
		}
		override.CalendarID = normalizeCalendarID(input.CalendarID)
		override.ExperienceID = normalizeExperienceID(input.ExperienceID)
		override.IsBlocked = input.IsBlocked
		override.Reason = input.Reason
		override.StartTime, override.EndTime = nil, nil
		if input.StartTime != "" {
			override.StartTime = &input.StartTime
		}
		if input.EndTime != "" {
			override.EndTime = &input.EndTime
		}

		if err := storage.DB.Save(&override).Error; err != nil {
			utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
			return
		}
		utils.Audit(ctx, "availability.update", "specific_override", override.ID, nil, override)
		ctx.JSON(override)

	default:
		utils.JSONError(ctx, iris.StatusBadRequest, "type must be recurring or specific")
	}
}

// DELETE /api/availability/{id}?type=recurring|specific
// Deleting an id that is already gone still reports success.
func DeleteAvailability(ctx iris.Context) {
	id := ctx.Params().Get("id")
	kind := ctx.URLParam("type")

	switch kind {
	case availabilityRecurring:
		before := snapshotRule(id)
		txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("rule_id = ?", id).Delete(&models.TimeSlot{}).Error; err != nil {
				return err
			}
			return tx.Where("id = ?", id).Delete(&models.RecurringAvailabilityRule{}).Error
		})
		if txErr != nil {
			utils.JSONError(ctx, iris.StatusInternalServerError, txErr.Error())
			return
		}
		utils.Audit(ctx, "availability.delete", "recurring_rule", id, before, nil)

	case availabilitySpecific:
		before := snapshotOverride(id)
		if err := storage.DB.Where("id = ?", id).Delete(&models.SpecificAvailabilityOverride{}).Error; err != nil {
			utils.JSONError(ctx, iris.StatusInternalServerError, err.Error())
			return
		}
		utils.Audit(ctx, "availability.delete", "specific_override", id, before, nil)

	default:
		utils.JSONError(ctx, iris.StatusBadRequest, "type must be recurring or specific")
		return
	}

	ctx.JSON(iris.Map{"success": true})
}

func snapshotRule(id string) *models.RecurringAvailabilityRule {
	var rule models.RecurringAvailabilityRule
	if err := storage.DB.Where("id = ?", id).First(&rule).Error; err != nil {
		return nil
	}
	return &rule
}

func snapshotOverride(id string) *models.SpecificAvailabilityOverride {
	var override models.SpecificAvailabilityOverride
	if err := storage.DB.Where("id = ?", id).First(&override).Error; err != nil {
		return nil
	}
	return &override
}

func experienceSummaryFor(slug *string) interface{} {
	if slug == nil {
		return nil
	}
	var exp models.Experience
	if err := storage.DB.Where("slug = ?", *slug).First(&exp).Error; err != nil {
		return nil
	}
	return exp.Summary()
}

func calendarSummaryFor(id *string) interface{} {
	if id == nil {
		return nil
	}
	var cal models.Calendar
	if err := storage.DB.Where("id = ?", *id).First(&cal).Error; err != nil {
		return nil
	}
	return iris.Map{"id": cal.ID, "name": cal.Name, "color": cal.Color}
}
