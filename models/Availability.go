package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecurringAvailabilityRule is a weekly-repeating open window, optionally
// scoped to a calendar and/or an experience. A rule either carries the legacy
// single StartTime/EndTime pair or a set of ordered TimeSlot children; when
// children exist the top-level pair mirrors the first child.
type RecurringAvailabilityRule struct {
	ID           string  `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string  `json:"name" gorm:"size:200"`
	CalendarID   *string `json:"calendarId" gorm:"type:uuid;index"`
	ExperienceID *string `json:"experienceId" gorm:"size:200;index"` // slug, not a UUID

	DaysOfWeek datatypes.JSON `json:"daysOfWeek" gorm:"type:jsonb"` // e.g. [1,3,5], 0=Sunday
	StartTime  string         `json:"startTime" gorm:"size:5"`      // "09:00"
	EndTime    string         `json:"endTime" gorm:"size:5"`

	IsActive  bool       `json:"isActive" gorm:"default:true;index"`
	TimeSlots []TimeSlot `json:"timeSlots" gorm:"foreignKey:RuleID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *RecurringAvailabilityRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// TimeSlot is an ordered sub-range of a recurring rule's day. OrderIndex is
// dense and zero-based per rule; it is reassigned on every full slot rewrite.
type TimeSlot struct {
	ID         string `json:"id" gorm:"type:uuid;primaryKey"`
	RuleID     string `json:"ruleId" gorm:"type:uuid;not null;index"`
	StartTime  string `json:"startTime" gorm:"size:5"`
	EndTime    string `json:"endTime" gorm:"size:5"`
	OrderIndex int    `json:"orderIndex" gorm:"not null"`
}

func (s *TimeSlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// SpecificAvailabilityOverride blocks or redefines hours for a single date.
// A nil StartTime/EndTime pair means the whole day.
type SpecificAvailabilityOverride struct {
	ID           string  `json:"id" gorm:"type:uuid;primaryKey"`
	CalendarID   *string `json:"calendarId" gorm:"type:uuid;index"`
	ExperienceID *string `json:"experienceId" gorm:"size:200;index"`

	Date      string  `json:"date" gorm:"size:10;not null;index"` // "2006-01-02"; text compares correctly for ranges
	StartTime *string `json:"startTime" gorm:"size:5"`
	EndTime   *string `json:"endTime" gorm:"size:5"`
	IsBlocked bool    `json:"isBlocked" gorm:"default:false"`
	Reason    string  `json:"reason" gorm:"size:500"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (o *SpecificAvailabilityOverride) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
