package routes

import (
	"testing"
)

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		name    string
		month   string
		first   string
		last    string
		wantErr bool
	}{
		{name: "january", month: "2026-01", first: "2026-01-01", last: "2026-01-31"},
		{name: "february non-leap", month: "2026-02", first: "2026-02-01", last: "2026-02-28"},
		{name: "february leap", month: "2028-02", first: "2028-02-01", last: "2028-02-29"},
		{name: "thirty day month", month: "2026-04", first: "2026-04-01", last: "2026-04-30"},
		{name: "december", month: "2025-12", first: "2025-12-01", last: "2025-12-31"},
		{name: "garbage", month: "not-a-month", wantErr: true},
		{name: "full date rejected", month: "2026-01-15", wantErr: true},
		{name: "empty", month: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last, err := monthBounds(tt.month)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("monthBounds(%q) expected error, got %q..%q", tt.month, first, last)
				}
				return
			}
			if err != nil {
				t.Fatalf("monthBounds(%q) unexpected error: %v", tt.month, err)
			}
			if first != tt.first || last != tt.last {
				t.Errorf("monthBounds(%q) = %q..%q, want %q..%q", tt.month, first, last, tt.first, tt.last)
			}
		})
	}
}

func TestNormalizeCalendarID(t *testing.T) {
	valid := "6f1f9be0-54f1-4ae5-9b8c-2d1a6a3cbb10"

	if got := normalizeCalendarID(valid); got == nil || *got != valid {
		t.Errorf("valid uuid should be kept, got %v", got)
	}
	if got := normalizeCalendarID(""); got != nil {
		t.Errorf("empty id should be nil, got %q", *got)
	}
	if got := normalizeCalendarID("main-calendar"); got != nil {
		t.Errorf("non-uuid id should be dropped, got %q", *got)
	}
	if got := normalizeCalendarID("6f1f9be0-54f1-4ae5-9b8c"); got != nil {
		t.Errorf("truncated uuid should be dropped, got %q", *got)
	}
}

func TestNormalizeExperienceID(t *testing.T) {
	// Experiences use slugs; any non-empty string passes through untouched.
	if got := normalizeExperienceID("sunset-kayak-tour"); got == nil || *got != "sunset-kayak-tour" {
		t.Errorf("slug should pass through, got %v", got)
	}
	if got := normalizeExperienceID(""); got != nil {
		t.Errorf("empty experience id should be nil, got %q", *got)
	}
}

func TestRuleWindow(t *testing.T) {
	tests := []struct {
		name      string
		slots     []TimeSlotInput
		start     string
		end       string
		wantStart string
		wantEnd   string
	}{
		{
			name:      "first slot wins over flat pair",
			slots:     []TimeSlotInput{{StartTime: "10:00", EndTime: "12:00"}, {StartTime: "14:00", EndTime: "16:00"}},
			start:     "08:00",
			end:       "20:00",
			wantStart: "10:00",
			wantEnd:   "12:00",
		},
		{
			name:      "flat pair used without slots",
			start:     "08:30",
			end:       "17:30",
			wantStart: "08:30",
			wantEnd:   "17:30",
		},
		{
			name:      "defaults when nothing given",
			wantStart: "09:00",
			wantEnd:   "18:00",
		},
		{
			name:      "partial flat pair fills the missing side",
			start:     "07:00",
			wantStart: "07:00",
			wantEnd:   "18:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ruleWindow(tt.slots, tt.start, tt.end)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("ruleWindow = %q-%q, want %q-%q", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestSlotRows(t *testing.T) {
	slots := []TimeSlotInput{
		{StartTime: "10:00", EndTime: "12:00"},
		{StartTime: "14:00", EndTime: "16:00"},
		{StartTime: "18:00", EndTime: "19:00"},
	}

	rows := slotRows("rule-1", slots)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row.OrderIndex != i {
			t.Errorf("row %d has order index %d", i, row.OrderIndex)
		}
		if row.RuleID != "rule-1" {
			t.Errorf("row %d has rule id %q", i, row.RuleID)
		}
		if row.StartTime != slots[i].StartTime || row.EndTime != slots[i].EndTime {
			t.Errorf("row %d = %s-%s, want %s-%s", i, row.StartTime, row.EndTime, slots[i].StartTime, slots[i].EndTime)
		}
	}

	if rows := slotRows("rule-1", nil); len(rows) != 0 {
		t.Errorf("nil input should yield no rows, got %d", len(rows))
	}
}

func TestDaysOfWeekJSON(t *testing.T) {
	if got := string(daysOfWeekJSON([]int{1, 3, 5})); got != "[1,3,5]" {
		t.Errorf("daysOfWeekJSON = %s", got)
	}
	// nil normalizes to an empty array, never JSON null
	if got := string(daysOfWeekJSON(nil)); got != "[]" {
		t.Errorf("daysOfWeekJSON(nil) = %s", got)
	}
}
