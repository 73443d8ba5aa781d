package handlers

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := parseDate("Asia/Kolkata", "2026-08-31")
	if err != nil {
		t.Fatalf("parseDate() = %v", err)
	}
	if got.Year() != 2026 || got.Month() != time.August || got.Day() != 31 {
		t.Errorf("parseDate() = %v, want 2026-08-31", got)
	}
	if got.Location().String() != "Asia/Kolkata" {
		t.Errorf("location = %v, want Asia/Kolkata", got.Location())
	}

	if _, err := parseDate("Asia/Kolkata", "31/08/2026"); err == nil {
		t.Errorf("parseDate accepted a non ISO date")
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	invalid := []string{"24:00", "9:00:00", "noon", ""}

	for _, hm := range valid {
		if !isValidClock(hm) {
			t.Errorf("isValidClock(%q) = false, want true", hm)
		}
	}
	for _, hm := range invalid {
		if isValidClock(hm) {
			t.Errorf("isValidClock(%q) = true, want false", hm)
		}
	}
}

func TestValidateHours(t *testing.T) {
	tests := []struct {
		name     string
		hours    []OperatingHoursRequest
		wantCode string
	}{
		{
			name: "valid week",
			hours: []OperatingHoursRequest{
				{Day: "Monday", Open: "08:00", Close: "20:00"},
				{Day: "Saturday", Open: "10:00", Close: "14:00"},
			},
		},
		{
			name:     "unknown day",
			hours:    []OperatingHoursRequest{{Day: "Funday", Open: "08:00", Close: "20:00"}},
			wantCode: "invalid_day",
		},
		{
			name: "duplicate day",
			hours: []OperatingHoursRequest{
				{Day: "Monday", Open: "08:00", Close: "12:00"},
				{Day: "Monday", Open: "14:00", Close: "18:00"},
			},
			wantCode: "duplicate_day",
		},
		{
			name:     "bad clock",
			hours:    []OperatingHoursRequest{{Day: "Monday", Open: "8am", Close: "20:00"}},
			wantCode: "invalid_time_format",
		},
		{
			name:     "open after close",
			hours:    []OperatingHoursRequest{{Day: "Monday", Open: "20:00", Close: "08:00"}},
			wantCode: "open_not_before_close",
		},
		{
			name:     "open equals close",
			hours:    []OperatingHoursRequest{{Day: "Monday", Open: "08:00", Close: "08:00"}},
			wantCode: "open_not_before_close",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := validateHours(tt.hours)
			if tt.wantCode == "" {
				if !ok {
					t.Errorf("validateHours() rejected valid hours with %q", code)
				}
				return
			}
			if ok || code != tt.wantCode {
				t.Errorf("validateHours() = (%q, %v), want (%q, false)", code, ok, tt.wantCode)
			}
		})
	}
}

func TestIsValidWeekday(t *testing.T) {
	for _, day := range []string{"Sunday", "Monday", "Saturday"} {
		if !isValidWeekday(day) {
			t.Errorf("isValidWeekday(%q) = false, want true", day)
		}
	}
	for _, day := range []string{"monday", "Mon", "Weekend", ""} {
		if isValidWeekday(day) {
			t.Errorf("isValidWeekday(%q) = true, want false", day)
		}
	}
}
