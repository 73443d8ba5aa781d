package timeslot

import (
	"reflect"
	"testing"
	"time"

	"github.com/quickcourt/quickcourt-api/internal/models"
)

func TestLabels(t *testing.T) {
	tests := []struct {
		name  string
		open  string
		close string
		want  []string
	}{
		{
			name:  "two whole hours",
			open:  "08:00",
			close: "10:00",
			want:  []string{"08:00", "09:00"},
		},
		{
			name:  "single hour window",
			open:  "18:00",
			close: "19:00",
			want:  []string{"18:00"},
		},
		{
			name:  "trailing partial hour truncated",
			open:  "09:00",
			close: "10:30",
			want:  []string{"09:00", "10:00"},
		},
		{
			name:  "offset open time keeps its minutes",
			open:  "09:30",
			close: "11:30",
			want:  []string{"09:30", "10:30"},
		},
		{
			name:  "open equals close",
			open:  "09:00",
			close: "09:00",
			want:  nil,
		},
		{
			name:  "open after close",
			open:  "18:00",
			close: "09:00",
			want:  nil,
		},
		{
			name:  "malformed open",
			open:  "9am",
			close: "18:00",
			want:  nil,
		},
		{
			name:  "malformed close",
			open:  "09:00",
			close: "late",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Labels(tt.open, tt.close)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Labels(%q, %q) = %v, want %v", tt.open, tt.close, got, tt.want)
			}
		})
	}
}

func TestGenerateForDay(t *testing.T) {
	// 2026-08-31 is a Monday.
	monday := time.Date(2026, 8, 31, 15, 42, 0, 0, time.UTC)
	sunday := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	hours := []models.OperatingHours{
		{Day: "Monday", Open: "08:00", Close: "10:00"},
		{Day: "Tuesday", Open: "06:00", Close: "22:00"},
	}

	t.Run("weekday with entry", func(t *testing.T) {
		got := GenerateForDay(monday, hours)
		if len(got) != 2 {
			t.Fatalf("got %d slots, want 2", len(got))
		}

		wantDay := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
		for i, label := range []string{"08:00", "09:00"} {
			if got[i].Time != label {
				t.Errorf("slot %d time = %q, want %q", i, got[i].Time, label)
			}
			if !got[i].Date.Equal(wantDay) {
				t.Errorf("slot %d date = %v, want %v", i, got[i].Date, wantDay)
			}
			if got[i].Booked {
				t.Errorf("slot %d generated as booked", i)
			}
		}
	})

	t.Run("weekday without entry produces nothing", func(t *testing.T) {
		if got := GenerateForDay(sunday, hours); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}

func TestGenerateForRange(t *testing.T) {
	// Monday through Wednesday; only Monday and Tuesday have hours.
	start := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	hours := []models.OperatingHours{
		{Day: "Monday", Open: "08:00", Close: "10:00"},
		{Day: "Tuesday", Open: "09:00", Close: "12:00"},
	}

	got := GenerateForRange(start, end, hours)

	// 2 Monday slots + 3 Tuesday slots, Wednesday closed.
	if len(got) != 5 {
		t.Fatalf("got %d slots, want 5", len(got))
	}

	perDay := map[string]int{}
	for _, s := range got {
		perDay[s.Date.Format("2006-01-02")]++
	}
	want := map[string]int{"2026-08-31": 2, "2026-09-01": 3}
	if !reflect.DeepEqual(perDay, want) {
		t.Errorf("slots per day = %v, want %v", perDay, want)
	}
}

func TestGenerateForRangeSingleDay(t *testing.T) {
	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	hours := []models.OperatingHours{{Day: "Monday", Open: "07:00", Close: "09:00"}}

	got := GenerateForRange(day, day, hours)
	if len(got) != 2 {
		t.Fatalf("got %d slots, want 2", len(got))
	}
}

func TestGenerateWindow(t *testing.T) {
	start := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	t.Run("same window every day regardless of weekday", func(t *testing.T) {
		got := GenerateWindow(start, end, "20:00", "22:00")
		if len(got) != 6 {
			t.Fatalf("got %d slots, want 6", len(got))
		}
		for _, s := range got {
			if s.Time != "20:00" && s.Time != "21:00" {
				t.Errorf("unexpected slot time %q", s.Time)
			}
		}
	})

	t.Run("empty window yields nothing", func(t *testing.T) {
		if got := GenerateWindow(start, end, "10:00", "10:00"); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}

func TestNormalize(t *testing.T) {
	in := time.Date(2026, 8, 31, 23, 59, 58, 123, time.UTC)
	want := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	if got := Normalize(in); !got.Equal(want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}
