package timeslot

import (
	"time"

	"github.com/quickcourt/quickcourt-api/internal/models"
)

// HorizonDays is how far ahead slots are generated, both on court
// creation and by the daily extension job.
const HorizonDays = 90

// Normalize strips the clock from t, keeping the calendar day.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func parseClock(hm string) (time.Duration, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, false
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
}

// Labels returns the hourly "HH:MM" labels in [open, close), one per
// whole hour starting at open. A trailing partial hour is truncated;
// open >= close or a malformed clock yields nothing.
func Labels(open, close string) []string {
	start, ok := parseClock(open)
	if !ok {
		return nil
	}
	end, ok := parseClock(close)
	if !ok {
		return nil
	}

	var labels []string
	for cur := start; cur < end; cur += time.Hour {
		h := int(cur / time.Hour)
		m := int(cur % time.Hour / time.Minute)
		labels = append(labels, clockLabel(h, m))
	}
	return labels
}

func clockLabel(h, m int) string {
	digits := func(n int) string {
		return string([]byte{byte('0' + n/10), byte('0' + n%10)})
	}
	return digits(h) + ":" + digits(m)
}

// GenerateForDay produces the unbooked slots of one calendar day from a
// weekly operating-hours table. The weekday is matched by exact name
// ("Monday", ...); a day without an entry produces no slots.
func GenerateForDay(date time.Time, hours []models.OperatingHours) []models.Slot {
	weekday := date.Weekday().String()

	var entry *models.OperatingHours
	for i := range hours {
		if hours[i].Day == weekday {
			entry = &hours[i]
			break
		}
	}
	if entry == nil {
		return nil
	}

	day := Normalize(date)
	var slots []models.Slot
	for _, label := range Labels(entry.Open, entry.Close) {
		slots = append(slots, models.Slot{
			Date:   day,
			Time:   label,
			Booked: false,
		})
	}
	return slots
}

// GenerateForRange concatenates per-day results for every calendar day
// from start to end inclusive.
func GenerateForRange(start, end time.Time, hours []models.OperatingHours) []models.Slot {
	day := Normalize(start)
	last := Normalize(end)

	var slots []models.Slot
	for !day.After(last) {
		slots = append(slots, GenerateForDay(day, hours)...)
		day = day.AddDate(0, 0, 1)
	}
	return slots
}

// GenerateWindow produces slots for every day from start to end
// inclusive using an explicit open/close window instead of the weekly
// table. Used by the owner "add time slots" operation.
func GenerateWindow(start, end time.Time, open, close string) []models.Slot {
	labels := Labels(open, close)
	if len(labels) == 0 {
		return nil
	}

	day := Normalize(start)
	last := Normalize(end)

	var slots []models.Slot
	for !day.After(last) {
		for _, label := range labels {
			slots = append(slots, models.Slot{
				Date:   day,
				Time:   label,
				Booked: false,
			})
		}
		day = day.AddDate(0, 0, 1)
	}
	return slots
}
