package handlers

import (
	"time"

	"github.com/quickcourt/quickcourt-api/internal/timezone"
)

// All calendar parsing happens in the deployment's configured timezone;
// slot arithmetic itself is wall-clock.
func parseDate(tz string, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(tz),
	)
}

func isValidClock(hm string) bool {
	_, err := time.Parse("15:04", hm)
	return err == nil
}

func isValidWeekday(day string) bool {
	switch day {
	case "Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday":
		return true
	}
	return false
}
