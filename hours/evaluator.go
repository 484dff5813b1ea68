// Package hours decides open/closed state from a weekly schedule.
package hours

import (
	"time"

	"localscoop-server/models"
)

// IsOpenNow reports whether a business with the given weekly schedule is
// open at now, evaluated in loc. Periods are scanned in schedule order and
// the first period for the current day that covers the current minute wins.
// A period without a close time means open for the remainder of the day.
//
// Callers must not invoke this with an absent schedule; the resolver maps
// that case to an unknown open state instead.
func IsOpenNow(schedule *models.WeeklySchedule, now time.Time, loc *time.Location) bool {
	if schedule == nil || len(schedule.Periods) == 0 {
		return false
	}
	if loc == nil {
		loc = time.UTC
	}

	local := now.In(loc)
	currentDay := int(local.Weekday()) // 0 = Sunday, matching the API
	currentMinute := local.Hour()*60 + local.Minute()

	for _, period := range schedule.Periods {
		if period.Open.Day != currentDay {
			continue
		}
		openMinute := period.Open.MinuteOfDay()

		if period.Close != nil {
			if currentMinute >= openMinute && currentMinute < period.Close.MinuteOfDay() {
				return true
			}
		} else if currentMinute >= openMinute {
			// Open 24 hours from the open time.
			return true
		}
	}
	return false
}
