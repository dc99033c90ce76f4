package greeting

import "time"

// TimePeriod is one of the six buckets a local clock hour falls into.
type TimePeriod string

const (
	PeriodDawn      TimePeriod = "dawn"      // [05:00, 08:00)
	PeriodMorning   TimePeriod = "morning"   // [08:00, 12:00)
	PeriodNoon      TimePeriod = "noon"      // [12:00, 14:00)
	PeriodAfternoon TimePeriod = "afternoon" // [14:00, 17:00)
	PeriodEvening   TimePeriod = "evening"   // [17:00, 22:00)
	PeriodMidnight  TimePeriod = "midnight"  // [22:00, 24:00) and [00:00, 05:00)
)

// PeriodForHour maps a local hour (0-23) to its time period.
func PeriodForHour(hour int) TimePeriod {
	switch {
	case hour >= 5 && hour < 8:
		return PeriodDawn
	case hour >= 8 && hour < 12:
		return PeriodMorning
	case hour >= 12 && hour < 14:
		return PeriodNoon
	case hour >= 14 && hour < 17:
		return PeriodAfternoon
	case hour >= 17 && hour < 22:
		return PeriodEvening
	default:
		return PeriodMidnight
	}
}

// endOfDay returns the next local midnight after t, used for cache TTLs.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
}
