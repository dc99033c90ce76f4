package greeting

import "time"

// Fixed-date Philippine regular holidays.
var fixedHolidays = map[[2]int]string{
	{1, 1}:   "New Year's Day",
	{4, 9}:   "Araw ng Kagitingan",
	{5, 1}:   "Labor Day",
	{6, 12}:  "Independence Day",
	{11, 1}:  "All Saints' Day",
	{11, 30}: "Bonifacio Day",
	{12, 25}: "Christmas Day",
	{12, 30}: "Rizal Day",
	{12, 31}: "New Year's Eve",
}

// HolidayName returns the Philippine holiday falling on the given local
// date, or "" when it is an ordinary day. National Heroes Day moves with
// the calendar (last Monday of August).
func HolidayName(t time.Time) string {
	if name, ok := fixedHolidays[[2]int{int(t.Month()), t.Day()}]; ok {
		return name
	}
	if t.Month() == time.August && t.Weekday() == time.Monday && t.Day()+7 > 31 {
		return "National Heroes Day"
	}
	return ""
}
