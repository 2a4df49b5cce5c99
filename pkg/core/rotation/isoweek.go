package rotation

import "time"

// ISOWeekNumber returns the ISO-8601 week-of-year number of a date.
//
// The date is shifted to the Thursday of its own week (Monday-based), then
// counted in 7-day steps from the first Thursday of that Thursday's year.
// Stored week numbers in rotation history come from this exact day-count
// arithmetic, so downstream reporting sees consistent values across the
// year boundary (e.g. 2023-01-01 belongs to week 52 of 2022).
func ISOWeekNumber(date time.Time) int {
	d := DateOnly(date)

	// Monday=0 .. Sunday=6 offset within the week.
	offset := posMod(int(d.Weekday())+6, 7)
	thursday := d.AddDate(0, 0, -offset+3)

	jan1 := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	daysToThursday := posMod(int(time.Thursday)-int(jan1.Weekday()), 7)
	firstThursday := jan1.AddDate(0, 0, daysToThursday)

	days := int(thursday.Sub(firstThursday).Hours()) / 24
	return 1 + days/7
}
