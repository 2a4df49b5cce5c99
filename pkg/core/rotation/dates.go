package rotation

import "time"

// DateOnly normalizes a timestamp to midnight UTC. All cycle-offset and
// week arithmetic in this package works on whole days.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeeksSinceStart returns the whole number of 7-day periods elapsed between
// a pattern's start date and a target date. Whole-day truncation, never
// fractional weeks; dates before the start yield negative weeks.
func WeeksSinceStart(start, date time.Time) int {
	days := int(DateOnly(date).Sub(DateOnly(start)).Hours()) / 24
	return floorDiv(days, 7)
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// posMod returns a mod b in [0, b).
func posMod(a, b int) int {
	return ((a % b) + b) % b
}

// isWeekend reports whether the date is a Saturday or Sunday.
func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
