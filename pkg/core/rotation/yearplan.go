package rotation

import (
	"sort"
	"time"

	"github.com/SCS-Technik/Assixx-sub012/pkg/db"
)

// ExpandKontischichtYear replicates a two-week Kontischicht template across
// all 52 weeks of the target year.
//
// The template entries are split into week A (entries sharing the ISO week
// number of the earliest entry) and week B (all others). Starting from the
// first Monday of the target year, week A and week B alternate on a fixed
// 2-week cadence; the alternation is anchored to that Monday, not to
// calendar ISO week parity. Each template entry keeps its weekday within
// its own week; expanded entries that would fall outside the target year at
// the boundaries are discarded.
//
// The function performs no persistence; callers route the result through
// the transactional history store if durability is required.
func ExpandKontischichtYear(basePattern []db.KontiShift, year int) []db.KontiShift {
	if len(basePattern) == 0 {
		return nil
	}

	template := make([]db.KontiShift, len(basePattern))
	copy(template, basePattern)
	sort.Slice(template, func(i, j int) bool {
		return template[i].Date.Before(template[j].Date)
	})

	firstWeek := ISOWeekNumber(template[0].Date)
	var weekA, weekB []db.KontiShift
	for _, shift := range template {
		if ISOWeekNumber(shift.Date) == firstWeek {
			weekA = append(weekA, shift)
		} else {
			weekB = append(weekB, shift)
		}
	}

	firstMonday := firstMondayOfYear(year)

	var expanded []db.KontiShift
	for weekOffset := 0; weekOffset < 52; weekOffset++ {
		currentMonday := firstMonday.AddDate(0, 0, 7*weekOffset)

		templateWeek := weekA
		if weekOffset%2 == 1 {
			templateWeek = weekB
		}

		for _, shift := range templateWeek {
			// Weekday offset from Monday (1=Mon .. 7=Sun) within the
			// shift's own template week, mapped onto the current week.
			shiftDate := currentMonday.AddDate(0, 0, mondayBasedWeekday(shift.Date)-1)
			if shiftDate.Year() != year {
				continue
			}

			entry := shift
			entry.Date = shiftDate
			expanded = append(expanded, entry)
		}
	}

	return expanded
}

// firstMondayOfYear returns January 1 of the year if it is a Monday,
// otherwise the following Monday.
func firstMondayOfYear(year int) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	wd := mondayBasedWeekday(jan1)
	if wd == 1 {
		return jan1
	}
	return jan1.AddDate(0, 0, 8-wd)
}

// mondayBasedWeekday returns the weekday with Monday=1 .. Sunday=7.
func mondayBasedWeekday(d time.Time) int {
	wd := int(d.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
