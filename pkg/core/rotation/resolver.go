package rotation

import (
	"time"

	"github.com/SCS-Technik/Assixx-sub012/pkg/db"
)

// ResolveShiftType determines the shift type for one user on one date.
// Pure function: no I/O, deterministic for a given input tuple.
//
// Resolution order:
//  1. fixed_night patterns always yield N.
//  2. Weekly rotations (alternating_fs, or custom with cycleWeeks=1):
//     with ignoreNightShift set, F and S swap on a 2-week cycle while N
//     workers stay on nights; otherwise all assigned users follow the same
//     synchronized F→S→N 3-week cycle, regardless of their individual
//     shift group.
//  3. Any other custom pattern passes the assignment's static shift group
//     through unchanged; the date has no effect.
func ResolveShiftType(pattern *db.RotationPattern, assignment *db.RotationAssignment, weeksSinceStart int, date time.Time) db.ShiftGroup {
	if pattern.PatternType == db.PatternFixedNight {
		return db.GroupNight
	}

	weekly := pattern.PatternType == db.PatternAlternatingFS ||
		(pattern.PatternType == db.PatternCustom && pattern.Config.CycleWeeks == 1)
	if !weekly {
		return assignment.ShiftGroup
	}

	if pattern.Config.IgnoreNightShift {
		cycleWeek := posMod(weeksSinceStart, 2)
		switch assignment.ShiftGroup {
		case db.GroupEarly:
			if cycleWeek == 0 {
				return db.GroupEarly
			}
			return db.GroupLate
		case db.GroupLate:
			if cycleWeek == 0 {
				return db.GroupLate
			}
			return db.GroupEarly
		default:
			// Night-shift workers never rotate under this flag.
			return db.GroupNight
		}
	}

	switch posMod(weeksSinceStart, 3) {
	case 0:
		return db.GroupEarly
	case 1:
		return db.GroupLate
	default:
		return db.GroupNight
	}
}
