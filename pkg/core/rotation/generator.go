package rotation

import (
	"time"

	"github.com/SCS-Technik/Assixx-sub012/pkg/db"
)

// GenerateForAssignment walks the inclusive [startDate, endDate] range one
// calendar day at a time and resolves a shift type for each qualifying day.
// Saturdays and Sundays are skipped when the pattern's skipWeekends flag is
// set. The returned entries are ordered by date ascending.
func GenerateForAssignment(pattern *db.RotationPattern, assignment *db.RotationAssignment, startDate, endDate time.Time) []db.GeneratedShift {
	start := DateOnly(startDate)
	end := DateOnly(endDate)

	var entries []db.GeneratedShift
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if pattern.Config.SkipWeekends && isWeekend(d) {
			continue
		}

		weeks := WeeksSinceStart(pattern.StartsAt, d)
		entries = append(entries, db.GeneratedShift{
			UserID:    assignment.UserID,
			Date:      d,
			ShiftType: ResolveShiftType(pattern, assignment, weeks, d),
		})
	}

	return entries
}
