package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SCS-Technik/Assixx-sub012/pkg/db"
)

func kontiTemplate() []db.KontiShift {
	return []db.KontiShift{
		{
			// Week A: Monday day shift (ISO week 1 of 2024)
			Date:      date(2024, time.January, 1),
			ShiftType: db.GroupEarly,
			StartTime: "06:00",
			EndTime:   "14:00",
		},
		{
			// Week B: Sunday night shift (ISO week 2 of 2024)
			Date:      date(2024, time.January, 14),
			ShiftType: db.GroupNight,
			StartTime: "22:00",
			EndTime:   "06:00",
		},
	}
}

func TestExpandKontischichtYear_EmptyTemplate(t *testing.T) {
	assert.Empty(t, ExpandKontischichtYear(nil, 2025))
	assert.Empty(t, ExpandKontischichtYear([]db.KontiShift{}, 2025))
}

func TestExpandKontischichtYear_StaysWithinTargetYear(t *testing.T) {
	expanded := ExpandKontischichtYear(kontiTemplate(), 2025)

	for _, shift := range expanded {
		assert.Equal(t, 2025, shift.Date.Year(), "%s", shift.Date)
	}
}

func TestExpandKontischichtYear_OccurrenceCounts(t *testing.T) {
	// 2025 starts on a Wednesday, so the first Monday is January 6. The
	// Monday day shift lands 26 times; the Sunday night shift of the 52nd
	// template week would fall on 2026-01-04 and is discarded, leaving 25.
	expanded := ExpandKontischichtYear(kontiTemplate(), 2025)

	var days, nights int
	for _, shift := range expanded {
		switch shift.ShiftType {
		case db.GroupEarly:
			days++
		case db.GroupNight:
			nights++
		}
	}

	assert.Equal(t, 26, days)
	assert.Equal(t, 25, nights)
	assert.Len(t, expanded, 51)
}

func TestExpandKontischichtYear_FixedTwoWeekCadence(t *testing.T) {
	expanded := ExpandKontischichtYear(kontiTemplate(), 2025)
	require.NotEmpty(t, expanded)

	// First occurrence of each template entry
	assert.Equal(t, date(2025, time.January, 6), expanded[0].Date)
	assert.Equal(t, db.GroupEarly, expanded[0].ShiftType)
	assert.Equal(t, date(2025, time.January, 19), expanded[1].Date)
	assert.Equal(t, db.GroupNight, expanded[1].ShiftType)

	// Day shifts stay on Mondays, night shifts on Sundays, 14 days apart
	var prevDay, prevNight time.Time
	for _, shift := range expanded {
		switch shift.ShiftType {
		case db.GroupEarly:
			assert.Equal(t, time.Monday, shift.Date.Weekday())
			if !prevDay.IsZero() {
				assert.Equal(t, 14*24*time.Hour, shift.Date.Sub(prevDay))
			}
			prevDay = shift.Date
		case db.GroupNight:
			assert.Equal(t, time.Sunday, shift.Date.Weekday())
			if !prevNight.IsZero() {
				assert.Equal(t, 14*24*time.Hour, shift.Date.Sub(prevNight))
			}
			prevNight = shift.Date
		}
	}
}

func TestExpandKontischichtYear_PreservesClockTimes(t *testing.T) {
	expanded := ExpandKontischichtYear(kontiTemplate(), 2025)

	for _, shift := range expanded {
		switch shift.ShiftType {
		case db.GroupEarly:
			assert.Equal(t, "06:00", shift.StartTime)
			assert.Equal(t, "14:00", shift.EndTime)
		case db.GroupNight:
			assert.Equal(t, "22:00", shift.StartTime)
			assert.Equal(t, "06:00", shift.EndTime)
		}
	}
}

func TestExpandKontischichtYear_DoesNotMutateInput(t *testing.T) {
	template := kontiTemplate()
	// Reverse order on purpose; expansion sorts a copy
	template[0], template[1] = template[1], template[0]

	ExpandKontischichtYear(template, 2025)

	assert.Equal(t, date(2024, time.January, 14), template[0].Date)
	assert.Equal(t, date(2024, time.January, 1), template[1].Date)
}
