package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestISOWeekNumber_YearStart(t *testing.T) {
	// 2024-01-01 is a Monday and opens week 1
	assert.Equal(t, 1, ISOWeekNumber(date(2024, time.January, 1)))
}

func TestISOWeekNumber_YearStartBelongsToPreviousYear(t *testing.T) {
	// 2023-01-01 is a Sunday, still part of the last ISO week of 2022
	assert.Equal(t, 52, ISOWeekNumber(date(2023, time.January, 1)))
}

func TestISOWeekNumber_MidYear(t *testing.T) {
	assert.Equal(t, 24, ISOWeekNumber(date(2024, time.June, 13)))
}

func TestISOWeekNumber_Week53(t *testing.T) {
	// 2020 is a long ISO year
	assert.Equal(t, 53, ISOWeekNumber(date(2020, time.December, 31)))
}

func TestISOWeekNumber_DecemberBelongsToNextYear(t *testing.T) {
	// 2024-12-30 is a Monday belonging to week 1 of 2025
	assert.Equal(t, 1, ISOWeekNumber(date(2024, time.December, 30)))
}

func TestISOWeekNumber_IgnoresTimeOfDay(t *testing.T) {
	noon := time.Date(2024, time.January, 1, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, ISOWeekNumber(date(2024, time.January, 1)), ISOWeekNumber(noon))
}
