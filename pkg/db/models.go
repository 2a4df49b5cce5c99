package db

import (
	"fmt"
	"sort"
	"time"
)

// ShiftGroup is a user's nominal rotation slot.
type ShiftGroup string

const (
	GroupEarly ShiftGroup = "F"
	GroupLate  ShiftGroup = "S"
	GroupNight ShiftGroup = "N"
)

// Valid reports whether g is one of the known shift groups.
func (g ShiftGroup) Valid() bool {
	switch g {
	case GroupEarly, GroupLate, GroupNight:
		return true
	}
	return false
}

// PatternType identifies how a rotation pattern varies shift types over time.
type PatternType string

const (
	PatternAlternatingFS PatternType = "alternating_fs"
	PatternFixedNight    PatternType = "fixed_night"
	PatternCustom        PatternType = "custom"
)

// Valid reports whether t is one of the known pattern types.
func (t PatternType) Valid() bool {
	switch t {
	case PatternAlternatingFS, PatternFixedNight, PatternCustom:
		return true
	}
	return false
}

// PatternConfig is the structured configuration stored with a pattern.
// It round-trips through the JSONB column without loss.
type PatternConfig struct {
	CycleWeeks       int  `json:"cycleWeeks"`
	SkipWeekends     bool `json:"skipWeekends"`
	IgnoreNightShift bool `json:"ignoreNightShift"`
}

// RotationPattern is a tenant-owned definition of how shift types vary over
// time from a fixed start date.
type RotationPattern struct {
	ID               string
	TenantID         int
	TeamID           *int
	Name             string
	Description      string
	PatternType      PatternType
	Config           PatternConfig
	CycleLengthWeeks int
	StartsAt         time.Time
	EndsAt           *time.Time
	IsActive         bool
	CreatedBy        int
	CreatedAt        time.Time
}

// RotationAssignment binds one user to one pattern for a time window with a
// shift-group label.
type RotationAssignment struct {
	ID         string
	TenantID   int
	PatternID  string
	UserID     int
	TeamID     *int
	ShiftGroup ShiftGroup
	StartsAt   time.Time
	EndsAt     *time.Time
	IsActive   bool
}

// GeneratedShift is the in-memory output of the generator. It is never
// persisted directly; commit mode hands batches to the history store.
type GeneratedShift struct {
	UserID    int
	Date      time.Time
	ShiftType ShiftGroup
}

// RotationHistoryRecord is the durable record of a generated shift.
// At most one record exists per (tenant, user, shift date).
type RotationHistoryRecord struct {
	ID           string
	TenantID     int
	PatternID    string
	AssignmentID string
	UserID       int
	TeamID       *int
	ShiftDate    time.Time
	ShiftType    ShiftGroup
	WeekNumber   int
	Status       string
	CreatedAt    time.Time
}

// HistoryStatusGenerated is the status stamped on rows written by the
// generation commit path.
const HistoryStatusGenerated = "generated"

// HistoryFilter narrows a rotation history query. Nil fields are ignored.
type HistoryFilter struct {
	PatternID *string
	UserID    *int
	From      *time.Time
	To        *time.Time
	Status    *string
}

// PatternUpdate carries a partial pattern update. Nil fields are left
// unchanged; an update with every field nil is rejected before any storage
// access.
type PatternUpdate struct {
	Name             *string
	Description      *string
	PatternType      *PatternType
	Config           *PatternConfig
	CycleLengthWeeks *int
	StartsAt         *time.Time
	EndsAt           *time.Time
	IsActive         *bool
}

// Empty reports whether the update carries no recognized field.
func (u PatternUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.PatternType == nil &&
		u.Config == nil && u.CycleLengthWeeks == nil && u.StartsAt == nil &&
		u.EndsAt == nil && u.IsActive == nil
}

// KontiShift is one entry of a Kontischicht (continuous shift) template or
// of its year-long expansion: a dated shift with clock times.
type KontiShift struct {
	Date      time.Time
	ShiftType ShiftGroup
	StartTime string
	EndTime   string
}

// ShiftGroupMap maps user ids to their shift-group labels. Lookups go
// through Get so a missing user surfaces as an error instead of a zero value.
type ShiftGroupMap map[int]ShiftGroup

// Validate checks that every given user id has a valid shift group in the
// map. It reports all offending users at once.
func (m ShiftGroupMap) Validate(userIDs []int) error {
	var missing, invalid []int
	for _, id := range userIDs {
		group, ok := m[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		if !group.Valid() {
			invalid = append(invalid, id)
		}
	}
	sort.Ints(missing)
	sort.Ints(invalid)
	if len(missing) > 0 {
		return fmt.Errorf("%w: no shift group supplied for users %v", ErrInvalidInput, missing)
	}
	if len(invalid) > 0 {
		return fmt.Errorf("%w: unknown shift group for users %v", ErrInvalidInput, invalid)
	}
	return nil
}

// Get returns the shift group for a user, failing if the user is absent.
func (m ShiftGroupMap) Get(userID int) (ShiftGroup, error) {
	group, ok := m[userID]
	if !ok {
		return "", fmt.Errorf("%w: no shift group supplied for user %d", ErrInvalidInput, userID)
	}
	return group, nil
}
