package db

import (
	"context"
	"time"
)

// PatternStore defines the interface for rotation pattern operations.
type PatternStore interface {
	ListPatterns(ctx context.Context, tenantID int, activeOnly bool) ([]RotationPattern, error)
	GetPattern(ctx context.Context, id string, tenantID int) (*RotationPattern, error)
	InsertPattern(ctx context.Context, pattern *RotationPattern) error
	UpdatePattern(ctx context.Context, id string, tenantID int, update PatternUpdate) (*RotationPattern, error)
	DeletePattern(ctx context.Context, id string, tenantID int) error
}

// AssignmentStore defines the interface for user-to-pattern assignments.
type AssignmentStore interface {
	GetActiveAssignments(ctx context.Context, patternID string, tenantID int) ([]RotationAssignment, error)
	FindActiveAssignment(ctx context.Context, patternID string, tenantID, userID int) (*RotationAssignment, error)
	InsertAssignment(ctx context.Context, assignment *RotationAssignment) error
	UpdateAssignment(ctx context.Context, assignment *RotationAssignment) error
}

// HistoryStore defines the interface for rotation history records.
// CommitGeneratedShifts is the transactional persister: the whole batch is
// written inside one transaction and either fully commits or fully rolls
// back. It returns the number of rows actually inserted (entries whose
// (tenant, user, date) already exist are skipped).
type HistoryStore interface {
	CommitGeneratedShifts(ctx context.Context, entries []GeneratedShift, patternID string, tenantID int, assignmentByUser map[int]RotationAssignment) (int, error)
	QueryHistory(ctx context.Context, tenantID int, filter HistoryFilter) ([]RotationHistoryRecord, error)
	BulkDeleteRotationData(ctx context.Context, tenantID, teamID int) (DeleteCounts, error)
}

// DeleteCounts reports how many rows a bulk team offboarding removed.
type DeleteCounts struct {
	History     int64
	Assignments int64
	Patterns    int64
}

// Database defines the interface for all rotation database operations.
// The pgx-backed postgres.DB implements this interface.
type Database interface {
	PatternStore
	AssignmentStore
	HistoryStore
}

// Overlaps reports whether the assignment's own validity window intersects
// the inclusive [start, end] generation range. An open-ended assignment
// (nil EndsAt) overlaps everything from its start onwards.
func (a *RotationAssignment) Overlaps(start, end time.Time) bool {
	if a.StartsAt.After(end) {
		return false
	}
	if a.EndsAt != nil && a.EndsAt.Before(start) {
		return false
	}
	return true
}
