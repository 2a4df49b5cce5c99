package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SCS-Technik/Assixx-sub012/pkg/core/rotation"
	"github.com/SCS-Technik/Assixx-sub012/pkg/db"
)

// ExpandYearStore defines the database operations needed to persist an
// expanded Kontischicht year plan.
type ExpandYearStore interface {
	FindActiveAssignment(ctx context.Context, patternID string, tenantID, userID int) (*db.RotationAssignment, error)
	CommitGeneratedShifts(ctx context.Context, entries []db.GeneratedShift, patternID string, tenantID int, assignmentByUser map[int]db.RotationAssignment) (int, error)
}

// ExpandYearInput is the input for a Kontischicht year expansion.
// PatternID and UserID are only required when Commit is set.
type ExpandYearInput struct {
	Template  []db.KontiShift
	Year      int
	TenantID  int
	PatternID string
	UserID    int
	Commit    bool
}

// ExpandYearResult is the outcome of a year expansion.
type ExpandYearResult struct {
	Shifts   []db.KontiShift
	Inserted int
}

// ExpandYear replicates a two-week Kontischicht template across the target
// year. The expansion itself performs no persistence; with Commit set, the
// expanded entries are stamped with the user's open assignment under the
// pattern and routed through the transactional history store.
func ExpandYear(ctx context.Context, store ExpandYearStore, logger *zap.Logger, input ExpandYearInput) (*ExpandYearResult, error) {
	if input.Year < 1 {
		return nil, fmt.Errorf("%w: invalid year %d", db.ErrInvalidInput, input.Year)
	}

	expanded := rotation.ExpandKontischichtYear(input.Template, input.Year)

	logger.Debug("Expanded Kontischicht template",
		zap.Int("year", input.Year),
		zap.Int("template_count", len(input.Template)),
		zap.Int("expanded_count", len(expanded)))

	result := &ExpandYearResult{Shifts: expanded}
	if !input.Commit || len(expanded) == 0 {
		return result, nil
	}

	assignment, err := store.FindActiveAssignment(ctx, input.PatternID, input.TenantID, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up assignment for user %d: %w", input.UserID, err)
	}
	if assignment == nil {
		return nil, fmt.Errorf("%w: no open assignment for user %d under pattern %s",
			db.ErrNotFound, input.UserID, input.PatternID)
	}

	entries := make([]db.GeneratedShift, 0, len(expanded))
	for _, shift := range expanded {
		entries = append(entries, db.GeneratedShift{
			UserID:    input.UserID,
			Date:      shift.Date,
			ShiftType: shift.ShiftType,
		})
	}

	inserted, err := store.CommitGeneratedShifts(ctx, entries, input.PatternID, input.TenantID,
		map[int]db.RotationAssignment{input.UserID: *assignment})
	if err != nil {
		return nil, err
	}
	result.Inserted = inserted

	logger.Info("Kontischicht year plan committed",
		zap.Int("year", input.Year),
		zap.Int("entry_count", len(entries)),
		zap.Int("inserted", inserted))

	return result, nil
}
