package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SCS-Technik/Assixx-sub012/pkg/db"
)

// AssignUsersStore defines the database operations needed to assign users
// to a pattern.
type AssignUsersStore interface {
	GetPattern(ctx context.Context, id string, tenantID int) (*db.RotationPattern, error)
	GetActiveAssignments(ctx context.Context, patternID string, tenantID int) ([]db.RotationAssignment, error)
	FindActiveAssignment(ctx context.Context, patternID string, tenantID, userID int) (*db.RotationAssignment, error)
	InsertAssignment(ctx context.Context, assignment *db.RotationAssignment) error
	UpdateAssignment(ctx context.Context, assignment *db.RotationAssignment) error
}

// AssignUsersInput is the input for binding users to a pattern.
type AssignUsersInput struct {
	PatternID   string
	TenantID    int
	UserIDs     []int
	ShiftGroups db.ShiftGroupMap
	TeamID      *int
	StartsAt    time.Time
	EndsAt      *time.Time
	ActorID     int
}

// AssignUsers binds the given users to a pattern with their shift-group
// labels and returns the pattern's active assignments afterwards.
//
// Every user id must have a shift group in the map; a missing entry fails
// the whole request before any write. A user who already holds an open
// assignment under the pattern has it updated in place instead of gaining a
// duplicate row, so repeated calls with the same input are idempotent in
// effect.
func AssignUsers(ctx context.Context, store AssignUsersStore, logger *zap.Logger, input AssignUsersInput) ([]db.RotationAssignment, error) {
	if len(input.UserIDs) == 0 {
		return nil, fmt.Errorf("%w: no users supplied", db.ErrInvalidInput)
	}
	if err := input.ShiftGroups.Validate(input.UserIDs); err != nil {
		return nil, err
	}

	pattern, err := store.GetPattern(ctx, input.PatternID, input.TenantID)
	if err != nil {
		return nil, err
	}

	logger.Debug("Assigning users to pattern",
		zap.String("pattern_id", pattern.ID),
		zap.Int("tenant_id", input.TenantID),
		zap.Int("user_count", len(input.UserIDs)))

	for _, userID := range input.UserIDs {
		group, err := input.ShiftGroups.Get(userID)
		if err != nil {
			return nil, err
		}

		existing, err := store.FindActiveAssignment(ctx, input.PatternID, input.TenantID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up assignment for user %d: %w", userID, err)
		}

		if existing != nil {
			existing.ShiftGroup = group
			existing.StartsAt = input.StartsAt
			existing.EndsAt = input.EndsAt
			if err := store.UpdateAssignment(ctx, existing); err != nil {
				return nil, fmt.Errorf("failed to update assignment for user %d: %w", userID, err)
			}
			logger.Debug("Updated existing assignment",
				zap.String("assignment_id", existing.ID),
				zap.Int("user_id", userID),
				zap.String("shift_group", string(group)))
			continue
		}

		assignment := &db.RotationAssignment{
			ID:         uuid.New().String(),
			TenantID:   input.TenantID,
			PatternID:  input.PatternID,
			UserID:     userID,
			TeamID:     input.TeamID,
			ShiftGroup: group,
			StartsAt:   input.StartsAt,
			EndsAt:     input.EndsAt,
			IsActive:   true,
		}
		if err := store.InsertAssignment(ctx, assignment); err != nil {
			return nil, fmt.Errorf("failed to insert assignment for user %d: %w", userID, err)
		}
		logger.Debug("Created new assignment",
			zap.String("assignment_id", assignment.ID),
			zap.Int("user_id", userID),
			zap.String("shift_group", string(group)))
	}

	assignments, err := store.GetActiveAssignments(ctx, input.PatternID, input.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active assignments: %w", err)
	}

	logger.Info("Users assigned to pattern",
		zap.String("pattern_id", input.PatternID),
		zap.Int("assignment_count", len(assignments)),
		zap.Int("actor_id", input.ActorID))

	return assignments, nil
}
