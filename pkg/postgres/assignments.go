package postgres

import (
	"context"
	"fmt"

	"github.com/SCS-Technik/Assixx-sub012/pkg/db"
)

const assignmentColumns = `id, tenant_id, pattern_id, user_id, team_id, shift_group,
	starts_at, ends_at, is_active`

// GetActiveAssignments retrieves the active assignments for a pattern.
func (d *DB) GetActiveAssignments(ctx context.Context, patternID string, tenantID int) ([]db.RotationAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+assignmentColumns+`
		FROM rotation_assignment
		WHERE pattern_id = $1 AND tenant_id = $2 AND is_active = TRUE
		ORDER BY user_id
	`, patternID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.RotationAssignment
	for rows.Next() {
		var a db.RotationAssignment
		if err := rows.Scan(&a.ID, &a.TenantID, &a.PatternID, &a.UserID, &a.TeamID,
			&a.ShiftGroup, &a.StartsAt, &a.EndsAt, &a.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// FindActiveAssignment looks up the user's open assignment under the
// pattern: active, with no end date or an end date still in the future.
// Returns (nil, nil) when the user has no open assignment.
func (d *DB) FindActiveAssignment(ctx context.Context, patternID string, tenantID, userID int) (*db.RotationAssignment, error) {
	var a db.RotationAssignment
	err := d.pool.QueryRow(ctx, `
		SELECT `+assignmentColumns+`
		FROM rotation_assignment
		WHERE pattern_id = $1 AND tenant_id = $2 AND user_id = $3
		  AND is_active = TRUE
		  AND (ends_at IS NULL OR ends_at >= NOW())
		LIMIT 1
	`, patternID, tenantID, userID).Scan(&a.ID, &a.TenantID, &a.PatternID, &a.UserID,
		&a.TeamID, &a.ShiftGroup, &a.StartsAt, &a.EndsAt, &a.IsActive)
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query active assignment: %w", err)
	}
	return &a, nil
}

// InsertAssignment inserts a new assignment record.
func (d *DB) InsertAssignment(ctx context.Context, assignment *db.RotationAssignment) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO rotation_assignment (id, tenant_id, pattern_id, user_id, team_id,
			shift_group, starts_at, ends_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, assignment.ID, assignment.TenantID, assignment.PatternID, assignment.UserID,
		assignment.TeamID, assignment.ShiftGroup, assignment.StartsAt, assignment.EndsAt,
		assignment.IsActive)
	if err != nil {
		return fmt.Errorf("failed to insert assignment: %w", err)
	}
	return nil
}

// UpdateAssignment rewrites the mutable fields of an existing assignment in
// place. Re-assigning a user updates their open assignment rather than
// creating a duplicate row.
func (d *DB) UpdateAssignment(ctx context.Context, assignment *db.RotationAssignment) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE rotation_assignment
		SET shift_group = $3, starts_at = $4, ends_at = $5, is_active = $6
		WHERE id = $1 AND tenant_id = $2
	`, assignment.ID, assignment.TenantID, assignment.ShiftGroup, assignment.StartsAt,
		assignment.EndsAt, assignment.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: assignment %s for tenant %d", db.ErrNotFound, assignment.ID, assignment.TenantID)
	}
	return nil
}
