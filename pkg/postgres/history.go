package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/SCS-Technik/Assixx-sub012/pkg/core/rotation"
	"github.com/SCS-Technik/Assixx-sub012/pkg/db"
)

// rotationTx is the slice of pgx.Tx the batch writer uses. The insert loop
// runs against it without owning the transaction's lifecycle.
type rotationTx interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// CommitGeneratedShifts persists a generated batch atomically. One
// transaction covers the entire batch: each entry is checked for an
// existing (tenant, user, date) row and skipped if present, otherwise
// inserted with its ISO week number and status "generated". Any insert
// failure, including a uniqueness or overlap violation raised by the
// storage layer, rolls the whole transaction back; no partial batch is
// ever left committed. Returns the number of rows inserted.
func (d *DB) CommitGeneratedShifts(ctx context.Context, entries []db.GeneratedShift, patternID string, tenantID int, assignmentByUser map[int]db.RotationAssignment) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted, err := insertShiftBatch(ctx, tx, entries, patternID, tenantID, assignmentByUser)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, nil
}

// insertShiftBatch runs the per-entry exists-check and insert loop inside
// the caller's transaction and returns the number of rows inserted.
func insertShiftBatch(ctx context.Context, tx rotationTx, entries []db.GeneratedShift, patternID string, tenantID int, assignmentByUser map[int]db.RotationAssignment) (int, error) {
	inserted := 0
	for _, entry := range entries {
		assignment, ok := assignmentByUser[entry.UserID]
		if !ok {
			return 0, fmt.Errorf("%w: no assignment supplied for user %d", db.ErrInvalidInput, entry.UserID)
		}

		var exists bool
		err := tx.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM rotation_history
				WHERE tenant_id = $1 AND user_id = $2 AND shift_date = $3
			)
		`, tenantID, entry.UserID, entry.Date).Scan(&exists)
		if err != nil {
			return 0, fmt.Errorf("failed to check existing shift: %w", err)
		}
		if exists {
			continue
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO rotation_history (id, tenant_id, pattern_id, assignment_id, user_id,
				team_id, shift_date, shift_type, week_number, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, uuid.New().String(), tenantID, patternID, assignment.ID, entry.UserID,
			assignment.TeamID, entry.Date, entry.ShiftType,
			rotation.ISOWeekNumber(entry.Date), db.HistoryStatusGenerated)
		if err != nil {
			if isConstraintViolation(err) {
				return 0, fmt.Errorf("%w: shift for user %d on %s rejected: %v",
					db.ErrConflict, entry.UserID, entry.Date.Format("2006-01-02"), err)
			}
			return 0, fmt.Errorf("failed to insert rotation history: %w", err)
		}
		inserted++
	}

	return inserted, nil
}

// QueryHistory retrieves rotation history rows for the tenant, newest
// shift dates first. Nil filter fields are ignored.
func (d *DB) QueryHistory(ctx context.Context, tenantID int, filter db.HistoryFilter) ([]db.RotationHistoryRecord, error) {
	conditions := []string{"tenant_id = $1"}
	args := []any{tenantID}
	add := func(condition string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.PatternID != nil {
		add("pattern_id = $%d", *filter.PatternID)
	}
	if filter.UserID != nil {
		add("user_id = $%d", *filter.UserID)
	}
	if filter.From != nil {
		add("shift_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("shift_date <= $%d", *filter.To)
	}
	if filter.Status != nil {
		add("status = $%d", *filter.Status)
	}

	query := `
		SELECT id, tenant_id, pattern_id, assignment_id, user_id, team_id,
			shift_date, shift_type, week_number, status, created_at
		FROM rotation_history
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY shift_date DESC, user_id`

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rotation history: %w", err)
	}
	defer rows.Close()

	var records []db.RotationHistoryRecord
	for rows.Next() {
		var r db.RotationHistoryRecord
		if err := rows.Scan(&r.ID, &r.TenantID, &r.PatternID, &r.AssignmentID, &r.UserID,
			&r.TeamID, &r.ShiftDate, &r.ShiftType, &r.WeekNumber, &r.Status, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rotation history: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rotation history: %w", err)
	}

	return records, nil
}

// BulkDeleteRotationData removes all rotation data scoped to one team of a
// tenant, in one transaction: history first, then assignments, then
// patterns. Used for team offboarding.
func (d *DB) BulkDeleteRotationData(ctx context.Context, tenantID, teamID int) (db.DeleteCounts, error) {
	var counts db.DeleteCounts

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return counts, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		DELETE FROM rotation_history WHERE tenant_id = $1 AND team_id = $2
	`, tenantID, teamID)
	if err != nil {
		return counts, fmt.Errorf("failed to delete rotation history: %w", err)
	}
	counts.History = tag.RowsAffected()

	tag, err = tx.Exec(ctx, `
		DELETE FROM rotation_assignment WHERE tenant_id = $1 AND team_id = $2
	`, tenantID, teamID)
	if err != nil {
		return counts, fmt.Errorf("failed to delete assignments: %w", err)
	}
	counts.Assignments = tag.RowsAffected()

	tag, err = tx.Exec(ctx, `
		DELETE FROM rotation_pattern WHERE tenant_id = $1 AND team_id = $2
	`, tenantID, teamID)
	if err != nil {
		return counts, fmt.Errorf("failed to delete patterns: %w", err)
	}
	counts.Patterns = tag.RowsAffected()

	if err := tx.Commit(ctx); err != nil {
		return counts, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return counts, nil
}

// isConstraintViolation reports whether err is a storage-level uniqueness,
// exclusion, or trigger-raised overlap rejection.
func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "23505", "23P01", "P0001":
		return true
	}
	return false
}
