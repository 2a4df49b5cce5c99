package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SCS-Technik/Assixx-sub012/pkg/core/rotation"
	"github.com/SCS-Technik/Assixx-sub012/pkg/db"
)

// existsRow satisfies pgx.Row for the exists-check query.
type existsRow struct {
	exists bool
	err    error
}

func (r existsRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*bool)) = r.exists
	return nil
}

// insertedShift captures the arguments of one history insert.
type insertedShift struct {
	assignmentID string
	userID       int
	teamID       *int
	date         time.Time
	shiftType    db.ShiftGroup
	weekNumber   int
	status       string
}

// mockShiftTx implements rotationTx: the exists-check is answered from the
// existing set and inserts are recorded.
type mockShiftTx struct {
	existing  map[string]bool
	inserts   []insertedShift
	execErr   error
	failAfter int // return execErr once this many inserts succeeded
}

func shiftKey(userID int, date time.Time) string {
	return fmt.Sprintf("%d|%s", userID, date.Format("2006-01-02"))
}

func (m *mockShiftTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return existsRow{exists: m.existing[shiftKey(args[1].(int), args[2].(time.Time))]}
}

func (m *mockShiftTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	if m.execErr != nil && len(m.inserts) >= m.failAfter {
		return pgconn.CommandTag{}, m.execErr
	}
	m.inserts = append(m.inserts, insertedShift{
		assignmentID: arguments[3].(string),
		userID:       arguments[4].(int),
		teamID:       arguments[5].(*int),
		date:         arguments[6].(time.Time),
		shiftType:    arguments[7].(db.ShiftGroup),
		weekNumber:   arguments[8].(int),
		status:       arguments[9].(string),
	})
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func histDate(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func shiftBatch() ([]db.GeneratedShift, map[int]db.RotationAssignment) {
	entries := []db.GeneratedShift{
		{UserID: 10, Date: histDate(1), ShiftType: db.GroupEarly},
		{UserID: 10, Date: histDate(2), ShiftType: db.GroupEarly},
		{UserID: 11, Date: histDate(1), ShiftType: db.GroupLate},
	}
	teamID := 3
	byUser := map[int]db.RotationAssignment{
		10: {ID: "assignment-10", TenantID: 1, PatternID: "pattern-1", UserID: 10, TeamID: &teamID},
		11: {ID: "assignment-11", TenantID: 1, PatternID: "pattern-1", UserID: 11, TeamID: &teamID},
	}
	return entries, byUser
}

func TestInsertShiftBatch_StampsWeekNumberAndStatus(t *testing.T) {
	entries, byUser := shiftBatch()
	tx := &mockShiftTx{existing: map[string]bool{}}

	inserted, err := insertShiftBatch(context.Background(), tx, entries, "pattern-1", 1, byUser)

	require.NoError(t, err)
	assert.Equal(t, 3, inserted)
	require.Len(t, tx.inserts, 3)
	for _, row := range tx.inserts {
		assert.Equal(t, rotation.ISOWeekNumber(row.date), row.weekNumber)
		assert.Equal(t, db.HistoryStatusGenerated, row.status)
	}
	assert.Equal(t, "assignment-10", tx.inserts[0].assignmentID)
	assert.Equal(t, "assignment-11", tx.inserts[2].assignmentID)
	require.NotNil(t, tx.inserts[0].teamID)
	assert.Equal(t, 3, *tx.inserts[0].teamID)
}

func TestInsertShiftBatch_YearBoundaryWeekNumber(t *testing.T) {
	// 2024-12-30 is a Monday belonging to ISO week 1 of 2025
	entries := []db.GeneratedShift{
		{UserID: 10, Date: time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC), ShiftType: db.GroupEarly},
	}
	_, byUser := shiftBatch()
	tx := &mockShiftTx{existing: map[string]bool{}}

	_, err := insertShiftBatch(context.Background(), tx, entries, "pattern-1", 1, byUser)

	require.NoError(t, err)
	require.Len(t, tx.inserts, 1)
	assert.Equal(t, 1, tx.inserts[0].weekNumber)
}

func TestInsertShiftBatch_SkipsExistingRows(t *testing.T) {
	entries, byUser := shiftBatch()
	tx := &mockShiftTx{existing: map[string]bool{
		shiftKey(10, histDate(1)): true,
	}}

	inserted, err := insertShiftBatch(context.Background(), tx, entries, "pattern-1", 1, byUser)

	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	require.Len(t, tx.inserts, 2)
	for _, row := range tx.inserts {
		assert.False(t, row.userID == 10 && row.date.Equal(histDate(1)))
	}
}

func TestInsertShiftBatch_RerunInsertsNothing(t *testing.T) {
	entries, byUser := shiftBatch()
	tx := &mockShiftTx{existing: map[string]bool{
		shiftKey(10, histDate(1)): true,
		shiftKey(10, histDate(2)): true,
		shiftKey(11, histDate(1)): true,
	}}

	inserted, err := insertShiftBatch(context.Background(), tx, entries, "pattern-1", 1, byUser)

	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.Empty(t, tx.inserts)
}

func TestInsertShiftBatch_UniqueViolationMapsToConflict(t *testing.T) {
	entries, byUser := shiftBatch()
	tx := &mockShiftTx{
		existing:  map[string]bool{},
		execErr:   &pgconn.PgError{Code: "23505"},
		failAfter: 1,
	}

	inserted, err := insertShiftBatch(context.Background(), tx, entries, "pattern-1", 1, byUser)

	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrConflict)
	assert.Contains(t, err.Error(), "2024-01-02")
	assert.Zero(t, inserted)
}

func TestInsertShiftBatch_TriggerRejectionMapsToConflict(t *testing.T) {
	entries, byUser := shiftBatch()
	tx := &mockShiftTx{
		existing: map[string]bool{},
		execErr:  &pgconn.PgError{Code: "P0001"},
	}

	_, err := insertShiftBatch(context.Background(), tx, entries, "pattern-1", 1, byUser)

	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrConflict)
}

func TestInsertShiftBatch_OtherExecErrorIsNotConflict(t *testing.T) {
	entries, byUser := shiftBatch()
	tx := &mockShiftTx{
		existing: map[string]bool{},
		execErr:  errors.New("connection reset"),
	}

	_, err := insertShiftBatch(context.Background(), tx, entries, "pattern-1", 1, byUser)

	require.Error(t, err)
	assert.NotErrorIs(t, err, db.ErrConflict)
	assert.Contains(t, err.Error(), "failed to insert rotation history")
}

func TestInsertShiftBatch_MissingAssignmentRejected(t *testing.T) {
	entries, byUser := shiftBatch()
	delete(byUser, 11)
	tx := &mockShiftTx{existing: map[string]bool{}}

	_, err := insertShiftBatch(context.Background(), tx, entries, "pattern-1", 1, byUser)

	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrInvalidInput)
	assert.Contains(t, err.Error(), "11")
}
