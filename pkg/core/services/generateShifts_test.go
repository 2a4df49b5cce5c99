package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/SCS-Technik/Assixx-sub012/pkg/db"
)

// mockGenerateStore implements GenerateShiftsStore for testing
type mockGenerateStore struct {
	pattern           *db.RotationPattern
	getPatternErr     error
	assignments       []db.RotationAssignment
	getAssignmentsErr error
	commitCalls       int
	committedEntries  []db.GeneratedShift
	committedByUser   map[int]db.RotationAssignment
	commitErr         error
}

func (m *mockGenerateStore) GetPattern(ctx context.Context, id string, tenantID int) (*db.RotationPattern, error) {
	if m.getPatternErr != nil {
		return nil, m.getPatternErr
	}
	return m.pattern, nil
}

func (m *mockGenerateStore) GetActiveAssignments(ctx context.Context, patternID string, tenantID int) ([]db.RotationAssignment, error) {
	if m.getAssignmentsErr != nil {
		return nil, m.getAssignmentsErr
	}
	return m.assignments, nil
}

func (m *mockGenerateStore) CommitGeneratedShifts(ctx context.Context, entries []db.GeneratedShift, patternID string, tenantID int, assignmentByUser map[int]db.RotationAssignment) (int, error) {
	m.commitCalls++
	if m.commitErr != nil {
		return 0, m.commitErr
	}
	m.committedEntries = append(m.committedEntries, entries...)
	m.committedByUser = assignmentByUser
	return len(entries), nil
}

func openAssignment(userID int, group db.ShiftGroup) db.RotationAssignment {
	return db.RotationAssignment{
		ID:         fmt.Sprintf("assignment-%d", userID),
		TenantID:   1,
		PatternID:  "pattern-1",
		UserID:     userID,
		ShiftGroup: group,
		StartsAt:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		IsActive:   true,
	}
}

func generateInput(preview bool) GenerateShiftsInput {
	return GenerateShiftsInput{
		PatternID: "pattern-1",
		TenantID:  1,
		StartDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC),
		Preview:   preview,
	}
}

func TestGenerateShifts_PreviewHasNoSideEffects(t *testing.T) {
	store := &mockGenerateStore{
		pattern:     testPattern(),
		assignments: []db.RotationAssignment{openAssignment(10, db.GroupEarly)},
	}

	result, err := GenerateShifts(context.Background(), store, zap.NewNop(), generateInput(true))

	require.NoError(t, err)
	assert.True(t, result.Preview)
	assert.Zero(t, store.commitCalls)
	assert.Zero(t, result.Inserted)
	// Two work weeks, weekends skipped
	assert.Len(t, result.Entries, 10)
}

func TestGenerateShifts_CommitHandsFullBatchToPersister(t *testing.T) {
	store := &mockGenerateStore{
		pattern: testPattern(),
		assignments: []db.RotationAssignment{
			openAssignment(10, db.GroupEarly),
			openAssignment(11, db.GroupLate),
		},
	}

	result, err := GenerateShifts(context.Background(), store, zap.NewNop(), generateInput(false))

	require.NoError(t, err)
	assert.Equal(t, 1, store.commitCalls)
	assert.Len(t, store.committedEntries, 20)
	assert.Equal(t, 20, result.Inserted)
	require.Len(t, store.committedByUser, 2)
	assert.Equal(t, "assignment-10", store.committedByUser[10].ID)
}

func TestGenerateShifts_CommitFailurePropagatesUnchanged(t *testing.T) {
	conflict := fmt.Errorf("%w: duplicate shift", db.ErrConflict)
	store := &mockGenerateStore{
		pattern:     testPattern(),
		assignments: []db.RotationAssignment{openAssignment(10, db.GroupEarly)},
		commitErr:   conflict,
	}

	result, err := GenerateShifts(context.Background(), store, zap.NewNop(), generateInput(false))

	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrConflict)
	assert.Nil(t, result)
}

func TestGenerateShifts_SkipsAssignmentsOutsideRange(t *testing.T) {
	ended := openAssignment(11, db.GroupLate)
	endsAt := time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)
	ended.EndsAt = &endsAt

	notYetStarted := openAssignment(12, db.GroupNight)
	notYetStarted.StartsAt = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	store := &mockGenerateStore{
		pattern: testPattern(),
		assignments: []db.RotationAssignment{
			openAssignment(10, db.GroupEarly),
			ended,
			notYetStarted,
		},
	}

	result, err := GenerateShifts(context.Background(), store, zap.NewNop(), generateInput(true))

	require.NoError(t, err)
	for _, entry := range result.Entries {
		assert.Equal(t, 10, entry.UserID)
	}
}

func TestGenerateShifts_EmptyBatchIsNotCommitted(t *testing.T) {
	store := &mockGenerateStore{pattern: testPattern()}

	result, err := GenerateShifts(context.Background(), store, zap.NewNop(), generateInput(false))

	require.NoError(t, err)
	assert.Empty(t, result.Entries)
	assert.Zero(t, store.commitCalls)
}

func TestGenerateShifts_EmptyCommitLogsGenerationMode(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	store := &mockGenerateStore{pattern: testPattern()}

	_, err := GenerateShifts(context.Background(), store, zap.New(core), generateInput(false))

	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("No shifts to generate").Len())
	assert.Zero(t, logs.FilterMessage("Shift generation previewed").Len())
}

func TestGenerateShifts_StartAfterEndRejected(t *testing.T) {
	store := &mockGenerateStore{pattern: testPattern()}

	input := generateInput(false)
	input.StartDate = time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	input.EndDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	_, err := GenerateShifts(context.Background(), store, zap.NewNop(), input)

	assert.ErrorIs(t, err, db.ErrInvalidInput)
}

func TestGenerateShifts_HolidayRuleExcludesDates(t *testing.T) {
	store := &mockGenerateStore{
		pattern:     testPattern(),
		assignments: []db.RotationAssignment{openAssignment(10, db.GroupEarly)},
	}

	input := generateInput(true)
	// New Year's Day, recurring
	input.HolidayRules = []string{"DTSTART:20200101T000000Z\nRRULE:FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=1"}

	result, err := GenerateShifts(context.Background(), store, zap.NewNop(), input)

	require.NoError(t, err)
	assert.Len(t, result.Entries, 9)
	for _, entry := range result.Entries {
		assert.NotEqual(t, "2024-01-01", entry.Date.Format("2006-01-02"))
	}
}

func TestGenerateShifts_InvalidHolidayRuleRejected(t *testing.T) {
	store := &mockGenerateStore{
		pattern:     testPattern(),
		assignments: []db.RotationAssignment{openAssignment(10, db.GroupEarly)},
	}

	input := generateInput(true)
	input.HolidayRules = []string{"not an rrule"}

	_, err := GenerateShifts(context.Background(), store, zap.NewNop(), input)

	assert.ErrorIs(t, err, db.ErrInvalidInput)
}
