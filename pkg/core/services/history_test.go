package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SCS-Technik/Assixx-sub012/pkg/db"
)

// mockHistoryStore implements db.HistoryStore for testing
type mockHistoryStore struct {
	records     []db.RotationHistoryRecord
	queryErr    error
	lastFilter  db.HistoryFilter
	counts      db.DeleteCounts
	deleteErr   error
	deleteCalls int
}

func (m *mockHistoryStore) CommitGeneratedShifts(ctx context.Context, entries []db.GeneratedShift, patternID string, tenantID int, assignmentByUser map[int]db.RotationAssignment) (int, error) {
	return 0, nil
}

func (m *mockHistoryStore) QueryHistory(ctx context.Context, tenantID int, filter db.HistoryFilter) ([]db.RotationHistoryRecord, error) {
	m.lastFilter = filter
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.records, nil
}

func (m *mockHistoryStore) BulkDeleteRotationData(ctx context.Context, tenantID, teamID int) (db.DeleteCounts, error) {
	m.deleteCalls++
	if m.deleteErr != nil {
		return db.DeleteCounts{}, m.deleteErr
	}
	return m.counts, nil
}

func TestViewHistory_PassesFilterThrough(t *testing.T) {
	userID := 10
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	store := &mockHistoryStore{
		records: []db.RotationHistoryRecord{
			{ID: "record-1", TenantID: 1, UserID: 10, WeekNumber: 1},
		},
	}

	records, err := ViewHistory(context.Background(), store, zap.NewNop(), 1,
		db.HistoryFilter{UserID: &userID, From: &from})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, &userID, store.lastFilter.UserID)
	assert.Equal(t, &from, store.lastFilter.From)
}

func TestOffboardTeam_ReturnsCounts(t *testing.T) {
	store := &mockHistoryStore{
		counts: db.DeleteCounts{History: 120, Assignments: 6, Patterns: 2},
	}

	counts, err := OffboardTeam(context.Background(), store, zap.NewNop(), 1, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(120), counts.History)
	assert.Equal(t, int64(6), counts.Assignments)
	assert.Equal(t, int64(2), counts.Patterns)
}

func TestOffboardTeam_InvalidTeamRejected(t *testing.T) {
	store := &mockHistoryStore{}

	_, err := OffboardTeam(context.Background(), store, zap.NewNop(), 1, 0)

	assert.ErrorIs(t, err, db.ErrInvalidInput)
	assert.Zero(t, store.deleteCalls)
}
