package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SCS-Technik/Assixx-sub012/pkg/db"
)

// ViewHistory retrieves rotation history for the tenant with optional
// filters, newest first.
func ViewHistory(ctx context.Context, store db.HistoryStore, logger *zap.Logger, tenantID int, filter db.HistoryFilter) ([]db.RotationHistoryRecord, error) {
	records, err := store.QueryHistory(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	logger.Debug("Fetched rotation history",
		zap.Int("tenant_id", tenantID),
		zap.Int("record_count", len(records)))

	return records, nil
}

// OffboardTeam removes all rotation data for one team of a tenant: history
// rows, assignments, and patterns, in one transaction.
func OffboardTeam(ctx context.Context, store db.HistoryStore, logger *zap.Logger, tenantID, teamID int) (db.DeleteCounts, error) {
	if teamID < 1 {
		return db.DeleteCounts{}, fmt.Errorf("%w: invalid team id %d", db.ErrInvalidInput, teamID)
	}

	counts, err := store.BulkDeleteRotationData(ctx, tenantID, teamID)
	if err != nil {
		return counts, err
	}

	logger.Info("Team rotation data removed",
		zap.Int("tenant_id", tenantID),
		zap.Int("team_id", teamID),
		zap.Int64("history_rows", counts.History),
		zap.Int64("assignments", counts.Assignments),
		zap.Int64("patterns", counts.Patterns))

	return counts, nil
}
