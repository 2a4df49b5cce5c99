package services

import (
	"context"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/SCS-Technik/Assixx-sub012/pkg/core/rotation"
	"github.com/SCS-Technik/Assixx-sub012/pkg/db"
)

// GenerateShiftsStore defines the database operations needed for shift
// generation.
type GenerateShiftsStore interface {
	GetPattern(ctx context.Context, id string, tenantID int) (*db.RotationPattern, error)
	GetActiveAssignments(ctx context.Context, patternID string, tenantID int) ([]db.RotationAssignment, error)
	CommitGeneratedShifts(ctx context.Context, entries []db.GeneratedShift, patternID string, tenantID int, assignmentByUser map[int]db.RotationAssignment) (int, error)
}

// GenerateShiftsInput is the input for a generation request.
type GenerateShiftsInput struct {
	PatternID    string
	TenantID     int
	StartDate    time.Time
	EndDate      time.Time
	Preview      bool
	HolidayRules []string
}

// GenerateShiftsResult is the outcome of a generation request.
type GenerateShiftsResult struct {
	Entries  []db.GeneratedShift
	Inserted int
	Preview  bool
}

// GenerateShifts computes concrete shifts for every active assignment of a
// pattern whose window overlaps the requested range. In preview mode the
// batch is returned without any persistence side effect; otherwise the full
// batch is handed to the history store as a single atomic unit.
func GenerateShifts(ctx context.Context, store GenerateShiftsStore, logger *zap.Logger, input GenerateShiftsInput) (*GenerateShiftsResult, error) {
	start := rotation.DateOnly(input.StartDate)
	end := rotation.DateOnly(input.EndDate)
	if start.After(end) {
		return nil, fmt.Errorf("%w: start date %s is after end date %s",
			db.ErrInvalidInput, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	pattern, err := store.GetPattern(ctx, input.PatternID, input.TenantID)
	if err != nil {
		return nil, err
	}

	assignments, err := store.GetActiveAssignments(ctx, input.PatternID, input.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active assignments: %w", err)
	}

	holidays, err := holidayDates(input.HolidayRules, start, end)
	if err != nil {
		return nil, err
	}

	logger.Debug("Generating shifts",
		zap.String("pattern_id", pattern.ID),
		zap.Int("tenant_id", input.TenantID),
		zap.Int("assignment_count", len(assignments)),
		zap.Bool("preview", input.Preview))

	var entries []db.GeneratedShift
	assignmentByUser := make(map[int]db.RotationAssignment)
	for _, assignment := range assignments {
		if !assignment.Overlaps(start, end) {
			continue
		}
		assignmentByUser[assignment.UserID] = assignment

		for _, entry := range rotation.GenerateForAssignment(pattern, &assignment, start, end) {
			if holidays[entry.Date.Format("2006-01-02")] {
				continue
			}
			entries = append(entries, entry)
		}
	}

	result := &GenerateShiftsResult{Entries: entries, Preview: input.Preview}
	if input.Preview || len(entries) == 0 {
		msg := "Shift generation previewed"
		if !input.Preview {
			msg = "No shifts to generate"
		}
		logger.Info(msg,
			zap.String("pattern_id", pattern.ID),
			zap.Int("entry_count", len(entries)))
		return result, nil
	}

	inserted, err := store.CommitGeneratedShifts(ctx, entries, input.PatternID, input.TenantID, assignmentByUser)
	if err != nil {
		return nil, err
	}
	result.Inserted = inserted

	logger.Info("Shifts generated and committed",
		zap.String("pattern_id", pattern.ID),
		zap.Int("entry_count", len(entries)),
		zap.Int("inserted", inserted))

	return result, nil
}

// holidayDates expands the configured holiday recurrence rules over the
// generation range and returns the matching dates keyed by YYYY-MM-DD.
func holidayDates(rules []string, start, end time.Time) (map[string]bool, error) {
	if len(rules) == 0 {
		return nil, nil
	}

	dates := make(map[string]bool)
	for i, rule := range rules {
		set, err := rrule.StrToRRuleSet(rule)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid holiday rule [%d]: %v", db.ErrInvalidInput, i, err)
		}
		// Between is exclusive of the after bound even with inc on some
		// rule shapes, so widen by a day on each side and compare by date.
		for _, occurrence := range set.Between(start.AddDate(0, 0, -1), end.AddDate(0, 0, 1), true) {
			key := occurrence.UTC().Format("2006-01-02")
			if key >= start.Format("2006-01-02") && key <= end.Format("2006-01-02") {
				dates[key] = true
			}
		}
	}
	return dates, nil
}
