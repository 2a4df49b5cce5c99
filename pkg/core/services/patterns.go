package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SCS-Technik/Assixx-sub012/pkg/db"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// PatternConfigInput carries the optional structured configuration for a
// pattern. Nil flags fall back to their defaults (skipWeekends=true,
// ignoreNightShift=false).
type PatternConfigInput struct {
	CycleWeeks       int `validate:"omitempty,min=1"`
	SkipWeekends     *bool
	IgnoreNightShift *bool
}

// CreatePatternInput is the validated input for creating a pattern.
type CreatePatternInput struct {
	TenantID         int `validate:"required,min=1"`
	TeamID           *int
	Name             string `validate:"required"`
	Description      string
	PatternType      db.PatternType `validate:"required"`
	Config           *PatternConfigInput
	CycleLengthWeeks int       `validate:"omitempty,min=1"`
	StartsAt         time.Time `validate:"required"`
	EndsAt           *time.Time
	ActorID          int `validate:"required,min=1"`
}

// CreatePattern creates a rotation pattern with defaults applied:
// cycleLengthWeeks=2 and isActive=true unless supplied otherwise.
func CreatePattern(ctx context.Context, store db.PatternStore, logger *zap.Logger, input CreatePatternInput) (*db.RotationPattern, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", db.ErrInvalidInput, err)
	}
	if !input.PatternType.Valid() {
		return nil, fmt.Errorf("%w: unknown pattern type %q", db.ErrInvalidInput, input.PatternType)
	}

	cycleWeeks := input.CycleLengthWeeks
	if cycleWeeks == 0 {
		cycleWeeks = 2
	}

	pattern := &db.RotationPattern{
		ID:               uuid.New().String(),
		TenantID:         input.TenantID,
		TeamID:           input.TeamID,
		Name:             input.Name,
		Description:      input.Description,
		PatternType:      input.PatternType,
		Config:           resolveConfig(input.Config, cycleWeeks),
		CycleLengthWeeks: cycleWeeks,
		StartsAt:         input.StartsAt,
		EndsAt:           input.EndsAt,
		IsActive:         true,
		CreatedBy:        input.ActorID,
	}

	logger.Debug("Creating rotation pattern",
		zap.String("id", pattern.ID),
		zap.Int("tenant_id", pattern.TenantID),
		zap.String("pattern_type", string(pattern.PatternType)))

	if err := store.InsertPattern(ctx, pattern); err != nil {
		return nil, fmt.Errorf("failed to insert pattern: %w", err)
	}

	logger.Info("Rotation pattern created",
		zap.String("id", pattern.ID),
		zap.String("name", pattern.Name))

	return pattern, nil
}

// UpdatePattern applies a partial update to a pattern. Supplying no
// recognized field is rejected without touching storage.
func UpdatePattern(ctx context.Context, store db.PatternStore, logger *zap.Logger, id string, tenantID int, update db.PatternUpdate) (*db.RotationPattern, error) {
	if update.PatternType != nil && !update.PatternType.Valid() {
		return nil, fmt.Errorf("%w: unknown pattern type %q", db.ErrInvalidInput, *update.PatternType)
	}

	pattern, err := store.UpdatePattern(ctx, id, tenantID, update)
	if err != nil {
		return nil, err
	}

	logger.Info("Rotation pattern updated", zap.String("id", id), zap.Int("tenant_id", tenantID))
	return pattern, nil
}

// resolveConfig applies the config defaults of the data model.
func resolveConfig(input *PatternConfigInput, cycleWeeks int) db.PatternConfig {
	config := db.PatternConfig{
		CycleWeeks:   cycleWeeks,
		SkipWeekends: true,
	}
	if input == nil {
		return config
	}
	if input.CycleWeeks > 0 {
		config.CycleWeeks = input.CycleWeeks
	}
	if input.SkipWeekends != nil {
		config.SkipWeekends = *input.SkipWeekends
	}
	if input.IgnoreNightShift != nil {
		config.IgnoreNightShift = *input.IgnoreNightShift
	}
	return config
}
