package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/SCS-Technik/Assixx-sub012/pkg/db"
)

const patternColumns = `id, tenant_id, team_id, name, description, pattern_type,
	pattern_config, cycle_length_weeks, starts_at, ends_at, is_active, created_by, created_at`

// ListPatterns retrieves the tenant's rotation patterns, newest first.
func (d *DB) ListPatterns(ctx context.Context, tenantID int, activeOnly bool) ([]db.RotationPattern, error) {
	query := `SELECT ` + patternColumns + ` FROM rotation_pattern WHERE tenant_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := d.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query patterns: %w", err)
	}
	defer rows.Close()

	var patterns []db.RotationPattern
	for rows.Next() {
		pattern, err := scanPattern(rows)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, *pattern)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating patterns: %w", err)
	}

	return patterns, nil
}

// GetPattern retrieves a single pattern scoped to the tenant.
func (d *DB) GetPattern(ctx context.Context, id string, tenantID int) (*db.RotationPattern, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+patternColumns+`
		FROM rotation_pattern
		WHERE id = $1 AND tenant_id = $2
	`, id, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pattern: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query pattern: %w", err)
		}
		return nil, fmt.Errorf("%w: pattern %s for tenant %d", db.ErrNotFound, id, tenantID)
	}

	return scanPattern(rows)
}

// InsertPattern inserts a new rotation pattern.
func (d *DB) InsertPattern(ctx context.Context, pattern *db.RotationPattern) error {
	config, err := json.Marshal(pattern.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal pattern config: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO rotation_pattern (id, tenant_id, team_id, name, description, pattern_type,
			pattern_config, cycle_length_weeks, starts_at, ends_at, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, pattern.ID, pattern.TenantID, pattern.TeamID, pattern.Name, pattern.Description,
		pattern.PatternType, config, pattern.CycleLengthWeeks, pattern.StartsAt,
		pattern.EndsAt, pattern.IsActive, pattern.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to insert pattern: %w", err)
	}
	return nil
}

// UpdatePattern applies only the supplied fields and returns the refreshed
// pattern. An update carrying no recognized field is rejected before any
// storage access.
func (d *DB) UpdatePattern(ctx context.Context, id string, tenantID int, update db.PatternUpdate) (*db.RotationPattern, error) {
	if update.Empty() {
		return nil, fmt.Errorf("%w: no updatable fields supplied", db.ErrInvalidInput)
	}

	var sets []string
	args := []any{id, tenantID}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.PatternType != nil {
		add("pattern_type", *update.PatternType)
	}
	if update.Config != nil {
		config, err := json.Marshal(*update.Config)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal pattern config: %w", err)
		}
		add("pattern_config", config)
	}
	if update.CycleLengthWeeks != nil {
		add("cycle_length_weeks", *update.CycleLengthWeeks)
	}
	if update.StartsAt != nil {
		add("starts_at", *update.StartsAt)
	}
	if update.EndsAt != nil {
		add("ends_at", *update.EndsAt)
	}
	if update.IsActive != nil {
		add("is_active", *update.IsActive)
	}

	query := fmt.Sprintf(`UPDATE rotation_pattern SET %s WHERE id = $1 AND tenant_id = $2`,
		strings.Join(sets, ", "))
	tag, err := d.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update pattern: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: pattern %s for tenant %d", db.ErrNotFound, id, tenantID)
	}

	return d.GetPattern(ctx, id, tenantID)
}

// DeletePattern removes the pattern. Assignments and history rows cascade
// at the storage layer.
func (d *DB) DeletePattern(ctx context.Context, id string, tenantID int) error {
	tag, err := d.pool.Exec(ctx, `
		DELETE FROM rotation_pattern WHERE id = $1 AND tenant_id = $2
	`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete pattern: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: pattern %s for tenant %d", db.ErrNotFound, id, tenantID)
	}
	return nil
}

func scanPattern(rows pgx.Rows) (*db.RotationPattern, error) {
	var p db.RotationPattern
	var config []byte
	if err := rows.Scan(&p.ID, &p.TenantID, &p.TeamID, &p.Name, &p.Description, &p.PatternType,
		&config, &p.CycleLengthWeeks, &p.StartsAt, &p.EndsAt, &p.IsActive, &p.CreatedBy, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan pattern: %w", err)
	}
	if len(config) > 0 {
		if err := json.Unmarshal(config, &p.Config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pattern config: %w", err)
		}
	}
	return &p, nil
}

// notFound reports whether err is pgx's no-rows marker.
func notFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
