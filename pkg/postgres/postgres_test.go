package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_SortedApplyOrder(t *testing.T) {
	files, err := migrationFiles()

	require.NoError(t, err)
	assert.Equal(t, []string{"001_rotation_tables.sql", "002_overlap_guard.sql"}, files)
}
