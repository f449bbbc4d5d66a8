package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenTestSQLite_SeedsDemoData(t *testing.T) {
	handle := OpenTestSQLite(t)

	var count int
	require.NoError(t, handle.QueryRow(`SELECT COUNT(*) FROM passengers`).Scan(&count))
	assert.Equal(t, 12, count)

	var name string
	require.NoError(t, handle.QueryRow(
		`SELECT name FROM passengers WHERE id = 2`).Scan(&name))
	assert.Equal(t, "Cumings, Mrs. John Bradley", name)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	handle := OpenTestSQLite(t)
	require.NoError(t, RunMigrations(handle))
}
