package carpenter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carpenter/config"
	"carpenter/domain"
	"carpenter/table"
)

func writeDef(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadTables(t *testing.T) {
	dir := t.TempDir()
	writeDef(t, dir, "passengers.yaml", `
name: passengers
source: titanic_passengers
page_size: 10
sort:
  key: name
  dir: desc
columns:
  - key: name
    label: Passenger
    sortable: true
  - key: fare
  - key: survived
    hidden: true
`)
	writeDef(t, dir, "crew.yml", `
name: crew
columns:
  - key: name
`)
	writeDef(t, dir, "notes.txt", "ignored")

	cfg := config.Default()
	cfg.Tables.Location = dir
	c := New(cfg)
	require.NoError(t, c.LoadTables())

	assert.ElementsMatch(t, []string{"passengers", "crew"}, c.Names())

	tbl, err := c.Get(context.Background(), "passengers")
	require.NoError(t, err)
	require.Len(t, tbl.Columns(), 3)

	col, ok := tbl.Column("name")
	require.True(t, ok)
	assert.Equal(t, "Passenger", col.Label())
	assert.True(t, col.Sortable())

	col, ok = tbl.Column("survived")
	require.True(t, ok)
	assert.True(t, col.Hidden())
	assert.Len(t, tbl.VisibleColumns(), 2)
}

func TestLoadTables_SourceDefaultsToName(t *testing.T) {
	dir := t.TempDir()
	writeDef(t, dir, "crew.yaml", `
name: crew
columns:
  - key: name
    sortable: true
`)
	cfg := config.Default()
	cfg.Tables.Location = dir
	c := New(cfg)
	require.NoError(t, c.LoadTables())

	var got string
	_, err := c.Get(context.Background(), "crew", func(t *table.Table) error {
		got = t.Target()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "crew", got)
}

func TestLoadTables_SingleFileLocation(t *testing.T) {
	dir := t.TempDir()
	writeDef(t, dir, "crew.yaml", `
name: crew
columns:
  - key: name
`)
	cfg := config.Default()
	cfg.Tables.Location = filepath.Join(dir, "crew.yaml")
	c := New(cfg)
	require.NoError(t, c.LoadTables())
	assert.True(t, c.Has("crew"))
}

func TestLoadTables_MissingLocation(t *testing.T) {
	cfg := config.Default()
	cfg.Tables.Location = filepath.Join(t.TempDir(), "nope")

	var locErr *domain.LocationNotFoundError
	err := New(cfg).LoadTables()
	require.ErrorAs(t, err, &locErr)
	assert.Equal(t, cfg.Tables.Location, locErr.Path)
}

func TestLoadTables_UnconfiguredLocation(t *testing.T) {
	var vErr *domain.ValidationError
	err := New(config.Default()).LoadTables()
	require.ErrorAs(t, err, &vErr)
}

func TestLoadTables_RejectsBadDefinitions(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no name", body: "columns:\n  - key: name\n"},
		{name: "no columns", body: "name: crew\n"},
		{name: "column without key", body: "name: crew\ncolumns:\n  - label: Name\n"},
		{name: "invalid yaml", body: "name: [unclosed\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeDef(t, dir, "bad.yaml", tc.body)
			cfg := config.Default()
			cfg.Tables.Location = dir
			require.Error(t, New(cfg).LoadTables())
		})
	}
}
