package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carpenter"
	"carpenter/config"
	internaldb "carpenter/internal/db"
	"carpenter/store"
	"carpenter/table"
)

func demoCarpenter(t *testing.T) *carpenter.Carpenter {
	t.Helper()

	handle := internaldb.OpenTestSQLite(t)
	cfg := config.Default()
	cfg.Store.Driver = "demo"

	c := carpenter.New(cfg).ExtendStore("demo", func(config.Driver) (table.Store, error) {
		return store.NewSQL(handle), nil
	})
	registerDemoTables(c)
	return c
}

func TestRegisterDemoTables_Passengers(t *testing.T) {
	c := demoCarpenter(t)
	ctx := context.Background()

	tbl, err := c.Get(ctx, "passengers")
	require.NoError(t, err)
	require.NoError(t, tbl.Materialize(ctx))

	require.Len(t, tbl.Rows(), 12)

	// sorted by name ascending, presenters applied
	first := tbl.Rows()[0]
	cell, ok := first.Cell("name")
	require.True(t, ok)
	assert.Equal(t, "Allen, Mr. William Henry", cell.Value())

	cell, ok = first.Cell("class")
	require.True(t, ok)
	assert.Equal(t, "Third", cell.Value())

	cell, ok = first.Cell("survived")
	require.True(t, ok)
	assert.Equal(t, "No", cell.Value())

	cell, ok = first.Cell("embarked")
	require.True(t, ok)
	assert.Equal(t, "Southampton", cell.Value())
}

func TestRegisterDemoTables_FareExportFormatting(t *testing.T) {
	c := demoCarpenter(t)
	ctx := context.Background()

	tbl, err := c.Get(ctx, "passengers")
	require.NoError(t, err)
	require.NoError(t, tbl.Materialize(ctx))

	cell, ok := tbl.Rows()[0].Cell("fare")
	require.True(t, ok)
	out, err := cell.Export()
	require.NoError(t, err)
	assert.Equal(t, "8.05", out)
}

func TestRegisterDemoTables_FaresCompact(t *testing.T) {
	c := demoCarpenter(t)
	ctx := context.Background()

	tbl, err := c.Get(ctx, "fares")
	require.NoError(t, err)
	require.NoError(t, tbl.Materialize(ctx))

	// fares sorts descending, 10 per page
	require.Len(t, tbl.Rows(), 10)
	cell, ok := tbl.Rows()[0].Cell("fare")
	require.True(t, ok)
	assert.Equal(t, 71.2833, cell.Value())
	assert.Equal(t, int64(12), tbl.PageInfo().TotalRows)
}
