package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sagarc03/logtable"
	"github.com/sagarc03/logtable/database/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, uniqueTable(t))

	assert.NoError(t, db.Ping(ctx), "ping should succeed after connect")
}

func TestDatabase_Insert_MissingTable(t *testing.T) {
	ctx := context.Background()
	table := uniqueTable(t)
	db := setupTestDB(t, table)

	err := db.Insert(ctx, table, testRow(time.Now(), "hello", "INFO", "default", 20000))
	require.Error(t, err)

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "42P01", pgErr.Code, "undefined_table")
}

func TestDatabase_CreateTable(t *testing.T) {
	ctx := context.Background()
	table := uniqueTable(t)
	db := setupTestDB(t, table)

	require.NoError(t, db.CreateTable(ctx, table, logtable.LogSchema()))
	require.NoError(t, db.CreateTable(ctx, table, logtable.LogSchema()), "create table should be idempotent")

	assert.NoError(t, db.Validate(ctx, table))
}

func TestDatabase_InsertAndList(t *testing.T) {
	ctx := context.Background()
	table := uniqueTable(t)
	db := setupTestDB(t, table)
	require.NoError(t, db.CreateTable(ctx, table, logtable.LogSchema()))

	ts := time.Date(2024, 1, 15, 10, 30, 0, 123000000, time.UTC)
	for i := range 3 {
		row := testRow(ts.Add(time.Duration(i)*time.Second), fmt.Sprintf("msg-%d", i), "INFO", "default", 20000)
		require.NoError(t, db.Insert(ctx, table, row))
	}

	page, err := db.List(ctx, table, logtable.ListQuery{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.NotEmpty(t, page.NextCursor)
	assert.Equal(t, "msg-2", page.Items[0].Data)
	assert.True(t, ts.Add(2*time.Second).Equal(page.Items[0].Time))

	rest, err := db.List(ctx, table, logtable.ListQuery{Limit: 2, Cursor: page.NextCursor})
	require.NoError(t, err)
	require.Len(t, rest.Items, 1)
	assert.Equal(t, "msg-0", rest.Items[0].Data)
	assert.Empty(t, rest.NextCursor)
}

func TestDatabase_Insert_ExtremeRanks(t *testing.T) {
	ctx := context.Background()
	table := uniqueTable(t)
	db := setupTestDB(t, table)
	require.NoError(t, db.CreateTable(ctx, table, logtable.LogSchema()))

	levels := []logtable.Level{logtable.LevelAll, logtable.LevelMark, logtable.LevelOff}
	for _, lvl := range levels {
		require.NoError(t, db.Insert(ctx, table, testRow(time.Now(), lvl.Name, lvl.Name, "default", lvl.Rank)), lvl.Name)
	}

	page, err := db.List(ctx, table, logtable.ListQuery{Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	for i, lvl := range []logtable.Level{logtable.LevelOff, logtable.LevelMark, logtable.LevelAll} {
		assert.Equal(t, lvl.Rank, page.Items[i].Rank, lvl.Name)
	}
}

func TestDatabase_Transaction_Rollback(t *testing.T) {
	ctx := context.Background()
	table := uniqueTable(t)
	db := setupTestDB(t, table)
	require.NoError(t, db.CreateTable(ctx, table, logtable.LogSchema()))

	boom := errors.New("boom")
	err := db.Transaction(ctx, func(ctx context.Context, tx logtable.Conn) error {
		require.NoError(t, tx.Insert(ctx, table, testRow(time.Now(), "x", "INFO", "default", 20000)))
		return boom
	})
	assert.Same(t, boom, err)

	result, err := db.List(ctx, table, logtable.ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestDatabase_Validate_MissingTable(t *testing.T) {
	table := uniqueTable(t)
	db := setupTestDB(t, table)

	err := db.Validate(context.Background(), table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestNew_WrapsPool(t *testing.T) {
	ctx := context.Background()
	table := uniqueTable(t)
	db := postgres.New(getSharedTestDatabase(t))
	t.Cleanup(func() { _ = db.DropTable(context.Background(), table) })

	require.NoError(t, db.CreateTable(ctx, table, logtable.LogSchema()))
	assert.NoError(t, db.Insert(ctx, table, testRow(time.Now(), "hi", "INFO", "default", 20000)))
}
