package sqlite_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sagarc03/logtable"
	"github.com/sagarc03/logtable/database/sqlite"
	"github.com/stretchr/testify/require"
)

// uniqueTable returns a table name that no other test uses.
func uniqueTable(t *testing.T) string {
	t.Helper()
	return "log_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// setupTestDB opens an in-memory database that is closed when the test ends.
func setupTestDB(t *testing.T) *sqlite.Database {
	t.Helper()

	db, err := sqlite.Connect(context.Background(), ":memory:")
	require.NoError(t, err, "failed to connect")

	t.Cleanup(func() { _ = db.Close() })

	return db
}

// setupRawDB opens an in-memory database and returns both the raw handle and the wrapper.
func setupRawDB(t *testing.T) (*sql.DB, *sqlite.Database) {
	t.Helper()

	raw, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err, "failed to open")
	raw.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = raw.Close() })

	return raw, sqlite.New(raw)
}

// setupTestTable opens a database and creates a fresh log table in it.
func setupTestTable(t *testing.T) (*sqlite.Database, string) {
	t.Helper()

	db := setupTestDB(t)
	table := uniqueTable(t)

	err := db.CreateTable(context.Background(), table, logtable.LogSchema())
	require.NoError(t, err, "failed to create table")

	return db, table
}

func testRow(ts time.Time, data, level, category string, rank int) logtable.Row {
	return logtable.Row{
		logtable.ColTime:     ts,
		logtable.ColData:     data,
		logtable.ColRank:     rank,
		logtable.ColLevel:    level,
		logtable.ColCategory: category,
	}
}
