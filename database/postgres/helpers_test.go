package postgres_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/logtable"
	"github.com/sagarc03/logtable/database/postgres"
	"github.com/stretchr/testify/require"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
)

var (
	testPool     *pgxpool.Pool
	testPoolOnce sync.Once
	testPoolErr  error
)

// getSharedTestDatabase returns a pool to a postgres container shared by all tests.
func getSharedTestDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	testPoolOnce.Do(func() {
		ctx := context.Background()

		pgContainer, err := pgcontainer.Run(ctx,
			"postgres:18-alpine",
			pgcontainer.WithDatabase("testdb"),
			pgcontainer.WithUsername("testuser"),
			pgcontainer.WithPassword("testpass"),
			pgcontainer.BasicWaitStrategies(),
		)
		if err != nil {
			testPoolErr = err
			return
		}
		// the container outlives individual tests; the testcontainers reaper removes it

		connectionStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			testPoolErr = err
			return
		}

		testPool, testPoolErr = pgxpool.New(ctx, connectionStr)
	})

	require.NoError(t, testPoolErr, "failed to start postgres")
	return testPool
}

// getDSN extracts the DSN from the pool config.
func getDSN(pool *pgxpool.Pool) string {
	return pool.Config().ConnString()
}

// uniqueTable returns a table name that no other test uses.
func uniqueTable(t *testing.T) string {
	t.Helper()
	return "log_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// setupTestDB connects to the shared container and drops table when the test ends.
func setupTestDB(t *testing.T, table string) *postgres.Database {
	t.Helper()
	ctx := context.Background()

	db, err := postgres.Connect(ctx, getDSN(getSharedTestDatabase(t)))
	require.NoError(t, err, "failed to connect")

	t.Cleanup(func() {
		_ = db.DropTable(context.Background(), table)
		_ = db.Close()
	})

	return db
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
