package mysql_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/sagarc03/logtable"
	"github.com/sagarc03/logtable/database/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testDSN     string
	testDSNOnce sync.Once
	testDSNErr  error
)

// getSharedTestDSN starts one mysql container for the whole package.
func getSharedTestDSN(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping mysql integration test in short mode")
	}

	testDSNOnce.Do(func() {
		ctx := context.Background()

		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "mysql:8.4",
				ExposedPorts: []string{"3306/tcp"},
				Env: map[string]string{
					"MYSQL_ROOT_PASSWORD": "testpass",
					"MYSQL_DATABASE":      "testdb",
				},
				WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").
					WithStartupTimeout(3 * time.Minute),
			},
			Started: true,
		})
		if err != nil {
			testDSNErr = err
			return
		}

		host, err := container.Host(ctx)
		if err != nil {
			testDSNErr = err
			return
		}

		port, err := container.MappedPort(ctx, "3306/tcp")
		if err != nil {
			testDSNErr = err
			return
		}

		testDSN = fmt.Sprintf("root:testpass@tcp(%s:%s)/testdb", host, port.Port())
	})

	require.NoError(t, testDSNErr, "failed to start mysql")
	return testDSN
}

func uniqueTable(t *testing.T) string {
	t.Helper()
	return "log_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func setupTestDB(t *testing.T, table string) *mysql.Database {
	t.Helper()

	db, err := mysql.Connect(context.Background(), getSharedTestDSN(t))
	require.NoError(t, err, "failed to connect")

	t.Cleanup(func() {
		_ = db.DropTable(context.Background(), table)
		_ = db.Close()
	})

	return db
}

func testRow(ts time.Time, data string) logtable.Row {
	return logtable.Row{
		logtable.ColTime:     ts,
		logtable.ColData:     data,
		logtable.ColRank:     20000,
		logtable.ColLevel:    "INFO",
		logtable.ColCategory: "default",
	}
}

func TestConnect_InvalidDSN(t *testing.T) {
	_, err := mysql.Connect(context.Background(), "not a dsn")
	assert.Error(t, err)
}

func TestDatabase_Insert_MissingTable(t *testing.T) {
	ctx := context.Background()
	table := uniqueTable(t)
	db := setupTestDB(t, table)

	err := db.Insert(ctx, table, testRow(time.Now(), "hello"))
	require.Error(t, err)

	var myErr *gomysql.MySQLError
	require.True(t, errors.As(err, &myErr))
	assert.Equal(t, uint16(1146), myErr.Number, "table doesn't exist")
}

func TestDatabase_CreateInsertListValidate(t *testing.T) {
	ctx := context.Background()
	table := uniqueTable(t)
	db := setupTestDB(t, table)

	require.NoError(t, db.Ping(ctx))
	require.NoError(t, db.CreateTable(ctx, table, logtable.LogSchema()))
	require.NoError(t, db.CreateTable(ctx, table, logtable.LogSchema()))
	require.NoError(t, db.Validate(ctx, table))

	ts := time.Date(2024, 1, 15, 10, 30, 0, 123000000, time.UTC)
	require.NoError(t, db.Insert(ctx, table, testRow(ts, "first")))
	require.NoError(t, db.Insert(ctx, table, testRow(ts.Add(time.Second), "second")))

	result, err := db.List(ctx, table, logtable.ListQuery{Limit: 1})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "second", result.Items[0].Data)
	assert.True(t, ts.Add(time.Second).Equal(result.Items[0].Time))
	assert.NotEmpty(t, result.NextCursor)

	result, err = db.List(ctx, table, logtable.ListQuery{Limit: 1, Cursor: result.NextCursor})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "first", result.Items[0].Data)
}

func TestDatabase_Insert_ExtremeRanks(t *testing.T) {
	ctx := context.Background()
	table := uniqueTable(t)
	db := setupTestDB(t, table)
	require.NoError(t, db.CreateTable(ctx, table, logtable.LogSchema()))

	for _, lvl := range []logtable.Level{logtable.LevelAll, logtable.LevelMark, logtable.LevelOff} {
		row := testRow(time.Now(), lvl.Name)
		row[logtable.ColRank] = lvl.Rank
		row[logtable.ColLevel] = lvl.Name
		require.NoError(t, db.Insert(ctx, table, row), lvl.Name)
	}

	result, err := db.List(ctx, table, logtable.ListQuery{Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	assert.Equal(t, logtable.LevelOff.Rank, result.Items[0].Rank)
	assert.Equal(t, logtable.LevelMark.Rank, result.Items[1].Rank)
	assert.Equal(t, logtable.LevelAll.Rank, result.Items[2].Rank)
}

func TestDatabase_Transaction(t *testing.T) {
	ctx := context.Background()
	table := uniqueTable(t)
	db := setupTestDB(t, table)
	require.NoError(t, db.CreateTable(ctx, table, logtable.LogSchema()))

	err := db.Transaction(ctx, func(ctx context.Context, tx logtable.Conn) error {
		return tx.Insert(ctx, table, testRow(time.Now(), "committed"))
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = db.Transaction(ctx, func(ctx context.Context, tx logtable.Conn) error {
		require.NoError(t, tx.Insert(ctx, table, testRow(time.Now(), "rolled back")))
		return boom
	})
	assert.Same(t, boom, err)

	result, err := db.List(ctx, table, logtable.ListQuery{})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "committed", result.Items[0].Data)
}
