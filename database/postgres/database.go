// Package postgres implements the log table backend on PostgreSQL using pgx.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sagarc03/logtable"
)

// execer is satisfied by both *pgxpool.Pool and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Database provides PostgreSQL log table operations.
type Database struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to PostgreSQL.
// Pool sizing is taken from the DSN (pool_max_conns and friends).
func Connect(ctx context.Context, dsn string) (*Database, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return &Database{pool: pool}, nil
}

// New wraps an existing pool. The caller keeps ownership of pool.
func New(pool *pgxpool.Pool) *Database {
	return &Database{pool: pool}
}

// Ping verifies the database connection is alive.
func (d *Database) Ping(ctx context.Context) error {
	return d.pool.Ping(ctx)
}

// Insert writes row into table.
func (d *Database) Insert(ctx context.Context, table string, row logtable.Row) error {
	return insert(ctx, d.pool, table, row)
}

// CreateTable creates table if it does not exist.
func (d *Database) CreateTable(ctx context.Context, table string, schema logtable.Schema) error {
	return createTable(ctx, d.pool, table, schema)
}

// DropTable drops table if it exists.
func (d *Database) DropTable(ctx context.Context, table string) error {
	return dropTable(ctx, d.pool, table)
}

// Transaction runs fn inside a transaction. The error returned by fn is passed
// through unchanged after the rollback.
func (d *Database) Transaction(ctx context.Context, fn func(ctx context.Context, tx logtable.Conn) error) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(ctx, &txConn{tx: tx}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Close closes the database connection pool.
func (d *Database) Close() error {
	d.pool.Close()
	return nil
}

type txConn struct {
	tx execer
}

func (c *txConn) Insert(ctx context.Context, table string, row logtable.Row) error {
	return insert(ctx, c.tx, table, row)
}

func (c *txConn) CreateTable(ctx context.Context, table string, schema logtable.Schema) error {
	return createTable(ctx, c.tx, table, schema)
}

func insert(ctx context.Context, ex execer, table string, row logtable.Row) error {
	query, args, err := dialect.InsertSQL(table, row)
	if err != nil {
		return err
	}

	if _, err := ex.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	return nil
}
