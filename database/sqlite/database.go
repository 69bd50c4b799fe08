// Package sqlite implements the log table backend on SQLite using modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sagarc03/logtable"

	_ "modernc.org/sqlite" // SQLite driver
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Database provides SQLite log table operations.
type Database struct {
	db *sql.DB
}

// Connect opens a SQLite database.
// The pool is pinned to a single connection so that ":memory:" databases are shared
// and writers never contend for the file lock.
func Connect(ctx context.Context, dsn string) (*Database, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	return &Database{db: db}, nil
}

// New wraps an already opened *sql.DB. The caller keeps ownership of db.
func New(db *sql.DB) *Database {
	return &Database{db: db}
}

// Ping verifies the database connection is alive.
func (d *Database) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Insert writes row into table.
func (d *Database) Insert(ctx context.Context, table string, row logtable.Row) error {
	return insert(ctx, d.db, table, row)
}

// CreateTable creates table if it does not exist.
func (d *Database) CreateTable(ctx context.Context, table string, schema logtable.Schema) error {
	return createTable(ctx, d.db, table, schema)
}

// DropTable drops table if it exists.
func (d *Database) DropTable(ctx context.Context, table string) error {
	return dropTable(ctx, d.db, table)
}

// Transaction runs fn inside a transaction. The error returned by fn is passed
// through unchanged after the rollback.
func (d *Database) Transaction(ctx context.Context, fn func(ctx context.Context, tx logtable.Conn) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(ctx, &txConn{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

type txConn struct {
	tx *sql.Tx
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

	if _, err := ex.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	return nil
}
