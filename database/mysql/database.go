// Package mysql implements the log table backend on MySQL using go-sql-driver/mysql.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/sagarc03/logtable"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Database provides MySQL log table operations.
type Database struct {
	db *sql.DB
}

// Connect opens a MySQL connection pool. Timestamps are always read back as
// time.Time in UTC, whatever the DSN says about parseTime and loc.
func Connect(ctx context.Context, dsn string) (*Database, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("connect mysql: parse dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxIdleConns(5)
	db.SetMaxOpenConns(20)
	db.SetConnMaxLifetime(60 * time.Minute)

	return &Database{db: db}, nil
}

// New wraps an already opened *sql.DB. The caller keeps ownership of db and must
// have opened it with parseTime enabled for List to work.
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
// through unchanged after the rollback. MySQL commits DDL implicitly, so a
// CreateTable inside fn is not undone by a rollback.
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

// Close closes the connection pool.
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
