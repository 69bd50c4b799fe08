package database

import (
	"context"
	"fmt"

	"github.com/sagarc03/logtable"
	"github.com/sagarc03/logtable/database/mysql"
	"github.com/sagarc03/logtable/database/postgres"
	"github.com/sagarc03/logtable/database/sqlite"
)

// Config holds the configuration for connecting to a log table backend.
type Config struct {
	// Type specifies the database type: "sqlite", "postgres" or "mysql"
	Type string `mapstructure:"type" yaml:"type" validate:"required,oneof=sqlite postgres mysql"`
	// DSN is the data source name (connection string), passed to the driver untouched
	DSN string `mapstructure:"dsn" yaml:"dsn" validate:"required"`
}

// Database is a connected backend. It is both the Conn an appender writes through
// and the handle the CLI and HTTP server use to manage and read the table.
type Database interface {
	logtable.Conn
	logtable.Transactor

	Ping(ctx context.Context) error
	Validate(ctx context.Context, table string) error
	DropTable(ctx context.Context, table string) error
	List(ctx context.Context, table string, q logtable.ListQuery) (logtable.ListResult, error)
	Close() error
}

// Connect opens the configured backend. It does not create or check any table.
func Connect(ctx context.Context, cfg Config) (Database, error) {
	var (
		db  Database
		err error
	)

	switch cfg.Type {
	case "sqlite":
		db, err = sqlite.Connect(ctx, cfg.DSN)
	case "postgres":
		db, err = postgres.Connect(ctx, cfg.DSN)
	case "mysql":
		db, err = mysql.Connect(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: unsupported database type: %s", logtable.ErrConfig, cfg.Type)
	}

	if err != nil {
		return nil, err
	}
	return db, nil
}

var (
	_ Database = (*sqlite.Database)(nil)
	_ Database = (*postgres.Database)(nil)
	_ Database = (*mysql.Database)(nil)
)
