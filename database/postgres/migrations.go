package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sagarc03/logtable"
	"github.com/sagarc03/logtable/database/internal"
)

func quoteIdentifier(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

var dialect = internal.Dialect{
	Quote:       quoteIdentifier,
	Placeholder: func(i int) string { return fmt.Sprintf("$%d", i) },
	ColumnDef:   columnDef,
}

func columnDef(c logtable.Column) string {
	var def string
	switch c.Type {
	case logtable.ColumnIncrements:
		return "BIGSERIAL PRIMARY KEY"
	case logtable.ColumnTimestamp:
		def = "TIMESTAMPTZ"
	case logtable.ColumnString:
		def = fmt.Sprintf("VARCHAR(%d)", c.Size)
	case logtable.ColumnInteger:
		def = "BIGINT"
	default:
		def = "TEXT"
	}

	if !c.Nullable {
		def += " NOT NULL"
	}
	return def
}

// reportedType is the information_schema data_type of a column created by columnDef.
func reportedType(c logtable.Column) string {
	switch c.Type {
	case logtable.ColumnIncrements, logtable.ColumnInteger:
		return "bigint"
	case logtable.ColumnTimestamp:
		return "timestamp with time zone"
	case logtable.ColumnString:
		return "character varying"
	default:
		return "text"
	}
}

func createTable(ctx context.Context, ex execer, table string, schema logtable.Schema) error {
	query, err := dialect.CreateTableSQL(table, schema)
	if err != nil {
		return err
	}

	if _, err := ex.Exec(ctx, query); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

func dropTable(ctx context.Context, ex execer, table string) error {
	sql := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdentifier(table))

	if _, err := ex.Exec(ctx, sql); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	return nil
}
