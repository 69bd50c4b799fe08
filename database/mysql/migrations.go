package mysql

import (
	"context"
	"fmt"

	"github.com/sagarc03/logtable"
	"github.com/sagarc03/logtable/database/internal"
)

// quoteIdentifier quotes a MySQL identifier. rank is reserved since MySQL 8.0.
func quoteIdentifier(name string) string {
	return internal.QuoteWith("`", name)
}

var dialect = internal.Dialect{
	Quote:       quoteIdentifier,
	Placeholder: func(int) string { return "?" },
	ColumnDef:   columnDef,
}

func columnDef(c logtable.Column) string {
	var def string
	switch c.Type {
	case logtable.ColumnIncrements:
		return "BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY"
	case logtable.ColumnTimestamp:
		def = "DATETIME(3)"
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

// reportedType is the information_schema DATA_TYPE of a column created by columnDef.
func reportedType(c logtable.Column) string {
	switch c.Type {
	case logtable.ColumnIncrements, logtable.ColumnInteger:
		return "bigint"
	case logtable.ColumnTimestamp:
		return "datetime"
	case logtable.ColumnString:
		return "varchar"
	default:
		return "text"
	}
}

func createTable(ctx context.Context, ex execer, table string, schema logtable.Schema) error {
	query, err := dialect.CreateTableSQL(table, schema)
	if err != nil {
		return err
	}

	if _, err := ex.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

func dropTable(ctx context.Context, ex execer, table string) error {
	dropSQL := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdentifier(table))

	if _, err := ex.ExecContext(ctx, dropSQL); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	return nil
}
