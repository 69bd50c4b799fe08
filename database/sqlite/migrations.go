package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/sagarc03/logtable"
	"github.com/sagarc03/logtable/database/internal"
)

// quoteIdentifier safely quotes a SQLite identifier
func quoteIdentifier(name string) string {
	return internal.QuoteWith(`"`, name)
}

var dialect = internal.Dialect{
	Quote:       quoteIdentifier,
	Placeholder: func(int) string { return "?" },
	ColumnDef:   columnDef,
}

// sqlType returns the declared SQLite type of c as reported by PRAGMA table_info.
func sqlType(c logtable.Column) string {
	switch c.Type {
	case logtable.ColumnIncrements, logtable.ColumnInteger:
		return "INTEGER"
	case logtable.ColumnTimestamp:
		return "DATETIME"
	case logtable.ColumnString:
		return fmt.Sprintf("VARCHAR(%d)", c.Size)
	default:
		return "TEXT"
	}
}

func columnDef(c logtable.Column) string {
	var b strings.Builder
	b.WriteString(sqlType(c))
	if !c.Nullable || c.Type == logtable.ColumnIncrements {
		b.WriteString(" NOT NULL")
	}
	if c.Type == logtable.ColumnIncrements {
		b.WriteString(" PRIMARY KEY AUTOINCREMENT")
	}
	return b.String()
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
