package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sagarc03/logtable"
	"github.com/sagarc03/logtable/database/internal"
)

// Validate checks that table exists and carries the log table columns.
func (d *Database) Validate(ctx context.Context, table string) error {
	if err := validateTableSchema(ctx, d.db, table, logtable.LogSchema()); err != nil {
		return fmt.Errorf("validate schema %s: %w", table, err)
	}
	return nil
}

func validateTableSchema(ctx context.Context, db *sql.DB, tableName string, schema logtable.Schema) error {
	exists, err := tableExists(ctx, db, tableName)
	if err != nil {
		return fmt.Errorf("validate table schema: %w", err)
	}

	if !exists {
		return fmt.Errorf("validate table schema: table %s does not exist", tableName)
	}

	query := `
		SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE
		FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = ?
		ORDER BY ORDINAL_POSITION
	`

	rows, err := db.QueryContext(ctx, query, tableName)
	if err != nil {
		return fmt.Errorf("validate table schema: query columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	actualColumns := make(map[string]internal.ColumnInfo)
	for rows.Next() {
		var name, dataType, nullable string
		if err := rows.Scan(&name, &dataType, &nullable); err != nil {
			return fmt.Errorf("validate table schema: scan column: %w", err)
		}
		actualColumns[name] = internal.ColumnInfo{
			DataType:   strings.ToLower(dataType),
			IsNullable: nullable == "YES",
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("validate table schema: rows error: %w", err)
	}

	return internal.CompareSchema(tableName, internal.ExpectedSchema(schema, reportedType), actualColumns)
}

func tableExists(ctx context.Context, db *sql.DB, tableName string) (bool, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_name = ?
	`
	if err := db.QueryRowContext(ctx, query, tableName).Scan(&count); err != nil {
		return false, fmt.Errorf("check table exists: %w", err)
	}
	return count > 0, nil
}
