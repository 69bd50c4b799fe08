package internal

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sagarc03/logtable"
)

// ColumnInfo is the type and nullability of a column as the database reports it.
type ColumnInfo struct {
	DataType   string
	IsNullable bool
}

// ExpectedSchema maps schema to the column info a backend should report for it.
// typeName returns the reported data type of a column.
func ExpectedSchema(schema logtable.Schema, typeName func(logtable.Column) string) map[string]ColumnInfo {
	expected := make(map[string]ColumnInfo, len(schema.Columns))
	for _, c := range schema.Columns {
		expected[c.Name] = ColumnInfo{
			DataType:   strings.ToLower(typeName(c)),
			IsNullable: c.Nullable,
		}
	}
	return expected
}

// CompareSchema reports every expected column that is missing from actual or differs
// in type or nullability. Columns only present in actual are allowed.
func CompareSchema(tableName string, expected, actual map[string]ColumnInfo) error {
	names := make([]string, 0, len(expected))
	for name := range expected {
		names = append(names, name)
	}
	sort.Strings(names)

	var missingColumns []string
	var mismatchedColumns []string

	for _, colName := range names {
		want := expected[colName]
		got, exists := actual[colName]
		if !exists {
			missingColumns = append(missingColumns, colName)
			continue
		}

		if got.DataType != want.DataType {
			mismatchedColumns = append(mismatchedColumns,
				fmt.Sprintf("%s: expected %s, got %s", colName, want.DataType, got.DataType))
		}

		if got.IsNullable != want.IsNullable {
			mismatchedColumns = append(mismatchedColumns,
				fmt.Sprintf("%s: expected nullable=%v, got nullable=%v", colName, want.IsNullable, got.IsNullable))
		}
	}

	if len(missingColumns) == 0 && len(mismatchedColumns) == 0 {
		return nil
	}

	var errMsg strings.Builder
	fmt.Fprintf(&errMsg, "table %s schema validation failed:\n", tableName)

	if len(missingColumns) > 0 {
		fmt.Fprintf(&errMsg, "  missing columns: %s\n", strings.Join(missingColumns, ", "))
	}

	if len(mismatchedColumns) > 0 {
		fmt.Fprintf(&errMsg, "  mismatched columns:\n")
		for _, msg := range mismatchedColumns {
			fmt.Fprintf(&errMsg, "    - %s\n", msg)
		}
	}

	return errors.New(errMsg.String())
}
