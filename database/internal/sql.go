package internal

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sagarc03/logtable"
)

// Dialect captures the syntax differences between backends.
type Dialect struct {
	// Quote quotes an identifier.
	Quote func(name string) string
	// Placeholder returns the bind parameter for the i-th (1-based) argument.
	Placeholder func(i int) string
	// ColumnDef returns the column definition for c, without the name.
	ColumnDef func(c logtable.Column) string
}

// QuoteWith wraps name in q, doubling any q inside it.
func QuoteWith(q string, name string) string {
	return q + strings.ReplaceAll(name, q, q+q) + q
}

// SortedColumns returns the column names of row in a stable order.
func SortedColumns(row logtable.Row) []string {
	cols := make([]string, 0, len(row))
	for k := range row {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// InsertSQL builds an INSERT statement for row and its arguments.
func (d Dialect) InsertSQL(table string, row logtable.Row) (string, []any, error) {
	if len(row) == 0 {
		return "", nil, errors.New("insert: empty row")
	}

	cols := SortedColumns(row)
	quoted := make([]string, len(cols))
	params := make([]string, len(cols))
	args := make([]any, len(cols))

	for i, c := range cols {
		quoted[i] = d.Quote(c)
		params[i] = d.Placeholder(i + 1)
		args[i] = normalizeValue(row[c])
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.Quote(table), strings.Join(quoted, ", "), strings.Join(params, ", "))

	return query, args, nil
}

// CreateTableSQL builds a CREATE TABLE IF NOT EXISTS statement for schema.
func (d Dialect) CreateTableSQL(table string, schema logtable.Schema) (string, error) {
	if len(schema.Columns) == 0 {
		return "", errors.New("create table: empty schema")
	}

	defs := make([]string, len(schema.Columns))
	for i, c := range schema.Columns {
		defs[i] = d.Quote(c.Name) + " " + d.ColumnDef(c)
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", d.Quote(table), strings.Join(defs, ",\n\t")), nil
}

// ListSQL builds the paged SELECT used by List. Rows come back newest first and one
// extra row is requested so the caller can tell whether another page exists.
func (d Dialect) ListSQL(table string, q logtable.ListQuery, afterID int64) (string, []any) {
	var conds []string
	var args []any

	add := func(col string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = %s", d.Quote(col), d.Placeholder(len(args))))
	}

	if q.Category != "" {
		add(logtable.ColCategory, q.Category)
	}
	if q.Level != "" {
		add(logtable.ColLevel, q.Level)
	}
	if afterID > 0 {
		args = append(args, afterID)
		conds = append(conds, fmt.Sprintf("%s < %s", d.Quote(logtable.ColID), d.Placeholder(len(args))))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	args = append(args, q.Limit+1)
	query := fmt.Sprintf("SELECT %s, %s, %s, %s, %s, %s FROM %s %s ORDER BY %s DESC LIMIT %s",
		d.Quote(logtable.ColID), d.Quote(logtable.ColTime), d.Quote(logtable.ColData),
		d.Quote(logtable.ColRank), d.Quote(logtable.ColLevel), d.Quote(logtable.ColCategory),
		d.Quote(table), where, d.Quote(logtable.ColID), d.Placeholder(len(args)))

	return query, args
}

// Page trims the extra row fetched by ListSQL and computes the next cursor.
func Page(items []logtable.Entry, limit int) logtable.ListResult {
	if len(items) <= limit {
		return logtable.ListResult{Items: items}
	}

	items = items[:limit]
	return logtable.ListResult{
		Items:      items,
		NextCursor: EncodeCursor(items[len(items)-1].ID),
	}
}

// ValidateListQuery applies the default limit and rejects malformed queries.
func ValidateListQuery(q logtable.ListQuery) (logtable.ListQuery, int64, error) {
	if q.Limit <= 0 {
		q.Limit = 100
	}

	afterID, err := DecodeCursor(q.Cursor)
	if err != nil {
		return q, 0, fmt.Errorf("%w: %w", logtable.ErrInvalidInput, err)
	}

	return q, afterID, nil
}

func normalizeValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.UTC()
	}
	return v
}
