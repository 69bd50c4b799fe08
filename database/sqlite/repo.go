package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/sagarc03/logtable"
	"github.com/sagarc03/logtable/database/internal"
)

// List returns rows of table newest first, filtered and paged by q.
func (d *Database) List(ctx context.Context, table string, q logtable.ListQuery) (logtable.ListResult, error) {
	q, afterID, err := internal.ValidateListQuery(q)
	if err != nil {
		return logtable.ListResult{}, fmt.Errorf("list: %w", err)
	}

	query, args := dialect.ListSQL(table, q, afterID)

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return logtable.ListResult{}, fmt.Errorf("list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]logtable.Entry, 0, q.Limit)
	for rows.Next() {
		var e logtable.Entry
		var rawTime any

		if err := rows.Scan(&e.ID, &rawTime, &e.Data, &e.Rank, &e.Level, &e.Category); err != nil {
			return logtable.ListResult{}, fmt.Errorf("list: scan: %w", err)
		}

		if e.Time, err = scanTime(rawTime); err != nil {
			return logtable.ListResult{}, fmt.Errorf("list: %w", err)
		}

		items = append(items, e)
	}

	if err := rows.Err(); err != nil {
		return logtable.ListResult{}, fmt.Errorf("list: rows error: %w", err)
	}

	return internal.Page(items, q.Limit), nil
}

// timeLayouts are the text forms a DATETIME column may hold, starting with the one
// the driver writes for time.Time values (time.Time.String).
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func scanTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case int64:
		return time.UnixMilli(t).UTC(), nil
	case []byte:
		return parseTime(string(t))
	case string:
		return parseTime(t)
	default:
		return time.Time{}, fmt.Errorf("scan time: unexpected type %T", v)
	}
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("scan time: unrecognized format %q", s)
}
