package postgres

import (
	"context"
	"fmt"

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

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return logtable.ListResult{}, fmt.Errorf("list: %w", err)
	}
	defer rows.Close()

	items := make([]logtable.Entry, 0, q.Limit)
	for rows.Next() {
		var e logtable.Entry
		if err := rows.Scan(&e.ID, &e.Time, &e.Data, &e.Rank, &e.Level, &e.Category); err != nil {
			return logtable.ListResult{}, fmt.Errorf("list: scan: %w", err)
		}
		e.Time = e.Time.UTC()
		items = append(items, e)
	}

	if err := rows.Err(); err != nil {
		return logtable.ListResult{}, fmt.Errorf("list: rows error: %w", err)
	}

	return internal.Page(items, q.Limit), nil
}
