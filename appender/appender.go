package appender

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/sagarc03/logtable"
	"github.com/sagarc03/logtable/database"
	"github.com/sagarc03/logtable/layout"
)

// Appender persists log events into a single table.
type Appender struct {
	conn          logtable.Conn
	closer        io.Closer
	table         string
	layout        logtable.Layout
	fields        map[string]any
	transactional bool

	writes        atomic.Uint64
	inserts       atomic.Uint64
	tablesCreated atomic.Uint64
	recovered     atomic.Uint64
	failed        atomic.Uint64
}

// Stats counts what an appender has done since it was created.
type Stats struct {
	// Writes is the number of Write calls.
	Writes uint64 `json:"writes"`
	// Inserts is the number of insert attempts, retries included.
	Inserts uint64 `json:"inserts"`
	// TablesCreated is the number of successful create-table attempts.
	TablesCreated uint64 `json:"tables_created"`
	// Recovered is the number of writes that succeeded on the retry.
	Recovered uint64 `json:"recovered"`
	// Failed is the number of writes that returned an error.
	Failed uint64 `json:"failed"`
}

// New validates cfg, resolves the layout and the connection, and returns a ready
// appender. A nil layouts uses layout.Default().
//
// The only validation is that a connection is given; without one New fails with
// logtable.ErrMissingConnection.
func New(ctx context.Context, cfg Config, layouts LayoutResolver) (*Appender, error) {
	if !cfg.hasConnection() {
		return nil, logtable.ErrMissingConnection
	}

	if layouts == nil {
		layouts = layout.Default()
	}

	render := layouts.PassThrough()
	if cfg.Layout != nil {
		var err error
		render, err = layouts.Resolve(cfg.Layout.Type, *cfg.Layout)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", logtable.ErrConfig, err)
		}
	}

	table := cfg.Table
	if table == "" {
		table = DefaultTable
	}

	a := &Appender{
		table:         table,
		layout:        render,
		fields:        copyFields(cfg.AdditionalFields),
		transactional: cfg.Transactional,
	}

	switch src := cfg.Connection.(type) {
	case Live:
		a.conn = src.Conn
	case *Live:
		a.conn = src.Conn
	case Params:
		if err := a.open(ctx, src.Config); err != nil {
			return nil, err
		}
	case *Params:
		if err := a.open(ctx, src.Config); err != nil {
			return nil, err
		}
	}

	return a, nil
}

func (a *Appender) open(ctx context.Context, cfg database.Config) error {
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open connection: %w", err)
	}
	a.conn = db
	a.closer = db
	return nil
}

// Table returns the name of the table the appender writes to.
func (a *Appender) Table() string {
	return a.table
}

// Conn returns the connection the appender writes through.
func (a *Appender) Conn() logtable.Conn {
	return a.conn
}

// BuildRow turns ev into the row Write inserts. It has no side effects.
func (a *Appender) BuildRow(ev logtable.Event) logtable.Row {
	row := make(logtable.Row, 5+len(a.fields))
	row[logtable.ColTime] = ev.Time.UTC()
	row[logtable.ColData] = a.layout(ev)
	row[logtable.ColRank] = ev.Level.Rank
	row[logtable.ColLevel] = ev.Level.Name
	row[logtable.ColCategory] = ev.Category

	for k, v := range a.fields {
		row[k] = v
	}
	return row
}

// Write persists ev. A failed insert is followed by one create-table attempt and,
// if that succeeds, exactly one more insert. On failure the returned error is the
// first insert's error when table creation failed, or the retry's error otherwise.
//
// Write is safe for concurrent use and applies no timeout of its own.
func (a *Appender) Write(ctx context.Context, ev logtable.Event) error {
	a.writes.Add(1)
	row := a.BuildRow(ev)

	insertErr := a.insert(ctx, row)
	if insertErr == nil {
		return nil
	}

	// A concurrent writer may have created the table in between; CREATE TABLE IF
	// NOT EXISTS makes that a success here.
	if err := a.conn.CreateTable(ctx, a.table, logtable.LogSchema()); err != nil {
		a.failed.Add(1)
		return insertErr
	}
	a.tablesCreated.Add(1)

	if err := a.insert(ctx, row); err != nil {
		a.failed.Add(1)
		return err
	}

	a.recovered.Add(1)
	return nil
}

// insert makes a single insert attempt, in its own transaction when configured.
func (a *Appender) insert(ctx context.Context, row logtable.Row) error {
	a.inserts.Add(1)

	if tx, ok := a.conn.(logtable.Transactor); ok && a.transactional {
		return tx.Transaction(ctx, func(ctx context.Context, c logtable.Conn) error {
			return c.Insert(ctx, a.table, row)
		})
	}

	return a.conn.Insert(ctx, a.table, row)
}

// Stats returns a snapshot of the appender's counters.
func (a *Appender) Stats() Stats {
	return Stats{
		Writes:        a.writes.Load(),
		Inserts:       a.inserts.Load(),
		TablesCreated: a.tablesCreated.Load(),
		Recovered:     a.recovered.Load(),
		Failed:        a.failed.Load(),
	}
}

// Close releases the connection if the appender opened it from Params. A Live
// connection is left to its owner.
func (a *Appender) Close() error {
	if a.closer == nil {
		return nil
	}
	if err := a.closer.Close(); err != nil {
		return fmt.Errorf("close connection: %w", err)
	}
	return nil
}
