// Package logtable persists structured log events as rows in a relational table.
//
// The root package holds the domain types shared by the rest of the module: the
// Event handed over by a logging framework, the Row written to the database, the
// fixed log table Schema, and the Conn capability a storage backend provides.
//
// # Key Components
//
//   - appender: builds rows from events and writes them, creating the table on demand
//   - layout: formatting functions that render an event into the data column
//   - database: SQLite, PostgreSQL and MySQL backends implementing Conn
//   - sink: slog and zap adapters that feed events into an appender
//
// # Lazy Table Creation
//
// The appender never creates the table up front. An insert that fails triggers a
// single CREATE TABLE IF NOT EXISTS followed by one retry of the insert:
//
//	a, err := appender.New(ctx, appender.Config{
//	    Connection: appender.Params{Config: database.Config{Type: "sqlite", DSN: "logs.db"}},
//	}, layout.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer a.Close()
//
//	err = a.Write(ctx, logtable.Event{
//	    Time:     time.Now(),
//	    Payload:  []any{"user signed in"},
//	    Level:    logtable.LevelInfo,
//	    Category: "auth",
//	})
package logtable
