// Package database provides a unified interface for connecting to log table backends.
//
// # Supported Backends
//
//   - SQLite: database/sql with modernc.org/sqlite, suited to single-node deployments
//   - PostgreSQL: pgx connection pool
//   - MySQL: database/sql with go-sql-driver/mysql
//
// # Usage
//
//	db, err := database.Connect(ctx, database.Config{
//	    Type: "sqlite",
//	    DSN:  "logs.db",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
// Every backend offers the same operations:
//   - Insert and CreateTable, the logtable.Conn an appender writes through
//   - Transaction, scoping Insert/CreateTable calls in a single transaction
//   - Validate, comparing a table against the log table schema
//   - List, paging through the table newest first
//   - DropTable
//
// Table and column names are quoted by each backend; values are always bound
// as parameters.
package database
