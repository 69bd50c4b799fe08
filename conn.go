package logtable

import "context"

// Conn is the storage capability an appender writes through.
//
// Implementations own the concurrency safety of the underlying connection; a Conn
// is shared by every Write call of an appender.
type Conn interface {
	// Insert writes a single row into table.
	Insert(ctx context.Context, table string, row Row) error
	// CreateTable creates table with the given schema if it does not exist yet.
	CreateTable(ctx context.Context, table string, schema Schema) error
}

// Transactor is implemented by connections that can scope operations in a transaction.
// fn receives a Conn bound to the transaction; returning an error rolls it back.
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context, tx Conn) error) error
}
