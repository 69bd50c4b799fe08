package sink

import (
	"context"

	"github.com/sagarc03/logtable"
)

// DefaultCategory is used when a record carries no category.
const DefaultCategory = logtable.DefaultCategory

// Writer persists a single event.
type Writer interface {
	Write(ctx context.Context, ev logtable.Event) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(ctx context.Context, ev logtable.Event) error

func (f WriterFunc) Write(ctx context.Context, ev logtable.Event) error {
	return f(ctx, ev)
}
