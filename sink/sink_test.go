package sink_test

import (
	"context"
	"sync"

	"github.com/sagarc03/logtable"
)

type recorder struct {
	mu     sync.Mutex
	events []logtable.Event
	err    error
}

func (r *recorder) Write(_ context.Context, ev logtable.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func (r *recorder) last() logtable.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}
