package layout

import (
	"fmt"
	"strings"
	"sync"
	"time"

	gojson "github.com/goccy/go-json"

	"github.com/sagarc03/logtable"
)

// Layout type names.
const (
	TypeMessagePassThrough = "messagePassThrough"
	TypeBasic              = "basic"
	TypeDummy              = "dummy"
	TypePattern            = "pattern"
	TypeJSON               = "json"
)

// ISO8601 is the timestamp format used by the basic layout and by %d.
const ISO8601 = "2006-01-02T15:04:05.000"

// Spec selects and parameterizes a layout.
type Spec struct {
	Type    string            `mapstructure:"type" yaml:"type" validate:"required"`
	Pattern string            `mapstructure:"pattern" yaml:"pattern,omitempty"`
	Tokens  map[string]string `mapstructure:"tokens" yaml:"tokens,omitempty"`
}

// Factory builds a layout from its spec.
type Factory func(spec Spec) (logtable.Layout, error)

// Registry maps layout type names to factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a registry holding the built-in layouts.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}

	r.Register(TypeMessagePassThrough, func(Spec) (logtable.Layout, error) { return MessagePassThrough, nil })
	r.Register(TypeBasic, func(Spec) (logtable.Layout, error) { return Basic, nil })
	r.Register(TypeDummy, func(Spec) (logtable.Layout, error) { return Dummy, nil })
	r.Register(TypeJSON, func(Spec) (logtable.Layout, error) { return JSON, nil })
	r.Register(TypePattern, func(spec Spec) (logtable.Layout, error) { return Pattern(spec.Pattern, spec.Tokens) })

	return r
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Register adds or replaces the factory for typ.
func (r *Registry) Register(typ string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[typ] = f
}

// Resolve builds the layout of type typ from spec.
func (r *Registry) Resolve(typ string, spec Spec) (logtable.Layout, error) {
	r.mu.RLock()
	f, ok := r.factories[typ]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("resolve layout %q: %w", typ, logtable.ErrUnknownLayout)
	}

	l, err := f(spec)
	if err != nil {
		return nil, fmt.Errorf("resolve layout %q: %w", typ, err)
	}
	return l, nil
}

// PassThrough returns the layout used when none is configured.
func (r *Registry) PassThrough() logtable.Layout {
	return MessagePassThrough
}

// Message joins the payload values with spaces.
func Message(payload []any) string {
	switch len(payload) {
	case 0:
		return ""
	case 1:
		return fmt.Sprint(payload[0])
	}

	parts := make([]string, len(payload))
	for i, v := range payload {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}

// MessagePassThrough renders only the payload.
func MessagePassThrough(ev logtable.Event) string {
	return Message(ev.Payload)
}

// Basic renders "[time] [LEVEL] category - message".
func Basic(ev logtable.Event) string {
	return fmt.Sprintf("[%s] [%s] %s - %s", ev.Time.Format(ISO8601), ev.Level.Name, ev.Category, Message(ev.Payload))
}

// Dummy renders the first payload value and ignores the rest.
func Dummy(ev logtable.Event) string {
	if len(ev.Payload) == 0 {
		return ""
	}
	return fmt.Sprint(ev.Payload[0])
}

type jsonEvent struct {
	Time     time.Time `json:"time"`
	Level    string    `json:"level"`
	Rank     int       `json:"rank"`
	Category string    `json:"category"`
	Message  string    `json:"message"`
}

// JSON renders the event as a JSON object.
func JSON(ev logtable.Event) string {
	b, err := gojson.Marshal(jsonEvent{
		Time:     ev.Time,
		Level:    ev.Level.Name,
		Rank:     ev.Level.Rank,
		Category: ev.Category,
		Message:  Message(ev.Payload),
	})
	if err != nil {
		// only reachable with an unrepresentable time; keep the message
		return Message(ev.Payload)
	}
	return string(b)
}
