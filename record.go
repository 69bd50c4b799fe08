package logtable

import (
	"fmt"
	"strings"
	"time"
)

// DefaultCategory is the category of a record that names none.
const DefaultCategory = "default"

// Record is the wire form of an event accepted by the HTTP endpoint and the
// ingest command.
type Record struct {
	Time     *time.Time `json:"time,omitempty"`
	Level    string     `json:"level,omitempty"`
	Rank     *int       `json:"rank,omitempty"`
	Category string     `json:"category,omitempty"`
	Message  string     `json:"message,omitempty"`
	Payload  []any      `json:"payload,omitempty"`
}

// Event converts r into an Event. A record without a time is stamped with now,
// one without a level is INFO. A rank makes the level a custom level and then
// requires a level name.
func (r Record) Event(now time.Time) (Event, error) {
	ev := Event{
		Time:     now,
		Level:    LevelInfo,
		Category: r.Category,
	}

	if r.Time != nil {
		ev.Time = *r.Time
	}

	if ev.Category == "" {
		ev.Category = DefaultCategory
	}

	switch {
	case r.Rank != nil:
		name := strings.ToUpper(strings.TrimSpace(r.Level))
		if name == "" {
			return Event{}, fmt.Errorf("rank %d without level name: %w", *r.Rank, ErrInvalidInput)
		}
		ev.Level = Level{Rank: *r.Rank, Name: name}
	case r.Level != "":
		level, err := ParseLevel(r.Level)
		if err != nil {
			return Event{}, err
		}
		ev.Level = level
	}

	switch {
	case r.Payload != nil:
		ev.Payload = r.Payload
	case r.Message != "":
		ev.Payload = []any{r.Message}
	default:
		ev.Payload = []any{}
	}

	return ev, nil
}
