package logtable

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

// Event is a single log event handed over by a logging framework.
type Event struct {
	Time     time.Time
	Payload  []any
	Level    Level
	Category string
}

// Level is a severity with its numeric rank and display name.
type Level struct {
	Rank int
	Name string
}

func (l Level) String() string {
	return l.Name
}

// Standard levels, ranked the way log4js ranks them.
var (
	LevelAll   = Level{Rank: math.MinInt, Name: "ALL"}
	LevelTrace = Level{Rank: 5000, Name: "TRACE"}
	LevelDebug = Level{Rank: 10000, Name: "DEBUG"}
	LevelInfo  = Level{Rank: 20000, Name: "INFO"}
	LevelWarn  = Level{Rank: 30000, Name: "WARN"}
	LevelError = Level{Rank: 40000, Name: "ERROR"}
	LevelFatal = Level{Rank: 50000, Name: "FATAL"}
	LevelMark  = Level{Rank: 9007199254740992, Name: "MARK"}
	LevelOff   = Level{Rank: math.MaxInt, Name: "OFF"}
)

var standardLevels = []Level{
	LevelAll, LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal, LevelMark, LevelOff,
}

// ParseLevel returns the standard level with the given name, ignoring case.
// "WARNING" is accepted as an alias of WARN.
func ParseLevel(name string) (Level, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if n == "WARNING" {
		n = "WARN"
	}

	for _, l := range standardLevels {
		if l.Name == n {
			return l, nil
		}
	}

	return Level{}, fmt.Errorf("parse level %q: %w", name, ErrInvalidInput)
}

// Row is the flat column-to-value record written for one event.
type Row map[string]any

// Layout renders an event into the string stored in the data column.
type Layout func(Event) string

// Entry is a row read back from the log table.
type Entry struct {
	ID       int64     `json:"id" yaml:"id"`
	Time     time.Time `json:"time" yaml:"time"`
	Data     string    `json:"data" yaml:"data"`
	Rank     int       `json:"rank" yaml:"rank"`
	Level    string    `json:"level" yaml:"level"`
	Category string    `json:"category" yaml:"category"`
}

// ListQuery filters and pages through the log table, newest rows first.
type ListQuery struct {
	Category string
	Level    string
	Limit    int
	Cursor   string
}

type ListResult struct {
	Items      []Entry `json:"items" yaml:"items"`
	NextCursor string  `json:"next_cursor,omitempty" yaml:"next_cursor,omitempty"`
}

var validTableNameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// IsValidTableName checks if a table name is valid (lowercase, alphanumeric with underscores, max 63 chars).
func IsValidTableName(name string) bool {
	return validTableNameRegex.MatchString(name) && len(name) <= 63
}
