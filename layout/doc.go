// Package layout renders log events into the string stored in the data column.
//
// A Registry maps layout type names to factories. Resolve builds a layout once from a
// Spec; the appender keeps the result for its lifetime.
//
// # Built-in Layouts
//
//   - messagePassThrough: the payload values joined by spaces (the default)
//   - basic: "[2006-01-02T15:04:05.000] [INFO] category - message"
//   - dummy: the first payload value only
//   - pattern: a format string of %-tokens, see Pattern
//   - json: a JSON object with time, level, rank, category and message
//
// # Usage
//
//	l, err := layout.Default().Resolve("pattern", layout.Spec{Pattern: "%d %p %c - %m"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	s := l(event)
package layout
