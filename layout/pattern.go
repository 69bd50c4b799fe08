package layout

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sagarc03/logtable"
)

// DefaultPattern is used when a pattern layout is given no pattern.
const DefaultPattern = "%r %p %c - %m%n"

// Named date formats accepted by %d{...}. Anything else is used as a Go time layout.
var dateFormats = map[string]string{
	"ISO8601":                ISO8601,
	"ISO8601_WITH_TZ_OFFSET": "2006-01-02T15:04:05.000-07:00",
	"ABSOLUTE":               "15:04:05.000",
	"DATE":                   "02 01 2006 15:04:05.000",
}

type segment func(b *strings.Builder, ev logtable.Event)

// Pattern compiles a pattern layout. Supported tokens:
//
//	%d or %d{FORMAT}  time; FORMAT is ISO8601 (default), ISO8601_WITH_TZ_OFFSET,
//	                  ABSOLUTE, DATE or a Go time layout
//	%p                level name
//	%c or %c{N}       category, optionally only its last N dot-separated parts
//	%m                message
//	%n                newline
//	%r                time as 15:04:05
//	%h                hostname
//	%z                process id
//	%x{NAME}          value of tokens[NAME]
//	%%                literal percent sign
func Pattern(pattern string, tokens map[string]string) (logtable.Layout, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}

	segments, err := compile(pattern, tokens)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %w", logtable.ErrConfig, pattern, err)
	}

	return func(ev logtable.Event) string {
		var b strings.Builder
		for _, s := range segments {
			s(&b, ev)
		}
		return b.String()
	}, nil
}

func compile(pattern string, tokens map[string]string) ([]segment, error) {
	var segments []segment
	var literal strings.Builder

	flush := func() {
		if literal.Len() == 0 {
			return
		}
		s := literal.String()
		literal.Reset()
		segments = append(segments, func(b *strings.Builder, _ logtable.Event) { b.WriteString(s) })
	}

	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' {
			literal.WriteByte(pattern[i])
			continue
		}

		if i+1 >= len(pattern) {
			return nil, fmt.Errorf("dangling %% at end of pattern")
		}
		i++
		verb := pattern[i]

		if verb == '%' {
			literal.WriteByte('%')
			continue
		}

		arg, hasArg, next, err := readArg(pattern, i+1)
		if err != nil {
			return nil, err
		}

		seg, ok, err := tokenSegment(verb, arg, hasArg, tokens)
		if err != nil {
			return nil, err
		}
		if !ok {
			// unknown verbs are kept as written
			literal.WriteByte('%')
			literal.WriteByte(verb)
			continue
		}

		i = next - 1
		flush()
		segments = append(segments, seg)
	}
	flush()

	return segments, nil
}

// readArg reads an optional {...} argument starting at pos and returns the index
// just past it.
func readArg(pattern string, pos int) (string, bool, int, error) {
	if pos >= len(pattern) || pattern[pos] != '{' {
		return "", false, pos, nil
	}

	end := strings.IndexByte(pattern[pos:], '}')
	if end < 0 {
		return "", false, pos, fmt.Errorf("unterminated { at offset %d", pos)
	}

	return pattern[pos+1 : pos+end], true, pos + end + 1, nil
}

func tokenSegment(verb byte, arg string, hasArg bool, tokens map[string]string) (segment, bool, error) {
	switch verb {
	case 'd':
		format := ISO8601
		if hasArg && arg != "" {
			if named, ok := dateFormats[arg]; ok {
				format = named
			} else {
				format = arg
			}
		}
		return func(b *strings.Builder, ev logtable.Event) { b.WriteString(ev.Time.Format(format)) }, true, nil

	case 'p':
		return func(b *strings.Builder, ev logtable.Event) { b.WriteString(ev.Level.Name) }, true, nil

	case 'c':
		if !hasArg {
			return func(b *strings.Builder, ev logtable.Event) { b.WriteString(ev.Category) }, true, nil
		}
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			return nil, false, fmt.Errorf("invalid category precision %q", arg)
		}
		return func(b *strings.Builder, ev logtable.Event) { b.WriteString(lastParts(ev.Category, n)) }, true, nil

	case 'm':
		return func(b *strings.Builder, ev logtable.Event) { b.WriteString(Message(ev.Payload)) }, true, nil

	case 'n':
		return func(b *strings.Builder, _ logtable.Event) { b.WriteByte('\n') }, true, nil

	case 'r':
		return func(b *strings.Builder, ev logtable.Event) { b.WriteString(ev.Time.Format("15:04:05")) }, true, nil

	case 'h':
		host, err := os.Hostname()
		if err != nil {
			host = "localhost"
		}
		return func(b *strings.Builder, _ logtable.Event) { b.WriteString(host) }, true, nil

	case 'z':
		pid := strconv.Itoa(os.Getpid())
		return func(b *strings.Builder, _ logtable.Event) { b.WriteString(pid) }, true, nil

	case 'x':
		if !hasArg || arg == "" {
			return nil, false, fmt.Errorf("%%x requires a token name")
		}
		value := tokens[arg]
		return func(b *strings.Builder, _ logtable.Event) { b.WriteString(value) }, true, nil
	}

	return nil, false, nil
}

func lastParts(category string, n int) string {
	parts := strings.Split(category, ".")
	if len(parts) <= n {
		return category
	}
	return strings.Join(parts[len(parts)-n:], ".")
}
