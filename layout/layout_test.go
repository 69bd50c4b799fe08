package layout_test

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/sagarc03/logtable"
	"github.com/sagarc03/logtable/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent(payload ...any) logtable.Event {
	return logtable.Event{
		Time:     time.Date(2024, 3, 9, 14, 5, 7, 891000000, time.UTC),
		Payload:  payload,
		Level:    logtable.LevelWarn,
		Category: "app.http.server",
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name    string
		payload []any
		want    string
	}{
		{name: "empty", payload: nil, want: ""},
		{name: "single string", payload: []any{"hello"}, want: "hello"},
		{name: "mixed values", payload: []any{"user", 42, true}, want: "user 42 true"},
		{name: "error value", payload: []any{"failed:", errors.New("boom")}, want: "failed: boom"},
		{name: "slice value", payload: []any{[]int{1, 2}}, want: "[1 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, layout.Message(tt.payload))
		})
	}
}

func TestBuiltInLayouts(t *testing.T) {
	ev := testEvent("disk", "almost", "full")

	assert.Equal(t, "disk almost full", layout.MessagePassThrough(ev))
	assert.Equal(t, "[2024-03-09T14:05:07.891] [WARN] app.http.server - disk almost full", layout.Basic(ev))
	assert.Equal(t, "disk", layout.Dummy(ev))
	assert.Equal(t, "", layout.Dummy(testEvent()))
}

func TestJSON(t *testing.T) {
	out := layout.JSON(testEvent("hello", "world"))

	var decoded map[string]any
	require.NoError(t, gojson.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, "WARN", decoded["level"])
	assert.Equal(t, float64(30000), decoded["rank"])
	assert.Equal(t, "app.http.server", decoded["category"])
	assert.Equal(t, "hello world", decoded["message"])
	assert.Equal(t, "2024-03-09T14:05:07.891Z", decoded["time"])
}

func TestPattern(t *testing.T) {
	host, _ := os.Hostname()
	ev := testEvent("started")

	tests := []struct {
		name    string
		pattern string
		tokens  map[string]string
		want    string
	}{
		{name: "default pattern", pattern: "", want: "14:05:07 WARN app.http.server - started\n"},
		{name: "date default", pattern: "%d", want: "2024-03-09T14:05:07.891"},
		{name: "date named", pattern: "%d{ABSOLUTE}", want: "14:05:07.891"},
		{name: "date go layout", pattern: "%d{2006/01/02}", want: "2024/03/09"},
		{name: "category precision", pattern: "%c{2}", want: "http.server"},
		{name: "category precision larger than parts", pattern: "%c{9}", want: "app.http.server"},
		{name: "level and message", pattern: "[%p] %m", want: "[WARN] started"},
		{name: "percent escape", pattern: "100%% %m", want: "100% started"},
		{name: "custom token", pattern: "%x{user}: %m", tokens: map[string]string{"user": "alice"}, want: "alice: started"},
		{name: "missing custom token", pattern: "%x{user}|", want: "|"},
		{name: "hostname", pattern: "%h", want: host},
		{name: "pid", pattern: "%z", want: strconv.Itoa(os.Getpid())},
		{name: "unknown verb kept", pattern: "%q %m", want: "%q started"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := layout.Pattern(tt.pattern, tt.tokens)
			require.NoError(t, err)
			assert.Equal(t, tt.want, l(ev))
		})
	}
}

func TestPattern_Invalid(t *testing.T) {
	for _, p := range []string{"%m %", "%d{ISO8601", "%c{abc}", "%c{0}", "%x"} {
		t.Run(p, func(t *testing.T) {
			_, err := layout.Pattern(p, nil)
			assert.ErrorIs(t, err, logtable.ErrConfig)
		})
	}
}

func TestRegistry_Resolve(t *testing.T) {
	r := layout.NewRegistry()
	ev := testEvent("hi")

	for _, typ := range []string{"messagePassThrough", "basic", "dummy", "json", "pattern"} {
		t.Run(typ, func(t *testing.T) {
			l, err := r.Resolve(typ, layout.Spec{Type: typ, Pattern: "%m"})
			require.NoError(t, err)
			assert.NotEmpty(t, l(ev))
		})
	}

	t.Run("unknown type", func(t *testing.T) {
		_, err := r.Resolve("coloured", layout.Spec{Type: "coloured"})
		assert.ErrorIs(t, err, logtable.ErrUnknownLayout)
	})

	t.Run("factory error", func(t *testing.T) {
		_, err := r.Resolve("pattern", layout.Spec{Type: "pattern", Pattern: "%d{"})
		assert.ErrorIs(t, err, logtable.ErrConfig)
	})
}

func TestRegistry_Register(t *testing.T) {
	r := layout.NewRegistry()
	r.Register("upper", func(spec layout.Spec) (logtable.Layout, error) {
		return func(ev logtable.Event) string {
			return fmt.Sprintf("%s:%s", spec.Tokens["prefix"], layout.Message(ev.Payload))
		}, nil
	})

	l, err := r.Resolve("upper", layout.Spec{Type: "upper", Tokens: map[string]string{"prefix": "X"}})
	require.NoError(t, err)
	assert.Equal(t, "X:hi", l(testEvent("hi")))
}

func TestRegistry_PassThrough(t *testing.T) {
	assert.Equal(t, "a b", layout.Default().PassThrough()(testEvent("a", "b")))
}
