package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/logtable"
	"github.com/sagarc03/logtable/appender"
	"github.com/sagarc03/logtable/database"
)

type collectWriter struct {
	mu     sync.Mutex
	events []logtable.Event
	failOn string
}

func (c *collectWriter) Write(_ context.Context, ev logtable.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failOn != "" && len(ev.Payload) > 0 && ev.Payload[0] == c.failOn {
		return errors.New("write failed")
	}
	c.events = append(c.events, ev)
	return nil
}

func TestNewLineParser(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("json", func(t *testing.T) {
		parse, err := newLineParser("json", "info", "default")
		require.NoError(t, err)

		ev, err := parse(`{"level":"error","category":"api","message":"boom"}`, now)
		require.NoError(t, err)
		assert.Equal(t, logtable.LevelError, ev.Level)
		assert.Equal(t, "api", ev.Category)
		assert.Equal(t, []any{"boom"}, ev.Payload)
		assert.Equal(t, now, ev.Time)

		_, err = parse(`not json`, now)
		assert.ErrorIs(t, err, logtable.ErrInvalidInput)
	})

	t.Run("text", func(t *testing.T) {
		parse, err := newLineParser("text", "warn", "app")
		require.NoError(t, err)

		ev, err := parse("disk almost full", now)
		require.NoError(t, err)
		assert.Equal(t, logtable.LevelWarn, ev.Level)
		assert.Equal(t, "app", ev.Category)
		assert.Equal(t, []any{"disk almost full"}, ev.Payload)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := newLineParser("xml", "info", "default")
		assert.ErrorIs(t, err, logtable.ErrInvalidInput)

		_, err = newLineParser("text", "loud", "default")
		assert.ErrorIs(t, err, logtable.ErrInvalidInput)
	})
}

func TestIngest(t *testing.T) {
	ctx := context.Background()
	parse, err := newLineParser("text", "info", "default")
	require.NoError(t, err)

	t.Run("skips blank lines", func(t *testing.T) {
		w := &collectWriter{}
		n, err := ingest(ctx, strings.NewReader("a\n\n  \nb\nc\n"), parse, w, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.Len(t, w.events, 3)
	})

	t.Run("write failure", func(t *testing.T) {
		w := &collectWriter{failOn: "b"}
		_, err := ingest(ctx, strings.NewReader("a\nb\nc\n"), parse, w, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("parse failure", func(t *testing.T) {
		jsonParse, err := newLineParser("json", "info", "default")
		require.NoError(t, err)

		w := &collectWriter{}
		_, err = ingest(ctx, strings.NewReader("{\"message\":\"ok\"}\n{broken\n"), jsonParse, w, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("into appender", func(t *testing.T) {
		a, err := appender.New(ctx, appender.Config{
			Connection: appender.Params{Config: database.Config{Type: "sqlite", DSN: ":memory:"}},
		}, nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = a.Close() })

		input := strings.Repeat("line\n", 25)
		n, err := ingest(ctx, strings.NewReader(input), parse, a, 8)
		require.NoError(t, err)
		assert.Equal(t, int64(25), n)

		db := a.Conn().(database.Database)
		all, err := listAllPages(ctx, db, a.Table(), logtable.ListQuery{Limit: 10})
		require.NoError(t, err)
		assert.Len(t, all.Items, 25)
	})
}

func TestFormatters(t *testing.T) {
	result := &logtable.ListResult{
		Items: []logtable.Entry{
			{ID: 2, Time: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC), Data: "line one\nline two", Rank: 40000, Level: "ERROR", Category: "billing"},
			{ID: 1, Time: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), Data: strings.Repeat("x", 100), Rank: 20000, Level: "INFO", Category: "api"},
		},
		NextCursor: "MQ==",
	}

	t.Run("table", func(t *testing.T) {
		f, err := NewFormatter("table")
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, f.FormatList(&buf, result))
		out := buf.String()

		assert.Contains(t, out, "TIME")
		assert.Contains(t, out, "2024-03-01 12:30:00.000")
		assert.Contains(t, out, `line one\nline two`)
		assert.Contains(t, out, strings.Repeat("x", 77)+"...")
		assert.Contains(t, out, "2 event(s)")
		assert.Contains(t, out, `--cursor "MQ=="`)
	})

	t.Run("table empty", func(t *testing.T) {
		f, err := NewFormatter("")
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, f.FormatList(&buf, &logtable.ListResult{}))
		assert.Equal(t, "No events found\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		f, err := NewFormatter("json")
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, f.FormatList(&buf, result))
		assert.Contains(t, buf.String(), `"next_cursor": "MQ=="`)
		assert.Contains(t, buf.String(), `"category": "billing"`)
	})

	t.Run("yaml", func(t *testing.T) {
		f, err := NewFormatter("yaml")
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, f.FormatList(&buf, result))
		assert.Contains(t, buf.String(), "next_cursor: MQ==")
		assert.Contains(t, buf.String(), "category: billing")
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewFormatter("csv")
		assert.ErrorIs(t, err, logtable.ErrInvalidInput)
	})
}
