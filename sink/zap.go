package sink

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/sagarc03/logtable"
)

type zapCore struct {
	zapcore.LevelEnabler
	w      Writer
	fields []zapcore.Field
}

// NewZapCore returns a zapcore.Core that writes every enabled entry to w. The
// logger name becomes the category.
func NewZapCore(w Writer, enab zapcore.LevelEnabler) zapcore.Core {
	if enab == nil {
		enab = zapcore.InfoLevel
	}
	return &zapCore{LevelEnabler: enab, w: w}
}

func (c *zapCore) With(fields []zapcore.Field) zapcore.Core {
	c2 := *c
	c2.fields = append(slices.Clip(c.fields), fields...)
	return &c2
}

func (c *zapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *zapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	payload := make([]any, 0, 1+len(enc.Fields))
	if ent.Message != "" {
		payload = append(payload, ent.Message)
	}
	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		payload = append(payload, fmt.Sprintf("%s=%v", k, enc.Fields[k]))
	}

	category := ent.LoggerName
	if category == "" {
		category = DefaultCategory
	}

	t := ent.Time
	if t.IsZero() {
		t = time.Now()
	}

	return c.w.Write(context.Background(), logtable.Event{
		Time:     t,
		Payload:  payload,
		Level:    ZapLevel(ent.Level),
		Category: category,
	})
}

func (c *zapCore) Sync() error {
	return nil
}

// ZapLevel maps a zap level onto the log level ranks. DPANIC, PANIC and FATAL all
// rank as FATAL.
func ZapLevel(l zapcore.Level) logtable.Level {
	switch {
	case l <= zapcore.DebugLevel:
		return logtable.LevelDebug
	case l == zapcore.InfoLevel:
		return logtable.LevelInfo
	case l == zapcore.WarnLevel:
		return logtable.LevelWarn
	case l == zapcore.ErrorLevel:
		return logtable.LevelError
	}
	return logtable.Level{Rank: logtable.LevelFatal.Rank, Name: strings.ToUpper(l.String())}
}
