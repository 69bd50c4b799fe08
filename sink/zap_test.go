package sink_test

import (
	"errors"
	"testing"
	"time"

	"github.com/sagarc03/logtable"
	"github.com/sagarc03/logtable/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestZapCore(t *testing.T) {
	t.Run("message and fields", func(t *testing.T) {
		rec := &recorder{}
		logger := zap.New(sink.NewZapCore(rec, zapcore.DebugLevel)).Named("http")

		logger.Info("request", zap.String("path", "/x"), zap.Int("status", 200))

		require.Equal(t, 1, rec.count())
		ev := rec.last()
		assert.Equal(t, []any{"request", "path=/x", "status=200"}, ev.Payload)
		assert.Equal(t, "http", ev.Category)
		assert.Equal(t, logtable.LevelInfo, ev.Level)
	})

	t.Run("default category", func(t *testing.T) {
		rec := &recorder{}
		logger := zap.New(sink.NewZapCore(rec, nil))

		logger.Warn("slow")
		assert.Equal(t, sink.DefaultCategory, rec.last().Category)
		assert.Equal(t, logtable.LevelWarn, rec.last().Level)
	})

	t.Run("level filtering", func(t *testing.T) {
		rec := &recorder{}
		logger := zap.New(sink.NewZapCore(rec, zapcore.WarnLevel))

		logger.Debug("dropped")
		logger.Info("dropped")
		logger.Error("kept")

		require.Equal(t, 1, rec.count())
		assert.Equal(t, logtable.LevelError, rec.last().Level)
	})

	t.Run("with fields", func(t *testing.T) {
		rec := &recorder{}
		base := zap.New(sink.NewZapCore(rec, nil))
		child := base.With(zap.String("service", "api"))

		child.Info("x", zap.Bool("ok", true))
		assert.Equal(t, []any{"x", "ok=true", "service=api"}, rec.last().Payload)

		base.Info("y")
		assert.Equal(t, []any{"y"}, rec.last().Payload)
	})

	t.Run("write error is returned", func(t *testing.T) {
		werr := errors.New("insert failed")
		core := sink.NewZapCore(&recorder{err: werr}, nil)

		err := core.Write(zapcore.Entry{Level: zapcore.InfoLevel, Time: time.Now(), Message: "m"}, nil)
		assert.Same(t, werr, err)
	})
}

func TestZapLevel(t *testing.T) {
	tests := []struct {
		level zapcore.Level
		want  logtable.Level
	}{
		{zapcore.DebugLevel, logtable.LevelDebug},
		{zapcore.InfoLevel, logtable.LevelInfo},
		{zapcore.WarnLevel, logtable.LevelWarn},
		{zapcore.ErrorLevel, logtable.LevelError},
		{zapcore.DPanicLevel, logtable.Level{Rank: 50000, Name: "DPANIC"}},
		{zapcore.PanicLevel, logtable.Level{Rank: 50000, Name: "PANIC"}},
		{zapcore.FatalLevel, logtable.LevelFatal},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, sink.ZapLevel(tt.level))
		})
	}
}
