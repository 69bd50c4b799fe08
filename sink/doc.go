// Package sink connects logging frameworks to an appender.
//
// NewSlogHandler returns a log/slog handler and NewZapCore a zapcore.Core. Both
// turn each record into a logtable.Event and hand it to a Writer, usually an
// *appender.Appender:
//
//	a, err := appender.New(ctx, cfg, nil)
//	if err != nil {
//		return err
//	}
//	logger := slog.New(sink.NewSlogHandler(a, &sink.SlogOptions{Category: "api"}))
//	logger.Info("listening", "port", 5709)
//
// The payload of an event is the record's message followed by its attributes
// rendered as key=value, so the pass-through layout stores "listening port=5709".
package sink
