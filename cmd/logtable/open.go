package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sagarc03/logtable/appender"
	"github.com/sagarc03/logtable/config"
	"github.com/sagarc03/logtable/database"
)

// openDatabase connects to the configured backend and pings it.
func openDatabase(ctx context.Context, cfg *config.Config) (database.Database, error) {
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err = db.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Debug("connected to database", "type", cfg.Database.Type)
	return db, nil
}

// newAppender builds an appender writing through db. db stays owned by the caller.
func newAppender(ctx context.Context, cfg *config.Config, db database.Database) (*appender.Appender, error) {
	a, err := appender.New(ctx, cfg.Appender.Build(appender.Live{Conn: db}), nil)
	if err != nil {
		return nil, fmt.Errorf("create appender: %w", err)
	}
	return a, nil
}
