package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/logtable/config"
	logtablehttp "github.com/sagarc03/logtable/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start an HTTP server that writes posted events through the appender
and lists the log table.

Routes:
  POST /events   write one event or a JSON array of events
  GET  /events   list events (category, level, limit, cursor)
  GET  /stats    appender counters
  GET  /healthz  database health`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 5709, "HTTP server port (env: LOGTABLE_SERVER_PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	a, err := newAppender(ctx, cfg, db)
	if err != nil {
		return err
	}

	var readVerifier, writeVerifier logtablehttp.RequestVerifier
	if cfg.Auth.Read == "private" || cfg.Auth.Write == "private" {
		tokens, tokenErr := cfg.Auth.LoadTokens()
		if tokenErr != nil {
			return fmt.Errorf("load auth tokens: %w", tokenErr)
		}
		if len(tokens) == 0 {
			return errors.New("private access requires at least one auth token")
		}
		verifier := logtablehttp.NewTokenVerifier(tokens)
		if cfg.Auth.Read == "private" {
			readVerifier = verifier
		}
		if cfg.Auth.Write == "private" {
			writeVerifier = verifier
		}
	}

	handlerConfig := logtablehttp.HandlerConfig{
		Table:         a.Table(),
		ReadVerifier:  readVerifier,
		WriteVerifier: writeVerifier,
		CORS:          cfg.CORS,
		MaxBodySize:   cfg.Server.MaxBodySize,
	}

	handler := logtablehttp.NewHandler(&handlerConfig, a, db)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server", "addr", addr, "table", a.Table(), "database", cfg.Database.Type)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	stats := a.Stats()
	slog.Info("server stopped", "writes", stats.Writes, "failed", stats.Failed, "tables_created", stats.TablesCreated)
	return nil
}
