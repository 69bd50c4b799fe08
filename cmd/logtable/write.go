package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/logtable"
	"github.com/sagarc03/logtable/client"
	"github.com/sagarc03/logtable/config"
)

var writeCmd = &cobra.Command{
	Use:   "write [flags] <message...>",
	Short: "Write a single log event",
	Long: `Write a single log event. The arguments form the event payload and are
joined with spaces by the default layout.

The table is created on first use if it does not exist yet.

Examples:
  # Write an INFO event
  logtable write "service started"

  # Write an ERROR event in the billing category
  logtable write -l error -c billing "charge failed" "id=42"

  # Write through a running logtable server
  logtable write --server http://logs:5709 --token s3cret "deployed"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWrite,
}

var (
	writeLevel    string
	writeCategory string
	writeServer   string
	writeToken    string
)

func init() {
	writeCmd.Flags().StringVarP(&writeLevel, "level", "l", "info", "event level (trace, debug, info, warn, error, fatal, mark)")
	writeCmd.Flags().StringVarP(&writeCategory, "category", "c", logtable.DefaultCategory, "event category")
	writeCmd.Flags().StringVar(&writeServer, "server", "", "write through a logtable server instead of the database")
	writeCmd.Flags().StringVar(&writeToken, "token", "", "bearer token for --server")
	rootCmd.AddCommand(writeCmd)
}

func runWrite(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	level, err := logtable.ParseLevel(writeLevel)
	if err != nil {
		return err
	}

	payload := make([]any, len(args))
	for i, arg := range args {
		payload[i] = arg
	}

	ev := logtable.Event{
		Time:     time.Now(),
		Payload:  payload,
		Level:    level,
		Category: writeCategory,
	}

	if writeServer != "" {
		return writeRemote(ctx, ev)
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	a, err := newAppender(ctx, cfg, db)
	if err != nil {
		return err
	}

	if err := a.Write(ctx, ev); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

func writeRemote(ctx context.Context, ev logtable.Event) error {
	c, err := client.New(&client.Config{Endpoint: writeServer, Token: writeToken})
	if err != nil {
		return err
	}
	if err := c.Write(ctx, ev); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}
