package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sagarc03/logtable"
	"github.com/sagarc03/logtable/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the log table if it does not exist",
	Long: `Create the log table up front instead of on the first write.

The command is idempotent: an existing table is left untouched and then
checked against the expected columns.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	table := cfg.Appender.Table
	if err = db.CreateTable(ctx, table, logtable.LogSchema()); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	if err = db.Validate(ctx, table); err != nil {
		return fmt.Errorf("validate table: %w", err)
	}

	slog.Info("database migration complete", "table", table)
	return nil
}
