package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagarc03/logtable/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the database connection and the log table schema",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
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

	if err = db.Validate(ctx, cfg.Appender.Table); err != nil {
		return fmt.Errorf("validate table: %w", err)
	}

	fmt.Printf("table %s ok (%s)\n", cfg.Appender.Table, cfg.Database.Type)
	return nil
}
