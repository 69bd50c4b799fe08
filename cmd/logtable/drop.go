package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/sagarc03/logtable/config"
)

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop the log table and every event in it",
	Long: `Drop the log table. All stored events are lost; the next write
creates an empty table again.

Examples:
  # Asks for confirmation
  logtable drop

  # No prompt, for scripts
  logtable drop --yes`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

var dropYes bool

func init() {
	dropCmd.Flags().BoolVarP(&dropYes, "yes", "y", false, "do not ask for confirmation")
	rootCmd.AddCommand(dropCmd)
}

func runDrop(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	table := cfg.Appender.Table

	if !dropYes {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("Drop table '%s' and all its events", table),
			IsConfirm: true,
		}
		if _, promptErr := prompt.Run(); promptErr != nil {
			if errors.Is(promptErr, promptui.ErrInterrupt) || errors.Is(promptErr, promptui.ErrAbort) {
				fmt.Println("Cancelled.")
				return nil
			}
			return promptErr
		}
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err = db.DropTable(ctx, table); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}

	slog.Info("table dropped", "table", table)
	return nil
}
