package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/logtable/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "logtable",
	Short:   "Persist log events as rows in a database table",
	Long: `logtable writes log events into a single SQL table, creating the
table on the first write that needs it. It supports SQLite, PostgreSQL
and MySQL, and can run an HTTP endpoint that accepts events remotely.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
			files = []string{configFile}
		}

		cfg, err := config.Load(files, cmd.Flags())
		if err != nil {
			return err
		}

		setupLogging(cfg.Log)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("db-type", "", "database type: sqlite, postgres, mysql (default: sqlite, env: LOGTABLE_DATABASE_TYPE)")
	rootCmd.PersistentFlags().String("db-dsn", "", "database connection string (default: logtable.db, env: LOGTABLE_DATABASE_DSN)")
	rootCmd.PersistentFlags().String("table", "", "log table name (default: log, env: LOGTABLE_APPENDER_TABLE)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: LOGTABLE_LOG_LEVEL)")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
