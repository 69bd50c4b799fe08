package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sagarc03/logtable"
	"github.com/sagarc03/logtable/client"
	"github.com/sagarc03/logtable/config"
	"github.com/sagarc03/logtable/database"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List events from the log table, newest first",
	Long: `List events from the log table, newest first.

Examples:
  logtable list
  logtable list --category api --level ERROR --limit 20
  logtable list --all --output json
  logtable list --cursor "MTIz"
  logtable list --server http://logs:5709`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listCategory string
	listLevel    string
	listLimit    int
	listCursor   string
	listAll      bool
	listOutput   string
	listServer   string
	listToken    string
)

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "filter by category")
	listCmd.Flags().StringVarP(&listLevel, "level", "l", "", "filter by level name")
	listCmd.Flags().IntVar(&listLimit, "limit", 100, "max results per page")
	listCmd.Flags().StringVar(&listCursor, "cursor", "", "pagination cursor")
	listCmd.Flags().BoolVar(&listAll, "all", false, "fetch all pages")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "output format: table, json, yaml")
	listCmd.Flags().StringVar(&listServer, "server", "", "list through a logtable server instead of the database")
	listCmd.Flags().StringVar(&listToken, "token", "", "bearer token for --server")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	formatter, err := NewFormatter(listOutput)
	if err != nil {
		return err
	}

	level := strings.ToUpper(listLevel)

	var result *logtable.ListResult
	if listServer != "" {
		c, clientErr := client.New(&client.Config{Endpoint: listServer, Token: listToken})
		if clientErr != nil {
			return clientErr
		}
		result, err = c.List(ctx, client.ListOptions{
			Category: listCategory,
			Level:    level,
			Limit:    listLimit,
			Cursor:   listCursor,
			All:      listAll,
		})
	} else {
		result, err = listLocal(ctx, cfg, logtable.ListQuery{
			Category: listCategory,
			Level:    level,
			Limit:    listLimit,
			Cursor:   listCursor,
		})
	}
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}

	return formatter.FormatList(os.Stdout, result)
}

func listLocal(ctx context.Context, cfg *config.Config, q logtable.ListQuery) (*logtable.ListResult, error) {
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	if !listAll {
		page, err := db.List(ctx, cfg.Appender.Table, q)
		if err != nil {
			return nil, err
		}
		return &page, nil
	}
	return listAllPages(ctx, db, cfg.Appender.Table, q)
}

func listAllPages(ctx context.Context, db database.Database, table string, q logtable.ListQuery) (*logtable.ListResult, error) {
	var items []logtable.Entry
	for {
		page, err := db.List(ctx, table, q)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		if page.NextCursor == "" {
			return &logtable.ListResult{Items: items}, nil
		}
		q.Cursor = page.NextCursor
	}
}
