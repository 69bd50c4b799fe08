package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sagarc03/logtable"
	"github.com/sagarc03/logtable/config"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [flags] [file]",
	Short: "Write events read line by line from a file or stdin",
	Long: `Write one event per input line. With --format json every line is a JSON
object such as {"level":"warn","category":"api","message":"slow"}; with
--format text every line is the message of an event at --level in --category.

Lines are written concurrently and may land in any order.

Examples:
  # Ship an application log file
  logtable ingest --format text -c app /var/log/app.log

  # Pipe JSON events
  produce-events | logtable ingest --concurrency 8`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

var (
	ingestFormat      string
	ingestLevel       string
	ingestCategory    string
	ingestConcurrency int
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestFormat, "format", "f", "json", "line format: json or text")
	ingestCmd.Flags().StringVarP(&ingestLevel, "level", "l", "info", "level of text lines")
	ingestCmd.Flags().StringVarP(&ingestCategory, "category", "c", logtable.DefaultCategory, "category of text lines")
	ingestCmd.Flags().IntVar(&ingestConcurrency, "concurrency", 4, "number of concurrent writes")
	rootCmd.AddCommand(ingestCmd)
}

// lineParser turns one input line into an event.
type lineParser func(line string, now time.Time) (logtable.Event, error)

func newLineParser(format, level, category string) (lineParser, error) {
	switch format {
	case "json":
		return func(line string, now time.Time) (logtable.Event, error) {
			var rec logtable.Record
			if err := json.Unmarshal([]byte(line), &rec); err != nil {
				return logtable.Event{}, fmt.Errorf("%w: decode event: %w", logtable.ErrInvalidInput, err)
			}
			return rec.Event(now)
		}, nil
	case "text":
		lvl, err := logtable.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		return func(line string, now time.Time) (logtable.Event, error) {
			return logtable.Event{
				Time:     now,
				Payload:  []any{line},
				Level:    lvl,
				Category: category,
			}, nil
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", logtable.ErrInvalidInput, format)
	}
}

type eventWriter interface {
	Write(ctx context.Context, ev logtable.Event) error
}

// ingest writes every non-blank line of r through w and returns the number of
// events written. The first failure stops the ingest.
func ingest(ctx context.Context, r io.Reader, parse lineParser, w eventWriter, concurrency int) (int64, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, concurrency))

	var written atomic.Int64
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		ev, err := parse(line, time.Now())
		if err != nil {
			_ = g.Wait()
			return written.Load(), fmt.Errorf("line %d: %w", lineNo, err)
		}

		n := lineNo
		g.Go(func() error {
			if err := w.Write(ctx, ev); err != nil {
				return fmt.Errorf("line %d: %w", n, err)
			}
			written.Add(1)
			return nil
		})

		if ctx.Err() != nil {
			break
		}
	}

	if err := g.Wait(); err != nil {
		return written.Load(), err
	}
	if err := scanner.Err(); err != nil {
		return written.Load(), fmt.Errorf("read input: %w", err)
	}
	return written.Load(), nil
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	parse, err := newLineParser(ingestFormat, ingestLevel, ingestCategory)
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, openErr := os.Open(args[0])
		if openErr != nil {
			return fmt.Errorf("open input: %w", openErr)
		}
		defer func() { _ = f.Close() }()
		in = f
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

	written, err := ingest(ctx, in, parse, a, ingestConcurrency)
	stats := a.Stats()
	slog.Info("ingest complete",
		"written", written,
		"failed", stats.Failed,
		"tables_created", stats.TablesCreated,
	)
	return err
}
