package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/sagarc03/logtable"
)

// Formatter writes list results.
type Formatter interface {
	FormatList(w io.Writer, result *logtable.ListResult) error
}

// NewFormatter returns the formatter for an --output value.
func NewFormatter(output string) (Formatter, error) {
	switch output {
	case "", "table":
		return &TableFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "yaml":
		return &YAMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown output format %q", logtable.ErrInvalidInput, output)
	}
}

// TableFormatter outputs aligned human-readable columns.
type TableFormatter struct{}

// maxDataWidth truncates long data values in table output.
const maxDataWidth = 80

// FormatList formats list results as a table.
func (f *TableFormatter) FormatList(w io.Writer, result *logtable.ListResult) error {
	if len(result.Items) == 0 {
		_, _ = fmt.Fprintln(w, "No events found")
		return nil
	}

	// Calculate column widths
	levelWidth, categoryWidth := len("LEVEL"), len("CATEGORY")
	for i := range result.Items {
		levelWidth = max(levelWidth, len(result.Items[i].Level))
		categoryWidth = max(categoryWidth, len(result.Items[i].Category))
	}

	_, _ = fmt.Fprintf(w, "%-23s  %-*s  %-*s  %s\n", "TIME", levelWidth, "LEVEL", categoryWidth, "CATEGORY", "DATA")
	_, _ = fmt.Fprintf(w, "%s  %s  %s  %s\n",
		strings.Repeat("-", 23),
		strings.Repeat("-", levelWidth),
		strings.Repeat("-", categoryWidth),
		strings.Repeat("-", 4),
	)

	for i := range result.Items {
		item := &result.Items[i]
		data := strings.ReplaceAll(item.Data, "\n", `\n`)
		if len(data) > maxDataWidth {
			data = data[:maxDataWidth-3] + "..."
		}
		_, _ = fmt.Fprintf(w, "%-23s  %-*s  %-*s  %s\n",
			item.Time.UTC().Format("2006-01-02 15:04:05.000"),
			levelWidth, item.Level,
			categoryWidth, item.Category,
			data,
		)
	}

	_, _ = fmt.Fprintf(w, "\n%d event(s)\n", len(result.Items))
	if result.NextCursor != "" {
		_, _ = fmt.Fprintf(w, "Next page: use --cursor %q\n", result.NextCursor)
	}
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

// FormatList formats list results as JSON.
func (f *JSONFormatter) FormatList(w io.Writer, result *logtable.ListResult) error {
	if result.Items == nil {
		result.Items = []logtable.Entry{}
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// YAMLFormatter outputs YAML.
type YAMLFormatter struct{}

// FormatList formats list results as YAML.
func (f *YAMLFormatter) FormatList(w io.Writer, result *logtable.ListResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
