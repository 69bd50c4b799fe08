package sink

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/sagarc03/logtable"
)

// SlogOptions configures the handler returned by NewSlogHandler.
type SlogOptions struct {
	// Category is the event category, DefaultCategory when empty.
	Category string
	// CategoryKey names the top-level attribute that overrides Category, "category" when empty.
	CategoryKey string
	// Level is the minimum level handled, slog.LevelInfo when nil.
	Level slog.Leveler
}

type slogHandler struct {
	w           Writer
	level       slog.Leveler
	categoryKey string
	category    string
	attrs       []any
	groups      []string
}

// NewSlogHandler returns a slog.Handler that writes every enabled record to w.
// Errors from w are returned by Handle.
func NewSlogHandler(w Writer, opts *SlogOptions) slog.Handler {
	h := &slogHandler{
		w:           w,
		level:       slog.LevelInfo,
		categoryKey: "category",
		category:    DefaultCategory,
	}
	if opts == nil {
		return h
	}
	if opts.Level != nil {
		h.level = opts.Level
	}
	if opts.CategoryKey != "" {
		h.categoryKey = opts.CategoryKey
	}
	if opts.Category != "" {
		h.category = opts.Category
	}
	return h
}

func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *slogHandler) Handle(ctx context.Context, r slog.Record) error {
	category := h.category
	payload := make([]any, 0, 1+len(h.attrs)+r.NumAttrs())
	if r.Message != "" {
		payload = append(payload, r.Message)
	}
	payload = append(payload, h.attrs...)

	prefix := groupPrefix(h.groups)
	r.Attrs(func(a slog.Attr) bool {
		payload = h.appendAttr(payload, &category, prefix, a)
		return true
	})

	t := r.Time
	if t.IsZero() {
		t = time.Now()
	}

	return h.w.Write(ctx, logtable.Event{
		Time:     t,
		Payload:  payload,
		Level:    SlogLevel(r.Level),
		Category: category,
	})
}

func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := h.clone()
	prefix := groupPrefix(h.groups)
	for _, a := range attrs {
		h2.attrs = h2.appendAttr(h2.attrs, &h2.category, prefix, a)
	}
	return h2
}

func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.groups = append(h2.groups, name)
	return h2
}

func (h *slogHandler) clone() *slogHandler {
	h2 := *h
	h2.attrs = slices.Clip(h.attrs)
	h2.groups = slices.Clip(h.groups)
	return &h2
}

// appendAttr renders a as key=value onto payload. The category attribute is only
// honoured outside of groups.
func (h *slogHandler) appendAttr(payload []any, category *string, prefix string, a slog.Attr) []any {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return payload
	}

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return payload
		}
		p := prefix
		if a.Key != "" {
			p = prefix + a.Key + "."
		}
		for _, ga := range group {
			payload = h.appendAttr(payload, category, p, ga)
		}
		return payload
	}

	if prefix == "" && a.Key == h.categoryKey {
		*category = a.Value.String()
		return payload
	}

	return append(payload, fmt.Sprintf("%s%s=%s", prefix, a.Key, a.Value.String()))
}

func groupPrefix(groups []string) string {
	if len(groups) == 0 {
		return ""
	}
	return strings.Join(groups, ".") + "."
}

// SlogLevel maps a slog level onto the log level ranks: DEBUG, INFO, WARN and ERROR
// map onto their namesakes, levels in between get a proportional rank.
func SlogLevel(l slog.Level) logtable.Level {
	switch l {
	case slog.LevelDebug:
		return logtable.LevelDebug
	case slog.LevelInfo:
		return logtable.LevelInfo
	case slog.LevelWarn:
		return logtable.LevelWarn
	case slog.LevelError:
		return logtable.LevelError
	}
	return logtable.Level{Rank: 20000 + 2500*int(l), Name: l.String()}
}
