package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"

	"github.com/sagarc03/logtable"
	"github.com/sagarc03/logtable/appender"
)

// Writer persists one event, typically an *appender.Appender.
type Writer interface {
	Write(ctx context.Context, ev logtable.Event) error
}

// Store reads back the log table.
type Store interface {
	Ping(ctx context.Context) error
	List(ctx context.Context, table string, q logtable.ListQuery) (logtable.ListResult, error)
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled" yaml:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins" yaml:"allowed_origins,omitempty"`
	AllowedMethods   []string `mapstructure:"allowed_methods" yaml:"allowed_methods,omitempty"`
	AllowedHeaders   []string `mapstructure:"allowed_headers" yaml:"allowed_headers,omitempty"`
	ExposedHeaders   []string `mapstructure:"exposed_headers" yaml:"exposed_headers,omitempty"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" yaml:"max_age"`
}

type HandlerConfig struct {
	// Table is the log table listed by GET /events.
	Table         string
	ReadVerifier  RequestVerifier
	WriteVerifier RequestVerifier
	CORS          CORSConfig
	// MaxBodySize limits POST bodies in bytes; 0 means no limit.
	MaxBodySize int64
}

// Handler provides HTTP handlers for writing and listing log events.
type Handler struct {
	config HandlerConfig
	writer Writer
	store  Store
	now    func() time.Time
}

// NewHandler creates a new Handler with the given configuration, writer and store.
func NewHandler(config *HandlerConfig, writer Writer, store Store) *Handler {
	return &Handler{
		config: *config,
		writer: writer,
		store:  store,
		now:    time.Now,
	}
}

// Router returns an http.Handler with all routes configured.
// GET /stats is only served when the writer reports appender stats.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.NotFound(writeNotFound)
	r.Get("/healthz", h.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(h.config.ReadVerifier))
		r.Get("/events", h.handleList)
		if _, ok := h.writer.(statsReporter); ok {
			r.Get("/stats", h.handleStats)
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(h.config.WriteVerifier))
		r.Post("/events", h.handleWrite)
	})

	return r
}

type statsReporter interface {
	Stats() appender.Stats
}

// WriteResponse is returned by POST /events.
type WriteResponse struct {
	Written int `json:"written"`
}

func (h *Handler) handleWrite(w http.ResponseWriter, r *http.Request) {
	body := r.Body
	if h.config.MaxBodySize > 0 {
		body = http.MaxBytesReader(w, r.Body, h.config.MaxBodySize)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		HandleError(w, fmt.Errorf("read body: %w", err))
		return
	}

	records, err := decodeRecords(data)
	if err != nil {
		HandleError(w, err)
		return
	}

	now := h.now()
	events := make([]logtable.Event, len(records))
	for i, rec := range records {
		ev, convErr := rec.Event(now)
		if convErr != nil {
			HandleError(w, fmt.Errorf("event %d: %w", i, convErr))
			return
		}
		events[i] = ev
	}

	for i, ev := range events {
		if err := h.writer.Write(r.Context(), ev); err != nil {
			HandleError(w, &PartialWriteError{Written: i, Err: err})
			return
		}
	}

	_ = WriteJSON(w, http.StatusCreated, WriteResponse{Written: len(events)})
}

// decodeRecords accepts a single JSON object or an array of them.
func decodeRecords(data []byte) ([]logtable.Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty body", logtable.ErrInvalidInput)
	}

	if data[0] == '[' {
		var records []logtable.Record
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("%w: decode events: %w", logtable.ErrInvalidInput, err)
		}
		if len(records) == 0 {
			return nil, fmt.Errorf("%w: no events", logtable.ErrInvalidInput)
		}
		return records, nil
	}

	var rec logtable.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: decode event: %w", logtable.ErrInvalidInput, err)
	}
	return []logtable.Record{rec}, nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")

	limit := 100
	if limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = max(1, min(1000, parsed))
		}
	}

	query := logtable.ListQuery{
		Category: r.URL.Query().Get("category"),
		Level:    r.URL.Query().Get("level"),
		Limit:    limit,
		Cursor:   r.URL.Query().Get("cursor"),
	}

	result, err := h.store.List(r.Context(), h.config.Table, query)
	if err != nil {
		HandleError(w, err)
		return
	}

	if result.Items == nil {
		result.Items = []logtable.Entry{}
	}
	_ = WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		WriteError(w, http.StatusServiceUnavailable, "unavailable", "Database unavailable")
		return
	}
	_ = WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleStats(w http.ResponseWriter, _ *http.Request) {
	_ = WriteJSON(w, http.StatusOK, h.writer.(statsReporter).Stats())
}
