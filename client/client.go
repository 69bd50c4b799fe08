package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/sagarc03/logtable"
)

const (
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultEndpoint is used when Config.Endpoint is empty.
	DefaultEndpoint = "http://localhost:5709"
)

// Config configures a Client.
type Config struct {
	Endpoint string
	// Token is sent as a bearer token when set.
	Token string
}

// Client writes events to and lists rows from a logtable server.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a new Client with the given config and options.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}

	c := &Client{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Write sends a single event. The level is sent with its rank so custom levels
// survive the round trip.
func (c *Client) Write(ctx context.Context, ev logtable.Event) error {
	_, err := c.WriteRecords(ctx, []logtable.Record{RecordOf(ev)})
	return err
}

// WriteRecords sends records in one request and returns how many the server wrote.
func (c *Client) WriteRecords(ctx context.Context, records []logtable.Record) (int, error) {
	if len(records) == 0 {
		return 0, ErrNoRecords
	}

	body, err := json.Marshal(records)
	if err != nil {
		return 0, fmt.Errorf("encode records: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/events", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp struct {
		Written int `json:"written"`
	}
	if err := c.do(req, http.StatusCreated, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return apiErr.Written, err
		}
		return 0, err
	}
	return resp.Written, nil
}

// ListOptions selects rows to list.
type ListOptions struct {
	Category string
	Level    string
	Limit    int
	Cursor   string
	All      bool // auto-paginate through all results
}

// List fetches rows newest first.
// If opts.All is true, paginates through all results.
func (c *Client) List(ctx context.Context, opts ListOptions) (*logtable.ListResult, error) {
	if opts.All {
		return c.listAll(ctx, opts)
	}
	return c.listPage(ctx, opts)
}

// listPage fetches a single page of results.
func (c *Client) listPage(ctx context.Context, opts ListOptions) (*logtable.ListResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if opts.Category != "" {
		q.Set("category", opts.Category)
	}
	if opts.Level != "" {
		q.Set("level", opts.Level)
	}
	if opts.Cursor != "" {
		q.Set("cursor", opts.Cursor)
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/events?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, err
	}

	var result logtable.ListResult
	if err := c.do(req, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// listAll fetches all pages of results.
func (c *Client) listAll(ctx context.Context, opts ListOptions) (*logtable.ListResult, error) {
	var allItems []logtable.Entry
	cursor := opts.Cursor

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageOpts := opts
		pageOpts.Cursor = cursor
		pageOpts.All = false

		page, err := c.listPage(ctx, pageOpts)
		if err != nil {
			return nil, err
		}

		allItems = append(allItems, page.Items...)

		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	return &logtable.ListResult{Items: allItems}, nil
}

// Health checks that the server can reach its database.
func (c *Client) Health(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/healthz", http.NoBody)
	if err != nil {
		return err
	}
	return c.do(req, http.StatusOK, nil)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// do executes req and decodes the body into out when the status matches.
func (c *Client) do(req *http.Request, wantStatus int, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		return parseServerError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// RecordOf converts an event into its wire form.
func RecordOf(ev logtable.Event) logtable.Record {
	t := ev.Time
	rank := ev.Level.Rank
	return logtable.Record{
		Time:     &t,
		Level:    ev.Level.Name,
		Rank:     &rank,
		Category: ev.Category,
		Payload:  ev.Payload,
	}
}

// parseServerError extracts error message from server response.
func parseServerError(statusCode int, body []byte) error {
	apiErr := &APIError{StatusCode: statusCode, Body: string(body)}

	var resp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Written int    `json:"written"`
	}
	if json.Unmarshal(body, &resp) == nil {
		apiErr.Code = resp.Error
		apiErr.Message = resp.Message
		apiErr.Written = resp.Written
	}
	return apiErr
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Body       string
	// Written is how many events of a failed batch the server stored.
	Written int
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return "server error: " + strconv.Itoa(e.StatusCode) + " " + e.Code + " - " + e.Message
	}
	return "server error: " + strconv.Itoa(e.StatusCode) + " - " + e.Body
}

// Is reports whether target matches this error.
// It matches if target is an *APIError with the same StatusCode.
func (e *APIError) Is(target error) bool {
	var t *APIError
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// Sentinel errors for common API error conditions.
// Use errors.Is() to check for these conditions.
var (
	// ErrBadRequest is returned when the server rejects the events or query (400).
	ErrBadRequest = &APIError{StatusCode: http.StatusBadRequest}

	// ErrUnauthorized is returned when the bearer token is missing or wrong (401).
	ErrUnauthorized = &APIError{StatusCode: http.StatusUnauthorized}

	// ErrUnavailable is returned by Health when the server cannot reach its database (503).
	ErrUnavailable = &APIError{StatusCode: http.StatusServiceUnavailable}
)
