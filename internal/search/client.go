// Package search implements the debounced product typeahead used while
// an auditor types an alternative's description. Keystrokes arrive via
// Update; after the debounce window a single request is issued against
// the products endpoint and the outcome is delivered on Results. A new
// keystroke supersedes any pending or in-flight request.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/arellano-digital/alternativas-backend/internal/products"
)

// MinQueryLength mirrors the server-side minimum. Shorter queries clear
// the suggestion list locally without issuing a request.
const MinQueryLength = 2

// Result is one delivered typeahead outcome. Err is set when the request
// failed; Items is never nil on success.
type Result struct {
	Query string
	Items []products.ProductDTO
	Err   error
}

// Options configure a Client.
type Options struct {
	// BaseURL is the API origin, e.g. "http://localhost:8080".
	BaseURL string
	// Debounce is the quiet period after the last keystroke before a
	// request is issued.
	Debounce time.Duration
	// Limit is the max suggestions requested per query.
	Limit int
	// HTTPClient is optional; http.DefaultClient is used when nil.
	HTTPClient *http.Client
}

// Client is a debounced, self-cancelling typeahead client. It is safe
// for concurrent use; results arrive on the channel returned by Results.
type Client struct {
	baseURL  string
	debounce time.Duration
	limit    int
	httpc    *http.Client

	mu       sync.Mutex
	timer    *time.Timer
	cancel   context.CancelFunc
	lastSent string
	closed   bool
	results  chan Result
}

// NewClient returns a ready typeahead client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, fmt.Errorf("search: base URL is required")
	}
	if opts.Debounce <= 0 {
		return nil, fmt.Errorf("search: debounce must be positive")
	}
	if opts.Limit <= 0 {
		opts.Limit = 10
	}
	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		debounce: opts.Debounce,
		limit:    opts.Limit,
		httpc:    httpc,
		results:  make(chan Result, 8),
	}, nil
}

// Results returns the channel carrying typeahead outcomes. It is closed
// by Close.
func (c *Client) Results() <-chan Result {
	return c.results
}

// Update records the current text of the search field. Queries shorter
// than MinQueryLength cancel any pending work and clear the suggestions.
// A query identical to the last one dispatched is ignored.
func (c *Client) Update(query string) {
	q := strings.TrimSpace(query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	if len([]rune(q)) < MinQueryLength {
		c.stopPendingLocked()
		c.lastSent = ""
		c.emitLocked(Result{Query: q, Items: []products.ProductDTO{}})
		return
	}
	if q == c.lastSent {
		return
	}

	// Superseded: drop the pending timer and abort any request already in
	// flight before scheduling the new query.
	c.stopPendingLocked()
	c.timer = time.AfterFunc(c.debounce, func() { c.dispatch(q) })
}

// stopPendingLocked drops the debounce timer and cancels any in-flight
// request. Callers hold c.mu.
func (c *Client) stopPendingLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Client) dispatch(query string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.lastSent = query
	c.mu.Unlock()

	items, err := c.fetch(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx.Err() != nil {
		// Superseded by a newer query or closed; drop the outcome.
		return
	}
	if err != nil {
		// A failed fetch clears the suggestion list; Err carries the detail
		// for logging.
		c.emitLocked(Result{Query: query, Items: []products.ProductDTO{}, Err: err})
		return
	}
	c.emitLocked(Result{Query: query, Items: items})
}

func (c *Client) fetch(ctx context.Context, query string) ([]products.ProductDTO, error) {
	u := c.baseURL + "/api/v1/products?" + url.Values{
		"search": {query},
		"limit":  {strconv.Itoa(c.limit)},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("search: build request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: request products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: products endpoint returned %d", resp.StatusCode)
	}
	var body struct {
		Items []products.ProductDTO `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("search: decode products response: %w", err)
	}
	if body.Items == nil {
		body.Items = []products.ProductDTO{}
	}
	return body.Items, nil
}

// emitLocked delivers a result without blocking. Callers hold c.mu.
func (c *Client) emitLocked(r Result) {
	if c.closed {
		return
	}
	select {
	case c.results <- r:
	default:
		// Consumer fell behind; the next keystroke will refresh anyway.
	}
}

// Close cancels pending work and closes the results channel. It is safe
// to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.stopPendingLocked()
	c.closed = true
	close(c.results)
}
