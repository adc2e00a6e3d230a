package search

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arellano-digital/alternativas-backend/internal/products"
)

func newSuggestServer(t *testing.T, calls *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		q := r.URL.Query().Get("search")
		items := []products.ProductDTO{{ProductID: 1, Description: "item for " + q}}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
	}))
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(Options{BaseURL: baseURL, Debounce: 20 * time.Millisecond, Limit: 10})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func waitResult(t *testing.T, c *Client) Result {
	t.Helper()
	select {
	case r := <-c.Results():
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result")
		return Result{}
	}
}

func TestShortQueryClearsWithoutRequest(t *testing.T) {
	var calls atomic.Int64
	srv := newSuggestServer(t, &calls)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	// "ñ" is one rune but two bytes; it must count as a single character.
	for _, q := range []string{"a", "ñ"} {
		c.Update(q)

		r := waitResult(t, c)
		if r.Err != nil {
			t.Fatalf("Update(%q): unexpected error: %v", q, r.Err)
		}
		if len(r.Items) != 0 {
			t.Fatalf("Update(%q): got %d items, want 0", q, len(r.Items))
		}
	}
	time.Sleep(60 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Fatalf("server saw %d requests, want 0", n)
	}
}

func TestSupersededResponseDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("search")
		if q == "ga" {
			close(started)
			<-release
		}
		items := []products.ProductDTO{{ProductID: 1, Description: "item for " + q}}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.Update("ga")

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first request never reached the server")
	}

	// A newer query arrives while the first is still in flight.
	c.Update("gaseosa")
	close(release)

	r := waitResult(t, c)
	if r.Query != "gaseosa" {
		t.Fatalf("got result for %q, want only the latest query", r.Query)
	}
	select {
	case stale, ok := <-c.Results():
		if ok {
			t.Fatalf("superseded query leaked a result: %+v", stale)
		}
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebounceCoalescesKeystrokes(t *testing.T) {
	var calls atomic.Int64
	srv := newSuggestServer(t, &calls)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.Update("ga")
	c.Update("gas")
	c.Update("gase")
	c.Update("gaseosa")

	r := waitResult(t, c)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if r.Query != "gaseosa" {
		t.Fatalf("got result for %q, want final query", r.Query)
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("server saw %d requests, want 1", n)
	}
}

func TestDuplicateQueryIgnored(t *testing.T) {
	var calls atomic.Int64
	srv := newSuggestServer(t, &calls)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.Update("arroz")
	_ = waitResult(t, c)

	c.Update("arroz")
	time.Sleep(80 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Fatalf("server saw %d requests, want 1", n)
	}
}

func TestServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.Update("arroz")

	r := waitResult(t, c)
	if r.Err == nil {
		t.Fatal("expected an error result")
	}
	if r.Items == nil || len(r.Items) != 0 {
		t.Fatalf("a failed fetch must clear suggestions, got %v", r.Items)
	}
}

func TestUpdateAfterCloseIsNoop(t *testing.T) {
	var calls atomic.Int64
	srv := newSuggestServer(t, &calls)
	defer srv.Close()

	c, err := NewClient(Options{BaseURL: srv.URL, Debounce: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	c.Close()
	c.Close()

	c.Update("arroz")
	time.Sleep(50 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Fatalf("server saw %d requests after close, want 0", n)
	}
	if _, ok := <-c.Results(); ok {
		t.Fatal("results channel should be closed")
	}
}
