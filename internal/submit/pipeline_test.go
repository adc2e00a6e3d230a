package submit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/arellano-digital/alternativas-backend/internal/cart"
	pkgerrors "github.com/arellano-digital/alternativas-backend/pkg/errors"
)

func testGeneral() cart.GeneralInfo {
	return cart.GeneralInfo{Cluster: "Cluster Norte", Email: "ana.perez@arellano.pe", Codigo: "123"}
}

func testItems(n int) []cart.LineItem {
	items := make([]cart.LineItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, cart.LineItem{
			Nankey:         int64(1000 + i),
			Description:    "producto",
			InventarioSala: 2,
			Precio:         decimal.NewFromFloat(9.5),
		})
	}
	return items
}

func TestSubmitAllPostsEveryItemInOrder(t *testing.T) {
	var mu sync.Mutex
	var seen []float64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var got itemPayload
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		mu.Lock()
		if got.Nankey != nil {
			seen = append(seen, *got.Nankey)
		}
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(itemResponse{Success: true, RegistroID: "123-1002"})
	}))
	defer srv.Close()

	p, err := NewPipeline(srv.URL, nil)
	if err != nil {
		t.Fatalf("NewPipeline error: %v", err)
	}

	res, err := p.SubmitAll(context.Background(), testGeneral(), testItems(3))
	if err != nil {
		t.Fatalf("SubmitAll error: %v", err)
	}
	if !res.Success || res.Completed != 3 {
		t.Fatalf("got %+v, want success with 3 completed", res)
	}
	if res.RegistroID != "123-1002" {
		t.Fatalf("got registroId %q", res.RegistroID)
	}
	if len(seen) != 3 || seen[0] != 1000 || seen[1] != 1001 || seen[2] != 1002 {
		t.Fatalf("server saw nankeys %v, want cart order", seen)
	}
}

func TestSubmitAllHaltsOnFirstFailure(t *testing.T) {
	var mu sync.Mutex
	calls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 2 {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(errorResponse{
				Error:       "invalid body",
				FieldErrors: pkgerrors.FieldErrors{"precio": {"must be greater than 0"}},
			})
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(itemResponse{Success: true, RegistroID: "123-1000"})
	}))
	defer srv.Close()

	p, _ := NewPipeline(srv.URL, nil)
	res, err := p.SubmitAll(context.Background(), testGeneral(), testItems(3))
	if err != nil {
		t.Fatalf("SubmitAll error: %v", err)
	}
	if res.Success {
		t.Fatal("batch should have failed")
	}
	if res.Completed != 1 || res.FailedIndex != 1 {
		t.Fatalf("got completed=%d failedIndex=%d, want 1 and 1", res.Completed, res.FailedIndex)
	}
	if calls != 2 {
		t.Fatalf("server saw %d requests, want 2", calls)
	}
	if len(res.FieldErrors["precio"]) != 1 {
		t.Fatalf("field errors not carried through: %+v", res.FieldErrors)
	}
}

func TestSubmitAllEmptyCart(t *testing.T) {
	p, _ := NewPipeline("http://localhost:0", nil)
	res, err := p.SubmitAll(context.Background(), testGeneral(), nil)
	if err != nil {
		t.Fatalf("SubmitAll error: %v", err)
	}
	if res.Success || res.Completed != 0 || res.Message == "" {
		t.Fatalf("got %+v, want failed empty-cart result", res)
	}
}

func TestSubmitAllBadCodigo(t *testing.T) {
	p, _ := NewPipeline("http://localhost:0", nil)
	g := testGeneral()
	g.Codigo = "abc"
	res, err := p.SubmitAll(context.Background(), g, testItems(1))
	if err != nil {
		t.Fatalf("SubmitAll error: %v", err)
	}
	if res.Success || res.FailedIndex != 0 {
		t.Fatalf("got %+v, want rejection before any request", res)
	}
}

func TestSubmitAllTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	p, _ := NewPipeline(srv.URL, nil)
	res, err := p.SubmitAll(context.Background(), testGeneral(), testItems(2))
	if err == nil {
		t.Fatal("expected a transport error")
	}
	if res.Completed != 0 || res.FailedIndex != 0 {
		t.Fatalf("got %+v", res)
	}
}
