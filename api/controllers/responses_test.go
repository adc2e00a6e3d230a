package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	responsesvc "github.com/arellano-digital/alternativas-backend/internal/responses"
	"github.com/arellano-digital/alternativas-backend/pkg/db/models"
	pkgerrors "github.com/arellano-digital/alternativas-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

type stubResponseService struct {
	err  error
	last responsesvc.CreateResponseInput
}

func (s *stubResponseService) CreateResponse(_ context.Context, input responsesvc.CreateResponseInput) (*models.FormResponse, error) {
	s.last = input
	if s.err != nil {
		return nil, s.err
	}
	return &models.FormResponse{
		ID:                77,
		Cluster:           input.Cluster,
		CorreoArellano:    input.CorreoArellano,
		CodigoAlternativa: input.CodigoAlternativa,
		Nankey:            input.Nankey,
		Precio:            input.Precio,
		CreatedAt:         time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

func postResponse(t *testing.T, svc responsesvc.Service, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/responses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	CreateResponse(svc, testLogger()).ServeHTTP(rec, req)
	return rec
}

func TestCreateResponseSuccess(t *testing.T) {
	stub := &stubResponseService{}
	rec := postResponse(t, stub, `{
		"cluster": "Cluster Norte",
		"correoArellano": "a@arellano.pe",
		"codigoAlternativa": 1,
		"nankey": 9876,
		"inventarioSala": 5,
		"precio": 10.5
	}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body createResponseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if !body.Success {
		t.Fatal("expected success flag")
	}
	if body.RegistroID != "1-9876" {
		t.Fatalf("unexpected registro id %q", body.RegistroID)
	}
	if body.Response == nil || !body.Response.Precio.Equal(decimal.NewFromFloat(10.5)) {
		t.Fatalf("unexpected persisted row: %+v", body.Response)
	}
	if body.Response.CreatedAt.IsZero() {
		t.Fatal("expected createdAt timestamp")
	}
}

func TestCreateResponseNegativePrice(t *testing.T) {
	stub := &stubResponseService{}
	rec := postResponse(t, stub, `{
		"cluster": "Cluster Norte",
		"correoArellano": "a@arellano.pe",
		"codigoAlternativa": 1,
		"precio": -1
	}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body struct {
		Error       string              `json:"error"`
		FieldErrors map[string][]string `json:"fieldErrors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if _, ok := body.FieldErrors["precio"]; !ok {
		t.Fatalf("expected precio field error, got %v", body.FieldErrors)
	}
}

func TestCreateResponseMissingFields(t *testing.T) {
	rec := postResponse(t, &stubResponseService{}, `{"precio": 10}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	for _, field := range []string{"cluster", "correoArellano", "codigoAlternativa"} {
		if _, ok := body.FieldErrors[field]; !ok {
			t.Fatalf("expected %s field error, got %v", field, body.FieldErrors)
		}
	}
}

func TestCreateResponseMalformedJSON(t *testing.T) {
	rec := postResponse(t, &stubResponseService{}, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateResponseServiceFailure(t *testing.T) {
	stub := &stubResponseService{err: pkgerrors.New(pkgerrors.CodeDependency, "insert failed")}
	rec := postResponse(t, stub, `{
		"cluster": "Cluster Norte",
		"correoArellano": "a@arellano.pe",
		"codigoAlternativa": 1,
		"precio": 10.5
	}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
