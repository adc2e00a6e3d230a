package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/arellano-digital/alternativas-backend/pkg/errors"
)

type samplePayload struct {
	Cluster string  `json:"cluster" validate:"required"`
	Precio  float64 `json:"precio" validate:"required,gt=0"`
}

func TestDecodeJSONBodySuccess(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"cluster":"Cluster Norte","precio":10.5}`))

	var dest samplePayload
	if err := DecodeJSONBody(req, &dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest.Cluster != "Cluster Norte" || dest.Precio != 10.5 {
		t.Fatalf("unexpected payload %+v", dest)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"cluster":"Cluster Norte","precio":1,"extra":true}`))

	var dest samplePayload
	err := DecodeJSONBody(req, &dest)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestDecodeJSONBodyFieldErrorsUseJSONNames(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"precio":-1}`))

	var dest samplePayload
	err := DecodeJSONBody(req, &dest)
	if err == nil {
		t.Fatal("expected validation error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	fields := typed.FieldErrors()
	if _, ok := fields["cluster"]; !ok {
		t.Fatalf("expected cluster field error, got %v", fields)
	}
	if _, ok := fields["precio"]; !ok {
		t.Fatalf("expected precio field error, got %v", fields)
	}
}

func TestParseQueryIntClamping(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 10},
		{"abc", 10},
		{"0", 1},
		{"7", 7},
		{"100", 25},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/?limit="+tt.raw, nil)
		if got := ParseQueryInt(req, "limit", 10, 1, 25); got != tt.want {
			t.Fatalf("limit %q: expected %d got %d", tt.raw, tt.want, got)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  arroz  ", 0); got != "arroz" {
		t.Fatalf("unexpected trim result %q", got)
	}
	if got := SanitizeString("abcdef", 3); got != "abc" {
		t.Fatalf("unexpected cap result %q", got)
	}
}

func TestSanitizeEmail(t *testing.T) {
	if got := SanitizeEmail("  Ana.Perez@Arellano.PE "); got != "ana.perez@arellano.pe" {
		t.Fatalf("unexpected email %q", got)
	}
}

func TestNullableText(t *testing.T) {
	if got := NullableText(nil, 255); got != nil {
		t.Fatalf("expected nil for nil input")
	}
	empty := "   "
	if got := NullableText(&empty, 255); got != nil {
		t.Fatalf("expected nil for blank input, got %q", *got)
	}
	val := " Arroz Costeño 5kg "
	got := NullableText(&val, 255)
	if got == nil || *got != "Arroz Costeño 5kg" {
		t.Fatalf("unexpected trimmed value %v", got)
	}
}
