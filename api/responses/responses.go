package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/arellano-digital/alternativas-backend/pkg/errors"
	"github.com/arellano-digital/alternativas-backend/pkg/logger"
)

// ErrorBody is the wire shape the form client consumes on failure: a generic
// message plus optional per-field validation detail.
type ErrorBody struct {
	Error       string                `json:"error"`
	FieldErrors pkgerrors.FieldErrors `json:"fieldErrors,omitempty"`
	FormErrors  []string              `json:"formErrors,omitempty"`
	Received    any                   `json:"received,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}

// WriteError maps a typed error onto the HTTP surface. Validation errors
// carry their field detail; everything else collapses to the code's public
// message so no internal detail leaks.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	WriteErrorWithInput(ctx, logg, w, err, nil)
}

// WriteErrorWithInput behaves like WriteError and echoes the raw offending
// input back on validation failures.
func WriteErrorWithInput(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error, received any) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	if typed.Code() == pkgerrors.CodeValidation || typed.Code() == pkgerrors.CodeNotFound {
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	body := ErrorBody{Error: msg}
	if meta.DetailsAllowed {
		body.FieldErrors = typed.FieldErrors()
		body.FormErrors = typed.FormErrors()
		body.Received = received
	}

	if logg != nil && typed.Code() != pkgerrors.CodeValidation {
		dump := pkgerrors.Dump(err)
		ctx = logg.WithFields(ctx, map[string]any{
			"error":       dump.TopMessage,
			"error_code":  dump.Code,
			"error_chain": dump.Chain,
			"pg_code":     dump.PGCode,
			"pg_detail":   dump.PGDetail,
			"pg_message":  dump.PGMessage,
		})
		logg.Error(ctx, "request.error", err)
	}

	WriteJSON(w, meta.HTTPStatus, body)
}
