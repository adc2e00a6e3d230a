// Package submit turns a cart into persisted registrations. Line items are
// posted one at a time, in cart order, and the batch halts at the first
// rejected item so the auditor can fix it and resubmit the remainder.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/arellano-digital/alternativas-backend/internal/cart"
	pkgerrors "github.com/arellano-digital/alternativas-backend/pkg/errors"
)

type itemPayload struct {
	Cluster            string   `json:"cluster"`
	CorreoArellano     string   `json:"correoArellano"`
	CodigoAlternativa  int      `json:"codigoAlternativa"`
	ProductDesc        *string  `json:"productDesc,omitempty"`
	Nankey             *float64 `json:"nankey,omitempty"`
	InventarioSala     *int     `json:"inventarioSala,omitempty"`
	InventarioDeposito *int     `json:"inventarioDeposito,omitempty"`
	InventarioFrio     *int     `json:"inventarioFrio,omitempty"`
	Precio             float64  `json:"precio"`
}

type itemResponse struct {
	Success    bool   `json:"success"`
	RegistroID string `json:"registroId"`
}

type errorResponse struct {
	Error       string                `json:"error"`
	FieldErrors pkgerrors.FieldErrors `json:"fieldErrors"`
	FormErrors  []string              `json:"formErrors"`
}

// Result reports the outcome of one batch submission.
type Result struct {
	// Success is true when every item was accepted.
	Success bool
	// Completed counts the items accepted before the batch stopped.
	Completed int
	// RegistroID of the last accepted item, for the confirmation view.
	RegistroID string
	// FailedIndex is the cart position of the rejected item, -1 on success.
	FailedIndex int
	// Message is the server's error text for the rejected item.
	Message string
	// FieldErrors carries per-field detail when the rejection was a
	// validation failure.
	FieldErrors pkgerrors.FieldErrors
	// FormErrors carries form-level validation messages, if any.
	FormErrors []string
}

// Pipeline posts cart items to the responses endpoint.
type Pipeline struct {
	baseURL string
	httpc   *http.Client
}

// NewPipeline returns a pipeline targeting the given API origin.
func NewPipeline(baseURL string, httpc *http.Client) (*Pipeline, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("submit: base URL is required")
	}
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Pipeline{baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc}, nil
}

// SubmitAll posts every item sequentially and stops at the first failure.
// Items keep their cart order so a partial batch is always a prefix.
func (p *Pipeline) SubmitAll(ctx context.Context, general cart.GeneralInfo, items []cart.LineItem) (Result, error) {
	res := Result{FailedIndex: -1}
	if len(items) == 0 {
		res.Message = "no hay productos en el carrito"
		return res, nil
	}

	codigo, err := strconv.Atoi(strings.TrimSpace(general.Codigo))
	if err != nil || codigo < 1 {
		res.FailedIndex = 0
		res.Message = "codigo de alternativa invalido"
		return res, nil
	}

	for i, item := range items {
		registroID, fail, err := p.submitOne(ctx, general, codigo, item)
		if err != nil {
			res.FailedIndex = i
			return res, err
		}
		if fail != nil {
			res.FailedIndex = i
			res.Message = fail.Error
			res.FieldErrors = fail.FieldErrors
			res.FormErrors = fail.FormErrors
			return res, nil
		}
		res.Completed++
		res.RegistroID = registroID
	}
	res.Success = true
	return res, nil
}

func (p *Pipeline) submitOne(ctx context.Context, general cart.GeneralInfo, codigo int, item cart.LineItem) (string, *errorResponse, error) {
	payload := itemPayload{
		Cluster:           general.Cluster,
		CorreoArellano:    general.Email,
		CodigoAlternativa: codigo,
		Precio:            item.Precio.InexactFloat64(),
	}
	if desc := strings.TrimSpace(item.Description); desc != "" {
		payload.ProductDesc = &desc
	}
	if item.Nankey > 0 {
		nk := float64(item.Nankey)
		payload.Nankey = &nk
	}
	sala, dep, frio := item.InventarioSala, item.InventarioDeposito, item.InventarioFrio
	payload.InventarioSala = &sala
	payload.InventarioDeposito = &dep
	payload.InventarioFrio = &frio

	body, err := json.Marshal(payload)
	if err != nil {
		return "", nil, fmt.Errorf("submit: encode item: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/v1/responses", bytes.NewReader(body))
	if err != nil {
		return "", nil, fmt.Errorf("submit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpc.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("submit: post item: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated {
		var ok itemResponse
		if err := json.NewDecoder(resp.Body).Decode(&ok); err != nil {
			return "", nil, fmt.Errorf("submit: decode response: %w", err)
		}
		return ok.RegistroID, nil, nil
	}

	var fail errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&fail); err != nil || fail.Error == "" {
		fail.Error = fmt.Sprintf("el servidor respondio %d", resp.StatusCode)
	}
	return "", &fail, nil
}
