package controllers

import (
	"net/http"

	"github.com/arellano-digital/alternativas-backend/api/responses"
	"github.com/arellano-digital/alternativas-backend/api/validators"
	responsesvc "github.com/arellano-digital/alternativas-backend/internal/responses"
	"github.com/arellano-digital/alternativas-backend/pkg/db/models"
	pkgerrors "github.com/arellano-digital/alternativas-backend/pkg/errors"
	"github.com/arellano-digital/alternativas-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type createResponseRequest struct {
	Cluster            string   `json:"cluster" validate:"required"`
	CorreoArellano     string   `json:"correoArellano" validate:"required,email"`
	CodigoAlternativa  int      `json:"codigoAlternativa" validate:"required,min=1"`
	ProductDesc        *string  `json:"productDesc,omitempty" validate:"omitempty,min=1,max=255"`
	Nankey             *float64 `json:"nankey,omitempty" validate:"omitempty,gt=0"`
	InventarioSala     *int     `json:"inventarioSala,omitempty" validate:"omitempty,min=0"`
	InventarioDeposito *int     `json:"inventarioDeposito,omitempty" validate:"omitempty,min=0"`
	InventarioFrio     *int     `json:"inventarioFrio,omitempty" validate:"omitempty,min=0"`
	Precio             float64  `json:"precio" validate:"required,gt=0"`
}

type createResponseResponse struct {
	Success    bool                 `json:"success"`
	RegistroID string               `json:"registroId"`
	Response   *models.FormResponse `json:"response"`
}

// CreateResponse validates and persists one alternativa registration:
// POST /responses.
func CreateResponse(svc responsesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "response service unavailable"))
			return
		}

		var payload createResponseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteErrorWithInput(r.Context(), logg, w, err, payload)
			return
		}

		created, err := svc.CreateResponse(r.Context(), responsesvc.CreateResponseInput{
			Cluster:            payload.Cluster,
			CorreoArellano:     payload.CorreoArellano,
			CodigoAlternativa:  payload.CodigoAlternativa,
			ProductDesc:        payload.ProductDesc,
			Nankey:             payload.Nankey,
			InventarioSala:     payload.InventarioSala,
			InventarioDeposito: payload.InventarioDeposito,
			InventarioFrio:     payload.InventarioFrio,
			Precio:             decimal.NewFromFloat(payload.Precio),
		})
		if err != nil {
			responses.WriteErrorWithInput(r.Context(), logg, w, err, payload)
			return
		}

		responses.WriteJSON(w, http.StatusCreated, createResponseResponse{
			Success:    true,
			RegistroID: responsesvc.RegistroID(created.CodigoAlternativa, created.Nankey),
			Response:   created,
		})
	}
}
