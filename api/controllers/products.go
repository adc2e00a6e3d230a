package controllers

import (
	"net/http"

	"github.com/arellano-digital/alternativas-backend/api/responses"
	"github.com/arellano-digital/alternativas-backend/api/validators"
	productsvc "github.com/arellano-digital/alternativas-backend/internal/products"
	pkgerrors "github.com/arellano-digital/alternativas-backend/pkg/errors"
	"github.com/arellano-digital/alternativas-backend/pkg/logger"
)

type searchProductsResponse struct {
	Items []productsvc.ProductDTO `json:"items"`
}

// SearchProducts serves the typeahead: GET /products?search=<text>&limit=<n>.
func SearchProducts(svc productsvc.Service, defaultLimit int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		search := r.URL.Query().Get("search")
		limit := validators.ParseQueryInt(r, "limit", defaultLimit, 1, productsvc.MaxSearchLimit)

		items, err := svc.SearchProducts(r.Context(), search, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, searchProductsResponse{Items: items})
	}
}
