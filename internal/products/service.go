package products

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/arellano-digital/alternativas-backend/pkg/errors"
)

const (
	// MinSearchLength guards the catalog against one-character scans.
	MinSearchLength = 2
	// MaxSearchLimit bounds how many suggestions one query may return.
	MaxSearchLimit = 25
)

// Service exposes the typeahead product search.
type Service interface {
	SearchProducts(ctx context.Context, search string, limit int) ([]ProductDTO, error)
}

// ProductDTO is the wire shape of one suggestion.
type ProductDTO struct {
	ProductID   int64  `json:"productId"`
	Description string `json:"description"`
}

type searchRepository interface {
	FindByDescription(ctx context.Context, search string, limit int) ([]ProductDTO, error)
}

type service struct {
	repo searchRepository
}

// NewService constructs the product search service.
func NewService(repo searchRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

// SearchProducts normalizes the query, enforces the minimum length, clamps
// the limit, and delegates to a single read query. Queries below the minimum
// length return an empty result without touching the database.
func (s *service) SearchProducts(ctx context.Context, search string, limit int) ([]ProductDTO, error) {
	trimmed := strings.ToLower(strings.TrimSpace(search))
	if len([]rune(trimmed)) < MinSearchLength {
		return []ProductDTO{}, nil
	}

	if limit < 1 {
		limit = 1
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	items, err := s.repo.FindByDescription(ctx, trimmed, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: search products")
	}
	if items == nil {
		items = []ProductDTO{}
	}
	return items, nil
}
