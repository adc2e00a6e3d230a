package products

import (
	"context"

	"github.com/arellano-digital/alternativas-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository reads the product reference catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByDescription matches products whose description contains the search
// text, case-insensitive, ordered by description for deterministic results.
func (r *Repository) FindByDescription(ctx context.Context, search string, limit int) ([]ProductDTO, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(description) LIKE ?", "%"+search+"%").
		Order("description ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, ProductDTO{ProductID: row.ProductID, Description: row.Description})
	}
	return items, nil
}
