package responses

import (
	"context"

	"github.com/arellano-digital/alternativas-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository writes registration rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert persists one registration row and returns it with the
// server-assigned id and creation timestamp populated.
func (r *Repository) Insert(ctx context.Context, row *models.FormResponse) (*models.FormResponse, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}
