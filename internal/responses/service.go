package responses

import (
	"context"
	"fmt"
	"strconv"

	"github.com/arellano-digital/alternativas-backend/api/validators"
	"github.com/arellano-digital/alternativas-backend/pkg/db/models"
	pkgerrors "github.com/arellano-digital/alternativas-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Service persists accepted alternativa registrations.
type Service interface {
	CreateResponse(ctx context.Context, input CreateResponseInput) (*models.FormResponse, error)
}

// CreateResponseInput is the validated payload for one registration row.
type CreateResponseInput struct {
	Cluster            string
	CorreoArellano     string
	CodigoAlternativa  int
	ProductDesc        *string
	Nankey             *float64
	InventarioSala     *int
	InventarioDeposito *int
	InventarioFrio     *int
	Precio             decimal.Decimal
}

type insertRepository interface {
	Insert(ctx context.Context, row *models.FormResponse) (*models.FormResponse, error)
}

type service struct {
	repo insertRepository
}

// NewService constructs the response service.
func NewService(repo insertRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("response repository required")
	}
	return &service{repo: repo}, nil
}

// CreateResponse re-checks the cluster enum, sanitizes the free-text fields,
// and performs exactly one insert. The stored row comes back with its
// server-assigned id and timestamp.
func (s *service) CreateResponse(ctx context.Context, input CreateResponseInput) (*models.FormResponse, error) {
	fields := pkgerrors.FieldErrors{}
	if !models.ValidCluster(input.Cluster) {
		fields.Add("cluster", "must be one of the known clusters")
	}
	if !input.Precio.IsPositive() {
		fields.Add("precio", "must be greater than 0")
	}
	if len(fields) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid body").WithFieldErrors(fields)
	}

	row := &models.FormResponse{
		Cluster:            input.Cluster,
		CorreoArellano:     validators.SanitizeEmail(input.CorreoArellano),
		CodigoAlternativa:  input.CodigoAlternativa,
		ProductDesc:        validators.NullableText(input.ProductDesc, 255),
		Nankey:             input.Nankey,
		InventarioSala:     input.InventarioSala,
		InventarioDeposito: input.InventarioDeposito,
		InventarioFrio:     input.InventarioFrio,
		Precio:             input.Precio,
	}

	created, err := s.repo.Insert(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert response")
	}
	return created, nil
}

// RegistroID derives the registration identifier reported back to the form:
// the alternativa code joined with the resolved product key, or "0" when no
// product was attached.
func RegistroID(codigoAlternativa int, nankey *float64) string {
	key := "0"
	if nankey != nil {
		key = strconv.FormatFloat(*nankey, 'f', -1, 64)
	}
	return fmt.Sprintf("%d-%s", codigoAlternativa, key)
}
