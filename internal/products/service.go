package product

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/openpantry/productdb-backend/internal/descriptions"
	"github.com/openpantry/productdb-backend/pkg/db"
	"github.com/openpantry/productdb-backend/pkg/db/models"
	"github.com/openpantry/productdb-backend/pkg/enums"
	"github.com/openpantry/productdb-backend/pkg/query"
)

// Service exposes the published-catalog operations.
type Service interface {
	Create(ctx context.Context, in descriptions.Input) (*DTO, error)
	Delete(ctx context.Context, productID string) error
	Get(ctx context.Context, productID string, opts descriptions.LoadOptions) (*DTO, error)
	GetImage(ctx context.Context, productID string, slot enums.ImageSlot) (*descriptions.ImageDTO, error)
	Query(ctx context.Context, params query.Params) ([]ListItemDTO, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// Create publishes a product inside one transaction so a failed insert
// leaves no partial description tree behind.
func (s *service) Create(ctx context.Context, in descriptions.Input) (*DTO, error) {
	if err := descriptions.Validate(in); err != nil {
		return nil, err
	}

	var created *models.Product
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		var txErr error
		created, txErr = s.repo.WithTx(tx).Create(ctx, in)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	dto := ToDTO(created)
	return &dto, nil
}

// Delete unpublishes a product and its whole description tree atomically.
func (s *service) Delete(ctx context.Context, productID string) error {
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeleteByProductID(ctx, productID)
	})
}

func (s *service) Get(ctx context.Context, productID string, opts descriptions.LoadOptions) (*DTO, error) {
	product, err := s.repo.GetByProductID(ctx, productID, opts)
	if err != nil {
		return nil, err
	}
	dto := ToDTO(product)
	return &dto, nil
}

func (s *service) GetImage(ctx context.Context, productID string, slot enums.ImageSlot) (*descriptions.ImageDTO, error) {
	img, err := s.repo.ImageByProductID(ctx, productID, slot)
	if err != nil {
		return nil, err
	}
	return &descriptions.ImageDTO{Data: img.Data, ContentType: img.ContentType}, nil
}

func (s *service) Query(ctx context.Context, params query.Params) ([]ListItemDTO, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	rows, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return toListItems(rows), nil
}
