package request

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/openpantry/productdb-backend/internal/descriptions"
	"github.com/openpantry/productdb-backend/pkg/db"
	"github.com/openpantry/productdb-backend/pkg/db/models"
	"github.com/openpantry/productdb-backend/pkg/enums"
	"github.com/openpantry/productdb-backend/pkg/query"
)

// Service exposes the request-workflow operations. There is no status field:
// a request exists until an admin deletes it, and publishing the matching
// product is a separate, unordered admin call.
type Service interface {
	Create(ctx context.Context, in descriptions.Input) (*CreatedDTO, error)
	Get(ctx context.Context, id int64, opts descriptions.LoadOptions) (*DTO, error)
	GetImage(ctx context.Context, id int64, slot enums.ImageSlot) (*descriptions.ImageDTO, error)
	Delete(ctx context.Context, id int64) error
	Query(ctx context.Context, params query.Params) ([]ListItemDTO, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	now      func() time.Time
}

// NewService constructs a request service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("request repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Create stores the proposal atomically and acknowledges with the assigned
// id and timestamp.
func (s *service) Create(ctx context.Context, in descriptions.Input) (*CreatedDTO, error) {
	if err := descriptions.Validate(in); err != nil {
		return nil, err
	}

	requestedAt := s.now()
	var created *models.ProductRequest
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		var txErr error
		created, txErr = s.repo.WithTx(tx).Create(ctx, in, requestedAt)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return &CreatedDTO{ID: created.ID, Date: created.RequestedAt}, nil
}

func (s *service) Get(ctx context.Context, id int64, opts descriptions.LoadOptions) (*DTO, error) {
	req, err := s.repo.GetByID(ctx, id, opts)
	if err != nil {
		return nil, err
	}
	dto := ToDTO(req)
	return &dto, nil
}

func (s *service) GetImage(ctx context.Context, id int64, slot enums.ImageSlot) (*descriptions.ImageDTO, error) {
	img, err := s.repo.ImageByID(ctx, id, slot)
	if err != nil {
		return nil, err
	}
	return &descriptions.ImageDTO{Data: img.Data, ContentType: img.ContentType}, nil
}

// Delete discards a request and its description tree atomically.
func (s *service) Delete(ctx context.Context, id int64) error {
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeleteByID(ctx, id)
	})
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
