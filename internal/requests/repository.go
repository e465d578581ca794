package request

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/openpantry/productdb-backend/internal/descriptions"
	"github.com/openpantry/productdb-backend/pkg/db/models"
	"github.com/openpantry/productdb-backend/pkg/enums"
	pkgerrors "github.com/openpantry/productdb-backend/pkg/errors"
)

// Repository persists product requests awaiting review. Each request owns a
// private description tree, even when the same external id is already
// published.
type Repository struct {
	db    *gorm.DB
	descs *descriptions.Repository
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn, descs: descriptions.NewRepository(conn)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx, descs: descriptions.NewRepository(tx)}
}

// Create stores the proposed description and the request row pointing at it.
func (r *Repository) Create(ctx context.Context, in descriptions.Input, requestedAt time.Time) (*models.ProductRequest, error) {
	desc, err := r.descs.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	req := &models.ProductRequest{
		DescriptionID: desc.ID,
		RequestedAt:   requestedAt,
		Description:   desc,
	}
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert product request")
	}
	return req, nil
}

// DeleteByID removes the request row and cascades into its description tree.
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	req, err := r.findByID(ctx, id)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Delete(&models.ProductRequest{}, "id = ?", req.ID).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product request")
	}
	return r.descs.Delete(ctx, req.DescriptionID)
}

// GetByID loads one request with its description, nutrients, and the
// requested image slots.
func (r *Repository) GetByID(ctx context.Context, id int64, opts descriptions.LoadOptions) (*models.ProductRequest, error) {
	req, err := r.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	desc, err := r.descs.Load(ctx, req.DescriptionID, opts)
	if err != nil {
		return nil, err
	}
	req.Description = desc
	return req, nil
}

// ImageByID streams the stored image for one slot of a request.
func (r *Repository) ImageByID(ctx context.Context, id int64, slot enums.ImageSlot) (*models.ProductImage, error) {
	req, err := r.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.descs.ImageForSlot(ctx, req.DescriptionID, slot)
}

func (r *Repository) findByID(ctx context.Context, id int64) (*models.ProductRequest, error) {
	var req models.ProductRequest
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product request not found").
				WithDetails(map[string]any{"request_id": id})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product request")
	}
	return &req, nil
}
