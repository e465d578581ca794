package product

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/openpantry/productdb-backend/internal/descriptions"
	"github.com/openpantry/productdb-backend/pkg/db"
	"github.com/openpantry/productdb-backend/pkg/db/models"
	"github.com/openpantry/productdb-backend/pkg/enums"
	pkgerrors "github.com/openpantry/productdb-backend/pkg/errors"
)

// uniqueProductConstraint is the named UNIQUE constraint on the external
// product id column.
const uniqueProductConstraint = "uq_products_product_id"

// Repository persists published catalog entries. Description rows and their
// payloads are delegated to the descriptions repository.
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

// Create publishes a product: the owned description tree first, then the
// catalog row pointing at it. A second product with the same external id is
// a conflict.
func (r *Repository) Create(ctx context.Context, in descriptions.Input) (*models.Product, error) {
	desc, err := r.descs.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		ProductID:     in.ProductID,
		DescriptionID: desc.ID,
		Description:   desc,
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		if db.IsUniqueViolation(err, uniqueProductConstraint) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product id already published").
				WithDetails(map[string]any{"product_id": in.ProductID})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert product")
	}
	return product, nil
}

// DeleteByProductID removes the catalog row and cascades into the owned
// description tree.
func (r *Repository) DeleteByProductID(ctx context.Context, productID string) error {
	product, err := r.findByProductID(ctx, productID)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", product.ID).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return r.descs.Delete(ctx, product.DescriptionID)
}

// GetByProductID loads one published product with its description, nutrients,
// and the requested image slots.
func (r *Repository) GetByProductID(ctx context.Context, productID string, opts descriptions.LoadOptions) (*models.Product, error) {
	product, err := r.findByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}

	desc, err := r.descs.Load(ctx, product.DescriptionID, opts)
	if err != nil {
		return nil, err
	}
	product.Description = desc
	return product, nil
}

// ImageByProductID streams the stored image for one slot of a published
// product.
func (r *Repository) ImageByProductID(ctx context.Context, productID string, slot enums.ImageSlot) (*models.ProductImage, error) {
	product, err := r.findByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return r.descs.ImageForSlot(ctx, product.DescriptionID, slot)
}

func (r *Repository) findByProductID(ctx context.Context, productID string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]any{"product_id": productID})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return &product, nil
}
