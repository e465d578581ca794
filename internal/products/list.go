package product

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openpantry/productdb-backend/pkg/db/models"
	"github.com/openpantry/productdb-backend/pkg/enums"
	pkgerrors "github.com/openpantry/productdb-backend/pkg/errors"
	"github.com/openpantry/productdb-backend/pkg/query"
)

// List pages through published products. Ordering always ends on the
// internal id so repeated windows never shuffle rows.
func (r *Repository) List(ctx context.Context, params query.Params) ([]models.Product, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Joins("JOIN product_descriptions ON product_descriptions.id = products.description_id").
		Preload("Description").
		Preload("Description.Nutrients")

	switch params.Filter.Kind {
	case query.FilterNone, "":
	case query.FilterTextSearch:
		q = q.Where("product_descriptions.name % ?", params.Filter.Query)
	case query.FilterExactID:
		q = q.Where("products.product_id = ?", params.Filter.ProductID)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown filter kind")
	}

	q = applyProductOrder(q, params)

	var rows []models.Product
	if err := q.Offset(params.Offset).Limit(params.Limit).Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return rows, nil
}

func applyProductOrder(q *gorm.DB, params query.Params) *gorm.DB {
	sort := params.EffectiveSort()
	if sort == nil {
		return q.Order("products.id ASC")
	}

	dir := "ASC"
	if sort.Order == enums.SortOrderDesc {
		dir = "DESC"
	}

	switch sort.Field {
	case enums.SortFieldReportedDate:
		return q.Order("products.created_at " + dir).Order("products.id ASC")
	case enums.SortFieldProductName:
		return q.Order("product_descriptions.name " + dir).Order("products.id ASC")
	case enums.SortFieldProductID:
		return q.Order("products.product_id " + dir).Order("products.id ASC")
	case enums.SortFieldSimilarity:
		// meaningless without a search string; degrade to the tie-break
		if params.Filter.Kind != query.FilterTextSearch {
			return q.Order("products.id ASC")
		}
		return q.Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "similarity(product_descriptions.name, ?) " + dir + ", products.id ASC",
			Vars: []any{params.Filter.Query},
		}})
	default:
		return q.Order("products.id ASC")
	}
}
