package request

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openpantry/productdb-backend/pkg/db/models"
	"github.com/openpantry/productdb-backend/pkg/enums"
	pkgerrors "github.com/openpantry/productdb-backend/pkg/errors"
	"github.com/openpantry/productdb-backend/pkg/query"
)

// List pages through pending requests with the same filter/sort surface as
// the published catalog. The external id lives on the description here.
func (r *Repository) List(ctx context.Context, params query.Params) ([]models.ProductRequest, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).
		Model(&models.ProductRequest{}).
		Joins("JOIN product_descriptions ON product_descriptions.id = product_requests.description_id").
		Preload("Description").
		Preload("Description.Nutrients")

	switch params.Filter.Kind {
	case query.FilterNone, "":
	case query.FilterTextSearch:
		q = q.Where("product_descriptions.name % ?", params.Filter.Query)
	case query.FilterExactID:
		q = q.Where("product_descriptions.product_id = ?", params.Filter.ProductID)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown filter kind")
	}

	q = applyRequestOrder(q, params)

	var rows []models.ProductRequest
	if err := q.Offset(params.Offset).Limit(params.Limit).Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list product requests")
	}
	return rows, nil
}

func applyRequestOrder(q *gorm.DB, params query.Params) *gorm.DB {
	sort := params.EffectiveSort()
	if sort == nil {
		return q.Order("product_requests.id ASC")
	}

	dir := "ASC"
	if sort.Order == enums.SortOrderDesc {
		dir = "DESC"
	}

	switch sort.Field {
	case enums.SortFieldReportedDate:
		return q.Order("product_requests.requested_at " + dir).Order("product_requests.id ASC")
	case enums.SortFieldProductName:
		return q.Order("product_descriptions.name " + dir).Order("product_requests.id ASC")
	case enums.SortFieldProductID:
		return q.Order("product_descriptions.product_id " + dir).Order("product_requests.id ASC")
	case enums.SortFieldSimilarity:
		if params.Filter.Kind != query.FilterTextSearch {
			return q.Order("product_requests.id ASC")
		}
		return q.Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "similarity(product_descriptions.name, ?) " + dir + ", product_requests.id ASC",
			Vars: []any{params.Filter.Query},
		}})
	default:
		return q.Order("product_requests.id ASC")
	}
}
