package missing

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/openpantry/productdb-backend/pkg/db/models"
	"github.com/openpantry/productdb-backend/pkg/enums"
	pkgerrors "github.com/openpantry/productdb-backend/pkg/errors"
	"github.com/openpantry/productdb-backend/pkg/query"
)

// Repository persists missing-product reports. Reports are bare events; the
// reported id is never checked against the catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create records one report.
func (r *Repository) Create(ctx context.Context, productID string, reportedAt time.Time) (*models.MissingProductReport, error) {
	report := &models.MissingProductReport{
		ProductID:  productID,
		ReportedAt: reportedAt,
	}
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert missing product report")
	}
	return report, nil
}

// DeleteByID discards one report. Deleting an absent report is a NotFound
// error so double resolution surfaces to the admin.
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.MissingProductReport{}, "id = ?", id)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "delete missing product report")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "missing product report not found").
			WithDetails(map[string]any{"report_id": id})
	}
	return nil
}

// GetByID loads one report.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.MissingProductReport, error) {
	var report models.MissingProductReport
	if err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "missing product report not found").
				WithDetails(map[string]any{"report_id": id})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load missing product report")
	}
	return &report, nil
}

// List pages through reports. Reports carry no name, so text search and the
// name/similarity sorts are rejected here.
func (r *Repository) List(ctx context.Context, params query.Params) ([]models.MissingProductReport, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).Model(&models.MissingProductReport{})

	switch params.Filter.Kind {
	case query.FilterNone, "":
	case query.FilterExactID:
		q = q.Where("product_id = ?", params.Filter.ProductID)
	case query.FilterTextSearch:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "text search is not supported for missing product reports")
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown filter kind")
	}

	sort := params.EffectiveSort()
	if sort != nil {
		dir := "ASC"
		if sort.Order == enums.SortOrderDesc {
			dir = "DESC"
		}
		switch sort.Field {
		case enums.SortFieldReportedDate:
			q = q.Order("reported_at " + dir)
		case enums.SortFieldProductID:
			q = q.Order("product_id " + dir)
		default:
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported sort field for missing product reports").
				WithDetails(map[string]any{"field": sort.Field.String()})
		}
	}
	q = q.Order("id ASC")

	var rows []models.MissingProductReport
	if err := q.Offset(params.Offset).Limit(params.Limit).Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list missing product reports")
	}
	return rows, nil
}
