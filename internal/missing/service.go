package missing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openpantry/productdb-backend/pkg/db/models"
	pkgerrors "github.com/openpantry/productdb-backend/pkg/errors"
	"github.com/openpantry/productdb-backend/pkg/query"
)

// DTO is the JSON shape of one report.
type DTO struct {
	ID         int64     `json:"id"`
	ProductID  string    `json:"product_id"`
	ReportedAt time.Time `json:"reported_at"`
}

// CreatedDTO is the acknowledgement returned to the reporting user.
type CreatedDTO struct {
	ID   int64     `json:"id"`
	Date time.Time `json:"date"`
}

// ListItemDTO pairs the internal row id with the entity.
type ListItemDTO struct {
	ID     int64 `json:"id"`
	Entity DTO   `json:"entity"`
}

// Service exposes the missing-product report operations.
type Service interface {
	Report(ctx context.Context, productID string) (*CreatedDTO, error)
	Delete(ctx context.Context, id int64) error
	Query(ctx context.Context, params query.Params) ([]ListItemDTO, error)
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService constructs a missing-report service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("missing report repository required")
	}
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Report stores the event verbatim; the id is not checked against the
// catalog.
func (s *service) Report(ctx context.Context, productID string) (*CreatedDTO, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	report, err := s.repo.Create(ctx, productID, s.now())
	if err != nil {
		return nil, err
	}
	return &CreatedDTO{ID: report.ID, Date: report.ReportedAt}, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteByID(ctx, id)
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

func toListItems(rows []models.MissingProductReport) []ListItemDTO {
	items := make([]ListItemDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, ListItemDTO{
			ID: row.ID,
			Entity: DTO{
				ID:         row.ID,
				ProductID:  row.ProductID,
				ReportedAt: row.ReportedAt,
			},
		})
	}
	return items
}
