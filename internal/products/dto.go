package product

import (
	"time"

	"github.com/openpantry/productdb-backend/internal/descriptions"
	"github.com/openpantry/productdb-backend/pkg/db/models"
)

// DTO is the JSON shape of a published product.
type DTO struct {
	ID          int64            `json:"id"`
	ProductID   string           `json:"product_id"`
	CreatedAt   time.Time        `json:"created_at"`
	Description descriptions.DTO `json:"description"`
}

// ListItemDTO pairs the internal row id with the entity, the shape every
// query endpoint returns.
type ListItemDTO struct {
	ID     int64 `json:"id"`
	Entity DTO   `json:"entity"`
}

// ToDTO maps a loaded product model.
func ToDTO(p *models.Product) DTO {
	dto := DTO{
		ID:        p.ID,
		ProductID: p.ProductID,
		CreatedAt: p.CreatedAt,
	}
	if p.Description != nil {
		dto.Description = descriptions.ToDTO(p.Description)
	}
	return dto
}

func toListItems(rows []models.Product) []ListItemDTO {
	items := make([]ListItemDTO, 0, len(rows))
	for i := range rows {
		items = append(items, ListItemDTO{ID: rows[i].ID, Entity: ToDTO(&rows[i])})
	}
	return items
}
