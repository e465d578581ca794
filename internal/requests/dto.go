package request

import (
	"time"

	"github.com/openpantry/productdb-backend/internal/descriptions"
	"github.com/openpantry/productdb-backend/pkg/db/models"
)

// DTO is the JSON shape of a pending product request.
type DTO struct {
	ID          int64            `json:"id"`
	RequestedAt time.Time        `json:"requested_at"`
	Description descriptions.DTO `json:"description"`
}

// CreatedDTO is the acknowledgement returned to the submitting user.
type CreatedDTO struct {
	ID   int64     `json:"id"`
	Date time.Time `json:"date"`
}

// ListItemDTO pairs the internal row id with the entity.
type ListItemDTO struct {
	ID     int64 `json:"id"`
	Entity DTO   `json:"entity"`
}

// ToDTO maps a loaded request model.
func ToDTO(req *models.ProductRequest) DTO {
	dto := DTO{
		ID:          req.ID,
		RequestedAt: req.RequestedAt,
	}
	if req.Description != nil {
		dto.Description = descriptions.ToDTO(req.Description)
	}
	return dto
}

func toListItems(rows []models.ProductRequest) []ListItemDTO {
	items := make([]ListItemDTO, 0, len(rows))
	for i := range rows {
		items = append(items, ListItemDTO{ID: rows[i].ID, Entity: ToDTO(&rows[i])})
	}
	return items
}
