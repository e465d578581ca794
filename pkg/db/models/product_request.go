package models

import "time"

// ProductRequest is a user proposal for a product not yet published. It owns
// its description independently of any published product, even when the same
// external id later appears in the catalog.
type ProductRequest struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	DescriptionID int64     `gorm:"column:description_id;not null"`
	RequestedAt   time.Time `gorm:"column:requested_at;not null"`

	Description *ProductDescription `gorm:"foreignKey:DescriptionID"`
}
