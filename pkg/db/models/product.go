package models

import "time"

// Product is a published catalog entry. The external product id (barcode) is
// globally unique across published products; the internal id is what list
// queries hand back to callers.
type Product struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID     string    `gorm:"column:product_id;not null;unique"`
	DescriptionID int64     `gorm:"column:description_id;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`

	Description *ProductDescription `gorm:"foreignKey:DescriptionID"`
}
