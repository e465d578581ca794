package models

import (
	"github.com/openpantry/productdb-backend/pkg/enums"
)

// ProductDescription is the full identifying and nutritional record shared by
// published products and product requests. Each row is owned by exactly one
// of the two, and its nutrients/image rows are owned by exactly this row.
type ProductDescription struct {
	ID                int64              `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID         string             `gorm:"column:product_id;not null"`
	Name              string             `gorm:"column:name;not null"`
	Producer          *string            `gorm:"column:producer"`
	QuantityType      enums.QuantityType `gorm:"column:quantity_type;not null"`
	Portion           float64            `gorm:"column:portion;not null"`
	VolumeWeightRatio *float64           `gorm:"column:volume_weight_ratio"`
	PreviewImageID    *int64             `gorm:"column:preview_image_id"`
	FullImageID       *int64             `gorm:"column:full_image_id"`
	NutrientsID       int64              `gorm:"column:nutrients_id;not null"`

	PreviewImage *ProductImage `gorm:"foreignKey:PreviewImageID"`
	FullImage    *ProductImage `gorm:"foreignKey:FullImageID"`
	Nutrients    *Nutrients    `gorm:"foreignKey:NutrientsID"`
}
