package models

// ProductImage stores one image payload owned by exactly one product
// description slot. Rows are immutable once written; replacing an image means
// recreating the whole description.
type ProductImage struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Data        []byte `gorm:"column:data;not null"`
	ContentType string `gorm:"column:content_type;not null"`
}
