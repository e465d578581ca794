package models

import "time"

// MissingProductReport is a bare event: a user saying a product id could not
// be found. The id is recorded verbatim with no existence check and no link
// to any description.
type MissingProductReport struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID  string    `gorm:"column:product_id;not null"`
	ReportedAt time.Time `gorm:"column:reported_at;not null"`
}
