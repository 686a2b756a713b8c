package catalog

import "time"

type Course struct {
	ID          uint `gorm:"primaryKey"`
	Title       string
	Description string
	IsPublished bool `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
