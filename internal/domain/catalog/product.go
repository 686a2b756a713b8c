package catalog

import "time"

// Product is a purchasable catalog entry. A product may bundle printed
// materials (hence shipping options) and may unlock a course on purchase.
type Product struct {
	ID              uint `gorm:"primaryKey"`
	Name            string
	Description     string
	Price           float64
	DiscountPercent float64 `gorm:"default:0"`

	CourseID *uint
	Course   *Course

	ShippingOptions []ShippingOption

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ShippingOption struct {
	ID        uint `gorm:"primaryKey"`
	ProductID uint `gorm:"not null;index"`
	Label     string
	Cost      float64
}
