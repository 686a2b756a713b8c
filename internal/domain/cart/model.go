package cart

import (
	"coursemarket-app/internal/domain/catalog"
	"time"
)

// Cart belongs to exactly one buyer or one company. Both owner columns are
// nullable; the XOR constraint is enforced by the services, not the schema.
type Cart struct {
	ID        uint  `gorm:"primaryKey"`
	BuyerID   *uint `gorm:"uniqueIndex:idx_carts_buyer_id"`
	CompanyID *uint `gorm:"uniqueIndex:idx_carts_company_id"`

	Items []Item

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item references one product, unique per cart. Quantity is the seat count
// for company carts; individual buyers always hold 1.
type Item struct {
	ID        uint `gorm:"primaryKey"`
	CartID    uint `gorm:"not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_cart_items_cart_product"`
	Product   *catalog.Product
	Quantity  int `gorm:"not null;default:1"`

	CreatedAt time.Time
}
