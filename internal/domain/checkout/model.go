package checkout

import "time"

const (
	StatusPending = "PENDING"
	StatusPaid    = "PAID"
)

// Checkout is an immutable snapshot of a cart. TotalAmount is computed once
// at creation; later price or discount edits never change it. The owner
// reference mirrors the cart (buyer XOR company).
type Checkout struct {
	ID        uint  `gorm:"primaryKey"`
	BuyerID   *uint `gorm:"index"`
	CompanyID *uint `gorm:"index"`
	CartID    uint  `gorm:"not null;index"`

	TotalAmount float64
	Status      string  `gorm:"type:varchar(20);not null;default:'PENDING'"`
	PaymentID   *string `gorm:"column:payment_id"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerID returns the single owner reference, preferring the buyer. Callers
// must have validated the XOR invariant first.
func (c *Checkout) OwnerID() uint {
	if c.BuyerID != nil {
		return *c.BuyerID
	}
	if c.CompanyID != nil {
		return *c.CompanyID
	}
	return 0
}

// IsCompany reports whether the company fulfillment branch applies.
func (c *Checkout) IsCompany() bool {
	return c.CompanyID != nil
}
