package billing

import "time"

const (
	StatusPending         = "PENDING"
	StatusCompleted       = "COMPLETED"
	StatusFailed          = "FAILED"
	StatusRequiresCapture = "REQUIRES_CAPTURE"
)

// Payment holds one row per checkout; webhook redeliveries upsert into the
// same row keyed by CheckoutID instead of inserting duplicates.
type Payment struct {
	ID         uint `gorm:"primaryKey"`
	CheckoutID uint `gorm:"not null;uniqueIndex:idx_payments_checkout_id"`
	UserID     uint `gorm:"index"`

	StripeSessionID       string `gorm:"uniqueIndex"`
	StripePaymentIntentID *string
	Amount                float64
	Status                string `gorm:"type:varchar(20);not null;default:'PENDING'"`

	CardBrand  *string
	CardLast4  *string
	ReceiptURL *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
