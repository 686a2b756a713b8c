package billing

import (
	"context"
	"errors"

	billingdomain "coursemarket-app/internal/domain/billing"
	cartdomain "coursemarket-app/internal/domain/cart"
	checkoutdomain "coursemarket-app/internal/domain/checkout"
	usersdomain "coursemarket-app/internal/domain/users"
)

var ErrNotFound = errors.New("record not found")

// PaymentsRepository is keyed by checkout id: webhook redeliveries upsert
// into the same row instead of duplicating it.
type PaymentsRepository interface {
	UpsertByCheckoutID(ctx context.Context, p *billingdomain.Payment) error
	FindByIntentID(ctx context.Context, intentID string) (*billingdomain.Payment, error)
	UpdateStatusByIntentID(ctx context.Context, intentID, status string) error
	Save(ctx context.Context, p *billingdomain.Payment) error
	ListByUser(ctx context.Context, userID uint) ([]billingdomain.Payment, error)
}

type Repository interface {
	CheckoutWithCart(ctx context.Context, checkoutID uint) (*checkoutdomain.Checkout, *cartdomain.Cart, error)
	GetUser(ctx context.Context, id uint) (*usersdomain.User, error)
	SaveStripeCustomerID(ctx context.Context, userID uint, customerID string) error
}
