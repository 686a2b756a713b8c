package repository

import (
	"context"

	billingapi "coursemarket-app/internal/api/billing"
	cartdomain "coursemarket-app/internal/domain/cart"
	checkoutdomain "coursemarket-app/internal/domain/checkout"
	usersdomain "coursemarket-app/internal/domain/users"

	"gorm.io/gorm"
)

type BillingRepository struct {
	db *gorm.DB
}

func NewBillingRepository(db *gorm.DB) *BillingRepository {
	return &BillingRepository{db: db}
}

func (r *BillingRepository) CheckoutWithCart(ctx context.Context, checkoutID uint) (*checkoutdomain.Checkout, *cartdomain.Cart, error) {
	var ck checkoutdomain.Checkout
	if err := r.db.WithContext(ctx).First(&ck, checkoutID).Error; err != nil {
		if isNotFound(err) {
			return nil, nil, billingapi.ErrNotFound
		}
		return nil, nil, err
	}

	var crt cartdomain.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.ShippingOptions").
		First(&crt, ck.CartID).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil, billingapi.ErrNotFound
		}
		return nil, nil, err
	}
	return &ck, &crt, nil
}

func (r *BillingRepository) GetUser(ctx context.Context, id uint) (*usersdomain.User, error) {
	var u usersdomain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if isNotFound(err) {
			return nil, billingapi.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *BillingRepository) SaveStripeCustomerID(ctx context.Context, userID uint, customerID string) error {
	return r.db.WithContext(ctx).Model(&usersdomain.User{}).
		Where("id = ?", userID).
		Update("stripe_customer_id", customerID).Error
}
