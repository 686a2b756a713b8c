package repository

import (
	"context"

	checkoutapi "coursemarket-app/internal/api/checkout"
	cartdomain "coursemarket-app/internal/domain/cart"
	checkoutdomain "coursemarket-app/internal/domain/checkout"

	"gorm.io/gorm"
)

type CheckoutRepository struct {
	db *gorm.DB
}

func NewCheckoutRepository(db *gorm.DB) *CheckoutRepository {
	return &CheckoutRepository{db: db}
}

func (r *CheckoutRepository) CartWithItems(ctx context.Context, owner cartdomain.Owner) (*cartdomain.Cart, error) {
	var c cartdomain.Cart
	err := r.db.WithContext(ctx).
		Scopes(ownerScope(owner)).
		Preload("Items").
		Preload("Items.Product").
		First(&c).Error
	if err != nil {
		if isNotFound(err) {
			return nil, checkoutapi.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CheckoutRepository) Create(ctx context.Context, ck *checkoutdomain.Checkout) error {
	return r.db.WithContext(ctx).Create(ck).Error
}

func (r *CheckoutRepository) Get(ctx context.Context, id uint) (*checkoutdomain.Checkout, error) {
	var ck checkoutdomain.Checkout
	if err := r.db.WithContext(ctx).First(&ck, id).Error; err != nil {
		if isNotFound(err) {
			return nil, checkoutapi.ErrNotFound
		}
		return nil, err
	}
	return &ck, nil
}

func (r *CheckoutRepository) ListByOwner(ctx context.Context, owner cartdomain.Owner) ([]checkoutdomain.Checkout, error) {
	var list []checkoutdomain.Checkout
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if owner.CompanyID != nil {
		q = q.Where("company_id = ?", *owner.CompanyID)
	} else {
		q = q.Where("buyer_id = ?", *owner.BuyerID)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
