package repository

import (
	"context"

	cartapi "coursemarket-app/internal/api/cart"
	cartdomain "coursemarket-app/internal/domain/cart"
	"coursemarket-app/internal/domain/catalog"

	"gorm.io/gorm"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func ownerScope(owner cartdomain.Owner) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if owner.CompanyID != nil {
			return db.Where("company_id = ?", *owner.CompanyID)
		}
		return db.Where("buyer_id = ?", *owner.BuyerID)
	}
}

func (r *CartRepository) FindByOwner(ctx context.Context, owner cartdomain.Owner) (*cartdomain.Cart, error) {
	var c cartdomain.Cart
	err := r.db.WithContext(ctx).
		Scopes(ownerScope(owner)).
		Preload("Items").
		Preload("Items.Product").
		First(&c).Error
	if err != nil {
		if isNotFound(err) {
			return nil, cartapi.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CartRepository) Create(ctx context.Context, c *cartdomain.Cart) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CartRepository) ProductExists(ctx context.Context, productID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.Product{}).Where("id = ?", productID).Count(&count).Error
	return count > 0, err
}

func (r *CartRepository) ItemExists(ctx context.Context, cartID, productID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&cartdomain.Item{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Count(&count).Error
	return count > 0, err
}

func (r *CartRepository) AddItem(ctx context.Context, item *cartdomain.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *CartRepository) RemoveItem(ctx context.Context, cartID, productID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&cartdomain.Item{})
	return res.RowsAffected, res.Error
}

func (r *CartRepository) ClearItems(ctx context.Context, cartID uint) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&cartdomain.Item{}).Error
}
