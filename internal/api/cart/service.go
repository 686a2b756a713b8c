package cart

import (
	"context"
	"errors"

	"coursemarket-app/internal/apperr"
	cartdomain "coursemarket-app/internal/domain/cart"
)

// ErrNotFound is what repository implementations return for absent rows so
// the service can translate without depending on the storage layer.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	FindByOwner(ctx context.Context, owner cartdomain.Owner) (*cartdomain.Cart, error)
	Create(ctx context.Context, c *cartdomain.Cart) error
	ProductExists(ctx context.Context, productID uint) (bool, error)
	ItemExists(ctx context.Context, cartID, productID uint) (bool, error)
	AddItem(ctx context.Context, item *cartdomain.Item) error
	RemoveItem(ctx context.Context, cartID, productID uint) (int64, error)
	ClearItems(ctx context.Context, cartID uint) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetOrCreate returns the owner's active cart, creating it lazily on first
// access.
func (s *Service) GetOrCreate(ctx context.Context, owner cartdomain.Owner) (*cartdomain.Cart, error) {
	if owner.Empty() {
		return nil, apperr.New(apperr.InvalidArgument, "cart owner is required")
	}
	if owner.Ambiguous() {
		return nil, apperr.New(apperr.InvalidState, "cart owner is ambiguous")
	}

	c, err := s.repo.FindByOwner(ctx, owner)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, apperr.Wrap(apperr.Internal, "failed to load cart", err)
	}

	c = &cartdomain.Cart{BuyerID: owner.BuyerID, CompanyID: owner.CompanyID}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to create cart", err)
	}
	return c, nil
}

// AddItem puts a product into the cart. Adding a product twice is an error,
// not a quantity increment.
func (s *Service) AddItem(ctx context.Context, owner cartdomain.Owner, productID uint, quantity int) (*cartdomain.Item, error) {
	if productID == 0 {
		return nil, apperr.New(apperr.InvalidArgument, "product_id is required")
	}
	if quantity < 1 {
		quantity = 1
	}

	c, err := s.GetOrCreate(ctx, owner)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ProductExists(ctx, productID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to look up product", err)
	}
	if !exists {
		return nil, apperr.New(apperr.NotFound, "product not found")
	}

	present, err := s.repo.ItemExists(ctx, c.ID, productID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to check cart item", err)
	}
	if present {
		return nil, apperr.New(apperr.Conflict, "product is already in the cart")
	}

	item := &cartdomain.Item{CartID: c.ID, ProductID: productID, Quantity: quantity}
	if err := s.repo.AddItem(ctx, item); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to add cart item", err)
	}
	return item, nil
}

func (s *Service) RemoveItem(ctx context.Context, owner cartdomain.Owner, productID uint) error {
	c, err := s.GetOrCreate(ctx, owner)
	if err != nil {
		return err
	}

	removed, err := s.repo.RemoveItem(ctx, c.ID, productID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to remove cart item", err)
	}
	if removed == 0 {
		return apperr.New(apperr.NotFound, "product is not in the cart")
	}
	return nil
}

// Clear bulk-deletes all items. Only fulfillment calls this; buyers never
// empty a cart mid-checkout through the API.
func (s *Service) Clear(ctx context.Context, cartID uint) error {
	if err := s.repo.ClearItems(ctx, cartID); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to clear cart", err)
	}
	return nil
}
