package checkout

import (
	"context"
	"errors"

	"coursemarket-app/internal/apperr"
	cartdomain "coursemarket-app/internal/domain/cart"
	checkoutdomain "coursemarket-app/internal/domain/checkout"
	"coursemarket-app/internal/money"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	CartWithItems(ctx context.Context, owner cartdomain.Owner) (*cartdomain.Cart, error)
	Create(ctx context.Context, ck *checkoutdomain.Checkout) error
	Get(ctx context.Context, id uint) (*checkoutdomain.Checkout, error)
	ListByOwner(ctx context.Context, owner cartdomain.Owner) ([]checkoutdomain.Checkout, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Total sums the discounted line totals of a cart snapshot. Items must carry
// their product.
func Total(items []cartdomain.Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		total = total.Add(money.LineTotal(item.Product.Price, item.Product.DiscountPercent, item.Quantity))
	}
	return total
}

// Create snapshots the owner's cart into a PENDING checkout. The total is
// computed here once; later price changes do not affect it.
func (s *Service) Create(ctx context.Context, owner cartdomain.Owner) (*checkoutdomain.Checkout, error) {
	if owner.Empty() {
		return nil, apperr.New(apperr.InvalidArgument, "checkout owner is required")
	}
	if owner.Ambiguous() {
		return nil, apperr.New(apperr.InvalidState, "checkout owner is ambiguous")
	}

	crt, err := s.repo.CartWithItems(ctx, owner)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.New(apperr.InvalidState, "cart is empty")
		}
		return nil, apperr.Wrap(apperr.Internal, "failed to load cart", err)
	}
	if len(crt.Items) == 0 {
		return nil, apperr.New(apperr.InvalidState, "cart is empty")
	}

	total, _ := Total(crt.Items).Float64()
	ck := &checkoutdomain.Checkout{
		BuyerID:     crt.BuyerID,
		CompanyID:   crt.CompanyID,
		CartID:      crt.ID,
		TotalAmount: total,
		Status:      checkoutdomain.StatusPending,
	}
	if err := s.repo.Create(ctx, ck); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to create checkout", err)
	}
	return ck, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*checkoutdomain.Checkout, error) {
	ck, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "checkout not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "failed to load checkout", err)
	}
	return ck, nil
}

func (s *Service) ListForOwner(ctx context.Context, owner cartdomain.Owner) ([]checkoutdomain.Checkout, error) {
	list, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list checkouts", err)
	}
	return list, nil
}
