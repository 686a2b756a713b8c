package checkout

import (
	"context"
	"testing"

	"coursemarket-app/internal/apperr"
	cartdomain "coursemarket-app/internal/domain/cart"
	"coursemarket-app/internal/domain/catalog"
	checkoutdomain "coursemarket-app/internal/domain/checkout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	cart      *cartdomain.Cart
	checkouts []*checkoutdomain.Checkout
	nextID    uint
}

func (m *mockRepo) CartWithItems(_ context.Context, owner cartdomain.Owner) (*cartdomain.Cart, error) {
	if m.cart == nil {
		return nil, ErrNotFound
	}
	return m.cart, nil
}

func (m *mockRepo) Create(_ context.Context, ck *checkoutdomain.Checkout) error {
	m.nextID++
	ck.ID = m.nextID
	m.checkouts = append(m.checkouts, ck)
	return nil
}

func (m *mockRepo) Get(_ context.Context, id uint) (*checkoutdomain.Checkout, error) {
	for _, ck := range m.checkouts {
		if ck.ID == id {
			return ck, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) ListByOwner(_ context.Context, owner cartdomain.Owner) ([]checkoutdomain.Checkout, error) {
	out := make([]checkoutdomain.Checkout, 0, len(m.checkouts))
	for _, ck := range m.checkouts {
		out = append(out, *ck)
	}
	return out, nil
}

func buyerCart(buyerID uint, items ...cartdomain.Item) *cartdomain.Cart {
	return &cartdomain.Cart{ID: 1, BuyerID: &buyerID, Items: items}
}

func TestCreateRequiresOwner(t *testing.T) {
	svc := NewService(&mockRepo{})

	_, err := svc.Create(context.Background(), cartdomain.Owner{})
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
}

func TestCreateEmptyCart(t *testing.T) {
	// no cart at all
	svc := NewService(&mockRepo{})
	_, err := svc.Create(context.Background(), cartdomain.OwnerFor("buyer", 7))
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))

	// cart exists but holds nothing
	svc = NewService(&mockRepo{cart: buyerCart(7)})
	_, err = svc.Create(context.Background(), cartdomain.OwnerFor("buyer", 7))
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))
}

func TestCreateSnapshotsDiscountedTotal(t *testing.T) {
	repo := &mockRepo{cart: buyerCart(7,
		cartdomain.Item{ProductID: 1, Quantity: 1, Product: &catalog.Product{ID: 1, Price: 100, DiscountPercent: 10}},
		cartdomain.Item{ProductID: 2, Quantity: 1, Product: &catalog.Product{ID: 2, Price: 19.99}},
	)}
	svc := NewService(repo)

	ck, err := svc.Create(context.Background(), cartdomain.OwnerFor("buyer", 7))
	require.NoError(t, err)
	assert.Equal(t, checkoutdomain.StatusPending, ck.Status)
	assert.Equal(t, uint(1), ck.CartID)
	assert.InDelta(t, 109.99, ck.TotalAmount, 0.001)
}

func TestCreateTotalMultipliesSeats(t *testing.T) {
	repo := &mockRepo{cart: &cartdomain.Cart{ID: 2, CompanyID: ptr(uint(3)), Items: []cartdomain.Item{
		{ProductID: 1, Quantity: 5, Product: &catalog.Product{ID: 1, Price: 40, DiscountPercent: 25}},
	}}}
	svc := NewService(repo)

	ck, err := svc.Create(context.Background(), cartdomain.OwnerFor("company", 3))
	require.NoError(t, err)
	assert.InDelta(t, 150.0, ck.TotalAmount, 0.001)
	assert.True(t, ck.IsCompany())
}

func TestTotalIsFrozenAfterCreate(t *testing.T) {
	product := &catalog.Product{ID: 1, Price: 100, DiscountPercent: 10}
	repo := &mockRepo{cart: buyerCart(7, cartdomain.Item{ProductID: 1, Quantity: 1, Product: product})}
	svc := NewService(repo)

	ck, err := svc.Create(context.Background(), cartdomain.OwnerFor("buyer", 7))
	require.NoError(t, err)

	product.Price = 500

	got, err := svc.Get(context.Background(), ck.ID)
	require.NoError(t, err)
	assert.InDelta(t, 90.0, got.TotalAmount, 0.001)
}

func TestGetUnknownCheckout(t *testing.T) {
	svc := NewService(&mockRepo{})

	_, err := svc.Get(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func ptr[T any](v T) *T { return &v }
