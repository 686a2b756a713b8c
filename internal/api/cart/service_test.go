package cart

import (
	"context"
	"testing"

	"coursemarket-app/internal/apperr"
	cartdomain "coursemarket-app/internal/domain/cart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	carts    map[uint]*cartdomain.Cart
	products map[uint]bool
	items    map[[2]uint]*cartdomain.Item
	nextID   uint
	created  int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		carts:    map[uint]*cartdomain.Cart{},
		products: map[uint]bool{},
		items:    map[[2]uint]*cartdomain.Item{},
		nextID:   1,
	}
}

func (m *mockRepo) FindByOwner(_ context.Context, owner cartdomain.Owner) (*cartdomain.Cart, error) {
	for _, c := range m.carts {
		if owner.IsCompany() && c.CompanyID != nil && *c.CompanyID == *owner.CompanyID {
			return c, nil
		}
		if !owner.IsCompany() && c.BuyerID != nil && *c.BuyerID == *owner.BuyerID {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) Create(_ context.Context, c *cartdomain.Cart) error {
	c.ID = m.nextID
	m.nextID++
	m.carts[c.ID] = c
	m.created++
	return nil
}

func (m *mockRepo) ProductExists(_ context.Context, productID uint) (bool, error) {
	return m.products[productID], nil
}

func (m *mockRepo) ItemExists(_ context.Context, cartID, productID uint) (bool, error) {
	_, ok := m.items[[2]uint{cartID, productID}]
	return ok, nil
}

func (m *mockRepo) AddItem(_ context.Context, item *cartdomain.Item) error {
	m.items[[2]uint{item.CartID, item.ProductID}] = item
	return nil
}

func (m *mockRepo) RemoveItem(_ context.Context, cartID, productID uint) (int64, error) {
	key := [2]uint{cartID, productID}
	if _, ok := m.items[key]; !ok {
		return 0, nil
	}
	delete(m.items, key)
	return 1, nil
}

func (m *mockRepo) ClearItems(_ context.Context, cartID uint) error {
	for key := range m.items {
		if key[0] == cartID {
			delete(m.items, key)
		}
	}
	return nil
}

func TestGetOrCreateRequiresOwner(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.GetOrCreate(context.Background(), cartdomain.Owner{})
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
}

func TestGetOrCreateRejectsAmbiguousOwner(t *testing.T) {
	svc := NewService(newMockRepo())
	one, two := uint(1), uint(2)

	_, err := svc.GetOrCreate(context.Background(), cartdomain.Owner{BuyerID: &one, CompanyID: &two})
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))
}

func TestGetOrCreateIsLazy(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	owner := cartdomain.OwnerFor("buyer", 7)

	first, err := svc.GetOrCreate(context.Background(), owner)
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := svc.GetOrCreate(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.created)
}

func TestAddItemUnknownProduct(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	_, err := svc.AddItem(context.Background(), cartdomain.OwnerFor("buyer", 7), 99, 1)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestAddItemTwiceConflicts(t *testing.T) {
	repo := newMockRepo()
	repo.products[5] = true
	svc := NewService(repo)
	owner := cartdomain.OwnerFor("buyer", 7)

	item, err := svc.AddItem(context.Background(), owner, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(5), item.ProductID)
	assert.Equal(t, 1, item.Quantity)

	_, err = svc.AddItem(context.Background(), owner, 5, 1)
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestAddItemDefaultsQuantity(t *testing.T) {
	repo := newMockRepo()
	repo.products[5] = true
	svc := NewService(repo)

	item, err := svc.AddItem(context.Background(), cartdomain.OwnerFor("company", 3), 5, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
}

func TestRemoveMissingItem(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	err := svc.RemoveItem(context.Background(), cartdomain.OwnerFor("buyer", 7), 5)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestRemoveItem(t *testing.T) {
	repo := newMockRepo()
	repo.products[5] = true
	svc := NewService(repo)
	owner := cartdomain.OwnerFor("buyer", 7)

	_, err := svc.AddItem(context.Background(), owner, 5, 1)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(context.Background(), owner, 5))
	assert.Empty(t, repo.items)
}
