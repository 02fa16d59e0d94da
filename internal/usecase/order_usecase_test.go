package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendeya/internal/domain/entity"
	"vendeya/pkg/errors"
)

func TestCheckoutRequiresItems(t *testing.T) {
	cart := NewCartUseCase(&fakeCartRepo{}, loggedInSession(t))
	orders := NewOrderUseCase(&fakeOrderRepo{}, cart)

	_, err := orders.Checkout(context.Background())
	require.Error(t, err)
	assert.Equal(t, "El carrito está vacío", errors.UserMessage(err))
}

func TestCheckoutReloadsEmptiedCart(t *testing.T) {
	cartRepo := &fakeCartRepo{items: []entity.CartItem{
		{ID: 1, ProductID: 10, Quantity: 2, UnitPrice: 5},
	}}
	cart := NewCartUseCase(cartRepo, loggedInSession(t))
	require.NoError(t, cart.Load(context.Background()))

	orders := NewOrderUseCase(&fakeOrderRepo{}, cart)

	// Placing the order empties the cart server-side.
	cartRepo.items = nil
	placed, err := orders.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, placed.ID)
	assert.Empty(t, cart.Items())
}

func TestCheckoutFailureLeavesCart(t *testing.T) {
	cartRepo := &fakeCartRepo{items: []entity.CartItem{
		{ID: 1, ProductID: 10, Quantity: 2, UnitPrice: 5},
	}}
	cart := NewCartUseCase(cartRepo, loggedInSession(t))
	require.NoError(t, cart.Load(context.Background()))

	orders := NewOrderUseCase(&fakeOrderRepo{createErr: errBackendDown}, cart)

	_, err := orders.Checkout(context.Background())
	require.Error(t, err)
	assert.Len(t, cart.Items(), 1)
	assert.NotEmpty(t, orders.Error())
}

func TestLoadHistory(t *testing.T) {
	repo := &fakeOrderRepo{ownOrders: []entity.Order{
		{ID: 3, Status: entity.StatusDelivered, Total: 12.5, CreatedAt: time.Now().Add(-time.Hour)},
		{ID: 4, Status: entity.StatusPending, Total: 40, CreatedAt: time.Now()},
	}}
	orders := NewOrderUseCase(repo, NewCartUseCase(&fakeCartRepo{}, loggedInSession(t)))

	require.NoError(t, orders.LoadHistory(context.Background()))
	history := orders.Orders()
	require.Len(t, history, 2)
	assert.Equal(t, entity.StatusDelivered, history[0].Status)
	assert.Empty(t, orders.Error())
}
