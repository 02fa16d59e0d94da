package usecase

import (
	"context"
	"sync"

	"vendeya/internal/domain/entity"
	"vendeya/internal/domain/repository"
	"vendeya/pkg/errors"
)

// OrderUseCase covers the buyer side: checkout of the current cart and
// the purchase history.
type OrderUseCase struct {
	orderRepo repository.OrderRepository
	cart      *CartUseCase

	mu     sync.RWMutex
	orders []entity.Order
	errMsg string
}

func NewOrderUseCase(orderRepo repository.OrderRepository, cart *CartUseCase) *OrderUseCase {
	return &OrderUseCase{
		orderRepo: orderRepo,
		cart:      cart,
	}
}

// Checkout turns the backend cart into an order, then reloads the cart,
// which the backend has emptied.
func (uc *OrderUseCase) Checkout(ctx context.Context) (*entity.Order, error) {
	if uc.cart.Count() == 0 {
		return nil, errors.BadRequest("El carrito está vacío", nil)
	}

	order, err := uc.orderRepo.Create(ctx)
	if err != nil {
		uc.setError(err)
		return nil, err
	}

	if err := uc.cart.Load(ctx); err != nil {
		return order, err
	}
	return order, nil
}

func (uc *OrderUseCase) LoadHistory(ctx context.Context) error {
	orders, err := uc.orderRepo.ListOwn(ctx)
	if err != nil {
		uc.setError(err)
		return err
	}
	uc.mu.Lock()
	uc.orders = orders
	uc.errMsg = ""
	uc.mu.Unlock()
	return nil
}

func (uc *OrderUseCase) Orders() []entity.Order {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	orders := make([]entity.Order, len(uc.orders))
	copy(orders, uc.orders)
	return orders
}

func (uc *OrderUseCase) Error() string {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.errMsg
}

func (uc *OrderUseCase) setError(err error) {
	uc.mu.Lock()
	uc.errMsg = errors.UserMessage(err)
	uc.mu.Unlock()
}
