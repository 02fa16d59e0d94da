package usecase

import (
	"context"
	"sort"
	"sync"

	"vendeya/internal/domain/entity"
	"vendeya/internal/domain/repository"
	"vendeya/pkg/errors"
)

// SellerOrderUseCase owns the list of orders that contain the current
// identity's products. Status updates are proposed to the backend and,
// only on success, patched into the single matching local order; a
// failure leaves local state unchanged and returns the error to the
// caller instead of storing it.
//
// Transition legality lives here, not in the presentation layer: a
// terminal order admits no edits, and only the enumerated transitions
// are proposed at all.
type SellerOrderUseCase struct {
	orderRepo repository.OrderRepository

	mu     sync.RWMutex
	orders []entity.SellerOrder
	errMsg string
}

func NewSellerOrderUseCase(orderRepo repository.OrderRepository) *SellerOrderUseCase {
	return &SellerOrderUseCase{orderRepo: orderRepo}
}

type LoadOrdersOptions struct {
	Limit        int
	SortByRecent bool
}

func (uc *SellerOrderUseCase) Load(ctx context.Context, opts LoadOrdersOptions) error {
	orders, err := uc.orderRepo.ListSellerOrders(ctx)
	if err != nil {
		uc.mu.Lock()
		uc.errMsg = errors.UserMessage(err)
		uc.mu.Unlock()
		return err
	}

	if opts.SortByRecent {
		sort.SliceStable(orders, func(i, j int) bool {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		})
	}
	if opts.Limit > 0 && len(orders) > opts.Limit {
		orders = orders[:opts.Limit]
	}

	uc.mu.Lock()
	uc.orders = orders
	uc.errMsg = ""
	uc.mu.Unlock()
	return nil
}

func (uc *SellerOrderUseCase) UpdateStatus(ctx context.Context, orderID int, status entity.OrderStatus) error {
	if !status.Valid() {
		return errors.BadRequest("Estado de pedido no válido", nil)
	}

	uc.mu.RLock()
	var current *entity.SellerOrder
	for i := range uc.orders {
		if uc.orders[i].ID == orderID {
			current = &uc.orders[i]
			break
		}
	}
	uc.mu.RUnlock()

	if current == nil {
		return errors.NotFound("Pedido", nil)
	}
	if current.Status.Terminal() {
		return errors.BadRequest("El pedido ya no admite cambios de estado", nil)
	}
	if !current.Status.CanTransitionTo(status) {
		return errors.BadRequest("Transición de estado no permitida", nil)
	}

	if err := uc.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}

	uc.mu.Lock()
	for i := range uc.orders {
		if uc.orders[i].ID == orderID {
			uc.orders[i].Status = status
			break
		}
	}
	uc.mu.Unlock()
	return nil
}

func (uc *SellerOrderUseCase) Orders() []entity.SellerOrder {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	orders := make([]entity.SellerOrder, len(uc.orders))
	copy(orders, uc.orders)
	return orders
}

func (uc *SellerOrderUseCase) Error() string {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.errMsg
}
