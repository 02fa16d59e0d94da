package usecase

import (
	"context"
	"sync"

	"vendeya/internal/domain/entity"
	"vendeya/internal/domain/repository"
	"vendeya/pkg/errors"
	"vendeya/pkg/logger"
)

// CartUseCase holds the line items for the current identity. Every
// mutation is a backend round trip followed by a full re-fetch, except
// Clear, which empties local state without re-fetching. The cart tracks
// identity transitions: it reloads when a session starts and empties
// locally (no backend call) when the session ends.
type CartUseCase struct {
	cartRepo repository.CartRepository
	session  *SessionUseCase

	mu     sync.RWMutex
	items  []entity.CartItem
	errMsg string
}

func NewCartUseCase(cartRepo repository.CartRepository, session *SessionUseCase) *CartUseCase {
	uc := &CartUseCase{
		cartRepo: cartRepo,
		session:  session,
	}
	session.OnIdentityChange(func(user *entity.User) {
		if user == nil {
			uc.reset()
			return
		}
		if err := uc.Load(context.Background()); err != nil {
			logger.Warn("Cart reload after login failed: %v", err)
		}
	})
	return uc
}

func (uc *CartUseCase) Load(ctx context.Context) error {
	if !uc.session.Authenticated() {
		uc.reset()
		return nil
	}

	items, err := uc.cartRepo.List(ctx)
	if err != nil {
		uc.setError(err)
		return err
	}

	uc.mu.Lock()
	uc.items = items
	uc.errMsg = ""
	uc.mu.Unlock()
	return nil
}

func (uc *CartUseCase) Add(ctx context.Context, productID, quantity int) error {
	if quantity < 1 {
		return errors.BadRequest("La cantidad debe ser al menos 1", nil)
	}
	if err := uc.cartRepo.Add(ctx, productID, quantity); err != nil {
		uc.setError(err)
		return err
	}
	return uc.Load(ctx)
}

// SetQuantity with zero delegates to Remove: both issue the same backend
// mutation path observable by the caller, an item no longer in the cart.
func (uc *CartUseCase) SetQuantity(ctx context.Context, itemID, quantity int) error {
	if quantity <= 0 {
		return uc.Remove(ctx, itemID)
	}
	if err := uc.cartRepo.UpdateQuantity(ctx, itemID, quantity); err != nil {
		uc.setError(err)
		return err
	}
	return uc.Load(ctx)
}

func (uc *CartUseCase) Remove(ctx context.Context, itemID int) error {
	if err := uc.cartRepo.Remove(ctx, itemID); err != nil {
		uc.setError(err)
		return err
	}
	return uc.Load(ctx)
}

// Clear empties the backend cart and then optimistically empties local
// state, skipping the re-fetch the other mutations perform.
func (uc *CartUseCase) Clear(ctx context.Context) error {
	if err := uc.cartRepo.Empty(ctx); err != nil {
		uc.setError(err)
		return err
	}
	uc.reset()
	return nil
}

func (uc *CartUseCase) Items() []entity.CartItem {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	items := make([]entity.CartItem, len(uc.items))
	copy(items, uc.items)
	return items
}

func (uc *CartUseCase) Count() int {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	total := 0
	for _, item := range uc.items {
		total += item.Quantity
	}
	return total
}

func (uc *CartUseCase) Subtotal() float64 {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	total := 0.0
	for _, item := range uc.items {
		total += item.Subtotal()
	}
	return total
}

func (uc *CartUseCase) Error() string {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.errMsg
}

func (uc *CartUseCase) reset() {
	uc.mu.Lock()
	uc.items = nil
	uc.errMsg = ""
	uc.mu.Unlock()
}

func (uc *CartUseCase) setError(err error) {
	uc.mu.Lock()
	uc.errMsg = errors.UserMessage(err)
	uc.mu.Unlock()
}
