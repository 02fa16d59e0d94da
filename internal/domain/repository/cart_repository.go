package repository

import (
	"context"

	"vendeya/internal/domain/entity"
)

type CartRepository interface {
	List(ctx context.Context) ([]entity.CartItem, error)
	Add(ctx context.Context, productID, quantity int) error
	UpdateQuantity(ctx context.Context, itemID, quantity int) error
	Remove(ctx context.Context, itemID int) error
	Empty(ctx context.Context) error
}
