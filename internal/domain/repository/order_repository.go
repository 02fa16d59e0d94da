package repository

import (
	"context"

	"vendeya/internal/domain/entity"
)

type OrderRepository interface {
	// Buyer side: checkout the current cart and list past purchases.
	Create(ctx context.Context) (*entity.Order, error)
	ListOwn(ctx context.Context) ([]entity.Order, error)

	// Seller side: orders containing the identity's products.
	ListSellerOrders(ctx context.Context) ([]entity.SellerOrder, error)
	UpdateStatus(ctx context.Context, orderID int, status entity.OrderStatus) error
}
