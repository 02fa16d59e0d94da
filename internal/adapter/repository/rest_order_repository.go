package repository

import (
	"context"

	"vendeya/internal/domain/entity"
	"vendeya/internal/domain/repository"
	"vendeya/internal/infrastructure/rest"
)

type restOrderRepository struct {
	client *rest.Client
}

func NewRestOrderRepository(client *rest.Client) repository.OrderRepository {
	return &restOrderRepository{client: client}
}

func (r *restOrderRepository) Create(ctx context.Context) (*entity.Order, error) {
	var order entity.Order
	if err := r.client.PostJSON(ctx, "/pedidos/crear", nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *restOrderRepository) ListOwn(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	if err := r.client.Get(ctx, "/pedidos/listar", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *restOrderRepository) ListSellerOrders(ctx context.Context) ([]entity.SellerOrder, error) {
	var orders []entity.SellerOrder
	if err := r.client.Get(ctx, "/pedidos/listar_vendedor", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *restOrderRepository) UpdateStatus(ctx context.Context, orderID int, status entity.OrderStatus) error {
	body := map[string]interface{}{
		"pedido_id": orderID,
		"estado":    status,
	}
	return r.client.PostJSON(ctx, "/pedidos/actualizar_estado", body, nil)
}
