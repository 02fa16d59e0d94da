package repository

import (
	"context"

	"vendeya/internal/domain/entity"
	"vendeya/internal/domain/repository"
	"vendeya/internal/infrastructure/rest"
)

type restCartRepository struct {
	client *rest.Client
}

func NewRestCartRepository(client *rest.Client) repository.CartRepository {
	return &restCartRepository{client: client}
}

func (r *restCartRepository) List(ctx context.Context) ([]entity.CartItem, error) {
	var items []entity.CartItem
	if err := r.client.Get(ctx, "/carrito/listar", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *restCartRepository) Add(ctx context.Context, productID, quantity int) error {
	body := map[string]int{
		"producto_id": productID,
		"cantidad":    quantity,
	}
	return r.client.PostJSON(ctx, "/carrito/agregar", body, nil)
}

func (r *restCartRepository) UpdateQuantity(ctx context.Context, itemID, quantity int) error {
	body := map[string]int{
		"item_id":  itemID,
		"cantidad": quantity,
	}
	return r.client.PostJSON(ctx, "/carrito/actualizar", body, nil)
}

func (r *restCartRepository) Remove(ctx context.Context, itemID int) error {
	body := map[string]int{"item_id": itemID}
	return r.client.PostJSON(ctx, "/carrito/eliminar", body, nil)
}

func (r *restCartRepository) Empty(ctx context.Context) error {
	return r.client.PostJSON(ctx, "/carrito/vaciar", nil, nil)
}
