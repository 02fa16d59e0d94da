package repository

import (
	"context"
	"net/url"
	"strconv"

	"vendeya/internal/domain/entity"
	"vendeya/internal/domain/repository"
	"vendeya/internal/infrastructure/rest"
)

type restProductRepository struct {
	client *rest.Client
}

func NewRestProductRepository(client *rest.Client) repository.ProductRepository {
	return &restProductRepository{client: client}
}

func (r *restProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]entity.Product, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("busqueda", filter.Search)
	}
	if filter.CategoryID > 0 {
		query.Set("categoria_id", strconv.Itoa(filter.CategoryID))
	}
	if filter.SellerID > 0 {
		query.Set("vendedor_id", strconv.Itoa(filter.SellerID))
	}

	var products []entity.Product
	if err := r.client.Get(ctx, "/productos/listar", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *restProductRepository) GetByID(ctx context.Context, id int) (*entity.Product, error) {
	query := url.Values{"id": {strconv.Itoa(id)}}
	var product entity.Product
	if err := r.client.Get(ctx, "/productos/obtener", query, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *restProductRepository) Create(ctx context.Context, payload repository.ProductPayload) (*entity.Product, error) {
	var product entity.Product
	err := r.client.PostMultipart(ctx, "/productos/crear",
		productFields(payload), "imagen", payload.ImageName, payload.Image, &product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *restProductRepository) Update(ctx context.Context, id int, payload repository.ProductPayload) (*entity.Product, error) {
	fields := productFields(payload)
	fields["id"] = strconv.Itoa(id)

	var product entity.Product
	err := r.client.PostMultipart(ctx, "/productos/actualizar",
		fields, "imagen", payload.ImageName, payload.Image, &product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *restProductRepository) Delete(ctx context.Context, id int) error {
	body := map[string]int{"id": id}
	return r.client.PostJSON(ctx, "/productos/eliminar", body, nil)
}

func productFields(payload repository.ProductPayload) map[string]string {
	return map[string]string{
		"nombre":       payload.Name,
		"descripcion":  payload.Description,
		"precio":       strconv.FormatFloat(payload.Price, 'f', 2, 64),
		"stock":        strconv.Itoa(payload.Stock),
		"categoria_id": strconv.Itoa(payload.CategoryID),
	}
}
