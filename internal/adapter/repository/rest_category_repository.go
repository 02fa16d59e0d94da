package repository

import (
	"context"

	"vendeya/internal/domain/entity"
	"vendeya/internal/domain/repository"
	"vendeya/internal/infrastructure/rest"
)

type restCategoryRepository struct {
	client *rest.Client
}

func NewRestCategoryRepository(client *rest.Client) repository.CategoryRepository {
	return &restCategoryRepository{client: client}
}

func (r *restCategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	if err := r.client.Get(ctx, "/categorias/listar", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *restCategoryRepository) Create(ctx context.Context, name string, parentID int) (*entity.Category, error) {
	body := map[string]interface{}{"nombre": name}
	if parentID > 0 {
		body["padre_id"] = parentID
	}
	var category entity.Category
	if err := r.client.PostJSON(ctx, "/categorias/crear", body, &category); err != nil {
		return nil, err
	}
	return &category, nil
}
