package repository

import (
	"context"

	"vendeya/internal/domain/entity"
)

type CategoryRepository interface {
	// List returns the flat category list; tree assembly is client-side.
	List(ctx context.Context) ([]entity.Category, error)
	Create(ctx context.Context, name string, parentID int) (*entity.Category, error)
}
