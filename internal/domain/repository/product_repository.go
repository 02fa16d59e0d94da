package repository

import (
	"context"

	"vendeya/internal/domain/entity"
)

type ProductFilter struct {
	Search     string
	CategoryID int
	SellerID   int
}

// ProductPayload carries the writable fields of a product. Image, when
// non-nil, is uploaded as multipart form data alongside the JSON fields.
type ProductPayload struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	CategoryID  int
	Image       []byte
	ImageName   string
}

type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]entity.Product, error)
	GetByID(ctx context.Context, id int) (*entity.Product, error)
	Create(ctx context.Context, payload ProductPayload) (*entity.Product, error)
	Update(ctx context.Context, id int, payload ProductPayload) (*entity.Product, error)
	Delete(ctx context.Context, id int) error
}
