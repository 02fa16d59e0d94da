package repository

import (
	"context"

	"vendeya/internal/domain/entity"
)

// RatingEligibility mirrors valoraciones/verificar: whether the current
// identity may rate the product, and its existing rating if any.
type RatingEligibility struct {
	CanRate   bool           `json:"puede_valorar"`
	OwnRating *entity.Rating `json:"valoracion,omitempty"`
}

type RatingRepository interface {
	List(ctx context.Context, productID int) ([]entity.Rating, *entity.RatingStats, error)
	Create(ctx context.Context, productID, score int, comment string) (*entity.Rating, error)
	Update(ctx context.Context, ratingID, score int, comment string) (*entity.Rating, error)
	Delete(ctx context.Context, ratingID int) error
	Verify(ctx context.Context, productID int) (*RatingEligibility, error)
}
