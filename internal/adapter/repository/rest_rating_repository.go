package repository

import (
	"context"
	"net/url"
	"strconv"

	"vendeya/internal/domain/entity"
	"vendeya/internal/domain/repository"
	"vendeya/internal/infrastructure/rest"
)

type restRatingRepository struct {
	client *rest.Client
}

func NewRestRatingRepository(client *rest.Client) repository.RatingRepository {
	return &restRatingRepository{client: client}
}

func (r *restRatingRepository) List(ctx context.Context, productID int) ([]entity.Rating, *entity.RatingStats, error) {
	query := url.Values{"producto_id": {strconv.Itoa(productID)}}
	var resp struct {
		Ratings []entity.Rating     `json:"valoraciones"`
		Stats   *entity.RatingStats `json:"estadisticas"`
	}
	if err := r.client.Get(ctx, "/valoraciones/listar", query, &resp); err != nil {
		return nil, nil, err
	}
	if resp.Stats == nil {
		resp.Stats = &entity.RatingStats{}
	}
	return resp.Ratings, resp.Stats, nil
}

func (r *restRatingRepository) Create(ctx context.Context, productID, score int, comment string) (*entity.Rating, error) {
	body := map[string]interface{}{
		"producto_id": productID,
		"puntuacion":  score,
		"comentario":  comment,
	}
	var rating entity.Rating
	if err := r.client.PostJSON(ctx, "/valoraciones/crear", body, &rating); err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *restRatingRepository) Update(ctx context.Context, ratingID, score int, comment string) (*entity.Rating, error) {
	body := map[string]interface{}{
		"valoracion_id": ratingID,
		"puntuacion":    score,
		"comentario":    comment,
	}
	var rating entity.Rating
	if err := r.client.PutJSON(ctx, "/valoraciones/actualizar", body, &rating); err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *restRatingRepository) Delete(ctx context.Context, ratingID int) error {
	body := map[string]int{"valoracion_id": ratingID}
	return r.client.PostJSON(ctx, "/valoraciones/eliminar", body, nil)
}

func (r *restRatingRepository) Verify(ctx context.Context, productID int) (*repository.RatingEligibility, error) {
	query := url.Values{"producto_id": {strconv.Itoa(productID)}}
	var eligibility repository.RatingEligibility
	if err := r.client.Get(ctx, "/valoraciones/verificar", query, &eligibility); err != nil {
		return nil, err
	}
	return &eligibility, nil
}
