package repository

import (
	"context"

	"vendeya/internal/domain/entity"
	"vendeya/internal/domain/repository"
	"vendeya/internal/infrastructure/rest"
)

type restAuthRepository struct {
	client *rest.Client
}

func NewRestAuthRepository(client *rest.Client) repository.AuthRepository {
	return &restAuthRepository{client: client}
}

type authResponse struct {
	User  *entity.User `json:"usuario"`
	Token string       `json:"token"`
}

func (r *restAuthRepository) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var resp authResponse
	if err := r.client.PostJSON(ctx, "/auth/login", body, &resp); err != nil {
		return nil, "", err
	}
	return resp.User, resp.Token, nil
}

func (r *restAuthRepository) Register(ctx context.Context, name, email, password string) (*entity.User, string, error) {
	body := map[string]string{
		"nombre":   name,
		"email":    email,
		"password": password,
	}
	var resp authResponse
	if err := r.client.PostJSON(ctx, "/auth/registro", body, &resp); err != nil {
		return nil, "", err
	}
	return resp.User, resp.Token, nil
}
