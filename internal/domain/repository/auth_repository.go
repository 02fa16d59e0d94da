package repository

import (
	"context"

	"vendeya/internal/domain/entity"
)

// AuthRepository issues and exchanges credentials with the backend. The
// returned string is the opaque bearer token the backend minted for the
// session.
type AuthRepository interface {
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	Register(ctx context.Context, name, email, password string) (*entity.User, string, error)
}
