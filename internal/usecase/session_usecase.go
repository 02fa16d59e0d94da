package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"vendeya/internal/domain/entity"
	"vendeya/internal/domain/repository"
	"vendeya/internal/infrastructure/localstorage"
	"vendeya/pkg/errors"
	"vendeya/pkg/logger"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// SessionUseCase owns the authenticated identity and the bearer token.
// Both are persisted to local storage on login and cleared on logout; the
// persisted copy is the source of truth across restarts. Dependent stores
// (the cart) subscribe to identity transitions.
type SessionUseCase struct {
	authRepo repository.AuthRepository
	storage  *localstorage.Store
	validate *validator.Validate

	mu        sync.RWMutex
	user      *entity.User
	token     string
	listeners []func(*entity.User)
}

func NewSessionUseCase(authRepo repository.AuthRepository, storage *localstorage.Store) *SessionUseCase {
	uc := &SessionUseCase{
		authRepo: authRepo,
		storage:  storage,
		validate: validator.New(),
	}
	uc.restore()
	return uc
}

// restore reloads the persisted session. A token carrying a parseable,
// already-expired exp claim is discarded together with the identity;
// opaque tokens are kept as-is and left for the backend to reject.
func (uc *SessionUseCase) restore() {
	raw, ok := uc.storage.Get(localstorage.KeyUser)
	if !ok {
		return
	}
	token, ok := uc.storage.Get(localstorage.KeyToken)
	if !ok {
		return
	}

	if expired(token) {
		logger.Info("Discarding expired persisted session")
		uc.storage.Delete(localstorage.KeyUser)
		uc.storage.Delete(localstorage.KeyToken)
		return
	}

	var user entity.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		logger.Warn("Corrupt persisted identity, clearing session: %v", err)
		uc.storage.Delete(localstorage.KeyUser)
		uc.storage.Delete(localstorage.KeyToken)
		return
	}

	uc.user = &user
	uc.token = token
}

func expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

type RegisterInput struct {
	Name            string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

func (uc *SessionUseCase) Login(ctx context.Context, email, password string) (*entity.User, error) {
	if email == "" || password == "" {
		return nil, errors.BadRequest("Email y contraseña son obligatorios", nil)
	}

	user, token, err := uc.authRepo.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user == nil || token == "" {
		return nil, errors.Internal("Respuesta de login incompleta", nil)
	}

	if err := uc.adopt(user, token); err != nil {
		return nil, err
	}
	logger.Info("Session started for user %d", user.ID)
	return user, nil
}

func (uc *SessionUseCase) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, errors.BadRequest("Datos de registro no válidos", err)
	}

	user, token, err := uc.authRepo.Register(ctx, input.Name, input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	if user == nil || token == "" {
		return nil, errors.Internal("Respuesta de registro incompleta", nil)
	}

	if err := uc.adopt(user, token); err != nil {
		return nil, err
	}
	logger.Info("Session started for new user %d", user.ID)
	return user, nil
}

func (uc *SessionUseCase) adopt(user *entity.User, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return errors.Internal("Failed to serialize identity", err)
	}
	if err := uc.storage.Set(localstorage.KeyUser, string(raw)); err != nil {
		return err
	}
	if err := uc.storage.Set(localstorage.KeyToken, token); err != nil {
		return err
	}

	uc.mu.Lock()
	uc.user = user
	uc.token = token
	listeners := append([]func(*entity.User){}, uc.listeners...)
	uc.mu.Unlock()

	for _, notify := range listeners {
		notify(user)
	}
	return nil
}

// Logout clears the session locally. There is no backend call: the token
// simply stops being presented.
func (uc *SessionUseCase) Logout() {
	uc.storage.Delete(localstorage.KeyUser)
	uc.storage.Delete(localstorage.KeyToken)

	uc.mu.Lock()
	uc.user = nil
	uc.token = ""
	listeners := append([]func(*entity.User){}, uc.listeners...)
	uc.mu.Unlock()

	for _, notify := range listeners {
		notify(nil)
	}
	logger.Info("Session closed")
}

func (uc *SessionUseCase) User() *entity.User {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.user
}

func (uc *SessionUseCase) Authenticated() bool {
	return uc.User() != nil
}

// Token implements the rest.TokenSource contract.
func (uc *SessionUseCase) Token() string {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.token
}

// OnIdentityChange registers a callback invoked with the new identity on
// login/registration and with nil on logout.
func (uc *SessionUseCase) OnIdentityChange(fn func(*entity.User)) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.listeners = append(uc.listeners, fn)
}

func (uc *SessionUseCase) Theme() string {
	if theme, ok := uc.storage.Get(localstorage.KeyTheme); ok {
		return theme
	}
	return ThemeLight
}

func (uc *SessionUseCase) SetTheme(theme string) error {
	if theme != ThemeDark && theme != ThemeLight {
		return errors.BadRequest("Tema no válido", nil)
	}
	return uc.storage.Set(localstorage.KeyTheme, theme)
}
