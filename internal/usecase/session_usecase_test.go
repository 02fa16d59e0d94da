package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendeya/internal/domain/entity"
	"vendeya/internal/infrastructure/localstorage"
)

func newStorage(t *testing.T) *localstorage.Store {
	t.Helper()
	storage, err := localstorage.Open(t.TempDir())
	require.NoError(t, err)
	return storage
}

func TestLoginPersistsIdentityAndToken(t *testing.T) {
	storage := newStorage(t)
	user := &entity.User{ID: 1, Name: "Ana", Email: "a@b.com", Role: entity.RoleCustomer}
	session := NewSessionUseCase(&fakeAuthRepo{user: user, token: "T"}, storage)

	got, err := session.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	raw, ok := storage.Get(localstorage.KeyUser)
	require.True(t, ok)
	expected, _ := json.Marshal(user)
	assert.JSONEq(t, string(expected), raw)

	token, ok := storage.Get(localstorage.KeyToken)
	require.True(t, ok)
	assert.Equal(t, "T", token)
}

func TestLoginFailureKeepsSessionAbsent(t *testing.T) {
	storage := newStorage(t)
	session := NewSessionUseCase(&fakeAuthRepo{err: errBackendDown}, storage)

	_, err := session.Login(context.Background(), "a@b.com", "x")
	require.Error(t, err)
	assert.False(t, session.Authenticated())
	_, ok := storage.Get(localstorage.KeyToken)
	assert.False(t, ok)
}

func TestLogoutClearsPersistedSlots(t *testing.T) {
	storage := newStorage(t)
	user := &entity.User{ID: 7, Name: "Luis", Email: "l@v.es", Role: entity.RoleSeller}
	session := NewSessionUseCase(&fakeAuthRepo{user: user, token: "T"}, storage)

	_, err := session.Login(context.Background(), "l@v.es", "x")
	require.NoError(t, err)

	session.Logout()

	assert.False(t, session.Authenticated())
	assert.Empty(t, session.Token())
	_, ok := storage.Get(localstorage.KeyUser)
	assert.False(t, ok)
	_, ok = storage.Get(localstorage.KeyToken)
	assert.False(t, ok)
}

func TestRegisterRejectsMismatchedPasswords(t *testing.T) {
	session := NewSessionUseCase(&fakeAuthRepo{}, newStorage(t))

	_, err := session.Register(context.Background(), RegisterInput{
		Name:            "Ana",
		Email:           "a@b.com",
		Password:        "secreto1",
		ConfirmPassword: "secreto2",
	})

	require.Error(t, err)
	assert.False(t, session.Authenticated())
}

func TestRestoreRecoversPersistedSession(t *testing.T) {
	storage := newStorage(t)
	user := &entity.User{ID: 3, Name: "Eva", Email: "e@v.es", Role: entity.RoleAdmin}
	raw, _ := json.Marshal(user)
	require.NoError(t, storage.Set(localstorage.KeyUser, string(raw)))
	require.NoError(t, storage.Set(localstorage.KeyToken, "opaque-token"))

	session := NewSessionUseCase(&fakeAuthRepo{}, storage)

	require.True(t, session.Authenticated())
	assert.Equal(t, 3, session.User().ID)
	assert.Equal(t, "opaque-token", session.Token())
}

func TestRestoreDiscardsExpiredJWT(t *testing.T) {
	storage := newStorage(t)
	user := &entity.User{ID: 3, Name: "Eva", Email: "e@v.es", Role: entity.RoleCustomer}
	raw, _ := json.Marshal(user)
	require.NoError(t, storage.Set(localstorage.KeyUser, string(raw)))

	expiredToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "3",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("irrelevant"))
	require.NoError(t, err)
	require.NoError(t, storage.Set(localstorage.KeyToken, expiredToken))

	session := NewSessionUseCase(&fakeAuthRepo{}, storage)

	assert.False(t, session.Authenticated())
	_, ok := storage.Get(localstorage.KeyUser)
	assert.False(t, ok)
	_, ok = storage.Get(localstorage.KeyToken)
	assert.False(t, ok)
}

func TestThemePreferencePersists(t *testing.T) {
	storage := newStorage(t)
	session := NewSessionUseCase(&fakeAuthRepo{}, storage)

	assert.Equal(t, ThemeLight, session.Theme())
	require.NoError(t, session.SetTheme(ThemeDark))
	assert.Equal(t, ThemeDark, session.Theme())

	assert.Error(t, session.SetTheme("sepia"))

	reopened := NewSessionUseCase(&fakeAuthRepo{}, storage)
	assert.Equal(t, ThemeDark, reopened.Theme())
}
