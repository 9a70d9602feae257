package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"BrandPulseCLI/internal/client"
	"BrandPulseCLI/internal/store"
	pkgerrors "BrandPulseCLI/pkg/errors"
	"BrandPulseCLI/pkg/logger"
)

// mockAuthAPI мок операций аутентификации
type mockAuthAPI struct {
	mock.Mock
}

func (m *mockAuthAPI) Login(ctx context.Context, email, password string) (*store.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if pair := args.Get(0); pair != nil {
		return pair.(*store.TokenPair), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthAPI) Me(ctx context.Context) (*client.User, error) {
	args := m.Called(ctx)
	if user := args.Get(0); user != nil {
		return user.(*client.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthAPI) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

// memTokenStore хранит пару токенов в памяти (для тестов)
type memTokenStore struct {
	pair *store.TokenPair
}

func (m *memTokenStore) Save(pair *store.TokenPair) error {
	m.pair = pair
	return nil
}

func (m *memTokenStore) Load() (*store.TokenPair, error) {
	if m.pair == nil {
		return nil, store.ErrNoTokens
	}
	return m.pair, nil
}

func (m *memTokenStore) Clear() error {
	m.pair = nil
	return nil
}

func (m *memTokenStore) AccessToken() string {
	if m.pair == nil {
		return ""
	}
	return m.pair.AccessToken
}

func (m *memTokenStore) RefreshToken() string {
	if m.pair == nil {
		return ""
	}
	return m.pair.RefreshToken
}

func TestSession_StartsLoading(t *testing.T) {
	sess := New(&mockAuthAPI{}, &memTokenStore{}, logger.NewNop())

	assert.True(t, sess.IsLoading())
	assert.Nil(t, sess.CurrentUser())
}

// TestSession_HydrateWithoutToken проверяет, что без сохраненного токена
// гидратация завершается анонимной сессией без единого сетевого вызова.
func TestSession_HydrateWithoutToken(t *testing.T) {
	auth := &mockAuthAPI{}
	sess := New(auth, &memTokenStore{}, logger.NewNop())

	sess.Hydrate(context.Background())

	assert.False(t, sess.IsLoading())
	assert.Nil(t, sess.CurrentUser())
	auth.AssertNotCalled(t, "Me", mock.Anything)
}

func TestSession_HydrateWithValidToken(t *testing.T) {
	auth := &mockAuthAPI{}
	user := &client.User{ID: 1, Email: "a@b.c", Role: client.RoleMarcom}
	auth.On("Me", mock.Anything).Return(user, nil).Once()

	tokens := &memTokenStore{pair: &store.TokenPair{AccessToken: "acc", RefreshToken: "ref"}}
	sess := New(auth, tokens, logger.NewNop())

	sess.Hydrate(context.Background())

	assert.False(t, sess.IsLoading())
	require.NotNil(t, sess.CurrentUser())
	assert.Equal(t, "a@b.c", sess.CurrentUser().Email)
	auth.AssertExpectations(t)
}

// TestSession_HydrateRejectedToken проверяет, что отвергнутый сервером токен
// сбрасывается целиком и сессия становится анонимной с завершенной загрузкой.
func TestSession_HydrateRejectedToken(t *testing.T) {
	auth := &mockAuthAPI{}
	auth.On("Me", mock.Anything).Return(nil, pkgerrors.New(pkgerrors.ErrSessionExpired, "сессия недействительна")).Once()

	tokens := &memTokenStore{pair: &store.TokenPair{AccessToken: "stale", RefreshToken: "stale-ref"}}
	sess := New(auth, tokens, logger.NewNop())

	sess.Hydrate(context.Background())

	assert.False(t, sess.IsLoading())
	assert.Nil(t, sess.CurrentUser())
	assert.Empty(t, tokens.AccessToken())
	assert.Empty(t, tokens.RefreshToken())
}

// TestSession_HydrateRunsOnce проверяет, что гидратация выполняется
// ровно один раз за время жизни процесса.
func TestSession_HydrateRunsOnce(t *testing.T) {
	auth := &mockAuthAPI{}
	user := &client.User{ID: 1, Email: "a@b.c"}
	auth.On("Me", mock.Anything).Return(user, nil).Once()

	tokens := &memTokenStore{pair: &store.TokenPair{AccessToken: "acc"}}
	sess := New(auth, tokens, logger.NewNop())

	sess.Hydrate(context.Background())
	sess.Hydrate(context.Background())

	auth.AssertNumberOfCalls(t, "Me", 1)
}

func TestSession_LoginSuccess(t *testing.T) {
	auth := &mockAuthAPI{}
	pair := &store.TokenPair{AccessToken: "acc", RefreshToken: "ref"}
	user := &client.User{ID: 1, Email: "a@b.c", Role: client.RoleSales}
	auth.On("Login", mock.Anything, "a@b.c", "pass").Return(pair, nil).Once()
	auth.On("Me", mock.Anything).Return(user, nil).Once()

	tokens := &memTokenStore{}
	sess := New(auth, tokens, logger.NewNop())

	err := sess.Login(context.Background(), "a@b.c", "pass")
	require.NoError(t, err)

	assert.Equal(t, user, sess.CurrentUser())
	assert.Equal(t, "acc", tokens.AccessToken())
	assert.Equal(t, "ref", tokens.RefreshToken())
}

func TestSession_LoginBadCredentials(t *testing.T) {
	auth := &mockAuthAPI{}
	auth.On("Login", mock.Anything, "a@b.c", "wrong").
		Return(nil, pkgerrors.New(pkgerrors.ErrUnauthorized, "Incorrect email or password")).Once()

	tokens := &memTokenStore{}
	sess := New(auth, tokens, logger.NewNop())

	err := sess.Login(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)

	assert.Nil(t, sess.CurrentUser())
	assert.Empty(t, tokens.AccessToken())
}

// TestSession_LoginRollbackOnProfileFailure проверяет атомарность входа:
// если после сохранения токенов не удалось получить пользователя, пара
// сбрасывается и сессия остается анонимной.
func TestSession_LoginRollbackOnProfileFailure(t *testing.T) {
	auth := &mockAuthAPI{}
	pair := &store.TokenPair{AccessToken: "acc", RefreshToken: "ref"}
	auth.On("Login", mock.Anything, "a@b.c", "pass").Return(pair, nil).Once()
	auth.On("Me", mock.Anything).Return(nil, pkgerrors.New(pkgerrors.ErrInternal, "backend down")).Once()

	tokens := &memTokenStore{}
	sess := New(auth, tokens, logger.NewNop())

	err := sess.Login(context.Background(), "a@b.c", "pass")
	require.Error(t, err)

	assert.Nil(t, sess.CurrentUser())
	assert.Empty(t, tokens.AccessToken())
	assert.Empty(t, tokens.RefreshToken())
}

// TestSession_LogoutBestEffort проверяет, что сессия завершается локально
// даже при отказе сервера.
func TestSession_LogoutBestEffort(t *testing.T) {
	auth := &mockAuthAPI{}
	auth.On("Logout", mock.Anything, "ref").
		Return(pkgerrors.New(pkgerrors.ErrInternal, "backend down")).Once()

	tokens := &memTokenStore{pair: &store.TokenPair{AccessToken: "acc", RefreshToken: "ref"}}
	sess := New(auth, tokens, logger.NewNop())
	sess.SetCurrentUser(&client.User{ID: 1})

	sess.Logout(context.Background())

	assert.Nil(t, sess.CurrentUser())
	assert.Empty(t, tokens.AccessToken())
	assert.Empty(t, tokens.RefreshToken())
	auth.AssertExpectations(t)
}

func TestSession_LogoutWithoutRefreshToken(t *testing.T) {
	auth := &mockAuthAPI{}

	tokens := &memTokenStore{pair: &store.TokenPair{AccessToken: "acc"}}
	sess := New(auth, tokens, logger.NewNop())

	sess.Logout(context.Background())

	// Без refresh токена серверный logout не вызывается
	auth.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
	assert.Empty(t, tokens.AccessToken())
}

func TestSession_HasRole(t *testing.T) {
	tests := []struct {
		name    string
		user    *client.User
		allowed []client.UserRole
		want    bool
	}{
		{
			name:    "anonymous session",
			user:    nil,
			allowed: []client.UserRole{client.RoleMarcom},
			want:    false,
		},
		{
			name:    "matching role",
			user:    &client.User{Role: client.RoleMarcom},
			allowed: []client.UserRole{client.RoleMarcom},
			want:    true,
		},
		{
			name:    "non-matching role",
			user:    &client.User{Role: client.RoleSales},
			allowed: []client.UserRole{client.RoleManagement},
			want:    false,
		},
		{
			name:    "one of several roles",
			user:    &client.User{Role: client.RoleSales},
			allowed: []client.UserRole{client.RoleMarcom, client.RoleSales},
			want:    true,
		},
		{
			name:    "empty allowed list",
			user:    &client.User{Role: client.RoleMarcom},
			allowed: nil,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := New(&mockAuthAPI{}, &memTokenStore{}, logger.NewNop())
			sess.SetCurrentUser(tt.user)

			assert.Equal(t, tt.want, sess.HasRole(tt.allowed...))
		})
	}
}
