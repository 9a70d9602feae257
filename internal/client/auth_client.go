package client

import (
	"context"
	"net/http"
	"net/url"

	"BrandPulseCLI/internal/store"
)

// AuthClient представляет REST обертки над эндпоинтами аутентификации.
// Состояния у него нет: токенами владеет хранилище, пользователем — сессия.
type AuthClient struct {
	api *API
}

// NewAuthClient создает новый клиент аутентификации
func NewAuthClient(api *API) *AuthClient {
	return &AuthClient{api: api}
}

// Login выполняет вход по email и паролю и возвращает пару токенов.
// Бэкенд принимает форму с полями username и password.
func (c *AuthClient) Login(ctx context.Context, email, password string) (*store.TokenPair, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var pair store.TokenPair
	if err := c.api.doForm(ctx, http.MethodPost, "/auth/login", form, &pair); err != nil {
		return nil, err
	}

	return &pair, nil
}

// Register создает новую учетную запись пользователя
func (c *AuthClient) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	var user User
	if err := c.api.do(ctx, http.MethodPost, "/auth/register", nil, req, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// Me возвращает текущего пользователя
func (c *AuthClient) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.api.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateProfile обновляет имя текущего пользователя
func (c *AuthClient) UpdateProfile(ctx context.Context, fullName string) (*User, error) {
	body := map[string]string{"full_name": fullName}

	var user User
	if err := c.api.do(ctx, http.MethodPut, "/auth/me", nil, body, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// Logout отзывает refresh токен на сервере.
// Вызывающая сторона игнорирует результат: завершение сессии на клиенте
// не зависит от подтверждения сервера.
func (c *AuthClient) Logout(ctx context.Context, refreshToken string) error {
	body := map[string]string{"refresh_token": refreshToken}
	return c.api.do(ctx, http.MethodPost, "/auth/logout", nil, body, nil)
}
