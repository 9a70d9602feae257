package store

import "errors"

// ErrNoTokens возвращается, когда сохраненной пары токенов нет
var ErrNoTokens = errors.New("токены не найдены")

// TokenPair представляет пару токенов. Токены непрозрачны для клиента:
// они сохраняются и отправляются как есть, без разбора содержимого.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenStore управляет хранением пары токенов.
// Save записывает оба токена атомарно: состояния, в котором сохранен
// только один из них, не существует. Clear удаляет оба и идемпотентен.
type TokenStore interface {
	Save(pair *TokenPair) error
	Load() (*TokenPair, error)
	Clear() error

	// AccessToken возвращает access токен или пустую строку
	AccessToken() string
	// RefreshToken возвращает refresh токен или пустую строку
	RefreshToken() string
}
