package session

import (
	"context"

	"BrandPulseCLI/internal/client"
	"BrandPulseCLI/internal/store"
	"BrandPulseCLI/pkg/logger"
)

// AuthAPI — операции аутентификации, которые нужны сессии
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*store.TokenPair, error)
	Me(ctx context.Context) (*client.User, error)
	Logout(ctx context.Context, refreshToken string) error
}

// Session владеет текущим пользователем процесса.
//
// Объект сессии создается один раз при старте и явно передается всем
// потребителям; никакого глобального изменяемого состояния нет. Пока
// идет гидратация, IsLoading() возвращает true и "пользователя нет"
// следует читать как "пользователь неизвестен", а не "не авторизован".
type Session struct {
	auth   AuthAPI
	tokens store.TokenStore
	log    logger.Logger

	user     *client.User
	loading  bool
	hydrated bool
}

// New создает новую сессию в состоянии гидратации
func New(auth AuthAPI, tokens store.TokenStore, log logger.Logger) *Session {
	return &Session{
		auth:    auth,
		tokens:  tokens,
		log:     log,
		loading: true,
	}
}

// Hydrate восстанавливает сессию из сохраненного токена.
// Выполняется ровно один раз за время жизни процесса; повторные вызовы
// ничего не делают. Если токена нет, сессия становится анонимной без
// единого сетевого вызова. Если токен есть, но сервер его не принимает,
// оба токена сбрасываются и сессия становится анонимной.
func (s *Session) Hydrate(ctx context.Context) {
	if s.hydrated {
		return
	}
	s.hydrated = true
	defer func() { s.loading = false }()

	if s.tokens.AccessToken() == "" {
		return
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		s.log.Debug("Session hydration failed", logger.Error(err))
		if clearErr := s.tokens.Clear(); clearErr != nil {
			s.log.Warn("Failed to clear tokens", logger.Error(clearErr))
		}
		return
	}

	s.user = user
	s.log.Debug("Session hydrated",
		logger.String("email", user.Email),
		logger.String("role", string(user.Role)))
}

// Login выполняет вход и наполняет сессию.
// Либо сохранены оба токена и установлен пользователь, либо ничего:
// если после сохранения пары не удалось получить пользователя, пара
// сбрасывается и сессия остается анонимной.
func (s *Session) Login(ctx context.Context, email, password string) error {
	pair, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := s.tokens.Save(pair); err != nil {
		return err
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		if clearErr := s.tokens.Clear(); clearErr != nil {
			s.log.Warn("Failed to clear tokens", logger.Error(clearErr))
		}
		s.user = nil
		return err
	}

	s.user = user
	return nil
}

// Logout завершает сессию.
// Отзыв refresh токена на сервере — best-effort: его исход не влияет
// на завершение сессии, оба токена и пользователь очищаются всегда.
func (s *Session) Logout(ctx context.Context) {
	if refreshToken := s.tokens.RefreshToken(); refreshToken != "" {
		if err := s.auth.Logout(ctx, refreshToken); err != nil {
			s.log.Debug("Server-side logout failed, ignoring", logger.Error(err))
		}
	}

	if err := s.tokens.Clear(); err != nil {
		s.log.Warn("Failed to clear tokens", logger.Error(err))
	}
	s.user = nil
}

// HasRole возвращает true, если пользователь авторизован и его роль
// входит в allowed. Для анонимной сессии и пустого списка всегда false.
func (s *Session) HasRole(allowed ...client.UserRole) bool {
	if s.user == nil {
		return false
	}
	for _, role := range allowed {
		if s.user.Role == role {
			return true
		}
	}
	return false
}

// CurrentUser возвращает текущего пользователя или nil
func (s *Session) CurrentUser() *client.User {
	return s.user
}

// SetCurrentUser обновляет пользователя в памяти (после изменения профиля)
func (s *Session) SetCurrentUser(user *client.User) {
	s.user = user
}

// IsLoading возвращает true, пока идет начальная гидратация
func (s *Session) IsLoading() bool {
	return s.loading
}
