package guard

import (
	"BrandPulseCLI/internal/client"
)

// Decision представляет решение охраны перед показом раздела
type Decision int

const (
	// ShowLoading — гидратация еще идет, показать заглушку и больше ничего
	ShowLoading Decision = iota
	// RedirectLogin — пользователя нет, отправить на вход
	RedirectLogin
	// RedirectHome — роль не подходит, отправить на раздел проектов
	RedirectHome
	// Render — показать запрошенный раздел
	Render
)

// String возвращает имя решения
func (d Decision) String() string {
	switch d {
	case ShowLoading:
		return "loading"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

// Decide — чистая функция охраны разделов.
//
// Порядок проверок фиксирован: пока идет гидратация, состояние сессии
// неизвестно и решение — заглушка; без пользователя — на вход; при
// неподходящей роли — на раздел проектов (не на вход); иначе показать.
// Пустой allowed означает, что раздел доступен любой роли.
func Decide(user *client.User, isLoading bool, allowed []client.UserRole) Decision {
	if isLoading {
		return ShowLoading
	}

	if user == nil {
		return RedirectLogin
	}

	if len(allowed) > 0 {
		for _, role := range allowed {
			if user.Role == role {
				return Render
			}
		}
		return RedirectHome
	}

	return Render
}
