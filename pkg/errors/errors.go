package errors

import (
	"fmt"
	"net/http"
)

// Error представляет кастомную ошибку с дополнительной информацией
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

// ErrorCode представляет код ошибки
type ErrorCode string

// Определение кодов ошибок
const (
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrValidation     ErrorCode = "VALIDATION_ERROR"
	ErrUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrForbidden      ErrorCode = "FORBIDDEN"
	ErrConflict       ErrorCode = "CONFLICT"
	ErrInternal       ErrorCode = "INTERNAL_ERROR"
	// ErrSessionExpired — сигнал транспортного слоя о том, что сессия
	// недействительна: refresh не удался, оба токена сброшены. Верхний
	// уровень (командная оболочка) переводит его в предложение заново
	// выполнить вход; сам транспорт навигацией не занимается.
	ErrSessionExpired ErrorCode = "SESSION_EXPIRED"
)

// Error возвращает сообщение об ошибке
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap возвращает причину ошибки
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is проверяет, совпадает ли код ошибки с целевой
func (e *Error) Is(target error) bool {
	if te, ok := target.(*Error); ok {
		return e.Code == te.Code
	}
	return false
}

// New создает новую кастомную ошибку
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap оборачивает существующую ошибку в кастомную
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WithDetails добавляет детали к ошибке
func (e *Error) WithDetails(details string) *Error {
	if e == nil {
		return nil
	}
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// HTTPStatus возвращает соответствующий HTTP статус для ошибки
func (e *Error) HTTPStatus() int {
	if e == nil {
		return http.StatusOK
	}

	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrValidation:
		return http.StatusBadRequest
	case ErrUnauthorized, ErrSessionExpired:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrConflict:
		return http.StatusConflict
	case ErrInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// FromHTTPStatus преобразует HTTP статус ответа бэкенда в кастомную ошибку.
// detail — текст ошибки из тела ответа (поле detail), может быть пустым.
func FromHTTPStatus(statusCode int, detail string) *Error {
	if statusCode < 400 {
		return nil
	}

	var code ErrorCode
	switch statusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		code = ErrValidation
	case http.StatusUnauthorized:
		code = ErrUnauthorized
	case http.StatusForbidden:
		code = ErrForbidden
	case http.StatusNotFound:
		code = ErrNotFound
	case http.StatusConflict:
		code = ErrConflict
	default:
		code = ErrInternal
	}

	message := detail
	if message == "" {
		message = fmt.Sprintf("сервер вернул статус: %d", statusCode)
	}

	return New(code, message)
}

// GetUserMessage возвращает пользовательское сообщение об ошибке
func (e *Error) GetUserMessage() string {
	if e == nil {
		return ""
	}

	if e.Message != "" && e.Code != ErrInternal && e.Code != ErrSessionExpired {
		return e.Message
	}

	switch e.Code {
	case ErrNotFound:
		return "Ресурс не найден"
	case ErrValidation:
		return "Ошибка валидации данных"
	case ErrUnauthorized:
		return "Не авторизован"
	case ErrForbidden:
		return "Доступ запрещен"
	case ErrConflict:
		return "Конфликт данных (например, дубликат)"
	case ErrSessionExpired:
		return "Сессия истекла, выполните вход заново"
	case ErrInternal:
		return "Внутренняя ошибка сервера"
	default:
		return "Произошла ошибка"
	}
}
