package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"BrandPulseCLI/internal/store"
	pkgerrors "BrandPulseCLI/pkg/errors"
	"BrandPulseCLI/pkg/logger"
)

const userAgent = "BrandPulse-CLI/1.1"

// Observer получает события пайплайна запросов (хук для метрик)
type Observer interface {
	APIRequest(method, endpoint string, statusCode int, duration time.Duration)
	TokenRefreshed(success bool)
}

// API представляет единый пайплайн HTTP запросов к бэкенду BrandPulse.
//
// Каждый исходящий запрос получает bearer access токен (если он сохранен)
// и X-Request-Id. При ответе 401 выполняется ровно одна попытка обновить
// пару токенов и повторить запрос; номер попытки передается явным
// параметром, а не флагом на объекте запроса. Неудачный refresh — конец
// сессии: оба токена сбрасываются, наверх уходит ошибка с кодом
// SESSION_EXPIRED, навигацией занимается вызывающая сторона.
type API struct {
	baseURL    string
	httpClient *http.Client
	tokens     store.TokenStore
	log        logger.Logger
	observer   Observer
}

// NewAPI создает новый пайплайн запросов.
// baseURL — адрес бэкенда без версионного префикса (например http://localhost:8000).
func NewAPI(baseURL string, timeout time.Duration, tokens store.TokenStore, log logger.Logger) *API {
	return &API{
		baseURL: baseURL + "/api/v1",
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
		log:    log,
	}
}

// SetObserver подключает наблюдателя событий пайплайна
func (a *API) SetObserver(o Observer) {
	a.observer = o
}

// do выполняет запрос с JSON телом и декодирует JSON ответ в out
func (a *API) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	var payload []byte
	contentType := ""
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("ошибка кодирования запроса: %w", err)
		}
		contentType = "application/json"
	}

	data, err := a.execute(ctx, method, path, query, contentType, payload, 0)
	if err != nil {
		return err
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("ошибка декодирования ответа: %w", err)
		}
	}

	return nil
}

// doForm выполняет запрос с form-urlencoded телом и декодирует ответ в out
func (a *API) doForm(ctx context.Context, method, path string, form url.Values, out interface{}) error {
	data, err := a.execute(ctx, method, path, nil, "application/x-www-form-urlencoded", []byte(form.Encode()), 0)
	if err != nil {
		return err
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("ошибка декодирования ответа: %w", err)
		}
	}

	return nil
}

// doRaw выполняет запрос и возвращает тело ответа как есть (например CSV)
func (a *API) doRaw(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	return a.execute(ctx, method, path, query, "", nil, 0)
}

// execute отправляет запрос с явным номером попытки и возвращает тело
// успешного ответа. attempt > 0 означает, что запрос уже повторялся после
// обновления токенов, и второй отказ в авторизации не перехватывается.
func (a *API) execute(ctx context.Context, method, path string, query url.Values, contentType string, payload []byte, attempt int) ([]byte, error) {
	reqURL := a.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания HTTP запроса: %w", err)
	}

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("X-Request-Id", uuid.NewString())
	if token := a.tokens.AccessToken(); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения HTTP запроса: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if a.observer != nil {
		a.observer.APIRequest(method, path, resp.StatusCode, time.Since(start))
	}

	if resp.StatusCode < 400 {
		return data, nil
	}

	apiErr := parseAPIError(resp.StatusCode, data)

	if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
		return a.refreshAndRetry(ctx, method, path, query, contentType, payload, apiErr)
	}

	return nil, apiErr
}

// refreshAndRetry выполняет единственную попытку обновления пары токенов
// и повтор исходного запроса. origErr — исходный отказ в авторизации.
func (a *API) refreshAndRetry(ctx context.Context, method, path string, query url.Values, contentType string, payload []byte, origErr *pkgerrors.Error) ([]byte, error) {
	refreshToken := a.tokens.RefreshToken()
	if refreshToken == "" {
		return nil, origErr
	}

	a.log.Debug("Access token rejected, refreshing", logger.String("path", path))

	pair, err := a.refresh(ctx, refreshToken)
	if err != nil {
		// Refresh не удался — сессия закончилась. Сбрасываем оба токена
		// и отдаем исходный отказ под кодом SESSION_EXPIRED.
		if clearErr := a.tokens.Clear(); clearErr != nil {
			a.log.Warn("Failed to clear tokens", logger.Error(clearErr))
		}
		if a.observer != nil {
			a.observer.TokenRefreshed(false)
		}
		a.log.Warn("Token refresh failed, session terminated", logger.Error(err))
		return nil, pkgerrors.Wrap(origErr, pkgerrors.ErrSessionExpired, "сессия недействительна")
	}

	if err := a.tokens.Save(pair); err != nil {
		return nil, fmt.Errorf("ошибка сохранения токенов: %w", err)
	}
	if a.observer != nil {
		a.observer.TokenRefreshed(true)
	}

	return a.execute(ctx, method, path, query, contentType, payload, 1)
}

// refresh обменивает refresh токен на новую пару.
// Идет напрямую, минуя пайплайн с повтором: повтор refresh не имеет смысла.
func (a *API) refresh(ctx context.Context, refreshToken string) (*store.TokenPair, error) {
	body, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return nil, fmt.Errorf("ошибка кодирования запроса: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/auth/refresh", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания HTTP запроса: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения HTTP запроса: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseAPIError(resp.StatusCode, data)
	}

	var pair store.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return nil, fmt.Errorf("ошибка декодирования ответа: %w", err)
	}

	return &pair, nil
}

// parseAPIError переводит ответ бэкенда с ошибкой в кастомную ошибку.
// Бэкенд кладет текст в поле detail.
func parseAPIError(statusCode int, body []byte) *pkgerrors.Error {
	var payload struct {
		Detail string `json:"detail"`
	}
	detail := ""
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err == nil {
			detail = payload.Detail
		}
	}
	return pkgerrors.FromHTTPStatus(statusCode, detail)
}
