package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ProjectClient представляет REST обертки над эндпоинтами проектов
type ProjectClient struct {
	api *API
}

// NewProjectClient создает новый клиент проектов
func NewProjectClient(api *API) *ProjectClient {
	return &ProjectClient{api: api}
}

// List возвращает страницу проектов с учетом фильтров
func (c *ProjectClient) List(ctx context.Context, filters ProjectFilters) (*ProjectListResponse, error) {
	query := url.Values{}
	if filters.Page > 0 {
		query.Set("page", strconv.Itoa(filters.Page))
	}
	if filters.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(filters.PerPage))
	}
	if filters.Region != "" {
		query.Set("region", filters.Region)
	}
	if filters.Status != "" {
		query.Set("status", filters.Status)
	}
	if filters.Category != "" {
		query.Set("category", filters.Category)
	}
	if filters.Salesperson != "" {
		query.Set("salesperson", filters.Salesperson)
	}
	if filters.Brand != "" {
		query.Set("brand", filters.Brand)
	}

	var list ProjectListResponse
	if err := c.api.do(ctx, http.MethodGet, "/projects/", query, nil, &list); err != nil {
		return nil, err
	}

	return &list, nil
}

// Get возвращает проект по ID
func (c *ProjectClient) Get(ctx context.Context, projectID int) (*Project, error) {
	var project Project
	if err := c.api.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d", projectID), nil, nil, &project); err != nil {
		return nil, err
	}

	return &project, nil
}

// Create создает новый проект
func (c *ProjectClient) Create(ctx context.Context, req *ProjectCreateRequest) (*Project, error) {
	var project Project
	if err := c.api.do(ctx, http.MethodPost, "/projects/", nil, req, &project); err != nil {
		return nil, err
	}

	return &project, nil
}

// Update обновляет проект по ID
func (c *ProjectClient) Update(ctx context.Context, projectID int, req *ProjectUpdateRequest) (*Project, error) {
	var project Project
	if err := c.api.do(ctx, http.MethodPut, fmt.Sprintf("/projects/%d", projectID), nil, req, &project); err != nil {
		return nil, err
	}

	return &project, nil
}

// Delete удаляет проект по ID
func (c *ProjectClient) Delete(ctx context.Context, projectID int) error {
	return c.api.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", projectID), nil, nil, nil)
}

// ExportCSV выгружает все проекты в CSV.
// Файл формирует бэкенд; клиент возвращает содержимое как есть.
func (c *ProjectClient) ExportCSV(ctx context.Context) ([]byte, error) {
	return c.api.doRaw(ctx, http.MethodGet, "/projects/export", nil)
}
