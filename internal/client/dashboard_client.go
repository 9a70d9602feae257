package client

import (
	"context"
	"net/http"
	"net/url"
)

// DashboardClient представляет REST обертки над эндпоинтами дашборда
type DashboardClient struct {
	api *API
}

// NewDashboardClient создает новый клиент дашборда
func NewDashboardClient(api *API) *DashboardClient {
	return &DashboardClient{api: api}
}

// dateQuery собирает параметры периода. Даты в формате YYYY-MM-DD,
// пустые значения не отправляются.
func dateQuery(startDate, endDate string) url.Values {
	query := url.Values{}
	if startDate != "" {
		query.Set("start_date", startDate)
	}
	if endDate != "" {
		query.Set("end_date", endDate)
	}
	return query
}

// Metrics возвращает агрегированные метрики дашборда за период
func (c *DashboardClient) Metrics(ctx context.Context, startDate, endDate string) (*DashboardMetrics, error) {
	var metrics DashboardMetrics
	if err := c.api.do(ctx, http.MethodGet, "/dashboard/metrics", dateQuery(startDate, endDate), nil, &metrics); err != nil {
		return nil, err
	}

	return &metrics, nil
}

// ClientsByRegion возвращает количество уникальных брендов по регионам
func (c *DashboardClient) ClientsByRegion(ctx context.Context, startDate, endDate string) ([]RegionCount, error) {
	var counts []RegionCount
	if err := c.api.do(ctx, http.MethodGet, "/dashboard/clients-by-region", dateQuery(startDate, endDate), nil, &counts); err != nil {
		return nil, err
	}

	return counts, nil
}

// CampaignsByRegion возвращает количество подписанных кампаний по регионам
func (c *DashboardClient) CampaignsByRegion(ctx context.Context, startDate, endDate string) ([]RegionCount, error) {
	var counts []RegionCount
	if err := c.api.do(ctx, http.MethodGet, "/dashboard/campaigns-by-region", dateQuery(startDate, endDate), nil, &counts); err != nil {
		return nil, err
	}

	return counts, nil
}

// count запрашивает скалярную метрику. Бэкенд отдает объект с одним
// числовым полем, имя которого совпадает с именем эндпоинта.
func (c *DashboardClient) count(ctx context.Context, path, field, startDate, endDate string) (int, error) {
	var payload map[string]int
	if err := c.api.do(ctx, http.MethodGet, path, dateQuery(startDate, endDate), nil, &payload); err != nil {
		return 0, err
	}

	return payload[field], nil
}

// BriefsApproved возвращает количество одобренных брифов за период
func (c *DashboardClient) BriefsApproved(ctx context.Context, startDate, endDate string) (int, error) {
	return c.count(ctx, "/dashboard/briefs-approved", "briefs_approved", startDate, endDate)
}

// VideosGenerated возвращает количество созданных видео за период
func (c *DashboardClient) VideosGenerated(ctx context.Context, startDate, endDate string) (int, error) {
	return c.count(ctx, "/dashboard/videos-generated", "videos_generated", startDate, endDate)
}

// VideosApproved возвращает количество одобренных видео за период
func (c *DashboardClient) VideosApproved(ctx context.Context, startDate, endDate string) (int, error) {
	return c.count(ctx, "/dashboard/videos-approved", "videos_approved", startDate, endDate)
}

// CampaignsCompleted возвращает количество завершенных кампаний за период
func (c *DashboardClient) CampaignsCompleted(ctx context.Context, startDate, endDate string) (int, error) {
	return c.count(ctx, "/dashboard/campaigns-completed", "campaigns_completed", startDate, endDate)
}
