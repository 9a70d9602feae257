package metrics

import (
	"time"

	"BrandPulseCLI/pkg/logger"
	"BrandPulseCLI/pkg/metrics"
)

// CLIMetrics содержит метрики операций CLI
type CLIMetrics struct {
	metrics *metrics.Metrics
	logger  logger.Logger
}

// NewCLIMetrics создает новые метрики для CLI
func NewCLIMetrics(log logger.Logger) *CLIMetrics {
	return &CLIMetrics{
		metrics: metrics.NewMetrics("brandpulse_cli"),
		logger:  log,
	}
}

// statusLabel возвращает метку исхода
func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// CommandExecuted регистрирует выполнение команды
func (c *CLIMetrics) CommandExecuted(command string, success bool, duration time.Duration) {
	c.logger.Debug("Command executed",
		logger.String("command", command),
		logger.Bool("success", success),
		logger.Duration("duration", duration))

	c.metrics.RequestCount.WithLabelValues("cli", command, statusLabel(success)).Inc()
	c.metrics.RequestDuration.WithLabelValues("cli", command).Observe(duration.Seconds())

	if !success {
		c.metrics.ErrorsCount.WithLabelValues("cli", command, "execution_failed").Inc()
	}
}

// APIRequest регистрирует запрос к бэкенду (хук пайплайна)
func (c *CLIMetrics) APIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	c.logger.Debug("API request",
		logger.String("method", method),
		logger.String("endpoint", endpoint),
		logger.Int("status_code", statusCode),
		logger.Duration("duration", duration))

	c.metrics.RequestCount.WithLabelValues(method, endpoint, statusLabel(statusCode < 400)).Inc()
	c.metrics.RequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())

	if statusCode >= 400 {
		errorType := "client_error"
		if statusCode >= 500 {
			errorType = "server_error"
		}
		c.metrics.ErrorsCount.WithLabelValues(method, endpoint, errorType).Inc()
	}
}

// TokenRefreshed регистрирует попытку обновления токенов (хук пайплайна)
func (c *CLIMetrics) TokenRefreshed(success bool) {
	c.logger.Debug("Token refresh attempt", logger.Bool("success", success))
	c.metrics.TokenRefreshCount.WithLabelValues(statusLabel(success)).Inc()
}

// ExportPerformed регистрирует операцию экспорта
func (c *CLIMetrics) ExportPerformed(success bool, bytes int, duration time.Duration) {
	c.logger.Debug("Export performed",
		logger.Bool("success", success),
		logger.Int("bytes", bytes),
		logger.Duration("duration", duration))

	c.metrics.RequestCount.WithLabelValues("cli", "export", statusLabel(success)).Inc()
	c.metrics.RequestDuration.WithLabelValues("cli", "export").Observe(duration.Seconds())
}
