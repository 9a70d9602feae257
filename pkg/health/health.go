package health

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthChecker интерфейс для проверки здоровья сервиса
type HealthChecker interface {
	Check() *HealthStatus
}

// HealthStatus представляет статус здоровья сервиса
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`
	Uptime    string    `json:"uptime,omitempty"`
}

// SimpleHealthChecker простая реализация HealthChecker
type SimpleHealthChecker struct {
	version   string
	startedAt time.Time
}

// NewSimpleHealthChecker создает новый SimpleHealthChecker
func NewSimpleHealthChecker(version string) *SimpleHealthChecker {
	return &SimpleHealthChecker{version: version, startedAt: time.Now()}
}

// Check проверяет здоровье сервиса
func (s *SimpleHealthChecker) Check() *HealthStatus {
	return &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Uptime:    time.Since(s.startedAt).Round(time.Second).String(),
	}
}

// Handler создает HTTP обработчик для health check эндпоинта
func Handler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := checker.Check()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(status)
	}
}

// LiveHandler создает HTTP обработчик для live check эндпоинта
func LiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
	}
}
