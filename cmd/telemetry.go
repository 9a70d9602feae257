package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"BrandPulseCLI/pkg/health"
	"BrandPulseCLI/pkg/logger"
	"BrandPulseCLI/pkg/metrics"
)

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Сервер телеметрии CLI",
	Long: `Команды сервера телеметрии: health check и метрики Prometheus
для долгоживущих запусков CLI (например, в кронах и пайплайнах).`,
}

var telemetryServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP сервер телеметрии",
	Long: `Запускает HTTP сервер с эндпоинтами /metrics, /health и /live.
Работает до получения SIGINT или SIGTERM.`,
	RunE: handleTelemetryServe,
}

func init() {
	telemetryCmd.AddCommand(telemetryServeCmd)

	telemetryServeCmd.Flags().IntP("port", "p", 9090, "порт HTTP сервера")
}

func handleTelemetryServe(cmd *cobra.Command, args []string) error {
	port, _ := cmd.Flags().GetInt("port")

	srvLogger, err := logger.NewLogger("production", "info", "brandpulse-cli-telemetry")
	if err != nil {
		return fmt.Errorf("ошибка инициализации логгера: %w", err)
	}
	defer srvLogger.Sync()

	if err := metrics.InitializeOpenTelemetry("brandpulse-cli", rootCmd.Version); err != nil {
		return fmt.Errorf("ошибка инициализации трассировки: %w", err)
	}

	appMetrics := metrics.NewMetrics("brandpulse_cli")
	healthChecker := health.NewSimpleHealthChecker(rootCmd.Version)

	mux := http.NewServeMux()
	mux.Handle("/metrics", appMetrics.GetHandler())
	mux.HandleFunc("/health", health.Handler(healthChecker))
	mux.HandleFunc("/live", health.LiveHandler())

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: appMetrics.Middleware(mux),
	}

	go func() {
		srvLogger.Info("Starting telemetry server", logger.Int("port", port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			srvLogger.Error("Telemetry server failed", logger.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	srvLogger.Info("Shutting down telemetry server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		srvLogger.Error("Server shutdown failed", logger.Error(err))
		return err
	}

	srvLogger.Info("Telemetry server stopped")
	return nil
}
