package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"BrandPulseCLI/internal/client"
	"BrandPulseCLI/internal/config"
	"BrandPulseCLI/internal/guard"
	climetrics "BrandPulseCLI/internal/metrics"
	"BrandPulseCLI/internal/output"
	"BrandPulseCLI/internal/session"
	"BrandPulseCLI/internal/store"
	pkgerrors "BrandPulseCLI/pkg/errors"
	"BrandPulseCLI/pkg/logger"
)

var (
	cfg       *config.Config
	appLogger logger.Logger
	rootCtx   context.Context

	tokens          store.TokenStore
	redisTokens     *store.RedisTokenStore
	api             *client.API
	authClient      *client.AuthClient
	projectClient   *client.ProjectClient
	dashboardClient *client.DashboardClient
	sess            *session.Session
	cliMetrics      *climetrics.CLIMetrics
)

// Execute выполняет корневую команду
func Execute(ctx context.Context) error {
	rootCtx = ctx

	start := time.Now()
	err := rootCmd.ExecuteContext(ctx)

	if cliMetrics != nil {
		cliMetrics.CommandExecuted(rootCmd.CalledAs(), err == nil, time.Since(start))
	}
	if redisTokens != nil {
		redisTokens.Close()
	}
	if appLogger != nil {
		appLogger.Sync()
	}

	return err
}

// rootCmd представляет базовую команду CLI
var rootCmd = &cobra.Command{
	Use:   "brandpulse",
	Short: "BrandPulse CLI - Управление маркетинговыми проектами",
	Long: `BrandPulse CLI - инструмент командной строки администратора
платформы маркетинговых кампаний BrandPulse.

Поддерживает управление аутентификацией, проектами (кампаниями брендов),
экспорт в CSV и просмотр метрик дашборда.`,
	Version:       "1.1.0",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if isLocalCommand(cmd) {
			return nil
		}
		return initInfra(cmd)
	},
}

func init() {
	// Глобальные флаги
	rootCmd.PersistentFlags().StringP("config", "c", "", "файл конфигурации (по умолчанию $HOME/.brandpulse/config.yaml)")
	rootCmd.PersistentFlags().StringP("server", "s", "", "адрес бэкенда (например http://localhost:8000)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "формат вывода (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "подробный вывод")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	viper.SetEnvPrefix("BRANDPULSE")
	viper.AutomaticEnv()

	// Подкоманды
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(telemetryCmd)
	rootCmd.AddCommand(completionCmd)
}

// isLocalCommand возвращает true для команд, которым не нужен бэкенд
func isLocalCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "config", "completion", "telemetry", "help", "version":
			return true
		}
	}
	return false
}

// initInfra поднимает инфраструктуру команды: конфигурацию, логгер,
// хранилище токенов, пайплайн запросов и сессию. Гидратация сессии
// выполняется здесь один раз, до запуска обработчика команды.
func initInfra(cmd *cobra.Command) error {
	var err error

	cfgPath := viper.GetString("config")
	if cfgPath == "" {
		cfgPath, err = config.GetConfigPath()
		if err != nil {
			return err
		}
	}

	cfg, err = config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	// Флаги и переменные окружения переопределяют файл
	if server := viper.GetString("server"); server != "" {
		cfg.API.BaseURL = server
	}
	if format := viper.GetString("output"); format != "" {
		cfg.Output.Format = format
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	level := cfg.Logger.Level
	if viper.GetBool("verbose") {
		level = "debug"
	}

	appLogger, err = logger.NewLogger(cfg.Logger.Environment, level, "brandpulse-cli")
	if err != nil {
		return fmt.Errorf("ошибка инициализации логгера: %w", err)
	}

	switch cfg.TokenBackend {
	case "redis":
		redisTokens, err = store.NewRedisTokenStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		tokens = redisTokens
	default:
		tokens, err = store.NewFileTokenStore()
		if err != nil {
			return err
		}
	}

	api = client.NewAPI(cfg.API.BaseURL, time.Duration(cfg.API.Timeout)*time.Second, tokens, appLogger)

	cliMetrics = climetrics.NewCLIMetrics(appLogger)
	api.SetObserver(cliMetrics)

	authClient = client.NewAuthClient(api)
	projectClient = client.NewProjectClient(api)
	dashboardClient = client.NewDashboardClient(api)

	sess = session.New(authClient, tokens, appLogger)
	sess.Hydrate(cmd.Context())

	return nil
}

// handleError единообразно обрабатывает ошибки команд
func handleError(err error, cmd *cobra.Command) error {
	if err == nil {
		return nil
	}

	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) {
		appErr = pkgerrors.New(pkgerrors.ErrInternal, err.Error())
	}

	if appLogger != nil {
		appLogger.Error("Command failed",
			logger.String("command", cmd.Name()),
			logger.Error(appErr))
	}

	// Конец сессии: токены уже сброшены пайплайном, пользователю
	// остается только войти заново.
	if appErr.Code == pkgerrors.ErrSessionExpired {
		return fmt.Errorf("%s: выполните 'brandpulse auth login'", appErr.GetUserMessage())
	}

	return fmt.Errorf("%s: %s", cmd.Name(), appErr.GetUserMessage())
}

// guardView проверяет доступ к разделу перед запуском обработчика.
// Пустой allowed означает, что раздел доступен любому вошедшему пользователю.
func guardView(allowed ...client.UserRole) error {
	decision := guard.Decide(sess.CurrentUser(), sess.IsLoading(), allowed)

	switch decision {
	case guard.ShowLoading:
		return pkgerrors.New(pkgerrors.ErrInternal, "сессия еще загружается, повторите команду")
	case guard.RedirectLogin:
		return pkgerrors.New(pkgerrors.ErrUnauthorized, "требуется вход: выполните 'brandpulse auth login'")
	case guard.RedirectHome:
		return pkgerrors.New(pkgerrors.ErrForbidden, "раздел недоступен вашей роли, используйте 'brandpulse projects list'")
	default:
		return nil
	}
}

// printResult выводит данные в выбранном формате.
// Для табличного формата используется table, для json/yaml — raw.
func printResult(table *output.TableData, raw interface{}) error {
	format := output.ParseFormat(cfg.Output.Format)

	useColors := cfg.Output.Colors && output.DetectColors()
	formatter := output.GetFormatter(format, true, useColors)

	var data interface{}
	if format == output.FormatTable {
		data = table
	} else {
		data = raw
	}

	result, err := formatter.Format(data)
	if err != nil {
		return err
	}

	fmt.Println(result)
	return nil
}
