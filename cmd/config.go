package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cliConfig "BrandPulseCLI/internal/config"
	"BrandPulseCLI/internal/output"
	pkgerrors "BrandPulseCLI/pkg/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Управление конфигурацией CLI",
	Long: `Команды для управления локальной конфигурацией CLI:
просмотр, инициализация и изменение настроек.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Инициализировать конфигурацию",
	Long:  "Создает файл конфигурации с настройками по умолчанию",
	RunE:  handleConfigInit,
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Просмотреть конфигурацию",
	Long:  "Показывает текущую конфигурацию",
	RunE:  handleConfigView,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Изменить настройку",
	Long: `Изменяет одну настройку и сохраняет файл конфигурации.
Поддерживаемые ключи: api.base_url, api.timeout, output.format,
output.colors, token_backend, redis.addr, redis.db, logger.level.`,
	Args: cobra.ExactArgs(2),
	RunE: handleConfigSet,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configSetCmd)

	configInitCmd.Flags().StringP("path", "p", "", "путь для создания конфигурации")
	configInitCmd.Flags().BoolP("force", "f", false, "перезаписать существующий файл")

	configViewCmd.Flags().StringP("format", "f", "yaml", "формат вывода (yaml, json)")
}

// resolveConfigPath возвращает путь к файлу конфигурации с учетом флага --config
func resolveConfigPath() (string, error) {
	if path := viper.GetString("config"); path != "" {
		return path, nil
	}
	return cliConfig.GetConfigPath()
}

func handleConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path, _ := cmd.Flags().GetString("path")

	if path == "" {
		var err error
		path, err = cliConfig.GetConfigPath()
		if err != nil {
			return fmt.Errorf("ошибка получения пути конфигурации: %w", err)
		}
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("файл конфигурации уже существует. Используйте --force для перезаписи")
		}
	}

	newCfg := cliConfig.DefaultConfig()
	newCfg.Path = path
	if err := newCfg.Save(); err != nil {
		return fmt.Errorf("ошибка сохранения конфигурации: %w", err)
	}

	fmt.Printf("✅ Конфигурация успешно инициализирована!\n")
	fmt.Printf("📁 Файл конфигурации: %s\n", path)
	fmt.Printf("💡 Отредактируйте файл для изменения настроек\n")
	return nil
}

func handleConfigView(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	viewCfg, err := cliConfig.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")

	formatter := output.GetFormatter(output.ParseFormat(format), true, false)
	result, err := formatter.Format(viewCfg)
	if err != nil {
		return err
	}

	fmt.Println(result)
	return nil
}

func handleConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	setCfg, err := cliConfig.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	switch key {
	case "api.base_url":
		setCfg.API.BaseURL = value
	case "api.timeout":
		timeout, err := strconv.Atoi(value)
		if err != nil {
			return pkgerrors.New(pkgerrors.ErrValidation, "api.timeout должен быть числом")
		}
		setCfg.API.Timeout = timeout
	case "output.format":
		setCfg.Output.Format = value
	case "output.colors":
		colors, err := strconv.ParseBool(value)
		if err != nil {
			return pkgerrors.New(pkgerrors.ErrValidation, "output.colors должен быть true или false")
		}
		setCfg.Output.Colors = colors
	case "token_backend":
		setCfg.TokenBackend = value
	case "redis.addr":
		setCfg.Redis.Addr = value
	case "redis.db":
		db, err := strconv.Atoi(value)
		if err != nil {
			return pkgerrors.New(pkgerrors.ErrValidation, "redis.db должен быть числом")
		}
		setCfg.Redis.DB = db
	case "logger.level":
		setCfg.Logger.Level = value
	default:
		return pkgerrors.New(pkgerrors.ErrValidation, fmt.Sprintf("неизвестный ключ: %s", key))
	}

	if err := setCfg.Validate(); err != nil {
		return err
	}

	if err := setCfg.Save(); err != nil {
		return fmt.Errorf("ошибка сохранения конфигурации: %w", err)
	}

	fmt.Printf("✅ %s = %s\n", key, value)
	return nil
}
