package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Config представляет конфигурацию CLI
type Config struct {
	// API настройки
	API struct {
		BaseURL string `yaml:"base_url" json:"base_url"`
		Timeout int    `yaml:"timeout" json:"timeout"`
	} `yaml:"api" json:"api"`

	// Настройки вывода
	Output struct {
		Format string `yaml:"format" json:"format"` // table, json, yaml
		Colors bool   `yaml:"colors" json:"colors"`
	} `yaml:"output" json:"output"`

	// Хранилище токенов: file или redis
	TokenBackend string `yaml:"token_backend" json:"token_backend"`

	// Redis настройки (используются при token_backend: redis)
	Redis struct {
		Addr     string `yaml:"addr" json:"addr"`
		Password string `yaml:"password" json:"password"`
		DB       int    `yaml:"db" json:"db"`
	} `yaml:"redis" json:"redis"`

	// Настройки логирования
	Logger struct {
		Level       string `yaml:"level" json:"level"`
		Environment string `yaml:"environment" json:"environment"`
	} `yaml:"logger" json:"logger"`

	// Путь к файлу конфигурации
	Path string `yaml:"-" json:"-"`
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	config := &Config{}

	// API настройки по умолчанию
	config.API.BaseURL = "http://localhost:8000"
	config.API.Timeout = 30

	// Настройки вывода по умолчанию
	config.Output.Format = "table"
	config.Output.Colors = true

	// Токены в файле, Redis подключается явно
	config.TokenBackend = "file"
	config.Redis.Addr = "localhost:6379"
	config.Redis.DB = 0

	// Логирование по умолчанию
	config.Logger.Level = "info"
	config.Logger.Environment = "production"

	return config
}

// LoadConfig загружает конфигурацию из файла
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	config.Path = path

	// Если файл не существует, возвращаем конфигурацию по умолчанию
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации: %w", err)
	}

	return config, nil
}

// Save сохраняет конфигурацию в файл
func (c *Config) Save() error {
	if c.Path == "" {
		return fmt.Errorf("путь к файлу конфигурации не указан")
	}

	dir := filepath.Dir(c.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("ошибка создания директории: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("ошибка сериализации конфигурации: %w", err)
	}

	if err := os.WriteFile(c.Path, data, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла конфигурации: %w", err)
	}

	return nil
}

// GetConfigPath возвращает путь к файлу конфигурации.
// Переменная окружения BRANDPULSE_HOME переопределяет домашнюю директорию.
func GetConfigPath() (string, error) {
	if home := os.Getenv("BRANDPULSE_HOME"); home != "" {
		return filepath.Join(home, "config.yaml"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("ошибка получения домашней директории: %w", err)
	}

	return filepath.Join(home, ".brandpulse", "config.yaml"), nil
}

// InitConfig инициализирует конфигурацию в домашней директории пользователя
func InitConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	config.Path = path

	if err := config.Save(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate проверяет валидность конфигурации
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API BaseURL не может быть пустым")
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("API таймаут должен быть положительным числом")
	}

	validFormats := map[string]bool{
		"table": true,
		"json":  true,
		"yaml":  true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("неверный формат вывода: %s", c.Output.Format)
	}

	switch c.TokenBackend {
	case "file", "redis":
	default:
		return fmt.Errorf("неверное хранилище токенов: %s", c.TokenBackend)
	}

	if c.TokenBackend == "redis" && c.Redis.Addr == "" {
		return fmt.Errorf("адрес Redis не может быть пустым")
	}

	return nil
}

// SetAPISettings устанавливает настройки API
func (c *Config) SetAPISettings(baseURL string, timeout int) {
	c.API.BaseURL = baseURL
	c.API.Timeout = timeout
}

// SetOutputSettings устанавливает настройки вывода
func (c *Config) SetOutputSettings(format string, colors bool) {
	c.Output.Format = format
	c.Output.Colors = colors
}
