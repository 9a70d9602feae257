package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileTokenStore хранит пару токенов в JSON файле в домашней директории
type FileTokenStore struct {
	tokensPath string
}

// NewFileTokenStore создает новое файловое хранилище токенов.
// Директория берется из BRANDPULSE_HOME, иначе используется ~/.brandpulse.
func NewFileTokenStore() (*FileTokenStore, error) {
	home := os.Getenv("BRANDPULSE_HOME")
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("ошибка получения домашней директории: %w", err)
		}
		home = filepath.Join(home, ".brandpulse")
	}

	if err := os.MkdirAll(home, 0700); err != nil {
		return nil, fmt.Errorf("ошибка создания директории %s: %w", home, err)
	}

	return &FileTokenStore{
		tokensPath: filepath.Join(home, "tokens"),
	}, nil
}

// Save сохраняет пару токенов в файл.
// Запись идет во временный файл с последующим rename, чтобы на диске
// никогда не оказалось состояние с одним токеном из пары.
func (fs *FileTokenStore) Save(pair *TokenPair) error {
	data, err := json.MarshalIndent(pair, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации токенов: %w", err)
	}

	tmpPath := fs.tokensPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("ошибка сохранения токенов: %w", err)
	}

	if err := os.Rename(tmpPath, fs.tokensPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("ошибка сохранения токенов: %w", err)
	}

	return nil
}

// Load загружает пару токенов из файла
func (fs *FileTokenStore) Load() (*TokenPair, error) {
	data, err := os.ReadFile(fs.tokensPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoTokens
		}
		return nil, fmt.Errorf("ошибка чтения файла токенов: %w", err)
	}

	var pair TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return nil, fmt.Errorf("ошибка десериализации токенов: %w", err)
	}

	return &pair, nil
}

// Clear удаляет файл токенов. Отсутствие файла ошибкой не считается.
func (fs *FileTokenStore) Clear() error {
	if err := os.Remove(fs.tokensPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ошибка удаления файла токенов: %w", err)
	}
	return nil
}

// AccessToken возвращает access токен или пустую строку
func (fs *FileTokenStore) AccessToken() string {
	if pair, err := fs.Load(); err == nil {
		return pair.AccessToken
	}
	return ""
}

// RefreshToken возвращает refresh токен или пустую строку
func (fs *FileTokenStore) RefreshToken() string {
	if pair, err := fs.Load(); err == nil {
		return pair.RefreshToken
	}
	return ""
}
