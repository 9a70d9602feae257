package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisTokenStore хранит пару токенов в Redis.
// Используется на общих хостах, где домашняя директория недоступна
// или агенты делят одну сессию.
type RedisTokenStore struct {
	client *redis.Client
	key    string
}

// NewRedisTokenStore создает новое хранилище токенов в Redis
func NewRedisTokenStore(addr, password string, db int) (*RedisTokenStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("ошибка подключения к Redis: %w", err)
	}

	return &RedisTokenStore{
		client: rdb,
		key:    "brandpulse:cli:tokens:current",
	}, nil
}

// Save сохраняет пару токенов одной записью.
// Пара сериализуется целиком, поэтому частичного состояния не бывает.
func (rs *RedisTokenStore) Save(pair *TokenPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("ошибка сериализации токенов: %w", err)
	}

	if err := rs.client.Set(context.Background(), rs.key, data, 0).Err(); err != nil {
		return fmt.Errorf("ошибка сохранения токенов в Redis: %w", err)
	}

	return nil
}

// Load загружает пару токенов из Redis
func (rs *RedisTokenStore) Load() (*TokenPair, error) {
	data, err := rs.client.Get(context.Background(), rs.key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNoTokens
		}
		return nil, fmt.Errorf("ошибка загрузки токенов из Redis: %w", err)
	}

	var pair TokenPair
	if err := json.Unmarshal([]byte(data), &pair); err != nil {
		return nil, fmt.Errorf("ошибка десериализации токенов: %w", err)
	}

	return &pair, nil
}

// Clear удаляет запись с токенами. Отсутствие записи ошибкой не считается.
func (rs *RedisTokenStore) Clear() error {
	if err := rs.client.Del(context.Background(), rs.key).Err(); err != nil {
		return fmt.Errorf("ошибка удаления токенов из Redis: %w", err)
	}
	return nil
}

// AccessToken возвращает access токен или пустую строку
func (rs *RedisTokenStore) AccessToken() string {
	if pair, err := rs.Load(); err == nil {
		return pair.AccessToken
	}
	return ""
}

// RefreshToken возвращает refresh токен или пустую строку
func (rs *RedisTokenStore) RefreshToken() string {
	if pair, err := rs.Load(); err == nil {
		return pair.RefreshToken
	}
	return ""
}

// Close закрывает подключение к Redis
func (rs *RedisTokenStore) Close() error {
	return rs.client.Close()
}
