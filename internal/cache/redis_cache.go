package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/annel0/mmo-blockarea/internal/logging"
	"github.com/go-redis/redis/v8"
)

// RedisCache реализует CacheRepo используя Redis как Hot Cache.
//
// Особенности:
// - Автоматические метрики (hit ratio, latency)
// - Инвалидация на других узлах через CacheInvalidator
type RedisCache struct {
	client      *redis.Client
	config      *CacheConfig
	invalidator CacheInvalidator
	stats       stats
}

// NewRedisCache создаёт новый Redis кеш.
//
// Параметры:
//
//	config - конфигурация Redis
//	invalidator - опциональный invalidator для Pub/Sub (может быть nil)
func NewRedisCache(config *CacheConfig, invalidator CacheInvalidator) (*RedisCache, error) {
	config.applyDefaults()

	rdb := redis.NewClient(&redis.Options{
		Addr:         config.RedisURL,
		Password:     config.RedisPassword,
		DB:           config.RedisDB,
		PoolSize:     config.MaxConnections,
		PoolTimeout:  config.PoolTimeout,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})

	// Проверяем соединение
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("не удалось подключиться к Redis: %w", err)
	}

	logging.Info("Redis кеш инициализирован: %s (db %d)", config.RedisURL, config.RedisDB)
	return &RedisCache{
		client:      rdb,
		config:      config,
		invalidator: invalidator,
	}, nil
}

// Get получает значение по ключу из Redis кеша.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	defer r.stats.recordLatency(time.Now())

	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		r.stats.miss()
		return nil, ErrCacheMiss
	}
	if err != nil {
		r.stats.miss()
		logging.Error("Ошибка Redis Get для ключа %s: %v", key, err)
		return nil, fmt.Errorf("redis get: %w", err)
	}

	r.stats.hit()
	return val, nil
}

// Set сохраняет значение в Redis кеше.
func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return ErrInvalidKey
	}
	defer r.stats.recordLatency(time.Now())

	if err := r.client.Set(ctx, key, value, r.config.effectiveTTL(ttl)).Err(); err != nil {
		logging.Error("Ошибка Redis Set для ключа %s: %v", key, err)
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete удаляет ключ из кеша.
func (r *RedisCache) Delete(ctx context.Context, key string) error {
	defer r.stats.recordLatency(time.Now())

	if err := r.client.Del(ctx, key).Err(); err != nil {
		logging.Error("Ошибка Redis Delete для ключа %s: %v", key, err)
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}

// Exists проверяет существование ключа в кеше.
func (r *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	defer r.stats.recordLatency(time.Now())

	count, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return count > 0, nil
}

// Invalidate удаляет ключ и уведомляет другие узлы.
func (r *RedisCache) Invalidate(ctx context.Context, key string) error {
	if err := r.Delete(ctx, key); err != nil {
		return err
	}
	if r.invalidator == nil {
		return nil
	}
	if err := r.invalidator.PublishInvalidation(ctx, key); err != nil {
		logging.Error("Не удалось разослать инвалидацию ключа %s: %v", key, err)
		return err
	}
	return nil
}

// Close закрывает соединение с Redis.
func (r *RedisCache) Close() error {
	if err := r.client.Close(); err != nil {
		logging.Error("Ошибка закрытия соединения с Redis: %v", err)
		return err
	}

	logging.Info("Redis кеш закрыт")
	return nil
}

// GetMetrics возвращает текущие метрики кеша.
func (r *RedisCache) GetMetrics() *CacheMetrics {
	return r.stats.snapshot()
}
