package cache

import (
	"context"
	"sync"
	"time"

	"github.com/annel0/mmo-blockarea/internal/logging"
)

// MemoryCache реализует CacheRepo в памяти процесса.
// Используется как fallback, когда Redis недоступен, и в тестах.
type MemoryCache struct {
	mu          sync.RWMutex
	items       map[string]memoryItem
	config      *CacheConfig
	invalidator CacheInvalidator
	now         func() time.Time
	stats       stats
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache создает кеш в памяти
func NewMemoryCache(config *CacheConfig, invalidator CacheInvalidator) *MemoryCache {
	if config == nil {
		config = &CacheConfig{}
	}
	config.applyDefaults()

	logging.Info("Используется кеш в памяти (TTL по умолчанию %v)", config.DefaultTTL)
	return &MemoryCache{
		items:       make(map[string]memoryItem),
		config:      config,
		invalidator: invalidator,
		now:         time.Now,
	}
}

// Get получает значение, если оно не истекло
func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	defer m.stats.recordLatency(time.Now())

	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()

	if !ok || !m.now().Before(item.expiresAt) {
		m.stats.miss()
		return nil, ErrCacheMiss
	}
	m.stats.hit()
	return append([]byte(nil), item.value...), nil
}

// Set сохраняет копию значения
func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return ErrInvalidKey
	}
	defer m.stats.recordLatency(time.Now())

	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = memoryItem{
		value:     append([]byte(nil), value...),
		expiresAt: m.now().Add(m.config.effectiveTTL(ttl)),
	}
	m.evictExpiredLocked()
	return nil
}

// Delete удаляет ключ
func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

// Exists проверяет наличие неистекшего ключа
func (m *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[key]
	return ok && m.now().Before(item.expiresAt), nil
}

// Invalidate удаляет ключ и уведомляет другие узлы
func (m *MemoryCache) Invalidate(ctx context.Context, key string) error {
	if err := m.Delete(ctx, key); err != nil {
		return err
	}
	if m.invalidator != nil {
		return m.invalidator.PublishInvalidation(ctx, key)
	}
	return nil
}

// Close ничего не делает
func (m *MemoryCache) Close() error {
	return nil
}

// GetMetrics возвращает метрики кеша
func (m *MemoryCache) GetMetrics() *CacheMetrics {
	return m.stats.snapshot()
}

// evictExpiredLocked удаляет истекшие записи. Вызывается под блокировкой.
func (m *MemoryCache) evictExpiredLocked() {
	now := m.now()
	for key, item := range m.items {
		if !now.Before(item.expiresAt) {
			delete(m.items, key)
		}
	}
}
