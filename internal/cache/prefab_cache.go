package cache

import (
	"context"
	"time"

	"github.com/annel0/mmo-blockarea/internal/blockarea"
	"github.com/annel0/mmo-blockarea/internal/logging"
	"github.com/annel0/mmo-blockarea/internal/storage"
)

const prefabKeyPrefix = "prefab:"

// PrefabCache реализует storage.PrefabRepo поверх постоянного репозитория,
// держа сжатые заготовки в Hot Cache (Read-Through, инвалидация при записи).
type PrefabCache struct {
	repo       storage.PrefabRepo
	cache      CacheRepo
	compressor *storage.Compressor
	ttl        time.Duration
}

// NewPrefabCache создает кеширующую обертку над репозиторием заготовок
func NewPrefabCache(repo storage.PrefabRepo, cache CacheRepo, ttl time.Duration) (*PrefabCache, error) {
	compressor, err := storage.NewCompressor()
	if err != nil {
		return nil, err
	}
	return &PrefabCache{
		repo:       repo,
		cache:      cache,
		compressor: compressor,
		ttl:        ttl,
	}, nil
}

func prefabKey(name string) string {
	return prefabKeyPrefix + name
}

// Save сохраняет заготовку в репозиторий и инвалидирует кеш на всех узлах
func (p *PrefabCache) Save(ctx context.Context, name string, area *blockarea.BlockArea) error {
	if err := p.repo.Save(ctx, name, area); err != nil {
		return err
	}
	if err := p.cache.Invalidate(ctx, prefabKey(name)); err != nil {
		logging.Warn("Не удалось инвалидировать заготовку %q в кеше: %v", name, err)
	}
	return nil
}

// Load отдает заготовку из кеша, при промахе читает репозиторий и заполняет кеш
func (p *PrefabCache) Load(ctx context.Context, name string) (*blockarea.BlockArea, bool, error) {
	key := prefabKey(name)

	blob, err := p.cache.Get(ctx, key)
	if err == nil {
		area, decErr := p.compressor.DecodePrefab(blob)
		if decErr == nil {
			return area, true, nil
		}
		logging.Warn("Поврежденная заготовка %q в кеше, удаляем: %v", name, decErr)
		_ = p.cache.Delete(ctx, key)
	} else if !IsCacheMiss(err) {
		logging.Warn("Кеш недоступен для заготовки %q: %v", name, err)
	}

	area, found, err := p.repo.Load(ctx, name)
	if err != nil || !found {
		return area, found, err
	}

	if blob, err := p.compressor.EncodePrefab(area); err == nil {
		if err := p.cache.Set(ctx, key, blob, p.ttl); err != nil {
			logging.Debug("Не удалось поместить заготовку %q в кеш: %v", name, err)
		}
	}
	return area, true, nil
}

// Delete удаляет заготовку из репозитория и кеша
func (p *PrefabCache) Delete(ctx context.Context, name string) error {
	if err := p.repo.Delete(ctx, name); err != nil {
		return err
	}
	if err := p.cache.Invalidate(ctx, prefabKey(name)); err != nil {
		logging.Warn("Не удалось инвалидировать заготовку %q в кеше: %v", name, err)
	}
	return nil
}

// List перечисляет заготовки репозитория, кеш не используется
func (p *PrefabCache) List(ctx context.Context) ([]string, error) {
	return p.repo.List(ctx)
}

// HandleInvalidation удаляет ключ из локального кеша по уведомлению другого узла.
// Передается в CacheInvalidator.SubscribeInvalidations.
func (p *PrefabCache) HandleInvalidation(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.cache.Delete(ctx, key)
}

// Metrics возвращает метрики кеша
func (p *PrefabCache) Metrics() *CacheMetrics {
	return p.cache.GetMetrics()
}

// Close освобождает компрессор. Репозиторий и кеш закрывает владелец.
func (p *PrefabCache) Close() {
	p.compressor.Close()
}
