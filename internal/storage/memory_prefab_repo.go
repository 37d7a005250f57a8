package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/annel0/mmo-blockarea/internal/blockarea"
)

// MemoryPrefabRepo реализует PrefabRepo в памяти.
// Используется как fallback, когда БД недоступна, или для локальной разработки.
// ВНИМАНИЕ: Данные теряются при перезапуске сервера!
type MemoryPrefabRepo struct {
	mu   sync.RWMutex
	data map[string]*blockarea.BlockArea // имя -> копия области
}

// NewMemoryPrefabRepo создает новый репозиторий заготовок в памяти
func NewMemoryPrefabRepo() *MemoryPrefabRepo {
	return &MemoryPrefabRepo{
		data: make(map[string]*blockarea.BlockArea),
	}
}

// Save сохраняет копию области
func (r *MemoryPrefabRepo) Save(ctx context.Context, name string, area *blockarea.BlockArea) error {
	if err := validatePrefabName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[name] = area.Clone()
	return nil
}

// Load возвращает копию сохраненной области
func (r *MemoryPrefabRepo) Load(ctx context.Context, name string) (*blockarea.BlockArea, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	area, ok := r.data[name]
	if !ok {
		return nil, false, nil
	}
	return area.Clone(), true, nil
}

// Delete удаляет заготовку
func (r *MemoryPrefabRepo) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[name]; !ok {
		return fmt.Errorf("заготовка %q не найдена", name)
	}
	delete(r.data, name)
	return nil
}

// List возвращает имена заготовок
func (r *MemoryPrefabRepo) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.data))
	for name := range r.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
