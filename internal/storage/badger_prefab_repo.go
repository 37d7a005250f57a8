package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/annel0/mmo-blockarea/internal/blockarea"
	"github.com/dgraph-io/badger/v3"
)

const prefabKeyPrefix = "prefab:"

// BadgerPrefabRepo реализует PrefabRepo поверх базы хранилища мира
type BadgerPrefabRepo struct {
	ws *WorldStorage
}

// NewBadgerPrefabRepo создает репозиторий заготовок в той же BadgerDB, что и чанки
func NewBadgerPrefabRepo(ws *WorldStorage) *BadgerPrefabRepo {
	return &BadgerPrefabRepo{ws: ws}
}

// Save сохраняет сжатую область
func (r *BadgerPrefabRepo) Save(ctx context.Context, name string, area *blockarea.BlockArea) error {
	if err := validatePrefabName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.ws.mutex.RLock()
	defer r.ws.mutex.RUnlock()
	if !r.ws.isReady {
		return ErrNotReady
	}

	blob, err := r.ws.compressor.EncodePrefab(area)
	if err != nil {
		return fmt.Errorf("ошибка сериализации заготовки %q: %w", name, err)
	}
	err = r.ws.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefabKeyPrefix+name), blob)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения заготовки %q в BadgerDB: %w", name, err)
	}
	return nil
}

// Load загружает область
func (r *BadgerPrefabRepo) Load(ctx context.Context, name string) (*blockarea.BlockArea, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	r.ws.mutex.RLock()
	defer r.ws.mutex.RUnlock()
	if !r.ws.isReady {
		return nil, false, ErrNotReady
	}

	blob, err := r.ws.get([]byte(prefabKeyPrefix + name))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ошибка чтения заготовки %q из BadgerDB: %w", name, err)
	}

	area, err := r.ws.compressor.DecodePrefab(blob)
	if err != nil {
		return nil, false, fmt.Errorf("заготовка %q: %w", name, err)
	}
	return area, true, nil
}

// Delete удаляет заготовку
func (r *BadgerPrefabRepo) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.ws.mutex.RLock()
	defer r.ws.mutex.RUnlock()
	if !r.ws.isReady {
		return ErrNotReady
	}

	key := []byte(prefabKeyPrefix + name)
	return r.ws.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("заготовка %q не найдена", name)
			}
			return err
		}
		return txn.Delete(key)
	})
}

// List возвращает имена заготовок (ключи Badger отсортированы)
func (r *BadgerPrefabRepo) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.ws.mutex.RLock()
	defer r.ws.mutex.RUnlock()
	if !r.ws.isReady {
		return nil, ErrNotReady
	}

	var names []string
	err := r.ws.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefabKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			names = append(names, strings.TrimPrefix(string(it.Item().Key()), prefabKeyPrefix))
		}
		return nil
	})
	return names, err
}
