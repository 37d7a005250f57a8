package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world"
	"github.com/dgraph-io/badger/v3"
)

// ErrNotReady - хранилище закрыто
var ErrNotReady = errors.New("хранилище не готово")

// WorldStorage представляет собой хранилище чанков мира на BadgerDB.
// Чанки хранятся целиком, сжатыми zstd.
type WorldStorage struct {
	db         *badger.DB
	dbPath     string
	compressor *Compressor
	mutex      sync.RWMutex
	isReady    bool
}

// NewWorldStorage создает новое хранилище мира
func NewWorldStorage(dataPath string) (*WorldStorage, error) {
	dbPath := filepath.Join(dataPath, "world")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB

	return openWorldStorage(opts, dbPath)
}

// NewInMemoryWorldStorage создает хранилище без диска (для тестов и инструментов)
func NewInMemoryWorldStorage() (*WorldStorage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	return openWorldStorage(opts, "")
}

func openWorldStorage(opts badger.Options, dbPath string) (*WorldStorage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	compressor, err := NewCompressor()
	if err != nil {
		db.Close()
		return nil, err
	}

	return &WorldStorage{
		db:         db,
		dbPath:     dbPath,
		compressor: compressor,
		isReady:    true,
	}, nil
}

// Close закрывает хранилище данных
func (ws *WorldStorage) Close() error {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()

	if !ws.isReady {
		return nil
	}

	ws.isReady = false
	ws.compressor.Close()
	return ws.db.Close()
}

func chunkKey(coords vec.Vec2) []byte {
	return []byte(fmt.Sprintf("chunk:%d:%d", coords.X, coords.Y))
}

// SaveChunk сохраняет чанк целиком
func (ws *WorldStorage) SaveChunk(chunk *world.Chunk) error {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return ErrNotReady
	}

	data, err := EncodeChunk(chunk)
	if err != nil {
		return fmt.Errorf("ошибка сериализации чанка %s: %w", chunk.Coords, err)
	}
	blob := ws.compressor.Compress(data)

	err = ws.db.Update(func(txn *badger.Txn) error {
		return txn.Set(chunkKey(chunk.Coords), blob)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения в BadgerDB: %w", err)
	}
	return nil
}

// LoadChunk загружает чанк. Второй результат: false, если чанк не сохранялся.
func (ws *WorldStorage) LoadChunk(coords vec.Vec2) (*world.Chunk, bool, error) {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return nil, false, ErrNotReady
	}

	blob, err := ws.get(chunkKey(coords))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}

	data, err := ws.compressor.Decompress(blob)
	if err != nil {
		return nil, false, fmt.Errorf("чанк %s: %w", coords, err)
	}
	chunk, err := DecodeChunk(coords, data)
	if err != nil {
		return nil, false, fmt.Errorf("чанк %s: %w", coords, err)
	}
	return chunk, true, nil
}

// CountChunks возвращает количество сохраненных чанков
func (ws *WorldStorage) CountChunks() (int, error) {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return 0, ErrNotReady
	}

	count := 0
	err := ws.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte("chunk:")
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// get читает значение ключа (копию)
func (ws *WorldStorage) get(key []byte) ([]byte, error) {
	var data []byte
	err := ws.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	return data, err
}
