package storage

import (
	"context"
	"fmt"

	"github.com/annel0/mmo-blockarea/internal/blockarea"
)

// maxPrefabNameLen - максимальная длина имени заготовки
const maxPrefabNameLen = 64

// PrefabRepo определяет интерфейс хранения заготовок: именованных областей блоков
// (буферы обмена, схематики, изображения деревьев и построек).
type PrefabRepo interface {
	// Save сохраняет область под именем, перезаписывая существующую
	Save(ctx context.Context, name string, area *blockarea.BlockArea) error

	// Load загружает область. Второй результат: false, если заготовки нет.
	Load(ctx context.Context, name string) (*blockarea.BlockArea, bool, error)

	// Delete удаляет заготовку
	Delete(ctx context.Context, name string) error

	// List возвращает имена всех заготовок в алфавитном порядке
	List(ctx context.Context) ([]string, error)
}

// validatePrefabName проверяет имя заготовки
func validatePrefabName(name string) error {
	if name == "" || len(name) > maxPrefabNameLen {
		return fmt.Errorf("недействительное имя заготовки: %q", name)
	}
	return nil
}

// EncodePrefab сериализует и сжимает область
func (c *Compressor) EncodePrefab(area *blockarea.BlockArea) ([]byte, error) {
	data, err := EncodeArea(area)
	if err != nil {
		return nil, err
	}
	return c.Compress(data), nil
}

// DecodePrefab распаковывает и восстанавливает область
func (c *Compressor) DecodePrefab(blob []byte) (*blockarea.BlockArea, error) {
	data, err := c.Decompress(blob)
	if err != nil {
		return nil, err
	}
	return DecodeArea(data)
}
