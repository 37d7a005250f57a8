// Package blockarea реализует область блоков: снимок прямоугольного участка мира
// (типы блоков, освещение от блоков, освещение от неба, сущности блоков) с
// произвольным доступом. Область читается из мира, изменяется набором
// геометрических и комбинирующих операций и записывается обратно, в том числе
// в другое место мира.
//
// Все значения освещения хранятся по одному байту на блок.
// Область не потокобезопасна: вызывающий код сериализует доступ сам.
//
// Неверные координаты и размеры в одиночных аксессорах и Crop/Expand считаются
// ошибкой программиста и приводят к панике. Проверяйте координаты через
// IsValidRelCoords / IsValidCoords.
package blockarea

import (
	"errors"
	"fmt"

	"github.com/annel0/mmo-blockarea/internal/chunkdef"
	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
	"github.com/annel0/mmo-blockarea/internal/world/blockentity"
)

// DataType - битовая маска видов данных области
type DataType int

const (
	DataBlocks        DataType = 1
	DataBlockLight    DataType = 4
	DataSkyLight      DataType = 8
	DataBlockEntities DataType = 32

	DataAll = DataBlocks | DataBlockLight | DataSkyLight | DataBlockEntities
)

// Значения по умолчанию для новых вокселей
const (
	DefaultBlockLight uint8 = 0
	DefaultSkyLight   uint8 = chunkdef.MaxLight
)

var (
	// ErrInvalidDataTypes - недопустимая комбинация видов данных (сущности без блоков)
	ErrInvalidDataTypes = errors.New("недопустимая комбинация типов данных")
	// ErrInvalidSize - отрицательный или слишком большой размер области
	ErrInvalidSize = errors.New("недопустимый размер области")
)

// Entities - сущности блоков области, по относительным координатам
type Entities map[vec.Vec3]blockentity.Entity

// BlockArea - область блоков. Нулевое значение: пустая область без данных.
type BlockArea struct {
	origin vec.Vec3
	size   vec.Vec3

	// weOffset - дополнительное смещение из формата схематики.
	// Область его хранит, но никак не использует.
	weOffset vec.Vec3

	dataTypes  DataType
	blocks     []block.State
	blockLight []uint8
	skyLight   []uint8
	entities   Entities
}

// New создаёт пустую область
func New() *BlockArea {
	return &BlockArea{}
}

// IsValidDataTypeCombination проверяет маску: сущности блоков требуют блоков
func IsValidDataTypeCombination(dt DataType) bool {
	if dt&^DataAll != 0 {
		return false
	}
	if dt&DataBlockEntities != 0 && dt&DataBlocks == 0 {
		return false
	}
	return true
}

// Clear освобождает все данные и обнуляет размер
func (a *BlockArea) Clear() {
	a.blocks = nil
	a.blockLight = nil
	a.skyLight = nil
	a.entities = nil
	a.dataTypes = 0
	a.size = vec.Vec3{}
}

// Create создаёт новую область указанного размера. Начало координат обнуляется.
// Блоки заполняются воздухом, освещение от блоков: нулем, от неба: максимумом.
// При ошибке область остается пустой.
func (a *BlockArea) Create(size vec.Vec3, dt DataType) error {
	a.Clear()
	if !IsValidDataTypeCombination(dt) {
		return fmt.Errorf("%w: %d", ErrInvalidDataTypes, dt)
	}
	if !FitsVolume(size, MaxVolume) {
		return fmt.Errorf("%w: %s", ErrInvalidSize, size)
	}

	a.allocate(size, dt)
	a.origin = vec.Vec3{}
	return nil
}

// MaxVolume - наибольший объем области, который можно создать
const MaxVolume = 1 << 30

// FitsVolume сообщает, что размер неотрицателен и объем не превышает limit.
// Произведение проверяется делением, поэтому переполнение int невозможно.
func FitsVolume(size vec.Vec3, limit int) bool {
	if size.X < 0 || size.Y < 0 || size.Z < 0 {
		return false
	}
	if size.X == 0 || size.Y == 0 || size.Z == 0 {
		return true
	}
	if size.X > limit/size.Y {
		return false
	}
	return size.X*size.Y <= limit/size.Z
}

// allocate выделяет массивы под размер и маску, заполняя значениями по умолчанию
func (a *BlockArea) allocate(size vec.Vec3, dt DataType) {
	volume := size.Volume()
	a.size = size
	a.dataTypes = dt
	if dt&DataBlocks != 0 {
		a.blocks = make([]block.State, volume)
	}
	if dt&DataBlockLight != 0 {
		a.blockLight = make([]uint8, volume)
	}
	if dt&DataSkyLight != 0 {
		a.skyLight = make([]uint8, volume)
		for i := range a.skyLight {
			a.skyLight[i] = DefaultSkyLight
		}
	}
	if dt&DataBlockEntities != 0 {
		a.entities = make(Entities)
	}
}

// SetOrigin меняет начало координат. Содержимое не меняется.
func (a *BlockArea) SetOrigin(origin vec.Vec3) {
	a.origin = origin
}

// Origin возвращает мировые координаты относительной точки (0, 0, 0)
func (a *BlockArea) Origin() vec.Vec3 { return a.origin }

// Size возвращает размер области
func (a *BlockArea) Size() vec.Vec3 { return a.size }

// Volume возвращает количество блоков в области
func (a *BlockArea) Volume() int { return a.size.Volume() }

// Bounds возвращает мировые границы области (включительно)
func (a *BlockArea) Bounds() vec.Cuboid {
	return vec.Cuboid{
		P1: a.origin,
		P2: a.origin.Add(a.size).Sub(vec.Vec3{X: 1, Y: 1, Z: 1}),
	}
}

// SetWEOffset сохраняет смещение схематики
func (a *BlockArea) SetWEOffset(offset vec.Vec3) { a.weOffset = offset }

// WEOffset возвращает смещение схематики
func (a *BlockArea) WEOffset() vec.Vec3 { return a.weOffset }

// DataTypes возвращает маску видов данных, хранящихся в области
func (a *BlockArea) DataTypes() DataType { return a.dataTypes }

func (a *BlockArea) HasBlocks() bool        { return a.dataTypes&DataBlocks != 0 }
func (a *BlockArea) HasBlockLight() bool    { return a.dataTypes&DataBlockLight != 0 }
func (a *BlockArea) HasSkyLight() bool      { return a.dataTypes&DataSkyLight != 0 }
func (a *BlockArea) HasBlockEntities() bool { return a.dataTypes&DataBlockEntities != 0 }

// IsValidRelCoords проверяет, что относительные координаты лежат внутри [0, size)
func (a *BlockArea) IsValidRelCoords(rel vec.Vec3) bool {
	return rel.X >= 0 && rel.X < a.size.X &&
		rel.Y >= 0 && rel.Y < a.size.Y &&
		rel.Z >= 0 && rel.Z < a.size.Z
}

// IsValidCoords проверяет, что мировые координаты лежат внутри области
func (a *BlockArea) IsValidCoords(pos vec.Vec3) bool {
	return a.IsValidRelCoords(pos.Sub(a.origin))
}

// MakeIndexForSize возвращает индекс в массивах области размера size:
// X меняется быстрее всего, затем Z, затем Y
func MakeIndexForSize(rel, size vec.Vec3) int {
	return (rel.Y*size.Z+rel.Z)*size.X + rel.X
}

// MakeIndex возвращает индекс во внутренних массивах для относительных координат.
// Паникует на координатах вне области.
func (a *BlockArea) MakeIndex(rel vec.Vec3) int {
	if !a.IsValidRelCoords(rel) {
		panic(fmt.Sprintf("blockarea: координаты %s вне области размера %s", rel, a.size))
	}
	return MakeIndexForSize(rel, a.size)
}

// CopyTo копирует содержимое области в dst (глубокая копия)
func (a *BlockArea) CopyTo(dst *BlockArea) {
	if dst == a {
		return
	}
	dst.Clear()
	dst.origin = a.origin
	dst.size = a.size
	dst.weOffset = a.weOffset
	dst.dataTypes = a.dataTypes
	dst.blocks = cloneSlice(a.blocks)
	dst.blockLight = cloneSlice(a.blockLight)
	dst.skyLight = cloneSlice(a.skyLight)
	if a.entities != nil {
		dst.entities = make(Entities, len(a.entities))
		for pos, be := range a.entities {
			dst.entities[pos] = be.Clone(pos)
		}
	}
}

// CopyFrom копирует в область содержимое src (глубокая копия)
func (a *BlockArea) CopyFrom(src *BlockArea) {
	src.CopyTo(a)
}

// Clone возвращает независимую копию области
func (a *BlockArea) Clone() *BlockArea {
	res := New()
	a.CopyTo(res)
	return res
}

func cloneSlice[T any](src []T) []T {
	if src == nil {
		return nil
	}
	dst := make([]T, len(src))
	copy(dst, src)
	return dst
}
