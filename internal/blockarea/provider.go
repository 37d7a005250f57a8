package blockarea

import (
	"errors"
	"fmt"
	"strings"

	"github.com/annel0/mmo-blockarea/internal/chunkdef"
	"github.com/annel0/mmo-blockarea/internal/logging"
	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
	"github.com/annel0/mmo-blockarea/internal/world/blockentity"
)

// ErrChunkUnavailable - провайдер не смог предоставить один из чанков
var ErrChunkUnavailable = errors.New("чанк недоступен")

// ErrEmptyBounds - после ограничения по высоте в границах не осталось блоков
var ErrEmptyBounds = errors.New("границы не содержат блоков мира")

// PartialWriteError сообщает, в какие чанки запись не удалась
type PartialWriteError struct {
	Failed []vec.Vec2
}

func (e *PartialWriteError) Error() string {
	parts := make([]string, 0, len(e.Failed))
	for _, c := range e.Failed {
		parts = append(parts, c.String())
	}
	return fmt.Sprintf("запись не удалась в %d чанк(ах): %s", len(e.Failed), strings.Join(parts, ", "))
}

// ChunkData - данные одной колонки чанка в порядке chunkdef.MakeIndex.
// Отсутствующий массив (nil) означает, что провайдер эти данные не хранит.
type ChunkData struct {
	Blocks     []block.State
	BlockLight []uint8
	SkyLight   []uint8
}

// ChunkVisitor получает данные чанков от провайдера.
// Для каждого чанка провайдер вызывает Coords, и только если тот вернул true -
// ChunkData и BlockEntity для каждой сущности блока чанка.
type ChunkVisitor interface {
	Coords(chunkX, chunkZ int) bool
	ChunkData(data *ChunkData)
	BlockEntity(be blockentity.Entity)
}

// ChunkProvider - источник и приемник данных мира для области
type ChunkProvider interface {
	// ForEachChunkInRect обходит все чанки прямоугольника (границы включительно).
	// Должен вернуть ошибку с ErrChunkUnavailable, если хоть один чанк недоступен,
	// не передав при этом ни одного чанка.
	ForEachChunkInRect(minChunkX, maxChunkX, minChunkZ, maxChunkZ int, v ChunkVisitor) error
	// WriteBlockArea записывает данные dt области в мир, начиная с minCoords.
	// Воксели вне высоты мира пропускаются. Чанки, в которые записать не удалось,
	// перечисляются в *PartialWriteError.
	WriteBlockArea(area *BlockArea, minCoords vec.Vec3, dt DataType) error
}

// Read заполняет область данными мира из границ bounds (включительно).
// Границы сортируются и ограничиваются по высоте мира. При ошибке область пуста.
func (a *BlockArea) Read(p ChunkProvider, bounds vec.Cuboid, dt DataType) error {
	if !IsValidDataTypeCombination(dt) {
		a.Clear()
		return fmt.Errorf("%w: %d", ErrInvalidDataTypes, dt)
	}
	bounds.Sort()
	if bounds.ClampY(0, chunkdef.Height-1) {
		logging.Warn("blockarea: границы чтения выходят за высоту мира, ограничены до %s..%s", bounds.P1, bounds.P2)
	}
	if bounds.P1.Y > bounds.P2.Y {
		a.Clear()
		return fmt.Errorf("%w: %s..%s", ErrEmptyBounds, bounds.P1, bounds.P2)
	}

	if err := a.Create(bounds.Size(), dt); err != nil {
		return err
	}
	a.origin = bounds.P1

	minChunk := chunkdef.BlockToChunk(bounds.P1.X, bounds.P1.Z)
	maxChunk := chunkdef.BlockToChunk(bounds.P2.X, bounds.P2.Z)
	reader := &chunkReader{area: a, bounds: bounds}
	if err := p.ForEachChunkInRect(minChunk.X, maxChunk.X, minChunk.Y, maxChunk.Y, reader); err != nil {
		a.Clear()
		return fmt.Errorf("чтение области %s..%s: %w", bounds.P1, bounds.P2, err)
	}
	return nil
}

// ReadAll читает все виды данных
func (a *BlockArea) ReadAll(p ChunkProvider, bounds vec.Cuboid) error {
	return a.Read(p, bounds, DataAll)
}

// Write записывает данные dt области в мир так, чтобы относительная точка (0,0,0)
// оказалась в minCoords. Запрошенные, но отсутствующие виды данных отбрасываются.
// Если область не помещается по высоте, minCoords.Y сдвигается внутрь мира.
func (a *BlockArea) Write(p ChunkProvider, minCoords vec.Vec3, dt DataType) error {
	if missing := dt &^ a.dataTypes; missing != 0 {
		logging.Warn("blockarea: запись отсутствующих данных %d пропущена", missing)
		dt &= a.dataTypes
	}
	if minCoords.Y < 0 {
		logging.Warn("blockarea: MinY=%d меньше нуля, сдвинут до 0", minCoords.Y)
		minCoords.Y = 0
	} else if minCoords.Y > chunkdef.Height-a.size.Y {
		y := max(chunkdef.Height-a.size.Y, 0)
		logging.Warn("blockarea: MinY=%d не помещается в высоту мира, сдвинут до %d", minCoords.Y, y)
		minCoords.Y = y
	}
	return p.WriteBlockArea(a, minCoords, dt)
}

// WriteAll записывает все хранимые данные в точку начала координат области
func (a *BlockArea) WriteAll(p ChunkProvider) error {
	return a.Write(p, a.origin, a.dataTypes)
}

// chunkReader копирует пересечение каждого чанка с границами в область
type chunkReader struct {
	area   *BlockArea
	bounds vec.Cuboid
	chunk  vec.Vec2
}

func (r *chunkReader) Coords(chunkX, chunkZ int) bool {
	r.chunk = vec.Vec2{X: chunkX, Y: chunkZ}
	return true
}

func (r *chunkReader) ChunkData(data *ChunkData) {
	a := r.area
	chunkMin := chunkdef.ChunkOrigin(r.chunk)
	chunkMax := chunkMin.Add(vec.Vec3{X: chunkdef.Width - 1, Y: chunkdef.Height - 1, Z: chunkdef.Width - 1})
	lo := r.bounds.P1.Max(chunkMin)
	hi := r.bounds.P2.Min(chunkMax)
	if lo.X > hi.X || lo.Y > hi.Y || lo.Z > hi.Z {
		return
	}

	copyBlocks := a.HasBlocks() && data.Blocks != nil
	copyBlockLight := a.HasBlockLight() && data.BlockLight != nil
	copySkyLight := a.HasSkyLight() && data.SkyLight != nil
	width := hi.X - lo.X + 1

	for y := lo.Y; y <= hi.Y; y++ {
		for z := lo.Z; z <= hi.Z; z++ {
			src := chunkdef.MakeIndex(lo.X-chunkMin.X, y, z-chunkMin.Z)
			dst := MakeIndexForSize(vec.Vec3{X: lo.X, Y: y, Z: z}.Sub(a.origin), a.size)
			if copyBlocks {
				copy(a.blocks[dst:dst+width], data.Blocks[src:src+width])
			}
			if copyBlockLight {
				copy(a.blockLight[dst:dst+width], data.BlockLight[src:src+width])
			}
			if copySkyLight {
				copy(a.skyLight[dst:dst+width], data.SkyLight[src:src+width])
			}
		}
	}
}

func (r *chunkReader) BlockEntity(be blockentity.Entity) {
	a := r.area
	if !a.HasBlockEntities() || !r.bounds.IsInside(be.Pos()) {
		return
	}
	rel := be.Pos().Sub(a.origin)
	a.entities[rel] = be.Clone(rel)
}
