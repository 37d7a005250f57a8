package world

import (
	"sync"

	"github.com/annel0/mmo-blockarea/internal/blockarea"
	"github.com/annel0/mmo-blockarea/internal/chunkdef"
	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
	"github.com/annel0/mmo-blockarea/internal/world/blockentity"
)

// Chunk представляет колонку мира размером 16x256x16 блоков.
// Массивы индексируются chunkdef.MakeIndex, сущности: мировыми координатами.
type Chunk struct {
	Coords vec.Vec2 // Координаты чанка в мире

	Blocks     []block.State
	BlockLight []uint8
	SkyLight   []uint8
	Entities   map[vec.Vec3]blockentity.Entity

	ChangeCounter int          // Счетчик изменений с последнего сохранения
	Mu            sync.RWMutex // Мьютекс для безопасного доступа
}

// NewChunk создаёт пустой чанк (воздух, полное освещение от неба)
func NewChunk(coords vec.Vec2) *Chunk {
	sky := make([]uint8, chunkdef.NumBlocks)
	for i := range sky {
		sky[i] = chunkdef.MaxLight
	}
	return &Chunk{
		Coords:     coords,
		Blocks:     make([]block.State, chunkdef.NumBlocks),
		BlockLight: make([]uint8, chunkdef.NumBlocks),
		SkyLight:   sky,
		Entities:   make(map[vec.Vec3]blockentity.Entity),
	}
}

// Origin возвращает мировые координаты угла чанка
func (c *Chunk) Origin() vec.Vec3 {
	return chunkdef.ChunkOrigin(c.Coords)
}

// GetBlock возвращает блок по локальным координатам
func (c *Chunk) GetBlock(local vec.Vec3) block.State {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	return c.Blocks[chunkdef.MakeIndex(local.X, local.Y, local.Z)]
}

// SetBlock устанавливает блок по локальным координатам и приводит в соответствие сущность блока
func (c *Chunk) SetBlock(local vec.Vec3, s block.State) {
	c.Mu.Lock()
	defer c.Mu.Unlock()

	c.Blocks[chunkdef.MakeIndex(local.X, local.Y, local.Z)] = s
	c.syncEntity(c.Origin().Add(local), s)
	c.ChangeCounter++
}

// GetBlockLight возвращает освещение от блоков по локальным координатам
func (c *Chunk) GetBlockLight(local vec.Vec3) uint8 {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	return c.BlockLight[chunkdef.MakeIndex(local.X, local.Y, local.Z)]
}

// GetSkyLight возвращает освещение от неба по локальным координатам
func (c *Chunk) GetSkyLight(local vec.Vec3) uint8 {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	return c.SkyLight[chunkdef.MakeIndex(local.X, local.Y, local.Z)]
}

// GetEntity возвращает сущность блока по мировым координатам
func (c *Chunk) GetEntity(pos vec.Vec3) (blockentity.Entity, bool) {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	be, ok := c.Entities[pos]
	return be, ok
}

// HasChanges возвращает true, если в чанке есть несохраненные изменения
func (c *Chunk) HasChanges() bool {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	return c.ChangeCounter > 0
}

// ClearChanges сбрасывает счетчик изменений
func (c *Chunk) ClearChanges() {
	c.Mu.Lock()
	defer c.Mu.Unlock()

	c.ChangeCounter = 0
}

// visit передает данные чанка посетителю под блокировкой чтения
func (c *Chunk) visit(v blockarea.ChunkVisitor) {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	v.ChunkData(&blockarea.ChunkData{
		Blocks:     c.Blocks,
		BlockLight: c.BlockLight,
		SkyLight:   c.SkyLight,
	})
	for _, be := range c.Entities {
		v.BlockEntity(be)
	}
}

// writeArea копирует в чанк пересечение области, размещенной в minCoords.
// Сущности в записанной части заменяются сущностями области (если они записываются)
// или сущностями по умолчанию.
func (c *Chunk) writeArea(area *blockarea.BlockArea, minCoords vec.Vec3, dt blockarea.DataType) {
	size := area.Size()
	chunkMin := c.Origin()
	chunkMax := chunkMin.Add(vec.Vec3{X: chunkdef.Width - 1, Y: chunkdef.Height - 1, Z: chunkdef.Width - 1})
	lo := minCoords.Max(chunkMin)
	hi := minCoords.Add(size).Sub(vec.Vec3{X: 1, Y: 1, Z: 1}).Min(chunkMax)
	if lo.X > hi.X || lo.Y > hi.Y || lo.Z > hi.Z {
		return
	}
	region := vec.Cuboid{P1: lo, P2: hi}

	c.Mu.Lock()
	defer c.Mu.Unlock()

	width := hi.X - lo.X + 1
	for y := lo.Y; y <= hi.Y; y++ {
		for z := lo.Z; z <= hi.Z; z++ {
			dst := chunkdef.MakeIndex(lo.X-chunkMin.X, y, z-chunkMin.Z)
			src := blockarea.MakeIndexForSize(vec.Vec3{X: lo.X, Y: y, Z: z}.Sub(minCoords), size)
			if dt&blockarea.DataBlocks != 0 {
				copy(c.Blocks[dst:dst+width], area.Blocks()[src:src+width])
			}
			if dt&blockarea.DataBlockLight != 0 {
				copy(c.BlockLight[dst:dst+width], area.BlockLights()[src:src+width])
			}
			if dt&blockarea.DataSkyLight != 0 {
				copy(c.SkyLight[dst:dst+width], area.SkyLights()[src:src+width])
			}
		}
	}

	if dt&blockarea.DataBlocks != 0 {
		for pos := range c.Entities {
			if region.IsInside(pos) {
				delete(c.Entities, pos)
			}
		}
		if dt&blockarea.DataBlockEntities != 0 {
			area.ForEachBlockEntity(func(be blockentity.Entity) bool {
				pos := be.Pos().Add(minCoords)
				if region.IsInside(pos) {
					c.Entities[pos] = be.Clone(pos)
				}
				return false
			})
		}
		c.reconcileEntities(region)
	}
	c.ChangeCounter++
}

// reconcileEntities создаёт недостающие и удаляет лишние сущности в части чанка.
// Вызывается под блокировкой записи.
func (c *Chunk) reconcileEntities(region vec.Cuboid) {
	origin := c.Origin()
	for y := region.P1.Y; y <= region.P2.Y; y++ {
		for z := region.P1.Z; z <= region.P2.Z; z++ {
			for x := region.P1.X; x <= region.P2.X; x++ {
				pos := vec.Vec3{X: x, Y: y, Z: z}
				s := c.Blocks[chunkdef.MakeIndex(x-origin.X, y, z-origin.Z)]
				c.syncEntity(pos, s)
			}
		}
	}
}

// syncEntity приводит сущность в точке pos в соответствие блоку s.
// Вызывается под блокировкой записи.
func (c *Chunk) syncEntity(pos vec.Vec3, s block.State) {
	if be, ok := c.Entities[pos]; ok {
		if blockentity.Matches(be, s) {
			return
		}
		delete(c.Entities, pos)
	}
	if be := blockentity.New(s.Type(), pos); be != nil {
		c.Entities[pos] = be
	}
}
