package blockarea

import (
	"github.com/annel0/mmo-blockarea/internal/logging"
	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
	"github.com/annel0/mmo-blockarea/internal/world/blockentity"
)

// Blocks возвращает внутренний массив блоков (nil, если блоки не хранятся).
// Массив принадлежит области, изменения видны в ней напрямую.
func (a *BlockArea) Blocks() []block.State { return a.blocks }

// BlockLights возвращает внутренний массив освещения от блоков
func (a *BlockArea) BlockLights() []uint8 { return a.blockLight }

// SkyLights возвращает внутренний массив освещения от неба
func (a *BlockArea) SkyLights() []uint8 { return a.skyLight }

// BlockEntities возвращает сущности блоков области.
// Паникует, если область сущности не хранит.
func (a *BlockArea) BlockEntities() Entities {
	if !a.HasBlockEntities() {
		panic("blockarea: область не хранит сущности блоков")
	}
	return a.entities
}

// SetRelBlock устанавливает блок по относительным координатам.
// Если область хранит сущности, сущность в этой точке приводится в соответствие блоку.
func (a *BlockArea) SetRelBlock(rel vec.Vec3, s block.State) {
	if !a.HasBlocks() {
		logging.Warn("blockarea: SetRelBlock(%s) без блоков в области, пропущено", rel)
		return
	}
	a.blocks[a.MakeIndex(rel)] = s
	if a.HasBlockEntities() {
		a.updateBlockEntityAt(rel, s)
	}
}

// SetBlock устанавливает блок по мировым координатам
func (a *BlockArea) SetBlock(pos vec.Vec3, s block.State) {
	a.SetRelBlock(pos.Sub(a.origin), s)
}

// GetRelBlock возвращает блок по относительным координатам (воздух, если блоки не хранятся)
func (a *BlockArea) GetRelBlock(rel vec.Vec3) block.State {
	if !a.HasBlocks() {
		return block.AirState
	}
	return a.blocks[a.MakeIndex(rel)]
}

// GetBlock возвращает блок по мировым координатам
func (a *BlockArea) GetBlock(pos vec.Vec3) block.State {
	return a.GetRelBlock(pos.Sub(a.origin))
}

// SetRelBlockLight устанавливает освещение от блоков
func (a *BlockArea) SetRelBlockLight(rel vec.Vec3, light uint8) {
	if !a.HasBlockLight() {
		logging.Warn("blockarea: SetRelBlockLight(%s) без освещения в области, пропущено", rel)
		return
	}
	a.blockLight[a.MakeIndex(rel)] = light
}

// SetBlockLight устанавливает освещение от блоков по мировым координатам
func (a *BlockArea) SetBlockLight(pos vec.Vec3, light uint8) {
	a.SetRelBlockLight(pos.Sub(a.origin), light)
}

// GetRelBlockLight возвращает освещение от блоков (0, если не хранится)
func (a *BlockArea) GetRelBlockLight(rel vec.Vec3) uint8 {
	if !a.HasBlockLight() {
		return 0
	}
	return a.blockLight[a.MakeIndex(rel)]
}

// GetBlockLight возвращает освещение от блоков по мировым координатам
func (a *BlockArea) GetBlockLight(pos vec.Vec3) uint8 {
	return a.GetRelBlockLight(pos.Sub(a.origin))
}

// SetRelSkyLight устанавливает освещение от неба
func (a *BlockArea) SetRelSkyLight(rel vec.Vec3, light uint8) {
	if !a.HasSkyLight() {
		logging.Warn("blockarea: SetRelSkyLight(%s) без освещения в области, пропущено", rel)
		return
	}
	a.skyLight[a.MakeIndex(rel)] = light
}

// SetSkyLight устанавливает освещение от неба по мировым координатам
func (a *BlockArea) SetSkyLight(pos vec.Vec3, light uint8) {
	a.SetRelSkyLight(pos.Sub(a.origin), light)
}

// GetRelSkyLight возвращает освещение от неба (0, если не хранится)
func (a *BlockArea) GetRelSkyLight(rel vec.Vec3) uint8 {
	if !a.HasSkyLight() {
		return 0
	}
	return a.skyLight[a.MakeIndex(rel)]
}

// GetSkyLight возвращает освещение от неба по мировым координатам
func (a *BlockArea) GetSkyLight(pos vec.Vec3) uint8 {
	return a.GetRelSkyLight(pos.Sub(a.origin))
}

// Voxel - полное состояние одного вокселя
type Voxel struct {
	Block      block.State
	BlockLight uint8
	SkyLight   uint8
}

// NewVoxel возвращает воксель с блоком s и освещением по умолчанию
func NewVoxel(s block.State) Voxel {
	return Voxel{Block: s, BlockLight: DefaultBlockLight, SkyLight: DefaultSkyLight}
}

// GetRelVoxel возвращает все хранимые данные вокселя. Отсутствующие данные
// возвращаются значениями по умолчанию.
func (a *BlockArea) GetRelVoxel(rel vec.Vec3) Voxel {
	return Voxel{
		Block:      a.GetRelBlock(rel),
		BlockLight: a.GetRelBlockLight(rel),
		SkyLight:   a.GetRelSkyLight(rel),
	}
}

// SetRelVoxel записывает данные вокселя, пропуская виды данных, которых в области нет
func (a *BlockArea) SetRelVoxel(rel vec.Vec3, v Voxel) {
	idx := a.MakeIndex(rel)
	if a.HasBlocks() {
		a.blocks[idx] = v.Block
		if a.HasBlockEntities() {
			a.updateBlockEntityAt(rel, v.Block)
		}
	}
	if a.HasBlockLight() {
		a.blockLight[idx] = v.BlockLight
	}
	if a.HasSkyLight() {
		a.skyLight[idx] = v.SkyLight
	}
}

// DoWithBlockEntityRelAt вызывает fn для сущности в относительных координатах.
// Возвращает false, если сущности нет; иначе: результат fn.
func (a *BlockArea) DoWithBlockEntityRelAt(rel vec.Vec3, fn func(blockentity.Entity) bool) bool {
	if !a.HasBlockEntities() {
		return false
	}
	be, ok := a.entities[rel]
	if !ok {
		return false
	}
	return fn(be)
}

// DoWithBlockEntityAt вызывает fn для сущности в мировых координатах
func (a *BlockArea) DoWithBlockEntityAt(pos vec.Vec3, fn func(blockentity.Entity) bool) bool {
	return a.DoWithBlockEntityRelAt(pos.Sub(a.origin), fn)
}

// ForEachBlockEntity перебирает сущности в порядке индексов вокселей.
// Если fn возвращает true, перебор прерывается и метод возвращает false.
func (a *BlockArea) ForEachBlockEntity(fn func(blockentity.Entity) bool) bool {
	if !a.HasBlockEntities() {
		return true
	}
	for _, pos := range a.sortedEntityPositions() {
		if fn(a.entities[pos]) {
			return false
		}
	}
	return true
}
