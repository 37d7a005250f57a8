package blockarea

import (
	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
)

// RotateCCW поворачивает область на 90° против часовой стрелки (вид сверху),
// меняя местами размеры X и Z. Метаданные блоков поворачиваются вместе с ними.
func (a *BlockArea) RotateCCW() {
	size := a.size
	a.remap(vec.Vec3{X: size.Z, Y: size.Y, Z: size.X}, func(p vec.Vec3) vec.Vec3 {
		return vec.Vec3{X: p.Z, Y: p.Y, Z: size.X - 1 - p.X}
	}, block.RotateCCW)
}

// RotateCW поворачивает область на 90° по часовой стрелке (вид сверху)
func (a *BlockArea) RotateCW() {
	size := a.size
	a.remap(vec.Vec3{X: size.Z, Y: size.Y, Z: size.X}, func(p vec.Vec3) vec.Vec3 {
		return vec.Vec3{X: size.Z - 1 - p.Z, Y: p.Y, Z: p.X}
	}, block.RotateCW)
}

// MirrorXY отражает область относительно плоскости XY (меняется Z)
func (a *BlockArea) MirrorXY() {
	size := a.size
	a.remap(size, func(p vec.Vec3) vec.Vec3 {
		return vec.Vec3{X: p.X, Y: p.Y, Z: size.Z - 1 - p.Z}
	}, block.MirrorXY)
}

// MirrorXZ отражает область относительно плоскости XZ (меняется Y)
func (a *BlockArea) MirrorXZ() {
	size := a.size
	a.remap(size, func(p vec.Vec3) vec.Vec3 {
		return vec.Vec3{X: p.X, Y: size.Y - 1 - p.Y, Z: p.Z}
	}, block.MirrorXZ)
}

// MirrorYZ отражает область относительно плоскости YZ (меняется X)
func (a *BlockArea) MirrorYZ() {
	size := a.size
	a.remap(size, func(p vec.Vec3) vec.Vec3 {
		return vec.Vec3{X: size.X - 1 - p.X, Y: p.Y, Z: p.Z}
	}, block.MirrorYZ)
}

// RotateCCWNoMeta поворачивает область против часовой стрелки, не трогая метаданные
func (a *BlockArea) RotateCCWNoMeta() {
	size := a.size
	a.remap(vec.Vec3{X: size.Z, Y: size.Y, Z: size.X}, func(p vec.Vec3) vec.Vec3 {
		return vec.Vec3{X: p.Z, Y: p.Y, Z: size.X - 1 - p.X}
	}, nil)
}

// RotateCWNoMeta поворачивает область по часовой стрелке, не трогая метаданные
func (a *BlockArea) RotateCWNoMeta() {
	size := a.size
	a.remap(vec.Vec3{X: size.Z, Y: size.Y, Z: size.X}, func(p vec.Vec3) vec.Vec3 {
		return vec.Vec3{X: size.Z - 1 - p.Z, Y: p.Y, Z: p.X}
	}, nil)
}

// remap переставляет все воксели функцией mapPos в массивы размера newSize.
// convert (если задан) применяется к каждому блоку.
func (a *BlockArea) remap(newSize vec.Vec3, mapPos func(vec.Vec3) vec.Vec3, convert func(block.State) block.State) {
	a.blocks = remapArray(a.blocks, a.size, newSize, mapPos, convert)
	a.blockLight = remapArray(a.blockLight, a.size, newSize, mapPos, nil)
	a.skyLight = remapArray(a.skyLight, a.size, newSize, mapPos, nil)
	a.moveBlockEntities(newSize, mapPos)
	a.size = newSize
}

func remapArray[T any](src []T, size, newSize vec.Vec3, mapPos func(vec.Vec3) vec.Vec3, convert func(T) T) []T {
	if src == nil {
		return nil
	}
	dst := make([]T, len(src))
	idx := 0
	for y := 0; y < size.Y; y++ {
		for z := 0; z < size.Z; z++ {
			for x := 0; x < size.X; x++ {
				v := src[idx]
				idx++
				if convert != nil {
					v = convert(v)
				}
				dst[MakeIndexForSize(mapPos(vec.Vec3{X: x, Y: y, Z: z}), newSize)] = v
			}
		}
	}
	return dst
}
