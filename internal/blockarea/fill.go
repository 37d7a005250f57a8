package blockarea

import (
	"fmt"

	"github.com/annel0/mmo-blockarea/internal/logging"
	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
)

// Fill заполняет всю область. Заполняются только виды данных из dt,
// которые область хранит; остальные пропускаются с предупреждением.
func (a *BlockArea) Fill(dt DataType, v Voxel) {
	dt = a.checkFillTypes("Fill", dt)
	if dt&DataBlocks != 0 {
		fillSlice(a.blocks, v.Block)
	}
	if dt&DataBlockLight != 0 {
		fillSlice(a.blockLight, v.BlockLight)
	}
	if dt&DataSkyLight != 0 {
		fillSlice(a.skyLight, v.SkyLight)
	}
	if dt&DataBlocks != 0 {
		a.RescanBlockEntities()
	}
}

// FillRelCuboid заполняет кубоид в относительных координатах (границы включительно).
// Кубоид сортируется; выход за пределы области: ошибка программиста.
func (a *BlockArea) FillRelCuboid(c vec.Cuboid, dt DataType, v Voxel) {
	c.Sort()
	if !a.IsValidRelCoords(c.P1) || !a.IsValidRelCoords(c.P2) {
		panic(fmt.Sprintf("blockarea: кубоид %s..%s вне области размера %s", c.P1, c.P2, a.size))
	}
	dt = a.checkFillTypes("FillRelCuboid", dt)
	width := c.P2.X - c.P1.X + 1
	for y := c.P1.Y; y <= c.P2.Y; y++ {
		for z := c.P1.Z; z <= c.P2.Z; z++ {
			idx := MakeIndexForSize(vec.Vec3{X: c.P1.X, Y: y, Z: z}, a.size)
			if dt&DataBlocks != 0 {
				fillSlice(a.blocks[idx:idx+width], v.Block)
			}
			if dt&DataBlockLight != 0 {
				fillSlice(a.blockLight[idx:idx+width], v.BlockLight)
			}
			if dt&DataSkyLight != 0 {
				fillSlice(a.skyLight[idx:idx+width], v.SkyLight)
			}
		}
	}
	if dt&DataBlocks != 0 {
		a.RescanBlockEntities()
	}
}

// FillCuboid заполняет кубоид в мировых координатах
func (a *BlockArea) FillCuboid(c vec.Cuboid, dt DataType, v Voxel) {
	a.FillRelCuboid(c.Move(vec.Vec3{}.Sub(a.origin)), dt, v)
}

// RelLine рисует отрезок между двумя относительными точками (3D Брезенхем).
// Точки отрезка вне области пропускаются.
func (a *BlockArea) RelLine(p1, p2 vec.Vec3, dt DataType, v Voxel) {
	dt = a.checkFillTypes("RelLine", dt)
	lineWalk(p1, p2, func(p vec.Vec3) {
		if !a.IsValidRelCoords(p) {
			return
		}
		idx := MakeIndexForSize(p, a.size)
		if dt&DataBlocks != 0 {
			a.blocks[idx] = v.Block
			if a.HasBlockEntities() {
				a.updateBlockEntityAt(p, v.Block)
			}
		}
		if dt&DataBlockLight != 0 {
			a.blockLight[idx] = v.BlockLight
		}
		if dt&DataSkyLight != 0 {
			a.skyLight[idx] = v.SkyLight
		}
	})
}

// Line рисует отрезок между двумя мировыми точками
func (a *BlockArea) Line(p1, p2 vec.Vec3, dt DataType, v Voxel) {
	a.RelLine(p1.Sub(a.origin), p2.Sub(a.origin), dt, v)
}

// lineWalk перебирает точки отрезка от p1 до p2 включительно. Соседние точки
// отличаются не более чем на единицу по каждой оси; ведущая ось: с наибольшей
// разницей координат.
func lineWalk(p1, p2 vec.Vec3, visit func(vec.Vec3)) {
	dx, dy, dz := p2.X-p1.X, p2.Y-p1.Y, p2.Z-p1.Z
	sx, sy, sz := sign(dx), sign(dy), sign(dz)
	ax, ay, az := abs(dx)*2, abs(dy)*2, abs(dz)*2
	x, y, z := p1.X, p1.Y, p1.Z

	switch {
	case ax >= max(ay, az):
		yd, zd := ay-ax/2, az-ax/2
		for {
			visit(vec.Vec3{X: x, Y: y, Z: z})
			if x == p2.X {
				return
			}
			if yd >= 0 {
				y += sy
				yd -= ax
			}
			if zd >= 0 {
				z += sz
				zd -= ax
			}
			x += sx
			yd += ay
			zd += az
		}
	case ay >= max(ax, az):
		xd, zd := ax-ay/2, az-ay/2
		for {
			visit(vec.Vec3{X: x, Y: y, Z: z})
			if y == p2.Y {
				return
			}
			if xd >= 0 {
				x += sx
				xd -= ay
			}
			if zd >= 0 {
				z += sz
				zd -= ay
			}
			y += sy
			xd += ax
			zd += az
		}
	default:
		xd, yd := ax-az/2, ay-az/2
		for {
			visit(vec.Vec3{X: x, Y: y, Z: z})
			if z == p2.Z {
				return
			}
			if xd >= 0 {
				x += sx
				xd -= az
			}
			if yd >= 0 {
				y += sy
				yd -= az
			}
			z += sz
			xd += ax
			yd += ay
		}
	}
}

// CountNonAirBlocks возвращает количество блоков, отличных от воздуха
func (a *BlockArea) CountNonAirBlocks() int {
	n := 0
	for _, s := range a.blocks {
		if !block.IsAir(s) {
			n++
		}
	}
	return n
}

// CountSpecificBlocks возвращает количество блоков указанного типа (любые метаданные)
func (a *BlockArea) CountSpecificBlocks(t block.Type) int {
	n := 0
	for _, s := range a.blocks {
		if s.Type() == t {
			n++
		}
	}
	return n
}

// CountSpecificStates возвращает количество блоков с точным совпадением типа и метаданных
func (a *BlockArea) CountSpecificStates(st block.State) int {
	n := 0
	for _, s := range a.blocks {
		if s == st {
			n++
		}
	}
	return n
}

// NonAirCropRelCoords возвращает минимальный кубоид (относительные координаты),
// содержащий все блоки, тип которых отличен от ignored. Второй результат: false,
// если таких блоков нет.
func (a *BlockArea) NonAirCropRelCoords(ignored block.Type) (vec.Cuboid, bool) {
	if !a.HasBlocks() {
		return vec.Cuboid{}, false
	}
	lo := a.size
	hi := vec.Vec3{X: -1, Y: -1, Z: -1}
	idx := 0
	for y := 0; y < a.size.Y; y++ {
		for z := 0; z < a.size.Z; z++ {
			for x := 0; x < a.size.X; x++ {
				s := a.blocks[idx]
				idx++
				if s.Type() == ignored {
					continue
				}
				p := vec.Vec3{X: x, Y: y, Z: z}
				lo = lo.Min(p)
				hi = hi.Max(p)
			}
		}
	}
	if hi.X < 0 {
		return vec.Cuboid{}, false
	}
	return vec.Cuboid{P1: lo, P2: hi}, true
}

// checkFillTypes отбрасывает виды данных, которых нет в области
func (a *BlockArea) checkFillTypes(op string, dt DataType) DataType {
	if missing := dt &^ a.dataTypes &^ DataBlockEntities; missing != 0 {
		logging.Warn("blockarea: %s: в области нет данных %d, пропущено", op, missing)
	}
	return dt & a.dataTypes
}

func fillSlice[T any](s []T, v T) {
	for i := range s {
		s[i] = v
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
