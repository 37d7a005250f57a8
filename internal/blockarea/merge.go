package blockarea

import (
	"fmt"

	"github.com/annel0/mmo-blockarea/internal/logging"
	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
)

// MergeStrategy определяет, как блок источника B комбинируется с блоком области A
type MergeStrategy int

const (
	// MergeOverwrite - результат всегда B
	MergeOverwrite MergeStrategy = iota
	// MergeFillAir - B пишется только туда, где в A воздух
	MergeFillAir
	// MergeImprint - B пишется везде, кроме воздуха в B
	MergeImprint
	// MergeLake - правила для вставки озер: губка в B ничего не меняет,
	// воздух в B выдалбливает, жидкости A сохраняются, жидкости B пишутся,
	// камень B заменяет землю A
	MergeLake
	// MergeSpongePrint - губка в B ничего не меняет, остальное пишется
	MergeSpongePrint
	// MergeDifference - совпадающие блоки становятся воздухом, иначе A
	MergeDifference
	// MergeSimpleCompare - совпадающие блоки становятся воздухом, иначе камень
	MergeSimpleCompare
	// MergeMask - совпадающие блоки сохраняются, иначе воздух
	MergeMask
)

var strategyNames = map[MergeStrategy]string{
	MergeOverwrite:     "overwrite",
	MergeFillAir:       "fill_air",
	MergeImprint:       "imprint",
	MergeLake:          "lake",
	MergeSpongePrint:   "sponge_print",
	MergeDifference:    "difference",
	MergeSimpleCompare: "simple_compare",
	MergeMask:          "mask",
}

func (s MergeStrategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("MergeStrategy(%d)", int(s))
}

// ParseMergeStrategy возвращает стратегию по имени
func ParseMergeStrategy(name string) (MergeStrategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("неизвестная стратегия слияния %q", name)
}

// MergeBlock комбинирует блок области a с блоком источника b по стратегии s.
// Равенство блоков учитывает и тип, и метаданные.
func MergeBlock(s MergeStrategy, a, b block.State) block.State {
	switch s {
	case MergeOverwrite:
		return b
	case MergeFillAir:
		if block.IsAir(a) {
			return b
		}
		return a
	case MergeImprint:
		if block.IsAir(b) {
			return a
		}
		return b
	case MergeLake:
		return mergeLake(a, b)
	case MergeSpongePrint:
		if block.IsSponge(b) {
			return a
		}
		return b
	case MergeDifference:
		if a == b {
			return block.AirState
		}
		return a
	case MergeSimpleCompare:
		if a == b {
			return block.AirState
		}
		return block.Of(block.Stone)
	case MergeMask:
		if a == b {
			return a
		}
		return block.AirState
	}
	panic(fmt.Sprintf("blockarea: неизвестная стратегия слияния %d", int(s)))
}

func mergeLake(a, b block.State) block.State {
	switch {
	case block.IsSponge(b):
		return a
	case block.IsAir(b):
		return block.AirState
	case block.IsWater(a) || block.IsLava(a):
		return a
	case block.IsWater(b) || block.IsLava(b):
		return b
	case b.Type() == block.Stone && block.IsSoil(a):
		return block.Of(block.Stone)
	}
	return a
}

// Merge вставляет src в область так, что относительная точка (0,0,0) источника
// попадает в relMin этой области. Обрабатывается только пересечение областей.
//
// Освещение в точке берется из src, если результат слияния равен блоку src.
// Если у одной из областей нет блоков, блоки не меняются, а освещение
// копируется только при MergeOverwrite. Слияние области с самой собой
// читает из снимка исходного содержимого.
func (a *BlockArea) Merge(src *BlockArea, relMin vec.Vec3, s MergeStrategy) {
	if src == a {
		src = a.Clone()
	}
	srcStart := vec.Vec3{X: max(0, -relMin.X), Y: max(0, -relMin.Y), Z: max(0, -relMin.Z)}
	dstStart := relMin.Add(srcStart)
	size := vec.Vec3{
		X: min(src.size.X-srcStart.X, a.size.X-dstStart.X),
		Y: min(src.size.Y-srcStart.Y, a.size.Y-dstStart.Y),
		Z: min(src.size.Z-srcStart.Z, a.size.Z-dstStart.Z),
	}
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return
	}

	mergeBlocks := a.HasBlocks() && src.HasBlocks()
	if !mergeBlocks {
		logging.Warn("blockarea: слияние %s без блоков в одной из областей, блоки не меняются", s)
	}
	copyBlockLight := a.HasBlockLight() && src.HasBlockLight()
	copySkyLight := a.HasSkyLight() && src.HasSkyLight()

	for y := 0; y < size.Y; y++ {
		for z := 0; z < size.Z; z++ {
			si := MakeIndexForSize(vec.Vec3{X: srcStart.X, Y: srcStart.Y + y, Z: srcStart.Z + z}, src.size)
			di := MakeIndexForSize(vec.Vec3{X: dstStart.X, Y: dstStart.Y + y, Z: dstStart.Z + z}, a.size)
			for x := 0; x < size.X; x++ {
				takeSrc := s == MergeOverwrite
				if mergeBlocks {
					b := MergeBlock(s, a.blocks[di+x], src.blocks[si+x])
					a.blocks[di+x] = b
					takeSrc = b == src.blocks[si+x]
				}
				if takeSrc {
					if copyBlockLight {
						a.blockLight[di+x] = src.blockLight[si+x]
					}
					if copySkyLight {
						a.skyLight[di+x] = src.skyLight[si+x]
					}
				}
			}
		}
	}

	if !a.HasBlockEntities() || !mergeBlocks {
		return
	}
	if src.HasBlockEntities() {
		a.mergeBlockEntities(relMin, src)
	} else {
		a.RescanBlockEntities()
	}
}

// MergeAt вставляет src так, чтобы ее начало координат совпало с мировыми
// координатами dstPos
func (a *BlockArea) MergeAt(src *BlockArea, dstPos vec.Vec3, s MergeStrategy) {
	a.Merge(src, dstPos.Sub(a.origin), s)
}
