package blockarea

import (
	"sort"

	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
	"github.com/annel0/mmo-blockarea/internal/world/blockentity"
)

// updateBlockEntityAt приводит сущность в точке rel в соответствие блоку s
func (a *BlockArea) updateBlockEntityAt(rel vec.Vec3, s block.State) {
	if be, ok := a.entities[rel]; ok {
		if blockentity.Matches(be, s) {
			return
		}
		delete(a.entities, rel)
	}
	if blockentity.NeedsEntity(s.Type()) {
		a.entities[rel] = blockentity.New(s.Type(), rel)
	}
}

// RescanBlockEntities приводит набор сущностей в соответствие блокам:
// лишние удаляются, недостающие создаются со значениями по умолчанию.
func (a *BlockArea) RescanBlockEntities() {
	if !a.HasBlockEntities() {
		return
	}
	a.reconcileBlockEntities(func(vec.Vec3, block.State) blockentity.Entity { return nil })
}

// RemoveNonMatchingBlockEntities удаляет сущности, не совпадающие с блоком в своей точке.
// Новые сущности не создаются.
func (a *BlockArea) RemoveNonMatchingBlockEntities() {
	if !a.HasBlockEntities() {
		return
	}
	for pos, be := range a.entities {
		if !a.IsValidRelCoords(pos) || !blockentity.Matches(be, a.blocks[MakeIndexForSize(pos, a.size)]) {
			delete(a.entities, pos)
		}
	}
}

// mergeBlockEntities сводит сущности после слияния с src, вставленной в relMin.
// Приоритет: существующая совпадающая сущность области, затем копия из src,
// затем новая сущность по умолчанию.
func (a *BlockArea) mergeBlockEntities(relMin vec.Vec3, src *BlockArea) {
	a.reconcileBlockEntities(func(pos vec.Vec3, s block.State) blockentity.Entity {
		srcPos := pos.Sub(relMin)
		if !src.IsValidRelCoords(srcPos) {
			return nil
		}
		if sbe, ok := src.entities[srcPos]; ok && blockentity.Matches(sbe, s) {
			return sbe.Clone(pos)
		}
		return nil
	})
}

// reconcileBlockEntities строит новый набор сущностей за два прохода: сначала
// собирает сущности для каждой точки, которой они нужны, затем заменяет набор целиком.
// fallback предлагает сущность, если своей совпадающей нет.
func (a *BlockArea) reconcileBlockEntities(fallback func(vec.Vec3, block.State) blockentity.Entity) {
	next := make(Entities, len(a.entities))
	idx := 0
	for y := 0; y < a.size.Y; y++ {
		for z := 0; z < a.size.Z; z++ {
			for x := 0; x < a.size.X; x++ {
				s := a.blocks[idx]
				idx++
				if !blockentity.NeedsEntity(s.Type()) {
					continue
				}
				pos := vec.Vec3{X: x, Y: y, Z: z}
				if be, ok := a.entities[pos]; ok && blockentity.Matches(be, s) {
					next[pos] = be
					continue
				}
				if be := fallback(pos, s); be != nil {
					next[pos] = be
					continue
				}
				next[pos] = blockentity.New(s.Type(), pos)
			}
		}
	}
	a.entities = next
}

// sortedEntityPositions возвращает позиции сущностей в порядке индексов вокселей
func (a *BlockArea) sortedEntityPositions() []vec.Vec3 {
	res := make([]vec.Vec3, 0, len(a.entities))
	for pos := range a.entities {
		res = append(res, pos)
	}
	sort.Slice(res, func(i, j int) bool {
		return MakeIndexForSize(res[i], a.size) < MakeIndexForSize(res[j], a.size)
	})
	return res
}

// moveBlockEntities переносит все сущности функцией mapPos.
// Сущности, попавшие вне области нового размера, отбрасываются.
func (a *BlockArea) moveBlockEntities(newSize vec.Vec3, mapPos func(vec.Vec3) vec.Vec3) {
	if !a.HasBlockEntities() {
		return
	}
	next := make(Entities, len(a.entities))
	for pos, be := range a.entities {
		np := mapPos(pos)
		if np.X < 0 || np.Y < 0 || np.Z < 0 || np.X >= newSize.X || np.Y >= newSize.Y || np.Z >= newSize.Z {
			continue
		}
		be.SetPos(np)
		next[np] = be
	}
	a.entities = next
}
