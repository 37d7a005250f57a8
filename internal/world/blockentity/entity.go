// Package blockentity описывает сущности блоков: дополнительное состояние,
// привязанное к одному вокселю (содержимое сундука, текст таблички и т.п.).
package blockentity

import (
	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
)

// Entity - набор возможностей, на которые опирается область блоков:
// позиция, тип блока, глубокое копирование и перенос в новые координаты.
type Entity interface {
	// Pos возвращает координаты сущности (мировые или относительные: зависит от владельца)
	Pos() vec.Vec3
	// SetPos переносит сущность в новые координаты
	SetPos(pos vec.Vec3)
	// BlockType возвращает тип блока, которому принадлежит сущность
	BlockType() block.Type
	// Clone возвращает глубокую копию сущности в указанных координатах
	Clone(pos vec.Vec3) Entity
}

// Item - стек предметов в слоте контейнера
type Item struct {
	Type   uint16 `json:"type"`
	Count  int8   `json:"count"`
	Damage int16  `json:"damage,omitempty"`
}

// IsEmpty проверяет, пуст ли слот
func (i Item) IsEmpty() bool {
	return i.Count <= 0
}

type base struct {
	pos       vec.Vec3
	blockType block.Type
}

func (b *base) Pos() vec.Vec3         { return b.pos }
func (b *base) SetPos(pos vec.Vec3)   { b.pos = pos }
func (b *base) BlockType() block.Type { return b.blockType }

// NeedsEntity проверяет, требует ли тип блока сущность
func NeedsEntity(t block.Type) bool {
	switch t {
	case block.Chest, block.Furnace, block.LitFurnace, block.WallSign, block.EnderChest:
		return true
	}
	return false
}

// New создаёт сущность по умолчанию для типа блока.
// Возвращает nil, если тип блока сущности не требует.
func New(t block.Type, pos vec.Vec3) Entity {
	b := base{pos: pos, blockType: t}
	switch t {
	case block.Chest:
		return &Chest{base: b}
	case block.Furnace, block.LitFurnace:
		return &Furnace{base: b}
	case block.WallSign:
		return &Sign{base: b}
	case block.EnderChest:
		return &EnderChest{base: b}
	}
	return nil
}

// Matches проверяет, соответствует ли сущность состоянию блока
func Matches(e Entity, s block.State) bool {
	return e != nil && e.BlockType() == s.Type()
}
