package implementations

import "github.com/annel0/mmo-blockarea/internal/world/block"

// FluidBehavior реализует поведение жидкостей (вода, лава).
// Метаданные хранят уровень жидкости и не зависят от ориентации.
type FluidBehavior struct {
	block.Base
}

// NewFluidBehavior создаёт поведение жидкости
func NewFluidBehavior(id block.Type, name string) *FluidBehavior {
	return &FluidBehavior{Base: block.Base{Type: id, TypeName: name}}
}

// FluidLevel возвращает уровень жидкости: 0: источник, 1..7: растекание
func FluidLevel(s block.State) uint8 {
	return s.Meta() & 0x07
}
