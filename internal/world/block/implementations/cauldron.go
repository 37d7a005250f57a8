package implementations

import "github.com/annel0/mmo-blockarea/internal/world/block"

// MaxCauldronLevel - полный котел
const MaxCauldronLevel uint8 = 3

// CauldronBehavior реализует котел; метаданные хранят уровень воды 0..3
type CauldronBehavior struct {
	block.Base
}

// NewCauldronBehavior создаёт поведение котла
func NewCauldronBehavior() *CauldronBehavior {
	return &CauldronBehavior{Base: block.Base{Type: block.Cauldron, TypeName: "Cauldron", Solid: true}}
}

// CauldronLevel возвращает уровень воды в котле
func CauldronLevel(s block.State) uint8 {
	return min(s.Meta(), MaxCauldronLevel)
}

// WithCauldronLevel возвращает котел с заданным уровнем воды
func WithCauldronLevel(level uint8) block.State {
	return block.NewState(block.Cauldron, min(level, MaxCauldronLevel))
}
