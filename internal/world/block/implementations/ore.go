package implementations

import "github.com/annel0/mmo-blockarea/internal/world/block"

// OreBehavior реализует руду
type OreBehavior struct {
	block.Base
}

// NewOreBehavior создаёт поведение руды
func NewOreBehavior(id block.Type, name string) *OreBehavior {
	return &OreBehavior{Base: block.Base{Type: id, TypeName: name, Solid: true}}
}

// IsOre проверяет, является ли блок рудой
func IsOre(s block.State) bool {
	b, ok := block.Get(s.Type())
	if !ok {
		return false
	}
	_, isOre := b.(*OreBehavior)
	return isOre
}
