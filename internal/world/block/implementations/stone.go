package implementations

import "github.com/annel0/mmo-blockarea/internal/world/block"

// SolidBehavior - простой твердый блок без ориентации (камень, булыжник, доски...)
type SolidBehavior struct {
	block.Base
}

// NewSolidBehavior создаёт поведение твердого блока
func NewSolidBehavior(id block.Type, name string) *SolidBehavior {
	return &SolidBehavior{Base: block.Base{Type: id, TypeName: name, Solid: true}}
}

// TransparentBehavior - нетвердый блок без ориентации (стекло, листва, саженцы)
type TransparentBehavior struct {
	block.Base
}

// NewTransparentBehavior создаёт поведение прозрачного блока
func NewTransparentBehavior(id block.Type, name string) *TransparentBehavior {
	return &TransparentBehavior{Base: block.Base{Type: id, TypeName: name}}
}
