package blockentity

import "github.com/annel0/mmo-blockarea/internal/vec"

// Sign - табличка с четырьмя строками текста
type Sign struct {
	base
	Lines [4]string
}

// Clone возвращает глубокую копию таблички
func (s *Sign) Clone(pos vec.Vec3) Entity {
	res := *s
	res.pos = pos
	return &res
}
