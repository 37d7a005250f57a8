package blockentity

import "github.com/annel0/mmo-blockarea/internal/vec"

// Furnace - печь: входной слот, топливо, результат и прогресс
type Furnace struct {
	base
	Input    Item
	Fuel     Item
	Output   Item
	CookTime int
	BurnTime int
}

// Clone возвращает глубокую копию печи
func (f *Furnace) Clone(pos vec.Vec3) Entity {
	res := *f
	res.pos = pos
	return &res
}

// IsBurning проверяет, горит ли топливо
func (f *Furnace) IsBurning() bool {
	return f.BurnTime > 0
}
