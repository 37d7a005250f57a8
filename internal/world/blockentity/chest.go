package blockentity

import "github.com/annel0/mmo-blockarea/internal/vec"

// ChestSlots - количество слотов одинарного сундука
const ChestSlots = 27

// Chest - сундук с инвентарем
type Chest struct {
	base
	Slots [ChestSlots]Item
}

// Clone возвращает глубокую копию сундука
func (c *Chest) Clone(pos vec.Vec3) Entity {
	res := *c
	res.pos = pos
	return &res
}

// SetSlot кладет предметы в слот. Неверные индексы игнорируются.
func (c *Chest) SetSlot(idx int, item Item) {
	if idx < 0 || idx >= ChestSlots {
		return
	}
	c.Slots[idx] = item
}

// CountItems возвращает общее количество предметов в сундуке
func (c *Chest) CountItems() int {
	total := 0
	for _, it := range c.Slots {
		if !it.IsEmpty() {
			total += int(it.Count)
		}
	}
	return total
}

// EnderChest - сундук Края; собственного содержимого не имеет
type EnderChest struct {
	base
}

// Clone возвращает копию сундука Края
func (e *EnderChest) Clone(pos vec.Vec3) Entity {
	res := *e
	res.pos = pos
	return &res
}
