package vec

// Cuboid задает прямоугольную область мира. Обе границы включительно.
type Cuboid struct {
	P1 Vec3
	P2 Vec3
}

// NewCuboid создаёт кубоид по двум углам и сортирует его
func NewCuboid(p1, p2 Vec3) Cuboid {
	c := Cuboid{P1: p1, P2: p2}
	c.Sort()
	return c
}

// Sort приводит кубоид к виду P1 <= P2 по всем осям
func (c *Cuboid) Sort() {
	if c.IsSorted() {
		return
	}
	lo := c.P1.Min(c.P2)
	hi := c.P1.Max(c.P2)
	c.P1, c.P2 = lo, hi
}

// IsSorted проверяет, что P1 <= P2 по всем осям
func (c Cuboid) IsSorted() bool {
	return c.P1.X <= c.P2.X && c.P1.Y <= c.P2.Y && c.P1.Z <= c.P2.Z
}

// Size возвращает размер кубоида в блоках (для отсортированного кубоида)
func (c Cuboid) Size() Vec3 {
	return Vec3{
		X: c.P2.X - c.P1.X + 1,
		Y: c.P2.Y - c.P1.Y + 1,
		Z: c.P2.Z - c.P1.Z + 1,
	}
}

// Volume возвращает количество блоков внутри кубоида
func (c Cuboid) Volume() int {
	return c.Size().Volume()
}

// IsInside проверяет, попадает ли точка в кубоид
func (c Cuboid) IsInside(p Vec3) bool {
	return p.X >= c.P1.X && p.X <= c.P2.X &&
		p.Y >= c.P1.Y && p.Y <= c.P2.Y &&
		p.Z >= c.P1.Z && p.Z <= c.P2.Z
}

// Move сдвигает кубоид на указанный вектор
func (c Cuboid) Move(offset Vec3) Cuboid {
	return Cuboid{P1: c.P1.Add(offset), P2: c.P2.Add(offset)}
}

// ClampY ограничивает кубоид по высоте. Возвращает true, если границы изменились.
func (c *Cuboid) ClampY(minY, maxY int) bool {
	changed := false
	if c.P1.Y < minY {
		c.P1.Y = minY
		changed = true
	}
	if c.P2.Y > maxY {
		c.P2.Y = maxY
		changed = true
	}
	return changed
}
