package vec

import "fmt"

// Vec2 представляет 2D координаты. Для координат чанков X: ось X мира, Y: ось Z мира.
type Vec2 struct {
	X, Y int
}

// String возвращает строковое представление
func (v Vec2) String() string {
	return fmt.Sprintf("{%d, %d}", v.X, v.Y)
}
