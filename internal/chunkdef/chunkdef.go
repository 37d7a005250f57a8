// Package chunkdef содержит геометрию чанков мира: размеры колонки,
// перевод мировых координат в координаты чанка и индексацию внутри чанка.
package chunkdef

import "github.com/annel0/mmo-blockarea/internal/vec"

const (
	// Width - размер чанка по осям X и Z
	Width = 16
	// Height - высота колонки чанка
	Height = 256
	// NumBlocks - количество блоков в одной колонке
	NumBlocks = Width * Height * Width

	// MaxLight - максимальное значение освещения
	MaxLight = 0x0f
)

// IsValidHeight проверяет, что координата Y лежит внутри колонки
func IsValidHeight(y int) bool {
	return y >= 0 && y < Height
}

// BlockToChunk возвращает координаты чанка, содержащего блок (x, z)
func BlockToChunk(x, z int) vec.Vec2 {
	return vec.Vec2{X: floorDiv(x, Width), Y: floorDiv(z, Width)}
}

// ChunkOrigin возвращает мировые координаты угла (0, 0, 0) чанка
func ChunkOrigin(chunk vec.Vec2) vec.Vec3 {
	return vec.Vec3{X: chunk.X * Width, Y: 0, Z: chunk.Y * Width}
}

// AbsoluteToRelative переводит мировые координаты в локальные координаты чанка
func AbsoluteToRelative(pos vec.Vec3) (vec.Vec3, vec.Vec2) {
	chunk := BlockToChunk(pos.X, pos.Z)
	return pos.Sub(ChunkOrigin(chunk)), chunk
}

// MakeIndex возвращает индекс блока внутри колонки: X быстрее всего, затем Z, затем Y
func MakeIndex(x, y, z int) int {
	return (y*Width+z)*Width + x
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
