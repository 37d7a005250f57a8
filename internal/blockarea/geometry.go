package blockarea

import (
	"fmt"

	"github.com/annel0/mmo-blockarea/internal/vec"
)

// Crop отрезает указанное количество блоков с каждой стороны области.
// Начало координат сдвигается на отрезанное с минимальных сторон.
// Сущности, оставшиеся снаружи или не совпадающие с блоком, удаляются.
func (a *BlockArea) Crop(addMinX, subMaxX, addMinY, subMaxY, addMinZ, subMaxZ int) {
	if addMinX < 0 || subMaxX < 0 || addMinY < 0 || subMaxY < 0 || addMinZ < 0 || subMaxZ < 0 {
		panic(fmt.Sprintf("blockarea: отрицательная обрезка %d %d %d %d %d %d",
			addMinX, subMaxX, addMinY, subMaxY, addMinZ, subMaxZ))
	}
	if addMinX+subMaxX >= a.size.X || addMinY+subMaxY >= a.size.Y || addMinZ+subMaxZ >= a.size.Z {
		panic(fmt.Sprintf("blockarea: обрезка %d+%d, %d+%d, %d+%d не оставляет блоков в области %s",
			addMinX, subMaxX, addMinY, subMaxY, addMinZ, subMaxZ, a.size))
	}

	offset := vec.Vec3{X: addMinX, Y: addMinY, Z: addMinZ}
	newSize := vec.Vec3{
		X: a.size.X - addMinX - subMaxX,
		Y: a.size.Y - addMinY - subMaxY,
		Z: a.size.Z - addMinZ - subMaxZ,
	}

	a.blocks = cropArray(a.blocks, a.size, newSize, offset)
	a.blockLight = cropArray(a.blockLight, a.size, newSize, offset)
	a.skyLight = cropArray(a.skyLight, a.size, newSize, offset)
	a.moveBlockEntities(newSize, func(p vec.Vec3) vec.Vec3 { return p.Sub(offset) })

	a.origin = a.origin.Add(offset)
	a.size = newSize
	a.RemoveNonMatchingBlockEntities()
}

// Expand добавляет указанное количество блоков с каждой стороны области.
// Новые воксели заполняются значениями по умолчанию, начало координат
// сдвигается на добавленное с минимальных сторон.
func (a *BlockArea) Expand(subMinX, addMaxX, subMinY, addMaxY, subMinZ, addMaxZ int) {
	if subMinX < 0 || addMaxX < 0 || subMinY < 0 || addMaxY < 0 || subMinZ < 0 || addMaxZ < 0 {
		panic(fmt.Sprintf("blockarea: отрицательное расширение %d %d %d %d %d %d",
			subMinX, addMaxX, subMinY, addMaxY, subMinZ, addMaxZ))
	}

	offset := vec.Vec3{X: subMinX, Y: subMinY, Z: subMinZ}
	newSize := vec.Vec3{
		X: a.size.X + subMinX + addMaxX,
		Y: a.size.Y + subMinY + addMaxY,
		Z: a.size.Z + subMinZ + addMaxZ,
	}
	if !FitsVolume(newSize, MaxVolume) {
		panic(fmt.Sprintf("blockarea: расширенная область %s превышает допустимый объем", newSize))
	}

	a.blocks = expandArray(a.blocks, a.size, newSize, offset, 0)
	a.blockLight = expandArray(a.blockLight, a.size, newSize, offset, DefaultBlockLight)
	a.skyLight = expandArray(a.skyLight, a.size, newSize, offset, DefaultSkyLight)
	a.moveBlockEntities(newSize, func(p vec.Vec3) vec.Vec3 { return p.Add(offset) })

	a.origin = a.origin.Sub(offset)
	a.size = newSize
	a.RemoveNonMatchingBlockEntities()
}

// cropArray копирует из src (размер size) кубоид newSize, начиная с offset
func cropArray[T any](src []T, size, newSize, offset vec.Vec3) []T {
	if src == nil {
		return nil
	}
	dst := make([]T, newSize.Volume())
	for y := 0; y < newSize.Y; y++ {
		for z := 0; z < newSize.Z; z++ {
			di := MakeIndexForSize(vec.Vec3{Y: y, Z: z}, newSize)
			si := MakeIndexForSize(vec.Vec3{X: offset.X, Y: y + offset.Y, Z: z + offset.Z}, size)
			copy(dst[di:di+newSize.X], src[si:si+newSize.X])
		}
	}
	return dst
}

// expandArray размещает src (размер size) в новом массиве newSize со сдвигом offset
func expandArray[T comparable](src []T, size, newSize, offset vec.Vec3, fill T) []T {
	if src == nil {
		return nil
	}
	dst := make([]T, newSize.Volume())
	var zero T
	if fill != zero {
		for i := range dst {
			dst[i] = fill
		}
	}
	for y := 0; y < size.Y; y++ {
		for z := 0; z < size.Z; z++ {
			si := MakeIndexForSize(vec.Vec3{Y: y, Z: z}, size)
			di := MakeIndexForSize(vec.Vec3{X: offset.X, Y: y + offset.Y, Z: z + offset.Z}, newSize)
			copy(dst[di:di+size.X], src[si:si+size.X])
		}
	}
	return dst
}
