package blockarea

import (
	"testing"

	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// numberedArea создаёт область, где каждый блок уникален: тип = 1 + индекс
func numberedArea(t *testing.T, size vec.Vec3, dt DataType) *BlockArea {
	t.Helper()
	a := New()
	require.NoError(t, a.Create(size, dt))
	for i := range a.Blocks() {
		a.Blocks()[i] = block.Of(block.Type(1 + i))
	}
	for i := range a.BlockLights() {
		a.BlockLights()[i] = uint8(i % 16)
	}
	return a
}

func TestCrop(t *testing.T) {
	a := numberedArea(t, v3(5, 4, 6), DataBlocks|DataBlockLight)
	a.SetOrigin(v3(10, 20, 30))
	orig := a.Clone()

	a.Crop(1, 2, 0, 1, 2, 1)

	assert.Equal(t, v3(2, 3, 3), a.Size())
	assert.Equal(t, v3(11, 20, 32), a.Origin(), "Начало сдвигается на отрезанное снизу")
	for y := 0; y < 3; y++ {
		for z := 0; z < 3; z++ {
			for x := 0; x < 2; x++ {
				src := v3(x+1, y, z+2)
				assert.Equal(t, orig.GetRelBlock(src), a.GetRelBlock(v3(x, y, z)))
				assert.Equal(t, orig.GetRelBlockLight(src), a.GetRelBlockLight(v3(x, y, z)))
			}
		}
	}
	assert.Equal(t, orig.GetBlock(v3(12, 22, 34)), a.GetBlock(v3(12, 22, 34)), "Мировые координаты сохраняют содержимое")
}

func TestCrop_InvalidPanics(t *testing.T) {
	a := numberedArea(t, v3(4, 4, 4), DataBlocks)
	assert.Panics(t, func() { a.Crop(2, 2, 0, 0, 0, 0) }, "Обрезка всей оси недопустима")
	assert.Panics(t, func() { a.Crop(-1, 0, 0, 0, 0, 0) })
	assert.Panics(t, func() { a.Expand(0, 0, -1, 0, 0, 0) })
}

func TestCrop_RemovesOutsideEntities(t *testing.T) {
	a := New()
	require.NoError(t, a.Create(v3(4, 1, 4), DataBlocks|DataBlockEntities))
	a.SetRelBlock(v3(0, 0, 0), block.Of(block.Chest))
	a.SetRelBlock(v3(2, 0, 2), block.Of(block.Chest))

	a.Crop(1, 0, 0, 0, 1, 0)

	require.Len(t, a.BlockEntities(), 1)
	be, ok := a.BlockEntities()[v3(1, 0, 1)]
	require.True(t, ok, "Сущность сдвинута вместе с блоком")
	assert.Equal(t, v3(1, 0, 1), be.Pos())
}

func TestExpand(t *testing.T) {
	a := numberedArea(t, v3(2, 2, 2), DataBlocks|DataBlockLight|DataSkyLight)
	a.SetOrigin(v3(0, 10, 0))
	orig := a.Clone()

	a.Expand(1, 2, 3, 0, 0, 1)

	assert.Equal(t, v3(5, 5, 3), a.Size())
	assert.Equal(t, v3(-1, 7, 0), a.Origin())
	assert.Equal(t, block.AirState, a.GetRelBlock(v3(0, 0, 0)), "Новые блоки: воздух")
	assert.Equal(t, uint8(0x0f), a.GetRelSkyLight(v3(4, 4, 2)), "Новое освещение неба максимально")
	for y := 0; y < 2; y++ {
		for z := 0; z < 2; z++ {
			for x := 0; x < 2; x++ {
				assert.Equal(t, orig.GetRelBlock(v3(x, y, z)), a.GetRelBlock(v3(x+1, y+3, z)))
			}
		}
	}
}

func TestExpandThenCrop_RestoresArea(t *testing.T) {
	a := numberedArea(t, v3(3, 2, 4), DataBlocks|DataBlockLight|DataSkyLight)
	a.SetOrigin(v3(7, 8, 9))
	orig := a.Clone()

	a.Expand(1, 2, 3, 4, 5, 6)
	a.Crop(1, 2, 3, 4, 5, 6)

	assert.Equal(t, orig.Size(), a.Size())
	assert.Equal(t, orig.Origin(), a.Origin())
	assert.Equal(t, orig.Blocks(), a.Blocks())
	assert.Equal(t, orig.BlockLights(), a.BlockLights())
	assert.Equal(t, orig.SkyLights(), a.SkyLights())
}
