package blockarea

import (
	"testing"

	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFill(t *testing.T) {
	a := New()
	require.NoError(t, a.Create(v3(3, 3, 3), DataBlocks|DataSkyLight|DataBlockEntities))

	a.Fill(DataBlocks|DataBlockLight, Voxel{Block: block.Of(block.Chest), BlockLight: 8})

	assert.Equal(t, 27, a.CountSpecificBlocks(block.Chest))
	assert.Equal(t, uint8(0x0f), a.GetRelSkyLight(v3(1, 1, 1)), "Небо не запрошено: не меняется")
	assert.Len(t, a.BlockEntities(), 27, "Каждому сундуку создана сущность")

	a.Fill(DataBlocks, NewVoxel(block.AirState))
	assert.Empty(t, a.BlockEntities())
	assert.Equal(t, 0, a.CountNonAirBlocks())
}

func TestFillRelCuboid(t *testing.T) {
	a := New()
	require.NoError(t, a.Create(v3(4, 4, 4), DataBlocks|DataBlockLight))

	a.FillRelCuboid(vec.Cuboid{P1: v3(2, 3, 1), P2: v3(1, 1, 2)}, DataBlocks|DataBlockLight,
		Voxel{Block: block.Of(block.Glass), BlockLight: 3})

	assert.Equal(t, 12, a.CountSpecificBlocks(block.Glass), "Кубоид сортируется, границы включительно")
	assert.Equal(t, block.Of(block.Glass), a.GetRelBlock(v3(1, 1, 1)))
	assert.Equal(t, block.Of(block.Glass), a.GetRelBlock(v3(2, 3, 2)))
	assert.Equal(t, uint8(3), a.GetRelBlockLight(v3(2, 2, 2)))
	assert.Equal(t, block.AirState, a.GetRelBlock(v3(3, 3, 3)))

	assert.Panics(t, func() {
		a.FillRelCuboid(vec.Cuboid{P1: v3(0, 0, 0), P2: v3(4, 0, 0)}, DataBlocks, NewVoxel(block.AirState))
	})
}

func TestFillCuboid_WorldCoords(t *testing.T) {
	a := New()
	require.NoError(t, a.Create(v3(2, 2, 2), DataBlocks))
	a.SetOrigin(v3(-10, 5, 3))

	a.FillCuboid(vec.NewCuboid(v3(-9, 6, 4), v3(-9, 6, 4)), DataBlocks, NewVoxel(block.Of(block.Sand)))
	assert.Equal(t, block.Of(block.Sand), a.GetRelBlock(v3(1, 1, 1)))
	assert.Equal(t, 1, a.CountNonAirBlocks())
}

func TestLineWalk(t *testing.T) {
	cases := []struct{ p1, p2 vec.Vec3 }{
		{v3(0, 0, 0), v3(0, 0, 0)},
		{v3(0, 0, 0), v3(5, 0, 0)},
		{v3(0, 0, 0), v3(3, 1, 0)},
		{v3(4, 2, 7), v3(-3, 9, 1)},
		{v3(0, 0, 0), v3(2, 5, 9)},
		{v3(5, 5, 5), v3(0, 0, 0)},
		{v3(1, 10, -4), v3(1, -2, -4)},
	}
	for _, tc := range cases {
		var pts []vec.Vec3
		lineWalk(tc.p1, tc.p2, func(p vec.Vec3) { pts = append(pts, p) })

		require.NotEmpty(t, pts)
		assert.Equal(t, tc.p1, pts[0], "Отрезок начинается в p1")
		assert.Equal(t, tc.p2, pts[len(pts)-1], "Отрезок заканчивается в p2")

		d := tc.p2.Sub(tc.p1)
		assert.Len(t, pts, max(abs(d.X), abs(d.Y), abs(d.Z))+1, "Одна точка на шаг ведущей оси")
		for i := 1; i < len(pts); i++ {
			step := pts[i].Sub(pts[i-1])
			assert.LessOrEqual(t, abs(step.X), 1, "Соседние точки отличаются не более чем на 1")
			assert.LessOrEqual(t, abs(step.Y), 1)
			assert.LessOrEqual(t, abs(step.Z), 1)
		}
	}
}

func TestRelLine_ClipsToArea(t *testing.T) {
	a := New()
	require.NoError(t, a.Create(v3(4, 1, 4), DataBlocks|DataBlockEntities))

	a.RelLine(v3(-2, 0, -2), v3(5, 0, 5), DataBlocks, NewVoxel(block.Of(block.Chest)))

	assert.Equal(t, 4, a.CountSpecificBlocks(block.Chest), "Точки вне области пропускаются")
	for i := 0; i < 4; i++ {
		assert.Equal(t, block.Of(block.Chest), a.GetRelBlock(v3(i, 0, i)))
	}
	assert.Len(t, a.BlockEntities(), 4)
}

func TestCounts(t *testing.T) {
	a := New()
	assert.Equal(t, 0, a.CountNonAirBlocks(), "Пустая область")

	require.NoError(t, a.Create(v3(2, 2, 2), DataBlocks))
	a.SetRelBlock(v3(0, 0, 0), block.NewState(block.Planks, 1))
	a.SetRelBlock(v3(1, 0, 0), block.NewState(block.Planks, 2))
	a.SetRelBlock(v3(1, 1, 1), block.NewState(block.Planks, 2))
	a.SetRelBlock(v3(0, 1, 0), block.NewState(block.Air, 3))

	assert.Equal(t, 3, a.CountNonAirBlocks(), "Воздух с метаданными остается воздухом")
	assert.Equal(t, 3, a.CountSpecificBlocks(block.Planks))
	assert.Equal(t, 2, a.CountSpecificStates(block.NewState(block.Planks, 2)))
}

func TestFill_NonAirCountEqualsVolume(t *testing.T) {
	a := New()
	require.NoError(t, a.Create(v3(3, 4, 5), DataBlocks|DataSkyLight))

	a.Fill(DataBlocks, NewVoxel(block.Of(block.Cobblestone)))
	assert.Equal(t, a.Volume(), a.CountNonAirBlocks(), "Заливка непустым блоком занимает весь объем")

	a.Fill(DataBlocks, NewVoxel(block.AirState))
	assert.Equal(t, 0, a.CountNonAirBlocks(), "После заливки воздухом блоков нет")
}

func TestCounts_Checkerboard(t *testing.T) {
	p := newFakeProvider()
	p.addChunks(0, 1, 0, 0)

	a := New()
	require.NoError(t, a.Create(v3(3, 1, 3), DataBlocks))
	a.SetOrigin(v3(2, 70, 2))
	for x := 0; x < 3; x++ {
		for z := 0; z < 3; z++ {
			if (x+z)%2 == 0 {
				a.SetRelBlock(v3(x, 0, z), block.Of(block.Stone))
			} else {
				a.SetRelBlock(v3(x, 0, z), block.Of(block.Dirt))
			}
		}
	}
	assert.Equal(t, 5, a.CountSpecificBlocks(block.Stone))
	assert.Equal(t, 4, a.CountSpecificBlocks(block.Dirt))
	assert.Equal(t, 9, a.CountNonAirBlocks(), "Непустых столько же, сколько камня и земли вместе")

	a.SetRelBlock(v3(1, 0, 0), block.AirState)
	assert.Equal(t, 3, a.CountSpecificBlocks(block.Dirt))
	assert.Equal(t, 8, a.CountNonAirBlocks())

	// Запись в мир и чтение копии в другом месте сохраняют раскладку
	require.NoError(t, a.WriteAll(p))
	moved := New()
	require.NoError(t, moved.Read(p, vec.NewCuboid(v3(2, 70, 2), v3(4, 70, 4)), DataBlocks))
	require.NoError(t, moved.Write(p, v3(20, 80, 3), DataBlocks))

	check := New()
	require.NoError(t, check.Read(p, vec.NewCuboid(v3(20, 80, 3), v3(22, 80, 5)), DataBlocks))
	assert.Equal(t, a.Blocks(), check.Blocks(), "Раскладка воспроизведена на новом месте")
}

func TestNonAirCropRelCoords(t *testing.T) {
	a := New()
	require.NoError(t, a.Create(v3(5, 5, 5), DataBlocks))

	_, ok := a.NonAirCropRelCoords(block.Air)
	assert.False(t, ok, "Пустая область")

	a.SetRelBlock(v3(1, 3, 2), block.Of(block.Stone))
	a.SetRelBlock(v3(3, 1, 4), block.Of(block.Dirt))
	a.SetRelBlock(v3(0, 0, 0), block.Of(block.Sponge))

	c, ok := a.NonAirCropRelCoords(block.Sponge)
	require.True(t, ok)
	assert.Equal(t, vec.Cuboid{P1: v3(0, 0, 0), P2: v3(4, 4, 4)}, c, "Воздух учитывается, если игнорируется губка")

	c, ok = a.NonAirCropRelCoords(block.Air)
	require.True(t, ok)
	assert.Equal(t, vec.Cuboid{P1: v3(0, 0, 0), P2: v3(3, 3, 4)}, c)
}
