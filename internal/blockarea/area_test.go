package blockarea

import (
	"testing"

	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
	"github.com/annel0/mmo-blockarea/internal/world/blockentity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v3(x, y, z int) vec.Vec3 { return vec.Vec3{X: x, Y: y, Z: z} }

func TestCreate_Defaults(t *testing.T) {
	a := New()
	require.NoError(t, a.Create(v3(2, 3, 4), DataBlocks|DataBlockLight|DataSkyLight))

	assert.Equal(t, v3(2, 3, 4), a.Size(), "Размер должен совпадать")
	assert.Equal(t, vec.Vec3{}, a.Origin(), "Начало координат должно быть обнулено")
	assert.Len(t, a.Blocks(), 24, "Длина массива блоков равна объему")
	assert.Equal(t, block.AirState, a.GetRelBlock(v3(1, 2, 3)), "Новые блоки: воздух")
	assert.Equal(t, uint8(0), a.GetRelBlockLight(v3(1, 2, 3)), "Освещение от блоков по умолчанию 0")
	assert.Equal(t, uint8(0x0f), a.GetRelSkyLight(v3(1, 2, 3)), "Освещение от неба по умолчанию максимальное")
	assert.False(t, a.HasBlockEntities())
}

func TestCreate_InvalidDataTypes(t *testing.T) {
	a := New()
	require.NoError(t, a.Create(v3(1, 1, 1), DataBlocks))

	err := a.Create(v3(1, 1, 1), DataBlockEntities)
	assert.ErrorIs(t, err, ErrInvalidDataTypes, "Сущности без блоков недопустимы")
	assert.Equal(t, DataType(0), a.DataTypes(), "После ошибки область пуста")
	assert.Equal(t, vec.Vec3{}, a.Size())

	assert.ErrorIs(t, a.Create(v3(-1, 1, 1), DataBlocks), ErrInvalidSize)
}

func TestCreate_RejectsOverflowingSize(t *testing.T) {
	a := New()
	huge := v3(1<<21, 1<<21, 1<<22)
	err := a.Create(huge, DataBlocks)
	assert.ErrorIs(t, err, ErrInvalidSize, "Объем, переполняющий int, недопустим")
	assert.Equal(t, vec.Vec3{}, a.Size(), "После ошибки область пуста")
	assert.False(t, a.IsValidRelCoords(v3(1, 1, 1)))

	assert.ErrorIs(t, a.Create(v3(MaxVolume, 2, 1), DataBlocks), ErrInvalidSize)
	assert.NoError(t, a.Create(v3(0, 1<<20, 0), DataBlocks), "Пустая область допустима")
}

func TestFitsVolume(t *testing.T) {
	assert.True(t, FitsVolume(v3(2, 3, 4), 24))
	assert.False(t, FitsVolume(v3(2, 3, 4), 23))
	assert.False(t, FitsVolume(v3(-1, 3, 4), 100))
	assert.False(t, FitsVolume(v3(1<<21, 1<<21, 1<<22), MaxVolume))
}

func TestIsValidDataTypeCombination(t *testing.T) {
	assert.True(t, IsValidDataTypeCombination(0))
	assert.True(t, IsValidDataTypeCombination(DataAll))
	assert.True(t, IsValidDataTypeCombination(DataBlockLight|DataSkyLight))
	assert.False(t, IsValidDataTypeCombination(DataBlockEntities|DataSkyLight))
	assert.False(t, IsValidDataTypeCombination(2), "Неизвестные биты недопустимы")
}

func TestMakeIndex_Layout(t *testing.T) {
	a := New()
	require.NoError(t, a.Create(v3(3, 4, 5), DataBlocks))

	assert.Equal(t, 0, a.MakeIndex(v3(0, 0, 0)))
	assert.Equal(t, 1, a.MakeIndex(v3(1, 0, 0)), "X меняется быстрее всего")
	assert.Equal(t, 3, a.MakeIndex(v3(0, 0, 1)), "Затем Z")
	assert.Equal(t, 15, a.MakeIndex(v3(0, 1, 0)), "Затем Y")
	assert.Equal(t, 59, a.MakeIndex(v3(2, 3, 4)))
	assert.Panics(t, func() { a.MakeIndex(v3(3, 0, 0)) }, "Координаты вне области: паника")
}

func TestSetGet_RoundTrip(t *testing.T) {
	a := New()
	require.NoError(t, a.Create(v3(4, 4, 4), DataBlocks|DataBlockLight|DataSkyLight))
	a.SetOrigin(v3(100, 10, -50))

	stairs := block.NewState(block.OakStairs, 2)
	a.SetBlock(v3(101, 12, -47), stairs)
	a.SetBlockLight(v3(101, 12, -47), 7)
	a.SetSkyLight(v3(101, 12, -47), 3)

	assert.Equal(t, stairs, a.GetRelBlock(v3(1, 2, 3)), "Мировые и относительные координаты согласованы")
	assert.Equal(t, uint8(7), a.GetBlockLight(v3(101, 12, -47)))
	assert.Equal(t, uint8(3), a.GetRelSkyLight(v3(1, 2, 3)))
	assert.True(t, a.IsValidCoords(v3(103, 13, -47)))
	assert.False(t, a.IsValidCoords(v3(104, 13, -47)))
	assert.Equal(t, vec.Cuboid{P1: v3(100, 10, -50), P2: v3(103, 13, -47)}, a.Bounds())
}

func TestAbsentData_DefaultsAndIgnoredSetters(t *testing.T) {
	a := New()
	require.NoError(t, a.Create(v3(2, 2, 2), DataSkyLight))

	a.SetRelBlock(v3(0, 0, 0), block.Of(block.Stone))
	a.SetRelBlockLight(v3(0, 0, 0), 5)

	assert.Equal(t, block.AirState, a.GetRelBlock(v3(0, 0, 0)), "Без блоков возвращается воздух")
	assert.Equal(t, uint8(0), a.GetRelBlockLight(v3(0, 0, 0)))
	assert.Nil(t, a.Blocks())
	assert.Panics(t, func() { a.BlockEntities() }, "Сущности отсутствуют: паника")
}

func TestSetRelBlock_MaintainsBlockEntity(t *testing.T) {
	a := New()
	require.NoError(t, a.Create(v3(3, 3, 3), DataBlocks|DataBlockEntities))

	a.SetRelBlock(v3(1, 1, 1), block.Of(block.Chest))
	require.Len(t, a.BlockEntities(), 1, "Для сундука создана сущность")
	chest, ok := a.BlockEntities()[v3(1, 1, 1)].(*blockentity.Chest)
	require.True(t, ok)
	chest.SetSlot(0, blockentity.Item{Type: 1, Count: 5})

	a.SetRelBlock(v3(1, 1, 1), block.NewState(block.Chest, 3))
	assert.Equal(t, 5, a.BlockEntities()[v3(1, 1, 1)].(*blockentity.Chest).CountItems(),
		"Смена метаданных сохраняет сущность")

	a.SetRelBlock(v3(1, 1, 1), block.Of(block.Furnace))
	_, isFurnace := a.BlockEntities()[v3(1, 1, 1)].(*blockentity.Furnace)
	assert.True(t, isFurnace, "Смена типа заменяет сущность")

	a.SetRelBlock(v3(1, 1, 1), block.Of(block.Stone))
	assert.Empty(t, a.BlockEntities(), "Обычный блок не имеет сущности")
}

func TestCopyTo_IsDeep(t *testing.T) {
	a := New()
	require.NoError(t, a.Create(v3(2, 2, 2), DataAll))
	a.SetOrigin(v3(5, 6, 7))
	a.SetWEOffset(v3(1, 0, 1))
	a.SetRelBlock(v3(0, 0, 0), block.Of(block.Chest))

	b := a.Clone()
	assert.Equal(t, a.Origin(), b.Origin())
	assert.Equal(t, a.WEOffset(), b.WEOffset())
	assert.Equal(t, a.DataTypes(), b.DataTypes())

	b.SetRelBlock(v3(1, 1, 1), block.Of(block.Stone))
	b.BlockEntities()[v3(0, 0, 0)].(*blockentity.Chest).SetSlot(0, blockentity.Item{Type: 1, Count: 1})

	assert.Equal(t, block.AirState, a.GetRelBlock(v3(1, 1, 1)), "Изменения копии не видны в оригинале")
	assert.Equal(t, 0, a.BlockEntities()[v3(0, 0, 0)].(*blockentity.Chest).CountItems())
}

func TestForEachBlockEntity_Order(t *testing.T) {
	a := New()
	require.NoError(t, a.Create(v3(3, 2, 3), DataBlocks|DataBlockEntities))
	a.SetRelBlock(v3(2, 1, 0), block.Of(block.Chest))
	a.SetRelBlock(v3(0, 0, 2), block.Of(block.Furnace))
	a.SetRelBlock(v3(1, 0, 0), block.Of(block.WallSign))

	var got []vec.Vec3
	assert.True(t, a.ForEachBlockEntity(func(be blockentity.Entity) bool {
		got = append(got, be.Pos())
		return false
	}))
	assert.Equal(t, []vec.Vec3{v3(1, 0, 0), v3(0, 0, 2), v3(2, 1, 0)}, got, "Перебор в порядке индексов")

	n := 0
	assert.False(t, a.ForEachBlockEntity(func(blockentity.Entity) bool {
		n++
		return true
	}), "Прерванный перебор возвращает false")
	assert.Equal(t, 1, n)

	assert.False(t, a.DoWithBlockEntityRelAt(v3(2, 2, 2), func(blockentity.Entity) bool { return true }))
	assert.True(t, a.DoWithBlockEntityAt(v3(2, 1, 0), func(be blockentity.Entity) bool {
		return be.BlockType() == block.Chest
	}))
}
