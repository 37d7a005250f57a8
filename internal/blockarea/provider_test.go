package blockarea

import (
	"testing"

	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
	"github.com/annel0/mmo-blockarea/internal/world/blockentity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_AcrossChunks(t *testing.T) {
	p := newFakeProvider()
	p.addChunks(-1, 0, -1, 0)
	p.setBlock(v3(-1, 64, -1), block.Of(block.Stone))
	p.setBlock(v3(0, 64, 0), block.Of(block.Dirt))
	p.setBlock(v3(3, 65, -2), block.Of(block.Chest))
	p.setBlock(v3(10, 64, 10), block.Of(block.Chest))

	a := New()
	require.NoError(t, a.Read(p, vec.Cuboid{P1: v3(4, 66, 1), P2: v3(-3, 63, -3)}, DataAll))

	assert.Equal(t, v3(-3, 63, -3), a.Origin(), "Границы сортируются")
	assert.Equal(t, v3(8, 4, 5), a.Size())
	assert.Len(t, p.visited, 4, "Прочитаны все четыре чанка")
	assert.Equal(t, block.Of(block.Stone), a.GetBlock(v3(-1, 64, -1)))
	assert.Equal(t, block.Of(block.Dirt), a.GetBlock(v3(0, 64, 0)))
	assert.Equal(t, uint8(0x0f), a.GetSkyLight(v3(0, 64, 0)))

	require.Len(t, a.BlockEntities(), 1, "Сущности вне границ не копируются")
	be := a.BlockEntities()[v3(6, 2, 1)]
	require.NotNil(t, be)
	assert.Equal(t, v3(6, 2, 1), be.Pos(), "Координаты сущности: относительные")
	assert.Equal(t, v3(3, 65, -2), p.entity(v3(3, 65, -2)).Pos(), "Сущность мира не изменена")
}

func TestRead_ClampsHeight(t *testing.T) {
	p := newFakeProvider()
	p.addChunks(0, 0, 0, 0)

	a := New()
	require.NoError(t, a.Read(p, vec.NewCuboid(v3(0, -5, 0), v3(1, 300, 1)), DataBlocks))
	assert.Equal(t, v3(0, 0, 0), a.Origin())
	assert.Equal(t, v3(2, 256, 2), a.Size())

	err := a.Read(p, vec.NewCuboid(v3(0, 300, 0), v3(1, 310, 1)), DataBlocks)
	assert.ErrorIs(t, err, ErrEmptyBounds)
}

func TestRead_UnavailableChunk(t *testing.T) {
	p := newFakeProvider()
	p.addChunks(0, 0, 0, 0)

	a := New()
	err := a.Read(p, vec.NewCuboid(v3(0, 0, 0), v3(20, 5, 3)), DataBlocks)
	assert.ErrorIs(t, err, ErrChunkUnavailable)
	assert.Empty(t, p.visited, "Провайдер не передал ни одного чанка")
	assert.Equal(t, DataType(0), a.DataTypes(), "После ошибки область пуста")
}

func TestRead_InvalidDataTypes(t *testing.T) {
	p := newFakeProvider()
	a := New()
	require.NoError(t, a.Create(v3(2, 2, 2), DataBlocks))

	assert.ErrorIs(t, a.Read(p, vec.NewCuboid(v3(0, 0, 0), v3(1, 1, 1)), DataBlockEntities), ErrInvalidDataTypes)
	assert.Equal(t, DataType(0), a.DataTypes(), "После ошибки область пуста")
	assert.Equal(t, vec.Vec3{}, a.Size())
}

func TestWrite_ToAnotherPlace(t *testing.T) {
	p := newFakeProvider()
	p.addChunks(0, 1, 0, 0)
	p.setBlock(v3(1, 10, 1), block.Of(block.Chest))
	p.setBlock(v3(2, 10, 1), block.Of(block.Glass))

	a := New()
	require.NoError(t, a.Read(p, vec.NewCuboid(v3(0, 10, 0), v3(3, 11, 3)), DataAll))
	a.BlockEntities()[v3(1, 0, 1)].(*blockentity.Chest).SetSlot(0, blockentity.Item{Type: 4, Count: 9})

	require.NoError(t, a.Write(p, v3(14, 20, 0), DataAll))

	assert.Equal(t, block.Of(block.Chest), p.block(v3(15, 20, 1)))
	assert.Equal(t, block.Of(block.Glass), p.block(v3(16, 20, 1)), "Запись через границу чанков")
	chest, ok := p.entity(v3(15, 20, 1)).(*blockentity.Chest)
	require.True(t, ok)
	assert.Equal(t, 9, chest.CountItems())
	assert.Equal(t, v3(15, 20, 1), chest.Pos())
}

func TestWrite_DropsMissingTypesAndAdjustsHeight(t *testing.T) {
	p := newFakeProvider()
	p.addChunks(0, 0, 0, 0)

	a := New()
	require.NoError(t, a.Create(v3(1, 4, 1), DataBlocks))
	a.Fill(DataBlocks, NewVoxel(block.Of(block.Stone)))

	require.NoError(t, a.Write(p, v3(0, 254, 0), DataBlocks|DataBlockLight))
	assert.Equal(t, block.Of(block.Stone), p.block(v3(0, 252, 0)), "Область сдвинута внутрь мира")
	assert.Equal(t, block.Of(block.Stone), p.block(v3(0, 255, 0)))
	assert.Equal(t, uint8(0), p.blockLight(v3(0, 252, 0)))

	require.NoError(t, a.Write(p, v3(0, -3, 0), DataBlocks))
	assert.Equal(t, block.Of(block.Stone), p.block(v3(0, 0, 0)))
}

func TestWrite_PartialFailure(t *testing.T) {
	p := newFakeProvider()
	p.addChunks(0, 0, 0, 0)

	a := New()
	require.NoError(t, a.Create(v3(20, 1, 1), DataBlocks))
	a.Fill(DataBlocks, NewVoxel(block.Of(block.Dirt)))

	err := a.Write(p, v3(0, 5, 0), DataBlocks)
	var pwe *PartialWriteError
	require.ErrorAs(t, err, &pwe)
	assert.Equal(t, []vec.Vec2{{X: 1, Y: 0}}, pwe.Failed)
	assert.Equal(t, block.Of(block.Dirt), p.block(v3(15, 5, 0)), "Доступные чанки записаны")
}

// Сценарий: прочитать 3x1x3, заменить центр, повернуть, записать в другое место
func TestReadModifyWrite_Scenario(t *testing.T) {
	p := newFakeProvider()
	p.addChunks(0, 0, 0, 0)
	for x := 0; x < 3; x++ {
		for z := 0; z < 3; z++ {
			p.setBlock(v3(x, 5, z), block.Of(block.Stone))
		}
	}
	p.setBlock(v3(0, 5, 0), block.NewState(block.OakStairs, 0))

	a := New()
	require.NoError(t, a.Read(p, vec.NewCuboid(v3(0, 5, 0), v3(2, 5, 2)), DataBlocks))
	a.SetRelBlock(v3(1, 0, 1), block.Of(block.Glass))
	a.RotateCW()
	require.NoError(t, a.Write(p, v3(8, 5, 8), DataBlocks))

	assert.Equal(t, block.Of(block.Glass), p.block(v3(9, 5, 9)), "Центр остается центром")
	assert.Equal(t, block.NewState(block.OakStairs, 2), p.block(v3(10, 5, 8)),
		"Угол переехал и повернулся с востока на юг")
	assert.Equal(t, block.Of(block.Stone), p.block(v3(8, 5, 8)))
	assert.Equal(t, block.NewState(block.OakStairs, 0), p.block(v3(0, 5, 0)), "Исходное место не изменено")
}
