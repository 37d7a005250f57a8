package world

import (
	"testing"

	"github.com/annel0/mmo-blockarea/internal/blockarea"
	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
	"github.com/annel0/mmo-blockarea/internal/world/blockentity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk_Creation(t *testing.T) {
	chunk := NewChunk(vec.Vec2{X: 2, Y: -3})

	assert.Equal(t, vec.Vec3{X: 32, Y: 0, Z: -48}, chunk.Origin(), "Угол чанка в мировых координатах")
	assert.Equal(t, block.AirState, chunk.GetBlock(vec.Vec3{X: 5, Y: 100, Z: 7}))
	assert.Equal(t, uint8(15), chunk.GetSkyLight(vec.Vec3{X: 5, Y: 100, Z: 7}), "Небо освещает пустой чанк")
	assert.False(t, chunk.HasChanges(), "Новый чанк не имеет изменений")
}

func TestChunk_SetBlockTracksEntitiesAndChanges(t *testing.T) {
	chunk := NewChunk(vec.Vec2{X: 1, Y: 1})
	local := vec.Vec3{X: 3, Y: 64, Z: 4}
	world := vec.Vec3{X: 19, Y: 64, Z: 20}

	chunk.SetBlock(local, block.Of(block.Chest))
	assert.True(t, chunk.HasChanges())
	be, ok := chunk.GetEntity(world)
	require.True(t, ok, "Сущность создана по мировым координатам")
	assert.Equal(t, world, be.Pos())

	chunk.SetBlock(local, block.Of(block.Stone))
	_, ok = chunk.GetEntity(world)
	assert.False(t, ok, "Сущность удалена вместе с сундуком")

	chunk.ClearChanges()
	assert.False(t, chunk.HasChanges())
}

func TestChunk_WriteAreaReplacesEntities(t *testing.T) {
	chunk := NewChunk(vec.Vec2{})
	chunk.SetBlock(vec.Vec3{X: 1, Y: 10, Z: 1}, block.Of(block.Furnace))

	area := blockarea.New()
	require.NoError(t, area.Create(vec.Vec3{X: 3, Y: 1, Z: 3}, blockarea.DataBlocks|blockarea.DataBlockEntities))
	area.SetRelBlock(vec.Vec3{X: 2, Y: 0, Z: 2}, block.Of(block.Chest))
	area.BlockEntities()[vec.Vec3{X: 2, Y: 0, Z: 2}].(*blockentity.Chest).SetSlot(0, blockentity.Item{Type: 1, Count: 3})

	chunk.writeArea(area, vec.Vec3{X: 0, Y: 10, Z: 0}, blockarea.DataBlocks|blockarea.DataBlockEntities)

	_, ok := chunk.GetEntity(vec.Vec3{X: 1, Y: 10, Z: 1})
	assert.False(t, ok, "Печь перезаписана воздухом")
	be, ok := chunk.GetEntity(vec.Vec3{X: 2, Y: 10, Z: 2})
	require.True(t, ok)
	assert.Equal(t, 3, be.(*blockentity.Chest).CountItems(), "Сущность области перенесена в мир")

	// Без сущностей области создаются сущности по умолчанию
	chunk.writeArea(area, vec.Vec3{X: 5, Y: 10, Z: 5}, blockarea.DataBlocks)
	be, ok = chunk.GetEntity(vec.Vec3{X: 7, Y: 10, Z: 7})
	require.True(t, ok)
	assert.Equal(t, 0, be.(*blockentity.Chest).CountItems())
}

func TestChunk_WriteAreaOutsideIsNoop(t *testing.T) {
	chunk := NewChunk(vec.Vec2{})
	area := blockarea.New()
	require.NoError(t, area.Create(vec.Vec3{X: 2, Y: 2, Z: 2}, blockarea.DataBlocks))
	area.Fill(blockarea.DataBlocks, blockarea.NewVoxel(block.Of(block.Stone)))

	chunk.writeArea(area, vec.Vec3{X: 16, Y: 0, Z: 0}, blockarea.DataBlocks)
	assert.False(t, chunk.HasChanges(), "Область не пересекается с чанком")
}
