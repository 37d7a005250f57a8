package implementations

import (
	"testing"

	"github.com/annel0/mmo-blockarea/internal/world/block"
	"github.com/stretchr/testify/assert"
)

// allTypes перечисляет типы, зарегистрированные в init
var allTypes = []block.Type{
	block.Air, block.Stone, block.Grass, block.Dirt, block.Mycelium, block.Cobblestone,
	block.Planks, block.Bedrock, block.Sand, block.Gravel, block.Sponge, block.Glass,
	block.Leaves, block.Sapling, block.Water, block.StationaryWater, block.Lava,
	block.StationaryLava, block.CoalOre, block.IronOre, block.GoldOre, block.LapisOre,
	block.DiamondOre, block.RedstoneOre, block.EmeraldOre, block.QuartzOre, block.Log,
	block.OakStairs, block.StoneStairs, block.Rail, block.Torch, block.Chest, block.Furnace,
	block.LitFurnace, block.EnderChest, block.Ladder, block.WallSign, block.Cauldron,
}

func TestAllTypesRegistered(t *testing.T) {
	for _, id := range allTypes {
		b, ok := block.Get(id)
		if assert.True(t, ok, "тип %d должен быть зарегистрирован", id) {
			assert.Equal(t, id, b.ID())
			assert.NotEmpty(t, b.Name())
		}
	}
}

func TestRotationRoundTrips(t *testing.T) {
	for _, id := range allTypes {
		for meta := uint8(0); meta < 16; meta++ {
			s := block.NewState(id, meta)

			r := s
			for i := 0; i < 4; i++ {
				r = block.RotateCW(r)
			}
			assert.Equal(t, s, r, "четыре поворота по часовой для %v", s)

			assert.Equal(t, s, block.RotateCCW(block.RotateCW(s)), "CCW(CW(s)) для %v", s)
			assert.Equal(t, s, block.MirrorXY(block.MirrorXY(s)), "двойное отражение XY для %v", s)
			assert.Equal(t, s, block.MirrorXZ(block.MirrorXZ(s)), "двойное отражение XZ для %v", s)
			assert.Equal(t, s, block.MirrorYZ(block.MirrorYZ(s)), "двойное отражение YZ для %v", s)
		}
	}
}

func TestFacingRotation(t *testing.T) {
	chest := block.NewState(block.Chest, FacingNorth)
	assert.Equal(t, FacingWest, block.RotateCCW(chest).Meta(), "север против часовой: запад")
	assert.Equal(t, FacingEast, block.RotateCW(chest).Meta(), "север по часовой: восток")
	assert.Equal(t, FacingSouth, block.MirrorXY(chest).Meta())
	assert.Equal(t, FacingNorth, block.MirrorYZ(chest).Meta())
}

func TestStairsRotation(t *testing.T) {
	s := block.NewState(block.OakStairs, StairsEast|StairsUpsideDown)
	assert.Equal(t, StairsNorth|StairsUpsideDown, block.RotateCCW(s).Meta(), "бит переворота сохраняется")
	assert.Equal(t, StairsSouth|StairsUpsideDown, block.RotateCW(s).Meta())
	assert.Equal(t, StairsEast, block.MirrorXZ(s).Meta(), "отражение XZ переворачивает ступени")
	assert.Equal(t, StairsWest|StairsUpsideDown, block.MirrorYZ(s).Meta())
}

func TestLogRotation(t *testing.T) {
	x := LogWithAxis(2, LogAxisX)
	assert.Equal(t, LogWithAxis(2, LogAxisZ), block.RotateCW(x))
	assert.Equal(t, x, block.MirrorYZ(x), "отражение не меняет ось бревна")

	y := LogWithAxis(1, LogAxisY)
	assert.Equal(t, y, block.RotateCCW(y))
}

func TestRailRotation(t *testing.T) {
	assert.Equal(t, RailEastWest, block.RotateCW(block.NewState(block.Rail, RailNorthSouth)).Meta())
	assert.Equal(t, RailAscendingNorth, block.RotateCCW(block.NewState(block.Rail, RailAscendingEast)).Meta())
	assert.Equal(t, RailCurveSouthWest, block.RotateCW(block.NewState(block.Rail, RailCurveSouthEast)).Meta())
	assert.Equal(t, RailCurveNorthEast, block.MirrorXY(block.NewState(block.Rail, RailCurveSouthEast)).Meta())
	assert.Equal(t, RailCurveSouthWest, block.MirrorYZ(block.NewState(block.Rail, RailCurveSouthEast)).Meta())
}

func TestCauldronAndOre(t *testing.T) {
	assert.Equal(t, uint8(3), CauldronLevel(WithCauldronLevel(9)), "уровень ограничен сверху")
	assert.Equal(t, uint8(2), CauldronLevel(WithCauldronLevel(2)))
	assert.True(t, IsOre(block.Of(block.DiamondOre)))
	assert.False(t, IsOre(block.Of(block.Stone)))
}
