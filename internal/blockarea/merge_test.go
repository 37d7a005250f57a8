package blockarea

import (
	"testing"

	"github.com/annel0/mmo-blockarea/internal/world/block"
	"github.com/annel0/mmo-blockarea/internal/world/blockentity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeBlock_TruthTable(t *testing.T) {
	var (
		air    = block.AirState
		stone  = block.Of(block.Stone)
		dirt   = block.Of(block.Dirt)
		grass  = block.Of(block.Grass)
		sponge = block.Of(block.Sponge)
		water  = block.NewState(block.StationaryWater, 2)
		lava   = block.Of(block.Lava)
		glass  = block.Of(block.Glass)
		planks = block.NewState(block.Planks, 1)
	)

	cases := []struct {
		name     string
		strategy MergeStrategy
		a, b     block.State
		want     block.State
	}{
		{"overwrite", MergeOverwrite, stone, air, air},
		{"overwrite sponge", MergeOverwrite, stone, sponge, sponge},

		{"fill air into air", MergeFillAir, air, stone, stone},
		{"fill air keeps solid", MergeFillAir, dirt, stone, dirt},

		{"imprint air is transparent", MergeImprint, dirt, air, dirt},
		{"imprint solid", MergeImprint, dirt, glass, glass},

		{"lake sponge", MergeLake, dirt, sponge, dirt},
		{"lake air hollows", MergeLake, stone, air, air},
		{"lake keeps water", MergeLake, water, stone, water},
		{"lake air beats lava", MergeLake, lava, air, air},
		{"lake keeps lava", MergeLake, lava, water, lava},
		{"lake water overwrites", MergeLake, stone, water, water},
		{"lake lava over air", MergeLake, air, lava, lava},
		{"lake stone over dirt", MergeLake, dirt, stone, stone},
		{"lake stone over grass", MergeLake, grass, stone, stone},
		{"lake stone keeps planks", MergeLake, planks, stone, planks},
		{"lake other kept", MergeLake, dirt, glass, dirt},
		{"lake other over air", MergeLake, air, glass, air},

		{"sponge print sponge", MergeSpongePrint, dirt, sponge, dirt},
		{"sponge print air", MergeSpongePrint, dirt, air, air},

		{"difference equal", MergeDifference, planks, planks, air},
		{"difference meta differs", MergeDifference, planks, block.Of(block.Planks), planks},

		{"simple compare equal", MergeSimpleCompare, dirt, dirt, air},
		{"simple compare differs", MergeSimpleCompare, air, dirt, stone},

		{"mask equal", MergeMask, glass, glass, glass},
		{"mask differs", MergeMask, glass, dirt, air},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MergeBlock(tc.strategy, tc.a, tc.b))
		})
	}

	assert.Panics(t, func() { MergeBlock(MergeStrategy(42), air, air) })
}

func TestParseMergeStrategy(t *testing.T) {
	for s := MergeOverwrite; s <= MergeMask; s++ {
		parsed, err := ParseMergeStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := ParseMergeStrategy("paint")
	assert.Error(t, err)
}

func TestMerge_OffsetAndClipping(t *testing.T) {
	dst := New()
	require.NoError(t, dst.Create(v3(4, 1, 4), DataBlocks))
	dst.Fill(DataBlocks, NewVoxel(block.Of(block.Dirt)))

	src := New()
	require.NoError(t, src.Create(v3(3, 1, 3), DataBlocks))
	src.Fill(DataBlocks, NewVoxel(block.Of(block.Stone)))

	dst.Merge(src, v3(2, 0, -1), MergeOverwrite)

	assert.Equal(t, 4, dst.CountSpecificBlocks(block.Stone), "Вставлено только пересечение 2x1x2")
	assert.Equal(t, block.Of(block.Stone), dst.GetRelBlock(v3(2, 0, 0)))
	assert.Equal(t, block.Of(block.Stone), dst.GetRelBlock(v3(3, 0, 1)))
	assert.Equal(t, block.Of(block.Dirt), dst.GetRelBlock(v3(2, 0, 2)))
	assert.Equal(t, v3(4, 1, 4), dst.Size(), "Размер не меняется")

	dst.Merge(src, v3(10, 0, 0), MergeOverwrite)
	assert.Equal(t, 4, dst.CountSpecificBlocks(block.Stone), "Без пересечения ничего не меняется")
}

func TestMerge_IntoItself(t *testing.T) {
	a := New()
	require.NoError(t, a.Create(v3(4, 1, 1), DataBlocks))
	a.SetRelBlock(v3(0, 0, 0), block.Of(block.Stone))
	a.SetRelBlock(v3(1, 0, 0), block.Of(block.Dirt))

	a.Merge(a, v3(1, 0, 0), MergeOverwrite)

	assert.Equal(t, []block.State{
		block.Of(block.Stone), block.Of(block.Stone), block.Of(block.Dirt), block.AirState,
	}, a.Blocks(), "Сдвиг области на саму себя копирует исходное содержимое")
}

func TestMerge_LightFollowsWinner(t *testing.T) {
	dst := New()
	require.NoError(t, dst.Create(v3(2, 1, 1), DataBlocks|DataBlockLight))
	dst.SetRelBlock(v3(1, 0, 0), block.Of(block.Dirt))

	src := New()
	require.NoError(t, src.Create(v3(2, 1, 1), DataBlocks|DataBlockLight))
	src.Fill(DataBlocks|DataBlockLight, Voxel{Block: block.Of(block.Glass), BlockLight: 9})

	dst.Merge(src, v3(0, 0, 0), MergeFillAir)

	assert.Equal(t, uint8(9), dst.GetRelBlockLight(v3(0, 0, 0)), "Блок источника: освещение источника")
	assert.Equal(t, uint8(0), dst.GetRelBlockLight(v3(1, 0, 0)), "Блок области: свое освещение")
}

func TestMerge_LightOnlyAreas(t *testing.T) {
	dst := New()
	require.NoError(t, dst.Create(v3(2, 2, 2), DataSkyLight))
	src := New()
	require.NoError(t, src.Create(v3(2, 2, 2), DataSkyLight))
	src.Fill(DataSkyLight, Voxel{SkyLight: 4})

	dst.Merge(src, v3(0, 0, 0), MergeImprint)
	assert.Equal(t, uint8(0x0f), dst.GetRelSkyLight(v3(1, 1, 1)), "Без блоков освещение копируется только при перезаписи")

	dst.Merge(src, v3(0, 0, 0), MergeOverwrite)
	assert.Equal(t, uint8(4), dst.GetRelSkyLight(v3(1, 1, 1)))
}

func TestMerge_BlockEntities(t *testing.T) {
	dst := New()
	require.NoError(t, dst.Create(v3(3, 1, 1), DataBlocks|DataBlockEntities))
	dst.SetRelBlock(v3(0, 0, 0), block.Of(block.Chest))
	dst.SetRelBlock(v3(1, 0, 0), block.Of(block.Chest))
	dst.BlockEntities()[v3(0, 0, 0)].(*blockentity.Chest).SetSlot(0, blockentity.Item{Type: 1, Count: 1})

	src := New()
	require.NoError(t, src.Create(v3(3, 1, 1), DataBlocks|DataBlockEntities))
	src.SetRelBlock(v3(0, 0, 0), block.Of(block.Chest))
	src.SetRelBlock(v3(2, 0, 0), block.Of(block.Chest))
	src.BlockEntities()[v3(0, 0, 0)].(*blockentity.Chest).SetSlot(0, blockentity.Item{Type: 2, Count: 7})
	src.BlockEntities()[v3(2, 0, 0)].(*blockentity.Chest).SetSlot(0, blockentity.Item{Type: 3, Count: 3})

	dst.Merge(src, v3(0, 0, 0), MergeOverwrite)

	ents := dst.BlockEntities()
	require.Len(t, ents, 2, "Сундук в (1,0,0) заменен воздухом")
	assert.Equal(t, 1, ents[v3(0, 0, 0)].(*blockentity.Chest).CountItems(), "Собственная сущность области в приоритете")
	assert.Equal(t, 3, ents[v3(2, 0, 0)].(*blockentity.Chest).CountItems(), "Сущность скопирована из источника")

	src.BlockEntities()[v3(2, 0, 0)].(*blockentity.Chest).SetSlot(0, blockentity.Item{})
	assert.Equal(t, 3, ents[v3(2, 0, 0)].(*blockentity.Chest).CountItems(), "Копия независима")
}

func TestMerge_RescanWhenSourceHasNoEntities(t *testing.T) {
	dst := New()
	require.NoError(t, dst.Create(v3(2, 1, 1), DataBlocks|DataBlockEntities))
	src := New()
	require.NoError(t, src.Create(v3(2, 1, 1), DataBlocks))
	src.SetRelBlock(v3(1, 0, 0), block.Of(block.Furnace))

	dst.Merge(src, v3(0, 0, 0), MergeOverwrite)

	be, ok := dst.BlockEntities()[v3(1, 0, 0)]
	require.True(t, ok, "Для печи создана сущность по умолчанию")
	assert.Equal(t, block.Furnace, be.BlockType())
}
