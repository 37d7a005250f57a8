package world

import (
	"math/rand"

	"github.com/annel0/mmo-blockarea/internal/blockarea"
	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
	"github.com/annel0/mmo-blockarea/internal/world/block/implementations"
)

// Размеры малой яблони
const (
	appleTreeMinTrunk = 4
	appleTreeMaxTrunk = 6
	appleTreeRadius   = 2
)

// SmallAppleTreeImage строит изображение малой яблони: ствол из бревен и крону из листвы.
// Пустое место заполнено губкой, поэтому изображение вставляется в мир через
// MergeSpongePrint. Ствол стоит в точке (2, 0, 2) изображения.
func SmallAppleTreeImage(rng *rand.Rand) *blockarea.BlockArea {
	trunk := appleTreeMinTrunk + rng.Intn(appleTreeMaxTrunk-appleTreeMinTrunk+1)
	side := appleTreeRadius*2 + 1
	size := vec.Vec3{X: side, Y: trunk + 2, Z: side}
	sponge := blockarea.NewVoxel(block.Of(block.Sponge))
	leaves := blockarea.NewVoxel(block.Of(block.Leaves))

	crown := blockarea.New()
	_ = crown.Create(size, blockarea.DataBlocks)
	crown.Fill(blockarea.DataBlocks, sponge)

	// Два широких слоя 5x5 без части углов
	for y := trunk - 2; y < trunk; y++ {
		crown.FillRelCuboid(vec.Cuboid{P1: vec.Vec3{Y: y}, P2: vec.Vec3{X: side - 1, Y: y, Z: side - 1}},
			blockarea.DataBlocks, leaves)
		for _, corner := range [][2]int{{0, 0}, {0, side - 1}, {side - 1, 0}, {side - 1, side - 1}} {
			if rng.Intn(2) == 0 {
				crown.SetRelBlock(vec.Vec3{X: corner[0], Y: y, Z: corner[1]}, sponge.Block)
			}
		}
	}
	// Два узких слоя крестом
	c := appleTreeRadius
	for y := trunk; y < trunk+2; y++ {
		crown.FillRelCuboid(vec.Cuboid{P1: vec.Vec3{X: c - 1, Y: y, Z: c}, P2: vec.Vec3{X: c + 1, Y: y, Z: c}},
			blockarea.DataBlocks, leaves)
		crown.FillRelCuboid(vec.Cuboid{P1: vec.Vec3{X: c, Y: y, Z: c - 1}, P2: vec.Vec3{X: c, Y: y, Z: c + 1}},
			blockarea.DataBlocks, leaves)
	}

	logs := blockarea.New()
	_ = logs.Create(size, blockarea.DataBlocks)
	logs.Fill(blockarea.DataBlocks, sponge)
	logs.RelLine(vec.Vec3{X: c, Z: c}, vec.Vec3{X: c, Y: trunk - 1, Z: c}, blockarea.DataBlocks,
		blockarea.NewVoxel(implementations.LogWithAxis(0, implementations.LogAxisY)))

	// Бревна поверх листвы
	crown.Merge(logs, vec.Vec3{}, blockarea.MergeSpongePrint)
	return crown
}
