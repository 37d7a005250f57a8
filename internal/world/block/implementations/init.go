package implementations

import "github.com/annel0/mmo-blockarea/internal/world/block"

// Регистрируем все типы блоков при импорте пакета
func init() {
	// Базовые блоки
	block.Register(block.Air, NewAirBehavior())
	block.Register(block.Stone, NewSolidBehavior(block.Stone, "Stone"))
	block.Register(block.Grass, NewSolidBehavior(block.Grass, "Grass"))
	block.Register(block.Dirt, NewSolidBehavior(block.Dirt, "Dirt"))
	block.Register(block.Mycelium, NewSolidBehavior(block.Mycelium, "Mycelium"))
	block.Register(block.Cobblestone, NewSolidBehavior(block.Cobblestone, "Cobblestone"))
	block.Register(block.Planks, NewSolidBehavior(block.Planks, "Planks"))
	block.Register(block.Bedrock, NewSolidBehavior(block.Bedrock, "Bedrock"))
	block.Register(block.Sand, NewSolidBehavior(block.Sand, "Sand"))
	block.Register(block.Gravel, NewSolidBehavior(block.Gravel, "Gravel"))
	block.Register(block.Sponge, NewSolidBehavior(block.Sponge, "Sponge"))

	block.Register(block.Glass, NewTransparentBehavior(block.Glass, "Glass"))
	block.Register(block.Leaves, NewTransparentBehavior(block.Leaves, "Leaves"))
	block.Register(block.Sapling, NewTransparentBehavior(block.Sapling, "Sapling"))

	// Жидкости
	block.Register(block.Water, NewFluidBehavior(block.Water, "Water"))
	block.Register(block.StationaryWater, NewFluidBehavior(block.StationaryWater, "StationaryWater"))
	block.Register(block.Lava, NewFluidBehavior(block.Lava, "Lava"))
	block.Register(block.StationaryLava, NewFluidBehavior(block.StationaryLava, "StationaryLava"))

	// Руды
	block.Register(block.CoalOre, NewOreBehavior(block.CoalOre, "CoalOre"))
	block.Register(block.IronOre, NewOreBehavior(block.IronOre, "IronOre"))
	block.Register(block.GoldOre, NewOreBehavior(block.GoldOre, "GoldOre"))
	block.Register(block.LapisOre, NewOreBehavior(block.LapisOre, "LapisOre"))
	block.Register(block.DiamondOre, NewOreBehavior(block.DiamondOre, "DiamondOre"))
	block.Register(block.RedstoneOre, NewOreBehavior(block.RedstoneOre, "RedstoneOre"))
	block.Register(block.EmeraldOre, NewOreBehavior(block.EmeraldOre, "EmeraldOre"))
	block.Register(block.QuartzOre, NewOreBehavior(block.QuartzOre, "QuartzOre"))

	// Ориентированные блоки
	block.Register(block.Log, NewLogBehavior())
	block.Register(block.OakStairs, NewStairsBehavior(block.OakStairs, "OakStairs"))
	block.Register(block.StoneStairs, NewStairsBehavior(block.StoneStairs, "StoneStairs"))
	block.Register(block.Rail, NewRailBehavior())
	block.Register(block.Torch, NewTorchBehavior())
	block.Register(block.Chest, NewFacingBehavior(block.Chest, "Chest", true))
	block.Register(block.Furnace, NewFacingBehavior(block.Furnace, "Furnace", true))
	block.Register(block.LitFurnace, NewFacingBehavior(block.LitFurnace, "LitFurnace", true))
	block.Register(block.EnderChest, NewFacingBehavior(block.EnderChest, "EnderChest", true))
	block.Register(block.Ladder, NewFacingBehavior(block.Ladder, "Ladder", false))
	block.Register(block.WallSign, NewFacingBehavior(block.WallSign, "WallSign", false))

	block.Register(block.Cauldron, NewCauldronBehavior())
}
