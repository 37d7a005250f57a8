package world

import (
	"math/rand"

	"github.com/annel0/mmo-blockarea/internal/blockarea"
	"github.com/annel0/mmo-blockarea/internal/chunkdef"
	"github.com/annel0/mmo-blockarea/internal/util"
	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
)

// BiomeType представляет тип биома
type BiomeType int

const (
	BiomePlains BiomeType = iota
	BiomeDesert
	BiomeForest
	BiomeMountains
	BiomeOcean
)

// Константы высот для генерации
const (
	SeaLevel      = 62  // Уровень моря
	MinSurface    = 40  // Минимальная высота поверхности
	MaxSurface    = 120 // Максимальная высота поверхности
	MountainStart = 90  // Выше - горы без почвы
	SoilDepth     = 3   // Толщина слоя почвы
)

// WorldGenerator генерирует ландшафт мира
type WorldGenerator struct {
	Seed          int64   // Сид для генерации шума
	NoiseScale    float64 // Масштаб основного шума (высота)
	BiomeScale    float64 // Масштаб шума биомов
	ForestDensity float64 // Среднее количество деревьев на чанк в лесу
	OreChance     float64 // Вероятность руды в камне

	height *util.Noise
	biome  *util.Noise
}

// NewWorldGenerator создаёт новый генератор мира
func NewWorldGenerator(seed int64) *WorldGenerator {
	return &WorldGenerator{
		Seed:          seed,
		NoiseScale:    0.01, // Настройка сглаженности ландшафта
		BiomeScale:    0.004,
		ForestDensity: 4,
		OreChance:     0.01,
		height:        util.NewNoise(seed),
		biome:         util.NewNoise(seed + 42),
	}
}

// SurfaceHeight возвращает высоту поверхности в колонке (x, z)
func (wg *WorldGenerator) SurfaceHeight(x, z int) int {
	n := wg.height.Noise2D(float64(x)*wg.NoiseScale, float64(z)*wg.NoiseScale)
	return MinSurface + int(n*float64(MaxSurface-MinSurface))
}

// Biome возвращает биом колонки (x, z)
func (wg *WorldGenerator) Biome(x, z int) BiomeType {
	h := wg.SurfaceHeight(x, z)
	switch {
	case h < SeaLevel:
		return BiomeOcean
	case h > MountainStart:
		return BiomeMountains
	}

	v := wg.biome.Noise2D(float64(x)*wg.BiomeScale, float64(z)*wg.BiomeScale)
	switch {
	case v < 0.35:
		return BiomeDesert
	case v > 0.65:
		return BiomeForest
	}
	return BiomePlains
}

// GenerateChunk генерирует чанк по его координатам.
// Чанк строится как область блоков, на которую затем накладываются деревья.
func (wg *WorldGenerator) GenerateChunk(coords vec.Vec2) *Chunk {
	// Для каждого чанка создаем уникальный сид на основе глобального сида и координат
	chunkSeed := wg.Seed + int64(coords.X)*341873128712 + int64(coords.Y)*132897987541
	rng := rand.New(rand.NewSource(chunkSeed))

	area := blockarea.New()
	_ = area.Create(vec.Vec3{X: chunkdef.Width, Y: chunkdef.Height, Z: chunkdef.Width},
		blockarea.DataBlocks|blockarea.DataSkyLight)
	origin := chunkdef.ChunkOrigin(coords)
	area.SetOrigin(origin)

	var heights [chunkdef.Width][chunkdef.Width]int
	for z := 0; z < chunkdef.Width; z++ {
		for x := 0; x < chunkdef.Width; x++ {
			gx, gz := origin.X+x, origin.Z+z
			h := wg.SurfaceHeight(gx, gz)
			heights[x][z] = h
			wg.generateColumn(area, x, z, h, wg.Biome(gx, gz), rng)
		}
	}

	wg.placeTrees(area, &heights, rng)

	chunk := NewChunk(coords)
	copy(chunk.Blocks, area.Blocks())
	copy(chunk.SkyLight, area.SkyLights())
	return chunk
}

// generateColumn заполняет одну колонку: бедрок, камень с рудами, почва, вода до уровня моря
func (wg *WorldGenerator) generateColumn(area *blockarea.BlockArea, x, z, h int, biome BiomeType, rng *rand.Rand) {
	column := func(y1, y2 int, s block.State) {
		if y1 > y2 {
			return
		}
		area.FillRelCuboid(vec.Cuboid{P1: vec.Vec3{X: x, Y: y1, Z: z}, P2: vec.Vec3{X: x, Y: y2, Z: z}},
			blockarea.DataBlocks, blockarea.NewVoxel(s))
	}

	top, soil := wg.surfaceBlocks(biome)
	column(0, 0, block.Of(block.Bedrock))
	column(1, h-SoilDepth-1, block.Of(block.Stone))
	column(h-SoilDepth, h-1, soil)
	column(h, h, top)
	if h < SeaLevel {
		column(h+1, SeaLevel, block.Of(block.StationaryWater))
	}

	for y := 1; y < h-SoilDepth; y++ {
		if rng.Float64() < wg.OreChance {
			area.SetRelBlock(vec.Vec3{X: x, Y: y, Z: z}, block.Of(pickOre(y, rng)))
		}
	}

	// Под поверхностью неба не видно
	sky := max(h, SeaLevel)
	area.FillRelCuboid(vec.Cuboid{P1: vec.Vec3{X: x, Z: z}, P2: vec.Vec3{X: x, Y: sky, Z: z}},
		blockarea.DataSkyLight, blockarea.Voxel{SkyLight: 0})
}

// surfaceBlocks возвращает верхний блок и блок почвы для биома
func (wg *WorldGenerator) surfaceBlocks(biome BiomeType) (top, soil block.State) {
	switch biome {
	case BiomeDesert:
		return block.Of(block.Sand), block.Of(block.Sand)
	case BiomeMountains:
		return block.Of(block.Stone), block.Of(block.Stone)
	case BiomeOcean:
		return block.Of(block.Gravel), block.Of(block.Dirt)
	default:
		return block.Of(block.Grass), block.Of(block.Dirt)
	}
}

// pickOre выбирает руду в зависимости от глубины
func pickOre(y int, rng *rand.Rand) block.Type {
	switch {
	case y < 16 && rng.Intn(4) == 0:
		return block.DiamondOre
	case y < 32 && rng.Intn(3) == 0:
		return block.GoldOre
	case rng.Intn(2) == 0:
		return block.IronOre
	}
	return block.CoalOre
}

// placeTrees ставит яблони на траву в лесах и изредка на равнинах.
// Деревья ставятся только там, где крона целиком помещается в чанк.
func (wg *WorldGenerator) placeTrees(area *blockarea.BlockArea, heights *[chunkdef.Width][chunkdef.Width]int, rng *rand.Rand) {
	origin := area.Origin()
	attempts := int(wg.ForestDensity * 2)
	for i := 0; i < attempts; i++ {
		x := appleTreeRadius + rng.Intn(chunkdef.Width-2*appleTreeRadius)
		z := appleTreeRadius + rng.Intn(chunkdef.Width-2*appleTreeRadius)
		h := heights[x][z]
		if area.GetRelBlock(vec.Vec3{X: x, Y: h, Z: z}).Type() != block.Grass {
			continue
		}
		biome := wg.Biome(origin.X+x, origin.Z+z)
		if biome != BiomeForest && !(biome == BiomePlains && rng.Intn(8) == 0) {
			continue
		}
		img := SmallAppleTreeImage(rng)
		if h+img.Size().Y >= chunkdef.Height {
			continue
		}
		area.Merge(img, vec.Vec3{X: x - appleTreeRadius, Y: h + 1, Z: z - appleTreeRadius}, blockarea.MergeSpongePrint)
		area.SetRelBlock(vec.Vec3{X: x, Y: h, Z: z}, block.Of(block.Dirt))
	}
}
