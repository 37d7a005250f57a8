package blockarea

import (
	"fmt"

	"github.com/annel0/mmo-blockarea/internal/chunkdef"
	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
	"github.com/annel0/mmo-blockarea/internal/world/blockentity"

	_ "github.com/annel0/mmo-blockarea/internal/world/block/implementations"
)

// fakeChunk - колонка чанка в памяти
type fakeChunk struct {
	data     ChunkData
	entities map[vec.Vec3]blockentity.Entity
}

// fakeProvider - провайдер в памяти для тестов
type fakeProvider struct {
	chunks map[vec.Vec2]*fakeChunk
	// visited - чанки, переданные посетителю
	visited []vec.Vec2
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{chunks: make(map[vec.Vec2]*fakeChunk)}
}

// addChunks создаёт пустые чанки в прямоугольнике (границы включительно)
func (p *fakeProvider) addChunks(minX, maxX, minZ, maxZ int) {
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			sky := make([]uint8, chunkdef.NumBlocks)
			for i := range sky {
				sky[i] = chunkdef.MaxLight
			}
			p.chunks[vec.Vec2{X: x, Y: z}] = &fakeChunk{
				data: ChunkData{
					Blocks:     make([]block.State, chunkdef.NumBlocks),
					BlockLight: make([]uint8, chunkdef.NumBlocks),
					SkyLight:   sky,
				},
				entities: make(map[vec.Vec3]blockentity.Entity),
			}
		}
	}
}

func (p *fakeProvider) locate(pos vec.Vec3) (*fakeChunk, int, bool) {
	rel, chunkPos := chunkdef.AbsoluteToRelative(pos)
	ch, ok := p.chunks[chunkPos]
	if !ok || !chunkdef.IsValidHeight(pos.Y) {
		return nil, 0, false
	}
	return ch, chunkdef.MakeIndex(rel.X, rel.Y, rel.Z), true
}

func (p *fakeProvider) setBlock(pos vec.Vec3, s block.State) {
	ch, idx, ok := p.locate(pos)
	if !ok {
		panic(fmt.Sprintf("нет чанка для %s", pos))
	}
	ch.data.Blocks[idx] = s
	delete(ch.entities, pos)
	if be := blockentity.New(s.Type(), pos); be != nil {
		ch.entities[pos] = be
	}
}

func (p *fakeProvider) block(pos vec.Vec3) block.State {
	ch, idx, ok := p.locate(pos)
	if !ok {
		return block.AirState
	}
	return ch.data.Blocks[idx]
}

func (p *fakeProvider) blockLight(pos vec.Vec3) uint8 {
	ch, idx, _ := p.locate(pos)
	return ch.data.BlockLight[idx]
}

func (p *fakeProvider) entity(pos vec.Vec3) blockentity.Entity {
	_, chunkPos := chunkdef.AbsoluteToRelative(pos)
	ch, ok := p.chunks[chunkPos]
	if !ok {
		return nil
	}
	return ch.entities[pos]
}

func (p *fakeProvider) ForEachChunkInRect(minChunkX, maxChunkX, minChunkZ, maxChunkZ int, v ChunkVisitor) error {
	for x := minChunkX; x <= maxChunkX; x++ {
		for z := minChunkZ; z <= maxChunkZ; z++ {
			if _, ok := p.chunks[vec.Vec2{X: x, Y: z}]; !ok {
				return fmt.Errorf("чанк %d,%d: %w", x, z, ErrChunkUnavailable)
			}
		}
	}
	for x := minChunkX; x <= maxChunkX; x++ {
		for z := minChunkZ; z <= maxChunkZ; z++ {
			pos := vec.Vec2{X: x, Y: z}
			ch := p.chunks[pos]
			if !v.Coords(x, z) {
				continue
			}
			p.visited = append(p.visited, pos)
			v.ChunkData(&ch.data)
			for _, be := range ch.entities {
				v.BlockEntity(be)
			}
		}
	}
	return nil
}

func (p *fakeProvider) WriteBlockArea(area *BlockArea, minCoords vec.Vec3, dt DataType) error {
	size := area.Size()
	failed := make(map[vec.Vec2]bool)
	for y := 0; y < size.Y; y++ {
		for z := 0; z < size.Z; z++ {
			for x := 0; x < size.X; x++ {
				rel := vec.Vec3{X: x, Y: y, Z: z}
				pos := minCoords.Add(rel)
				if !chunkdef.IsValidHeight(pos.Y) {
					continue
				}
				ch, idx, ok := p.locate(pos)
				if !ok {
					_, chunkPos := chunkdef.AbsoluteToRelative(pos)
					failed[chunkPos] = true
					continue
				}
				if dt&DataBlocks != 0 {
					ch.data.Blocks[idx] = area.GetRelBlock(rel)
					delete(ch.entities, pos)
				}
				if dt&DataBlockLight != 0 {
					ch.data.BlockLight[idx] = area.GetRelBlockLight(rel)
				}
				if dt&DataSkyLight != 0 {
					ch.data.SkyLight[idx] = area.GetRelSkyLight(rel)
				}
				if dt&DataBlockEntities != 0 {
					area.DoWithBlockEntityRelAt(rel, func(be blockentity.Entity) bool {
						ch.entities[pos] = be.Clone(pos)
						return true
					})
				}
			}
		}
	}
	if len(failed) == 0 {
		return nil
	}
	res := &PartialWriteError{}
	for c := range failed {
		res.Failed = append(res.Failed, c)
	}
	return res
}
