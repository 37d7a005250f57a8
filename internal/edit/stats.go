package edit

import (
	"context"

	"github.com/annel0/mmo-blockarea/internal/blockarea"
	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/annel0/mmo-blockarea/internal/world/block"
)

// AreaStats - сводка по блокам региона
type AreaStats struct {
	Bounds  vec.Cuboid
	Volume  int
	NonAir  int
	Solid   int
	ByType  map[block.Type]int
	Content vec.Cuboid // границы непустых блоков; валидны при NonAir > 0
}

// ComputeStats считает статистику по блокам области
func ComputeStats(area *blockarea.BlockArea) AreaStats {
	st := AreaStats{
		Bounds: area.Bounds(),
		Volume: area.Volume(),
		NonAir: area.CountNonAirBlocks(),
		ByType: make(map[block.Type]int),
	}
	for _, b := range area.Blocks() {
		st.ByType[b.Type()]++
		if block.IsSolid(b) {
			st.Solid++
		}
	}
	if rel, ok := area.NonAirCropRelCoords(block.Air); ok {
		st.Content = rel.Move(area.Origin())
	}
	return st
}

// Stats читает блоки региона мира и возвращает их статистику
func (s *Session) Stats(ctx context.Context, region vec.Cuboid) (st AreaStats, err error) {
	region.Sort()
	ctx, done := s.svc.startOp(ctx, s, "stats", region)
	defer func() { done(0, err) }()

	if err := s.svc.checkVolume(region); err != nil {
		return AreaStats{}, err
	}
	area := blockarea.New()
	if err := area.Read(s.svc.world, region, blockarea.DataBlocks); err != nil {
		return AreaStats{}, err
	}
	return ComputeStats(area), nil
}
