package implementations

import "github.com/annel0/mmo-blockarea/internal/world/block"

// Метаданные рельсов
const (
	RailNorthSouth     uint8 = 0
	RailEastWest       uint8 = 1
	RailAscendingEast  uint8 = 2
	RailAscendingWest  uint8 = 3
	RailAscendingNorth uint8 = 4
	RailAscendingSouth uint8 = 5
	RailCurveSouthEast uint8 = 6
	RailCurveSouthWest uint8 = 7
	RailCurveNorthWest uint8 = 8
	RailCurveNorthEast uint8 = 9
)

// RailBehavior реализует обычные рельсы (прямые, наклонные и повороты)
type RailBehavior struct {
	block.Base
}

// NewRailBehavior создаёт поведение рельсов
func NewRailBehavior() *RailBehavior {
	return &RailBehavior{Base: block.Base{Type: block.Rail, TypeName: "Rail"}}
}

var (
	railCCW = map[uint8]uint8{
		RailNorthSouth: RailEastWest, RailEastWest: RailNorthSouth,
		RailAscendingEast: RailAscendingNorth, RailAscendingNorth: RailAscendingWest,
		RailAscendingWest: RailAscendingSouth, RailAscendingSouth: RailAscendingEast,
		RailCurveSouthEast: RailCurveNorthEast, RailCurveNorthEast: RailCurveNorthWest,
		RailCurveNorthWest: RailCurveSouthWest, RailCurveSouthWest: RailCurveSouthEast,
	}
	railCW       = invert(railCCW)
	railMirrorXY = map[uint8]uint8{
		RailAscendingNorth: RailAscendingSouth, RailAscendingSouth: RailAscendingNorth,
		RailCurveSouthEast: RailCurveNorthEast, RailCurveNorthEast: RailCurveSouthEast,
		RailCurveSouthWest: RailCurveNorthWest, RailCurveNorthWest: RailCurveSouthWest,
	}
	railMirrorYZ = map[uint8]uint8{
		RailAscendingEast: RailAscendingWest, RailAscendingWest: RailAscendingEast,
		RailCurveSouthEast: RailCurveSouthWest, RailCurveSouthWest: RailCurveSouthEast,
		RailCurveNorthEast: RailCurveNorthWest, RailCurveNorthWest: RailCurveNorthEast,
	}
)

func (b *RailBehavior) MetaRotateCCW(meta uint8) uint8 { return lookup(railCCW, meta) }
func (b *RailBehavior) MetaRotateCW(meta uint8) uint8  { return lookup(railCW, meta) }
func (b *RailBehavior) MetaMirrorXY(meta uint8) uint8  { return lookup(railMirrorXY, meta) }
func (b *RailBehavior) MetaMirrorYZ(meta uint8) uint8  { return lookup(railMirrorYZ, meta) }

func lookup(table map[uint8]uint8, meta uint8) uint8 {
	if v, ok := table[meta]; ok {
		return v
	}
	return meta
}

func invert(table map[uint8]uint8) map[uint8]uint8 {
	res := make(map[uint8]uint8, len(table))
	for k, v := range table {
		res[v] = k
	}
	return res
}
