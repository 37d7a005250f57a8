package implementations

import "github.com/annel0/mmo-blockarea/internal/world/block"

// Горизонтальные направления для сундуков, печей, лестниц и табличек на стене
const (
	FacingNorth uint8 = 2
	FacingSouth uint8 = 3
	FacingWest  uint8 = 4
	FacingEast  uint8 = 5
)

// FacingBehavior реализует блок, повернутый лицом в одну из четырех сторон
type FacingBehavior struct {
	block.Base
}

// NewFacingBehavior создаёт поведение блока с горизонтальной ориентацией
func NewFacingBehavior(id block.Type, name string, solid bool) *FacingBehavior {
	return &FacingBehavior{Base: block.Base{Type: id, TypeName: name, Solid: solid}}
}

var (
	facingCCW      = map[uint8]uint8{FacingNorth: FacingWest, FacingWest: FacingSouth, FacingSouth: FacingEast, FacingEast: FacingNorth}
	facingCW       = invert(facingCCW)
	facingMirrorXY = map[uint8]uint8{FacingNorth: FacingSouth, FacingSouth: FacingNorth}
	facingMirrorYZ = map[uint8]uint8{FacingWest: FacingEast, FacingEast: FacingWest}
)

func (b *FacingBehavior) MetaRotateCCW(meta uint8) uint8 { return lookup(facingCCW, meta) }
func (b *FacingBehavior) MetaRotateCW(meta uint8) uint8  { return lookup(facingCW, meta) }
func (b *FacingBehavior) MetaMirrorXY(meta uint8) uint8  { return lookup(facingMirrorXY, meta) }
func (b *FacingBehavior) MetaMirrorYZ(meta uint8) uint8  { return lookup(facingMirrorYZ, meta) }
