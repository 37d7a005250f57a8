package implementations

import "github.com/annel0/mmo-blockarea/internal/world/block"

// Метаданные факела: направление, в которое он смотрит, или пол
const (
	TorchEast  uint8 = 1
	TorchWest  uint8 = 2
	TorchSouth uint8 = 3
	TorchNorth uint8 = 4
	TorchFloor uint8 = 5
)

// TorchBehavior реализует факел
type TorchBehavior struct {
	block.Base
}

// NewTorchBehavior создаёт поведение факела
func NewTorchBehavior() *TorchBehavior {
	return &TorchBehavior{Base: block.Base{Type: block.Torch, TypeName: "Torch"}}
}

var (
	torchCCW      = map[uint8]uint8{TorchEast: TorchNorth, TorchNorth: TorchWest, TorchWest: TorchSouth, TorchSouth: TorchEast}
	torchCW       = invert(torchCCW)
	torchMirrorXY = map[uint8]uint8{TorchNorth: TorchSouth, TorchSouth: TorchNorth}
	torchMirrorYZ = map[uint8]uint8{TorchEast: TorchWest, TorchWest: TorchEast}
)

func (b *TorchBehavior) MetaRotateCCW(meta uint8) uint8 { return lookup(torchCCW, meta) }
func (b *TorchBehavior) MetaRotateCW(meta uint8) uint8  { return lookup(torchCW, meta) }

func (b *TorchBehavior) MetaMirrorXY(meta uint8) uint8 { return lookup(torchMirrorXY, meta) }
func (b *TorchBehavior) MetaMirrorYZ(meta uint8) uint8 { return lookup(torchMirrorYZ, meta) }
