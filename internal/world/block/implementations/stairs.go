package implementations

import "github.com/annel0/mmo-blockarea/internal/world/block"

// Направления ступеней (биты 0-1), бит 2: перевернутые ступени
const (
	StairsEast       uint8 = 0
	StairsWest       uint8 = 1
	StairsSouth      uint8 = 2
	StairsNorth      uint8 = 3
	StairsUpsideDown uint8 = 0x4
)

// StairsBehavior реализует ступени с горизонтальной ориентацией
type StairsBehavior struct {
	block.Base
}

// NewStairsBehavior создаёт поведение ступеней
func NewStairsBehavior(id block.Type, name string) *StairsBehavior {
	return &StairsBehavior{Base: block.Base{Type: id, TypeName: name, Solid: true}}
}

var (
	stairsCCW = [4]uint8{StairsEast: StairsNorth, StairsNorth: StairsWest, StairsWest: StairsSouth, StairsSouth: StairsEast}
	stairsCW  = [4]uint8{StairsEast: StairsSouth, StairsSouth: StairsWest, StairsWest: StairsNorth, StairsNorth: StairsEast}
)

func (b *StairsBehavior) MetaRotateCCW(meta uint8) uint8 {
	return (meta &^ 0x3) | stairsCCW[meta&0x3]
}

func (b *StairsBehavior) MetaRotateCW(meta uint8) uint8 {
	return (meta &^ 0x3) | stairsCW[meta&0x3]
}

// MetaMirrorXY меняет север и юг
func (b *StairsBehavior) MetaMirrorXY(meta uint8) uint8 {
	switch meta & 0x3 {
	case StairsNorth:
		return (meta &^ 0x3) | StairsSouth
	case StairsSouth:
		return (meta &^ 0x3) | StairsNorth
	}
	return meta
}

// MetaMirrorXZ переворачивает ступени
func (b *StairsBehavior) MetaMirrorXZ(meta uint8) uint8 {
	return meta ^ StairsUpsideDown
}

// MetaMirrorYZ меняет восток и запад
func (b *StairsBehavior) MetaMirrorYZ(meta uint8) uint8 {
	switch meta & 0x3 {
	case StairsEast:
		return (meta &^ 0x3) | StairsWest
	case StairsWest:
		return (meta &^ 0x3) | StairsEast
	}
	return meta
}
