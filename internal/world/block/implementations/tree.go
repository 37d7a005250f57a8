package implementations

import "github.com/annel0/mmo-blockarea/internal/world/block"

// Оси бревна хранятся в битах 2-3 метаданных
const (
	LogAxisY    uint8 = 0x0
	LogAxisX    uint8 = 0x4
	LogAxisZ    uint8 = 0x8
	LogAxisBark uint8 = 0xc
)

// LogBehavior реализует бревно: при повороте на 90° оси X и Z меняются местами,
// отражения ось не меняют.
type LogBehavior struct {
	block.Base
}

// NewLogBehavior создаёт поведение бревна
func NewLogBehavior() *LogBehavior {
	return &LogBehavior{Base: block.Base{Type: block.Log, TypeName: "Log", Solid: true}}
}

// MetaRotateCCW меняет местами оси X и Z
func (b *LogBehavior) MetaRotateCCW(meta uint8) uint8 {
	return swapLogAxis(meta)
}

// MetaRotateCW меняет местами оси X и Z
func (b *LogBehavior) MetaRotateCW(meta uint8) uint8 {
	return swapLogAxis(meta)
}

func swapLogAxis(meta uint8) uint8 {
	switch meta & 0xc {
	case LogAxisX:
		return (meta &^ 0xc) | LogAxisZ
	case LogAxisZ:
		return (meta &^ 0xc) | LogAxisX
	}
	return meta
}

// LogWithAxis возвращает состояние бревна заданной породы и оси
func LogWithAxis(wood uint8, axis uint8) block.State {
	return block.NewState(block.Log, (wood&0x3)|(axis&0xc))
}
