package block

import "fmt"

// State - идентичность вокселя: тип блока и 4 бита метаданных,
// упакованные как (type << 4) | meta. Два состояния равны тогда и только тогда,
// когда совпадают и тип, и метаданные.
type State uint16

// AirState - состояние воздуха
const AirState State = 0

// NewState упаковывает тип и метаданные в состояние
func NewState(t Type, meta uint8) State {
	return State(uint16(t&MaxType)<<4 | uint16(meta&0x0f))
}

// Of возвращает состояние типа с нулевыми метаданными
func Of(t Type) State {
	return NewState(t, 0)
}

// Type возвращает тип блока
func (s State) Type() Type {
	return Type(s >> 4)
}

// Meta возвращает метаданные блока
func (s State) Meta() uint8 {
	return uint8(s & 0x0f)
}

// WithMeta возвращает состояние того же типа с другими метаданными
func (s State) WithMeta(meta uint8) State {
	return NewState(s.Type(), meta)
}

// String возвращает строковое представление состояния
func (s State) String() string {
	name := "unknown"
	if b, ok := Get(s.Type()); ok {
		name = b.Name()
	}
	return fmt.Sprintf("%s(%d:%d)", name, s.Type(), s.Meta())
}
