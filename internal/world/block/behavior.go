package block

// Behavior определяет свойства типа блока, которые нужны ядру области:
// имя и преобразования метаданных ориентации при поворотах и отражениях.
// Функции преобразования получают и возвращают 4-битные метаданные.
type Behavior interface {
	ID() Type
	Name() string
	IsSolid() bool

	// Поворот на 90° вокруг вертикальной оси
	MetaRotateCCW(meta uint8) uint8
	MetaRotateCW(meta uint8) uint8

	// Отражения относительно плоскостей XY (ось Z), XZ (ось Y) и YZ (ось X)
	MetaMirrorXY(meta uint8) uint8
	MetaMirrorXZ(meta uint8) uint8
	MetaMirrorYZ(meta uint8) uint8
}

// Base - поведение по умолчанию: ориентации нет, все преобразования тождественны.
// Конкретные реализации встраивают Base и переопределяют нужные методы.
type Base struct {
	Type     Type
	TypeName string
	Solid    bool
}

// ID возвращает идентификатор блока
func (b *Base) ID() Type { return b.Type }

// Name возвращает имя блока
func (b *Base) Name() string { return b.TypeName }

// IsSolid сообщает, является ли блок твердым
func (b *Base) IsSolid() bool { return b.Solid }

func (b *Base) MetaRotateCCW(meta uint8) uint8 { return meta }
func (b *Base) MetaRotateCW(meta uint8) uint8  { return meta }
func (b *Base) MetaMirrorXY(meta uint8) uint8  { return meta }
func (b *Base) MetaMirrorXZ(meta uint8) uint8  { return meta }
func (b *Base) MetaMirrorYZ(meta uint8) uint8  { return meta }
