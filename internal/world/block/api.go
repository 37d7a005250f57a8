package block

// Предикаты и преобразования над состояниями блоков. Это чистые функции
// поверх регистра: незарегистрированные типы считаются блоками без ориентации.

// IsAir проверяет, является ли блок воздухом. Метаданные игнорируются.
func IsAir(s State) bool {
	return s.Type() == Air
}

// IsSponge проверяет, является ли блок губкой (пустая операция при слиянии)
func IsSponge(s State) bool {
	return s.Type() == Sponge
}

// IsWater проверяет, является ли блок водой (текущей или стоячей)
func IsWater(s State) bool {
	t := s.Type()
	return t == Water || t == StationaryWater
}

// IsLava проверяет, является ли блок лавой (текущей или стоячей)
func IsLava(s State) bool {
	t := s.Type()
	return t == Lava || t == StationaryLava
}

// IsSolid проверяет, является ли блок твердым
func IsSolid(s State) bool {
	if b, ok := Get(s.Type()); ok {
		return b.IsSolid()
	}
	return false
}

// RotateCCW поворачивает ориентацию блока против часовой стрелки (вид сверху)
func RotateCCW(s State) State {
	return transform(s, Behavior.MetaRotateCCW)
}

// RotateCW поворачивает ориентацию блока по часовой стрелке (вид сверху)
func RotateCW(s State) State {
	return transform(s, Behavior.MetaRotateCW)
}

// MirrorXY отражает ориентацию блока относительно плоскости XY
func MirrorXY(s State) State {
	return transform(s, Behavior.MetaMirrorXY)
}

// MirrorXZ отражает ориентацию блока относительно плоскости XZ
func MirrorXZ(s State) State {
	return transform(s, Behavior.MetaMirrorXZ)
}

// MirrorYZ отражает ориентацию блока относительно плоскости YZ
func MirrorYZ(s State) State {
	return transform(s, Behavior.MetaMirrorYZ)
}

func transform(s State, fn func(Behavior, uint8) uint8) State {
	b, ok := Get(s.Type())
	if !ok {
		return s
	}
	return s.WithMeta(fn(b, s.Meta()))
}

// IsSoil проверяет, является ли блок почвой (земля, трава, мицелий)
func IsSoil(s State) bool {
	switch s.Type() {
	case Dirt, Grass, Mycelium:
		return true
	}
	return false
}
