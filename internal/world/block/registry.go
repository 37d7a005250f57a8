package block

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

var (
	registry   = make(map[Type]Behavior)
	registryMu sync.RWMutex
)

// Register добавляет поведение блока в регистр
func Register(id Type, behavior Behavior) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[id] = behavior
}

// Get возвращает поведение для указанного типа
func Get(id Type) (Behavior, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	behavior, exists := registry[id]
	return behavior, exists
}

// IsValidType проверяет, зарегистрирован ли тип блока
func IsValidType(id Type) bool {
	_, exists := Get(id)
	return exists
}

// Type представляет тип блока (числовой идентификатор без метаданных)
type Type uint16

// Константы типов блоков. Значения совпадают с числовыми ID протокола 1.8,
// чтобы состояние блока упаковывалось как (type << 4) | meta.
const (
	Air             Type = 0
	Stone           Type = 1
	Grass           Type = 2
	Dirt            Type = 3
	Cobblestone     Type = 4
	Planks          Type = 5
	Sapling         Type = 6
	Bedrock         Type = 7
	Water           Type = 8
	StationaryWater Type = 9
	Lava            Type = 10
	StationaryLava  Type = 11
	Sand            Type = 12
	Gravel          Type = 13
	GoldOre         Type = 14
	IronOre         Type = 15
	CoalOre         Type = 16
	Log             Type = 17
	Leaves          Type = 18
	Sponge          Type = 19
	Glass           Type = 20
	LapisOre        Type = 21
	Torch           Type = 50
	OakStairs       Type = 53
	Chest           Type = 54
	DiamondOre      Type = 56
	Furnace         Type = 61
	LitFurnace      Type = 62
	Ladder          Type = 65
	Rail            Type = 66
	StoneStairs     Type = 67
	WallSign        Type = 68
	RedstoneOre     Type = 73
	Mycelium        Type = 110
	Cauldron        Type = 118
	EmeraldOre      Type = 129
	EnderChest      Type = 130
	QuartzOre       Type = 153

	// MaxType - верхняя граница типа, помещающегося в State
	MaxType Type = 0x0fff
)

// Lookup ищет зарегистрированный тип по имени без учета регистра
func Lookup(name string) (Type, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	for id, b := range registry {
		if strings.EqualFold(b.Name(), name) {
			return id, true
		}
	}
	return 0, false
}

// ParseState разбирает состояние вида "stone", "log:4" или "17:4".
func ParseState(s string) (State, error) {
	name, metaStr, hasMeta := strings.Cut(strings.TrimSpace(s), ":")

	var t Type
	if n, err := strconv.ParseUint(name, 10, 16); err == nil {
		t = Type(n)
		if !IsValidType(t) {
			return AirState, fmt.Errorf("незарегистрированный тип блока: %d", n)
		}
	} else if id, ok := Lookup(name); ok {
		t = id
	} else {
		return AirState, fmt.Errorf("неизвестный тип блока: %q", name)
	}

	var meta uint64
	if hasMeta {
		m, err := strconv.ParseUint(metaStr, 10, 8)
		if err != nil || m > 15 {
			return AirState, fmt.Errorf("некорректные метаданные %q: ожидается 0..15", metaStr)
		}
		meta = m
	}
	return NewState(t, uint8(meta)), nil
}
