package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatePacking(t *testing.T) {
	s := NewState(Log, 0x9)
	assert.Equal(t, Log, s.Type(), "тип должен сохраниться")
	assert.Equal(t, uint8(0x9), s.Meta(), "метаданные должны сохраниться")

	// Метаданные обрезаются до 4 бит
	assert.Equal(t, uint8(0x1), NewState(Stone, 0x11).Meta())

	assert.Equal(t, NewState(Log, 0x4), s.WithMeta(0x4))
	assert.Equal(t, AirState, Of(Air))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsAir(NewState(Air, 3)), "воздух с любыми метаданными остается воздухом")
	assert.False(t, IsAir(Of(Stone)))
	assert.True(t, IsSponge(Of(Sponge)))
	assert.True(t, IsWater(Of(StationaryWater)))
	assert.True(t, IsLava(Of(Lava)))
	assert.False(t, IsLava(Of(Water)))
	assert.True(t, IsSoil(Of(Mycelium)))
	assert.False(t, IsSoil(Of(Sand)))
}

func TestUnregisteredTypeIsNotTransformed(t *testing.T) {
	s := NewState(Type(4000), 7)
	assert.Equal(t, s, RotateCCW(s))
	assert.Equal(t, s, MirrorXY(s))
}
