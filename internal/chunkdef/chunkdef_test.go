package chunkdef

import (
	"testing"

	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/stretchr/testify/assert"
)

func TestBlockToChunk(t *testing.T) {
	cases := []struct {
		x, z int
		want vec.Vec2
	}{
		{0, 0, vec.Vec2{X: 0, Y: 0}},
		{15, 15, vec.Vec2{X: 0, Y: 0}},
		{16, -1, vec.Vec2{X: 1, Y: -1}},
		{-16, -17, vec.Vec2{X: -1, Y: -2}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, BlockToChunk(c.x, c.z), "x=%d z=%d", c.x, c.z)
	}
}

func TestAbsoluteToRelative(t *testing.T) {
	rel, chunk := AbsoluteToRelative(vec.Vec3{X: -1, Y: 70, Z: 33})
	assert.Equal(t, vec.Vec2{X: -1, Y: 2}, chunk)
	assert.Equal(t, vec.Vec3{X: 15, Y: 70, Z: 1}, rel)
}

func TestMakeIndexUnique(t *testing.T) {
	seen := make(map[int]struct{}, NumBlocks)
	for y := 0; y < Height; y += 17 {
		for z := 0; z < Width; z++ {
			for x := 0; x < Width; x++ {
				idx := MakeIndex(x, y, z)
				_, dup := seen[idx]
				assert.False(t, dup, "индекс %d повторяется", idx)
				seen[idx] = struct{}{}
				assert.Less(t, idx, NumBlocks)
			}
		}
	}
}
