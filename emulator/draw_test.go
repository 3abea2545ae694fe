package emulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sprite is a 0 glyph shaped pattern.
var sprite = []uint8{0xF0, 0x90, 0x90, 0x90, 0xF0}

func newDrawChip8(t *testing.T, ops ...uint16) *Chip8 {
	t.Helper()
	c := newTestChip8(t, program(ops...))
	c.i = 0x300
	copy(c.mem[0x300:], sprite)
	return c
}

func countPixels(c *Chip8) int {
	n := 0
	for y := 0; y < Chip8DisplayH; y++ {
		for x := 0; x < Chip8DisplayW; x++ {
			if c.GetPixel(x, y) == PixelOn {
				n++
			}
		}
	}
	return n
}

func TestDrawSprite(t *testing.T) {
	c := newDrawChip8(t, 0xD015)
	c.v[0], c.v[1] = 10, 5

	require.NoError(t, c.StepWithDelta(0))
	assert.True(t, c.DrawFlag())
	assert.Equal(t, uint8(0), c.v[0xf])

	for row, b := range sprite {
		for col := 0; col < 8; col++ {
			expected := PixelOff
			if b&(0x80>>col) != 0 {
				expected = PixelOn
			}
			assert.Equal(t, expected, c.GetPixel(10+col, 5+row), "pixel %d,%d", col, row)
		}
	}
	assert.Equal(t, 14, countPixels(c))
}

func TestDrawTwiceRestores(t *testing.T) {
	c := newDrawChip8(t, 0xD015, 0xD015)
	c.v[0], c.v[1] = 20, 10
	c.disp[10*Chip8DisplayW+21] = PixelOn
	before := c.disp

	require.NoError(t, c.StepWithDelta(0))
	assert.Equal(t, uint8(1), c.v[0xf])

	require.NoError(t, c.StepWithDelta(0))
	assert.Equal(t, uint8(1), c.v[0xf])
	assert.Equal(t, before, c.disp)
}

func TestDrawCollisionOnSecondDraw(t *testing.T) {
	c := newDrawChip8(t, 0xD015, 0xD015)
	c.v[0], c.v[1] = 0, 0

	require.NoError(t, c.StepWithDelta(0))
	assert.Equal(t, uint8(0), c.v[0xf])
	require.NoError(t, c.StepWithDelta(0))
	assert.Equal(t, uint8(1), c.v[0xf])
	assert.Equal(t, 0, countPixels(c))
}

func TestDrawClipping(t *testing.T) {
	tests := []struct {
		name   string
		x, y   uint8
		pixels int
	}{
		{"right edge", 62, 0, 2 + 1 + 1 + 1 + 2},
		{"bottom edge", 0, 30, 4 + 2},
		{"corner", 63, 31, 1},
		{"origin outside x", 64, 0, 0},
		{"origin outside y", 0, 32, 0},
		{"origin far outside", 0xff, 0xff, 0},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			c := newDrawChip8(t, 0xD015)
			c.v[0], c.v[1] = test.x, test.y

			require.NoError(t, c.StepWithDelta(0))
			assert.Equal(t, test.pixels, countPixels(c))
			assert.Equal(t, uint8(0), c.v[0xf])
			assert.True(t, c.DrawFlag())
		})
	}
}

func TestDrawZeroRows(t *testing.T) {
	c := newDrawChip8(t, 0xD010)
	c.v[0xf] = 1

	require.NoError(t, c.StepWithDelta(0))
	assert.Equal(t, 0, countPixels(c))
	assert.Equal(t, uint8(0), c.v[0xf])
	assert.True(t, c.DrawFlag())
}

func TestDrawFlagResetsEachStep(t *testing.T) {
	c := newDrawChip8(t, 0xD015, 0x6000, 0x00E0, 0x6000)

	require.NoError(t, c.StepWithDelta(0))
	assert.True(t, c.DrawFlag())
	require.NoError(t, c.StepWithDelta(0))
	assert.False(t, c.DrawFlag())

	require.NoError(t, c.StepWithDelta(0))
	assert.True(t, c.ClearFlag())
	assert.Equal(t, 0, countPixels(c))
	require.NoError(t, c.StepWithDelta(0))
	assert.False(t, c.ClearFlag())
}
