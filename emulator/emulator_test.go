package emulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEmulator(t *testing.T, b []byte) *Emulator {
	t.Helper()
	c := newTestChip8(t, b)
	return &Emulator{chip8: c, logger: c.logger}
}

func TestEmulatorRedrawsOnDisplayChange(t *testing.T) {
	// LD V0,#01; DRW V0,V0,1; CLS; GOTO 206
	e := newTestEmulator(t, program(0x6001, 0xD001, 0x00E0, 0x1206))

	e.step()
	assert.False(t, e.dirty)

	e.step()
	assert.True(t, e.dirty)

	e.dirty = false
	e.step()
	assert.True(t, e.dirty)

	e.dirty = false
	e.step()
	assert.False(t, e.dirty)
	require.NoError(t, e.chip8.Halted())
}

func TestEmulatorCloseAfterPartialInit(t *testing.T) {
	e := &Emulator{}
	assert.NotPanics(t, e.Close)
}
