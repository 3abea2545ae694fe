package emulator

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/retroenv/retrogolib/log"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Logger: log.NewTestLogger(t),
		Rand:   rand.New(rand.NewSource(1)),
	}
}

func newTestChip8(t *testing.T, b []byte) *Chip8 {
	t.Helper()
	c, err := New(b, testConfig(t))
	require.NoError(t, err)
	return c
}

// program encodes instruction words into a program image.
func program(ops ...uint16) []byte {
	b := make([]byte, 2*len(ops))
	for i, op := range ops {
		binary.BigEndian.PutUint16(b[2*i:], op)
	}
	return b
}
