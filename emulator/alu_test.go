package emulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCarry(t *testing.T) {
	x, f := addCarry(255, 0)
	assert.Equal(t, uint8(255), x)
	assert.Equal(t, uint8(0), f)

	x, f = addCarry(255, 2)
	assert.Equal(t, uint8(1), x)
	assert.Equal(t, uint8(1), f)

	x, f = subBorrow(50, 3)
	assert.Equal(t, uint8(47), x)
	assert.Equal(t, uint8(1), f)

	x, f = subBorrow(0, 1)
	assert.Equal(t, uint8(255), x)
	assert.Equal(t, uint8(0), f)

	x, f = subBorrow(7, 7)
	assert.Equal(t, uint8(0), x)
	assert.Equal(t, uint8(1), f)
}

func TestAddCarryAllValues(t *testing.T) {
	for x := 0; x < 256; x++ {
		for y := 0; y < 256; y++ {
			sum, carry := addCarry(uint8(x), uint8(y))

			expectedCarry := uint8(0)
			if x+y > 255 {
				expectedCarry = 1
			}
			if sum != uint8((x+y)%256) || carry != expectedCarry {
				t.Fatalf("addCarry(%d, %d) = (%d, %d)", x, y, sum, carry)
			}
		}
	}
}

func TestSubBorrowAllValues(t *testing.T) {
	for x := 0; x < 256; x++ {
		for y := 0; y < 256; y++ {
			diff, flag := subBorrow(uint8(x), uint8(y))

			expectedFlag := uint8(0)
			if x >= y {
				expectedFlag = 1
			}
			if diff != uint8((x-y+256)%256) || flag != expectedFlag {
				t.Fatalf("subBorrow(%d, %d) = (%d, %d)", x, y, diff, flag)
			}
		}
	}
}
