package emulator

// addCarry returns x+y modulo 256 and 1 as carry when the sum overflows.
func addCarry(x, y uint8) (uint8, uint8) {
	sum := uint16(x) + uint16(y)
	if sum > 0xff {
		return uint8(sum - 0x100), 1
	}
	return uint8(sum), 0
}

// subBorrow returns x-y modulo 256. The flag is 0 when a borrow occurred
// and 1 when it did not.
func subBorrow(x, y uint8) (uint8, uint8) {
	diff := int16(x) - int16(y)
	if diff < 0 {
		return uint8(diff + 0x100), 0
	}
	return uint8(diff), 1
}

// maths executes the 8XYN register operations. Register F is written after
// register X so the flag wins when X is F.
func (c *Chip8) maths(payload uint16) error {
	ix := regX(payload)
	iy := regY(payload)

	x := c.v[ix]
	y := c.v[iy]
	var f uint8
	flag := true

	switch lowNibble(payload) {
	case 0x0: // 8XY0 Vx=Vy
		x, flag = y, false
	case 0x1: // 8XY1 Vx=Vx|Vy
		x, flag = x|y, false
	case 0x2: // 8XY2 Vx=Vx&Vy
		x, flag = x&y, false
	case 0x3: // 8XY3 Vx=Vx^Vy
		x, flag = x^y, false
	case 0x4: // 8XY4 Vx += Vy
		x, f = addCarry(x, y)
	case 0x5: // 8XY5 Vx -= Vy
		x, f = subBorrow(x, y)
	case 0x6: // 8XY6 Vx>>=1
		x, f = x>>1, x&0x01
	case 0x7: // 8XY7 Vx=Vy-Vx
		x, f = subBorrow(y, x)
	case 0xE: // 8XYE Vx<<=1
		x, f = x<<1, x>>7
	default:
		return ErrInvalidOpcode
	}

	c.v[ix] = x
	if flag {
		c.v[0xf] = f
	}
	c.pc += 2
	return nil
}
