package emulator

// drawSprite XORs an 8 pixel wide sprite of n rows read from memory at the
// index register onto the display at x, y. Pixels outside of the display
// are clipped. It returns whether any pixel was switched off.
func (c *Chip8) drawSprite(x, y, n uint8) (bool, error) {
	if err := c.checkRange(c.i, int(n)); err != nil {
		return false, err
	}

	flipped := false
	sm := c.mem[c.i : int(c.i)+int(n)]
	for iy, row := range sm {
		ty := int(y) + iy
		if ty >= Chip8DisplayH {
			break
		}

		for ix := 0; ix < 8; ix++ {
			tx := int(x) + ix
			if tx >= Chip8DisplayW {
				break
			}
			if (row>>(7-ix))&0x01 == 0 {
				continue
			}

			p := &c.disp[ty*Chip8DisplayW+tx]
			if *p == PixelOn {
				flipped = true
			}
			*p ^= PixelOn
		}
	}
	return flipped, nil
}

func (c *Chip8) clearDisplay() {
	for i := range c.disp {
		c.disp[i] = PixelOff
	}
}
