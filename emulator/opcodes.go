package emulator

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// opcodeHandler executes one instruction family. payload holds the low 12
// bits of the instruction word. Handlers validate before they mutate state,
// so a returned error leaves the machine as it was before the instruction.
type opcodeHandler func(c *Chip8, payload uint16) error

// opcodeTable is indexed by the top nibble of the instruction word.
var opcodeTable = [16]opcodeHandler{
	0x0: (*Chip8).system,
	0x1: (*Chip8).jump,
	0x2: (*Chip8).call,
	0x3: (*Chip8).skipEqualByte,
	0x4: (*Chip8).skipNotEqualByte,
	0x5: (*Chip8).skipEqualRegister,
	0x6: (*Chip8).loadByte,
	0x7: (*Chip8).addByte,
	0x8: (*Chip8).maths,
	0x9: (*Chip8).skipNotEqualRegister,
	0xA: (*Chip8).loadIndex,
	0xB: (*Chip8).jumpV0,
	0xC: (*Chip8).random,
	0xD: (*Chip8).draw,
	0xE: (*Chip8).keyOps,
	0xF: (*Chip8).misc,
}

func regX(payload uint16) uint8 {
	return uint8(payload>>8) & 0xf
}

func regY(payload uint16) uint8 {
	return uint8(payload>>4) & 0xf
}

func lowByte(payload uint16) uint8 {
	return uint8(payload & 0xff)
}

func lowNibble(payload uint16) uint8 {
	return uint8(payload & 0xf)
}

func (c *Chip8) execOpcode(op uint16) error {
	pc := c.pc

	err := opcodeTable[op>>12](c, op&0x0FFF)
	if errors.Is(err, ErrInvalidOpcode) && c.cfg.InvalidOpcode == SkipInvalid {
		c.logger.Warn("Skipping invalid opcode",
			log.Hex("pc", pc),
			log.Hex("opcode", op))
		c.pc += 2
		err = nil
	}
	if err != nil {
		return err
	}

	c.recordHistory(pc, op)
	return nil
}

// recordHistory appends a completed instruction to the history ring.
func (c *Chip8) recordHistory(pc, op uint16) {
	c.ophistory[c.ophistoryIndex] = fmt.Sprintf("%03X-%04X %s", pc, op, Disassemble(op))
	c.ophistoryIndex = (c.ophistoryIndex + 1) % OpHistoryNum
}

// skip advances past the next instruction when cond holds.
func (c *Chip8) skip(cond bool) {
	if cond {
		c.pc += 4
	} else {
		c.pc += 2
	}
}

func (c *Chip8) system(payload uint16) error {
	switch payload {
	case 0x0E0: // clear display
		c.clearDisplay()
		c.clearFlag = true
		c.pc += 2

	case 0x0EE: // return from subroutine
		r, err := c.popStack()
		if err != nil {
			return err
		}
		c.pc = r + 2

	default: // 0NNN machine code routines are not supported
		return ErrInvalidOpcode
	}
	return nil
}

// 1NNN goto NNN
func (c *Chip8) jump(payload uint16) error {
	c.pc = payload
	return nil
}

// 2NNN call NNN, the address of the call itself is pushed
func (c *Chip8) call(payload uint16) error {
	if err := c.pushStack(c.pc); err != nil {
		return err
	}
	c.pc = payload
	return nil
}

// 3XNN if(Vx==NN)
func (c *Chip8) skipEqualByte(payload uint16) error {
	c.skip(c.v[regX(payload)] == lowByte(payload))
	return nil
}

// 4XNN if(Vx!=NN)
func (c *Chip8) skipNotEqualByte(payload uint16) error {
	c.skip(c.v[regX(payload)] != lowByte(payload))
	return nil
}

// 5XY0 if(Vx==Vy)
func (c *Chip8) skipEqualRegister(payload uint16) error {
	if lowNibble(payload) != 0 {
		return ErrInvalidOpcode
	}
	c.skip(c.v[regX(payload)] == c.v[regY(payload)])
	return nil
}

// 6XNN Vx = NN
func (c *Chip8) loadByte(payload uint16) error {
	c.v[regX(payload)] = lowByte(payload)
	c.pc += 2
	return nil
}

// 7XNN Vx += NN, carry flag is not changed
func (c *Chip8) addByte(payload uint16) error {
	c.v[regX(payload)] += lowByte(payload)
	c.pc += 2
	return nil
}

// 9XY0 if(Vx!=Vy)
func (c *Chip8) skipNotEqualRegister(payload uint16) error {
	if lowNibble(payload) != 0 {
		return ErrInvalidOpcode
	}
	c.skip(c.v[regX(payload)] != c.v[regY(payload)])
	return nil
}

// ANNN I = NNN
func (c *Chip8) loadIndex(payload uint16) error {
	c.i = payload
	c.pc += 2
	return nil
}

// BNNN PC=V0+NNN
func (c *Chip8) jumpV0(payload uint16) error {
	c.pc = payload + uint16(c.v[0])
	return nil
}

// CXNN Vx=rand()&NN
func (c *Chip8) random(payload uint16) error {
	c.v[regX(payload)] = uint8(c.rnd.Intn(0x100)) & lowByte(payload)
	c.pc += 2
	return nil
}

// DXYN draw(Vx,Vy,N)
func (c *Chip8) draw(payload uint16) error {
	flipped, err := c.drawSprite(c.v[regX(payload)], c.v[regY(payload)], lowNibble(payload))
	if err != nil {
		return err
	}
	c.updateCarryFlag(flipped)
	c.drawFlag = true
	c.pc += 2
	return nil
}

func (c *Chip8) keyOps(payload uint16) error {
	key := c.v[regX(payload)] & 0xf

	switch lowByte(payload) {
	case 0x9E: // EX9E if(key(Vx) pressed)
		c.skip(c.keypad.keys[key] == KeyDown)
	case 0xA1: // EXA1 if(key(Vx) not pressed)
		c.skip(c.keypad.keys[key] == KeyUp)
	default:
		return ErrInvalidOpcode
	}
	return nil
}

func (c *Chip8) misc(payload uint16) error {
	x := regX(payload)

	switch lowByte(payload) {
	case 0x07: // FX07 Vx = get_delay()
		c.v[x] = c.timers.delay

	case 0x0A: // FX0A Vx = get_key(), blocks until a key is pressed
		c.waitKey(x)
		return nil

	case 0x15: // FX15 delay_timer(Vx)
		c.timers.delay = c.v[x]

	case 0x18: // FX18 sound_timer(Vx)
		c.timers.sound = c.v[x]

	case 0x1E: // FX1E I +=Vx
		i := c.i + uint16(c.v[x])
		if i >= MemorySize {
			return &MemoryError{Address: i, Length: 1}
		}
		c.i = i

	case 0x29: // FX29 I=sprite_addr[Vx]
		c.i = CharacterSpritesOffset + uint16(c.v[x]&0xf)*CharacterSpriteBytes

	case 0x33: // FX33 set_BCD(Vx)
		if err := c.checkRange(c.i, 3); err != nil {
			return err
		}
		c.mem[c.i+0] = c.v[x] / 100
		c.mem[c.i+1] = (c.v[x] % 100) / 10
		c.mem[c.i+2] = c.v[x] % 10

	case 0x55: // FX55 reg_dump(Vx,&I)
		if err := c.checkRange(c.i, int(x)+1); err != nil {
			return err
		}
		copy(c.mem[c.i:], c.v[:x+1])

	case 0x65: // FX65 reg_load(Vx,&I)
		if err := c.checkRange(c.i, int(x)+1); err != nil {
			return err
		}
		copy(c.v[:x+1], c.mem[c.i:])

	default:
		return ErrInvalidOpcode
	}

	c.pc += 2
	return nil
}
