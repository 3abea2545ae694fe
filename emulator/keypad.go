package emulator

import "github.com/retroenv/retrogolib/log"

const KeyCount = 16

// KeyState is the state of a single key of the 16-key pad.
type KeyState uint8

const (
	KeyUp KeyState = iota
	KeyDown
)

type keypad struct {
	keys    [KeyCount]KeyState // keyboards state
	pressed int                // number of keys currently down
	last    uint8              // most recently pressed key
	presses uint64             // counts every UP to DOWN transition

	// WaitingForKey mode entered by FX0A
	wait        bool
	waitReg     uint8
	waitPresses uint64
}

func (k *keypad) set(key uint8, state KeyState) {
	if k.keys[key] == state {
		return
	}
	k.keys[key] = state

	switch state {
	case KeyDown:
		k.pressed++
		k.presses++
		k.last = key
	case KeyUp:
		if k.pressed > 0 {
			k.pressed--
		}
	}
}

func (k *keypad) waiting() bool {
	return k.wait
}

func (k *keypad) beginWait(reg uint8) {
	k.wait = true
	k.waitReg = reg
	k.waitPresses = k.presses
}

// SetKey updates the state of a key. Keys outside of the pad and unknown
// states are ignored. It must not be called concurrently with Step.
func (c *Chip8) SetKey(key int, state KeyState) {
	if key < 0 || key >= KeyCount {
		return
	}
	if state != KeyUp && state != KeyDown {
		return
	}
	c.keypad.set(uint8(key), state)
}

// GetKey returns the state of a key.
func (c *Chip8) GetKey(key int) KeyState {
	if key < 0 || key >= KeyCount {
		return KeyUp
	}
	return c.keypad.keys[key]
}

// PressedKeys returns the number of keys currently held down.
func (c *Chip8) PressedKeys() int {
	return c.keypad.pressed
}

// Waiting reports whether the machine is suspended in a key wait.
func (c *Chip8) Waiting() bool {
	return c.keypad.wait
}

// waitKey suspends instruction execution until a key is pressed. The program
// counter stays on the FX0A instruction until the wait resolves.
func (c *Chip8) waitKey(x uint8) {
	c.keypad.beginWait(x)
	c.logger.Debug("Waiting for key",
		log.Hex("pc", c.pc),
		log.Uint8("register", x))
}

// resumeKeyWait stores the pressed key once a new key press happened since
// the wait began and moves past the FX0A instruction.
func (c *Chip8) resumeKeyWait() {
	k := &c.keypad
	if k.presses == k.waitPresses {
		return
	}

	c.v[k.waitReg] = k.last
	k.wait = false
	c.pc += 2

	c.logger.Debug("Key wait resolved",
		log.Uint8("register", k.waitReg),
		log.Uint8("key", k.last))
}
