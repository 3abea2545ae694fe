package emulator

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/retroenv/retrogolib/log"
)

const (
	Chip8DisplayW          = 64
	Chip8DisplayH          = 32
	MemorySize             = 0x1000
	CharacterSpritesOffset = 0x050
	CharacterSpriteBytes   = 5
	ProgramOffset          = 0x200
	MaxProgramSize         = MemorySize - ProgramOffset
	StackDepth             = 16
	OpHistoryNum           = 16
)

// Pixel is the state of a single framebuffer pixel.
type Pixel uint8

const (
	PixelOff Pixel = iota
	PixelOn
)

type Chip8 struct {
	mem   [MemorySize]uint8                    // memory
	pc    uint16                               // program counter
	v     [16]uint8                            // registers
	i     uint16                               // index register
	sp    uint8                                // stack pointer, number of used entries
	stack [StackDepth]uint16                   // stack
	disp  [Chip8DisplayW * Chip8DisplayH]Pixel // graphics

	timers timers
	keypad keypad

	// transient flags, reset at the start of every step
	drawFlag  bool
	clearFlag bool

	halt     error
	lastStep time.Time

	rom    []byte
	cfg    Config
	logger *log.Logger
	rnd    *rand.Rand

	ophistory      [OpHistoryNum]string
	ophistoryIndex int
}

var characterSprites = []uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// New creates a machine with the program image copied to ProgramOffset and
// the fontset copied to CharacterSpritesOffset.
func New(program []byte, cfg Config) (*Chip8, error) {
	if len(program) > MaxProgramSize {
		return nil, &LoadError{Err: fmt.Errorf("%w: %d bytes", ErrProgramTooLarge, len(program))}
	}

	cfg = cfg.withDefaults()
	c := &Chip8{
		rom:    append([]byte(nil), program...),
		cfg:    cfg,
		logger: cfg.Logger,
		rnd:    cfg.Rand,
	}
	c.Reset()

	c.logger.Debug("Program loaded",
		log.Uint16("size", uint16(len(program))),
		log.Hex("offset", uint16(ProgramOffset)))
	return c, nil
}

// Load reads a program image from r. Images larger than MaxProgramSize and
// read failures are reported as a LoadError.
func Load(r io.Reader, cfg Config) (*Chip8, error) {
	b, err := io.ReadAll(io.LimitReader(r, MaxProgramSize+1))
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	return New(b, cfg)
}

// LoadFile reads the program image stored at path.
func LoadFile(path string, cfg Config) (*Chip8, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	c, err := Load(f, cfg)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return c, nil
}

// Reset restores the machine to the state it had right after loading.
func (c *Chip8) Reset() {
	*c = Chip8{
		rom:    c.rom,
		cfg:    c.cfg,
		logger: c.logger,
		rnd:    c.rnd,
	}
	c.pc = ProgramOffset

	copy(c.mem[ProgramOffset:], c.rom)
	copy(c.mem[CharacterSpritesOffset:], characterSprites)
}

// Step advances the timers by the wall-clock time elapsed since the previous
// step and executes one instruction, or keeps waiting for a key press.
func (c *Chip8) Step() error {
	now := c.cfg.Now()
	var delta time.Duration
	if !c.lastStep.IsZero() {
		delta = now.Sub(c.lastStep)
	}
	c.lastStep = now
	return c.step(delta)
}

// StepWithDelta is Step with an externally supplied elapsed time.
func (c *Chip8) StepWithDelta(delta time.Duration) error {
	return c.step(delta)
}

func (c *Chip8) step(delta time.Duration) error {
	if c.halt != nil {
		return c.halt
	}

	c.timers.advance(delta)
	c.drawFlag = false
	c.clearFlag = false

	if c.keypad.waiting() {
		c.resumeKeyWait()
		return nil
	}

	op, err := c.fetchOpcode()
	if err == nil {
		err = c.execOpcode(op)
	}
	if err != nil {
		c.halt = &OpcodeError{PC: c.pc, Opcode: op, Err: err}
		return c.halt
	}
	return nil
}

func (c *Chip8) fetchOpcode() (uint16, error) {
	if err := c.checkRange(c.pc, 2); err != nil {
		return 0, err
	}
	return uint16(c.mem[c.pc])<<8 | uint16(c.mem[c.pc+1]), nil
}

// checkRange verifies that n bytes starting at addr are inside memory.
func (c *Chip8) checkRange(addr uint16, n int) error {
	if int(addr)+n > MemorySize {
		return &MemoryError{Address: addr, Length: n}
	}
	return nil
}

func (c *Chip8) updateCarryFlag(b bool) {
	if b {
		c.v[0xf] = 1
	} else {
		c.v[0xf] = 0
	}
}

func (c *Chip8) pushStack(v uint16) error {
	if int(c.sp) >= StackDepth {
		return ErrStackOverflow
	}
	c.stack[c.sp] = v
	c.sp++
	return nil
}

func (c *Chip8) popStack() (uint16, error) {
	if c.sp == 0 {
		return 0, ErrStackUnderflow
	}
	c.sp--
	return c.stack[c.sp], nil
}

// GetPixel returns the pixel at x, y. Coordinates must be inside the
// 64x32 frame.
func (c *Chip8) GetPixel(x, y int) Pixel {
	return c.disp[y*Chip8DisplayW+x]
}

// DrawFlag reports whether a sprite was drawn during the last step.
func (c *Chip8) DrawFlag() bool {
	return c.drawFlag
}

// ClearFlag reports whether the screen was cleared during the last step.
func (c *Chip8) ClearFlag() bool {
	return c.clearFlag
}

// Halted returns the error that stopped the machine, or nil.
func (c *Chip8) Halted() error {
	return c.halt
}

func (c *Chip8) Register(r int) uint8 {
	return c.v[r&0xf]
}

func (c *Chip8) Index() uint16 {
	return c.i
}

func (c *Chip8) PC() uint16 {
	return c.pc
}

func (c *Chip8) SP() uint8 {
	return c.sp
}

func (c *Chip8) DelayTimer() uint8 {
	return c.timers.delay
}

func (c *Chip8) SoundTimer() uint8 {
	return c.timers.sound
}

// Tone reports whether the sound timer expired since the last call.
func (c *Chip8) Tone() bool {
	t := c.timers.tone
	c.timers.tone = false
	return t
}

// History returns the most recently executed instructions, oldest first.
func (c *Chip8) History() []string {
	h := make([]string, 0, OpHistoryNum)
	for i := 0; i < OpHistoryNum; i++ {
		h = append(h, c.ophistory[(c.ophistoryIndex+i)%OpHistoryNum])
	}
	return h
}
