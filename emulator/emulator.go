package emulator

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	VBlankFrequency  = 60
	DefaultFrequency = 60 * 8
	DisplayScale     = 10
	EmulatorW        = Chip8DisplayW * DisplayScale
	EmulatorH        = Chip8DisplayH * DisplayScale
	WindowW          = EmulatorW
	WindowH          = EmulatorH + 256
	InformationH     = WindowH - EmulatorH
	FontSize         = 16
	FontPerW         = 32
	AudioSamples     = 64
)

// Options configures the SDL frontend.
type Options struct {
	StepMode  bool   // start paused, space steps a single instruction
	Frequency int    // instructions per second
	FontPath  string // font atlas of the debug panel, the panel is hidden without it
}

// Emulator drives a Chip8 and presents it in an SDL window.
type Emulator struct {
	chip8    *Chip8
	logger   *log.Logger
	window   *sdl.Window
	renderer *sdl.Renderer
	audio    sdl.AudioDeviceID
	font     *sdl.Texture
	screen   *sdl.Texture // framebuffer, re-rendered when dirty
	dirty    bool
	running  bool
	focus    bool
	stepMode bool
	halted   bool
	hz       int
}

var scanCode2Key = map[sdl.Scancode]int{
	sdl.SCANCODE_4: 0x1,
	sdl.SCANCODE_5: 0x2,
	sdl.SCANCODE_6: 0x3,
	sdl.SCANCODE_7: 0xc,
	sdl.SCANCODE_R: 0x4,
	sdl.SCANCODE_T: 0x5,
	sdl.SCANCODE_Y: 0x6,
	sdl.SCANCODE_U: 0xd,
	sdl.SCANCODE_F: 0x7,
	sdl.SCANCODE_G: 0x8,
	sdl.SCANCODE_H: 0x9,
	sdl.SCANCODE_J: 0xe,
	sdl.SCANCODE_V: 0xa,
	sdl.SCANCODE_B: 0x0,
	sdl.SCANCODE_N: 0xb,
	sdl.SCANCODE_M: 0xf,
}

func initRenderer() (*sdl.Window, *sdl.Renderer, error) {
	window, err := sdl.CreateWindow("Chip-8 Emulator", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, WindowW, WindowH, sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, nil, fmt.Errorf("creating window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		_ = window.Destroy()
		return nil, nil, fmt.Errorf("creating renderer: %w", err)
	}

	// workaround for https://bugzilla.libsdl.org/show_bug.cgi?id=4272
	// 	or update sdl2 to 2.0.9
	window.Hide()
	sdl.PumpEvents()
	window.Show()

	return window, renderer, nil
}

func initAudio() (sdl.AudioDeviceID, error) {
	want := &sdl.AudioSpec{
		Freq:     AudioSamples * VBlankFrequency,
		Format:   sdl.AUDIO_F32LSB,
		Channels: 1,
		Samples:  AudioSamples,
	}
	have := &sdl.AudioSpec{}
	audio, err := sdl.OpenAudioDevice("", false, want, have, sdl.AUDIO_ALLOW_ANY_CHANGE)
	if err != nil {
		return 0, fmt.Errorf("opening audio device: %w", err)
	}

	sdl.PauseAudioDevice(audio, false)
	return audio, nil
}

func initScreen(r *sdl.Renderer) (*sdl.Texture, error) {
	screen, err := r.CreateTexture(uint32(sdl.PIXELFORMAT_RGB888), int(sdl.TEXTUREACCESS_TARGET), EmulatorW, EmulatorH)
	if err != nil {
		return nil, fmt.Errorf("creating screen texture: %w", err)
	}
	return screen, nil
}

func initFont(r *sdl.Renderer, path string) (*sdl.Texture, error) {
	surface, err := img.Load(path)
	if err != nil {
		return nil, err
	}
	defer surface.Free()

	texture, err := r.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, err
	}

	if err := texture.SetBlendMode(sdl.BLENDMODE_ADD); err != nil {
		_ = texture.Destroy()
		return nil, err
	}
	return texture, nil
}

// NewEmulator initializes SDL and opens the window and audio device.
func NewEmulator(c *Chip8, opts Options, logger *log.Logger) (*Emulator, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("initializing sdl: %w", err)
	}

	e := &Emulator{
		chip8:    c,
		logger:   logger,
		dirty:    true,
		running:  true,
		focus:    true,
		stepMode: opts.StepMode,
		hz:       opts.Frequency,
	}
	if e.hz <= 0 {
		e.hz = DefaultFrequency
	}

	var err error
	e.window, e.renderer, err = initRenderer()
	if err == nil {
		e.screen, err = initScreen(e.renderer)
	}
	if err == nil {
		e.audio, err = initAudio()
	}
	if err != nil {
		e.Close()
		return nil, err
	}

	if opts.FontPath != "" {
		e.font, err = initFont(e.renderer, opts.FontPath)
		if err != nil {
			logger.Warn("Debug panel disabled, font could not be loaded",
				log.String("file", opts.FontPath),
				log.Err(err))
		}
	}

	return e, nil
}

// Close releases the SDL resources that were created.
func (e *Emulator) Close() {
	if e.font != nil {
		_ = e.font.Destroy()
	}
	if e.screen != nil {
		_ = e.screen.Destroy()
	}
	if e.audio != 0 {
		sdl.CloseAudioDevice(e.audio)
	}
	if e.renderer != nil {
		_ = e.renderer.Destroy()
	}
	if e.window != nil {
		_ = e.window.Destroy()
	}
	sdl.Quit()
}

// Run executes instructions until the window is closed.
func (e *Emulator) Run() {
	perVblankCycle := e.hz / VBlankFrequency
	cycle := 0

	for e.running {
		cycle++
		if e.focus && !e.stepMode {
			e.step()
		}

		if cycle > perVblankCycle {
			cycle = 0
			e.draw()

			if e.focus {
				e.updateSound()
			}
		}

		e.pollEvents()
	}
}

func (e *Emulator) step() {
	if e.halted {
		return
	}

	if err := e.chip8.Step(); err != nil {
		e.halted = true

		var oe *OpcodeError
		if errors.As(err, &oe) {
			e.logger.Error("Emulation halted",
				log.Hex("pc", oe.PC),
				log.Hex("opcode", oe.Opcode),
				log.Err(oe.Err))
		} else {
			e.logger.Error("Emulation halted", log.Err(err))
		}
		e.window.SetTitle("Chip-8 Emulator (halted)")
		return
	}

	if e.chip8.DrawFlag() || e.chip8.ClearFlag() {
		e.dirty = true
	}
	if e.chip8.Tone() {
		e.logger.Debug("Sound timer expired")
	}
}

func (e *Emulator) reset() {
	e.chip8.Reset()
	e.halted = false
	e.dirty = true
	e.window.SetTitle("Chip-8 Emulator")
	e.logger.Info("Emulator reset")
}

func (e *Emulator) draw() {
	if e.dirty {
		e.renderScreen()
		e.dirty = false
	}

	_ = e.renderer.SetDrawColor(0, 0, 0, 255)
	_ = e.renderer.Clear()
	_ = e.renderer.Copy(e.screen, nil, &sdl.Rect{X: 0, Y: 0, W: EmulatorW, H: EmulatorH})

	if e.font != nil {
		e.drawDebugInfo()
	}

	e.renderer.Present()
}

// renderScreen draws the chip8 display into the screen texture.
func (e *Emulator) renderScreen() {
	if err := e.renderer.SetRenderTarget(e.screen); err != nil {
		e.logger.Warn("Rendering display failed", log.Err(err))
		return
	}
	defer func() { _ = e.renderer.SetRenderTarget(nil) }()

	_ = e.renderer.SetDrawColor(0, 0, 0, 255)
	_ = e.renderer.Clear()

	_ = e.renderer.SetDrawColor(0, 255, 0, 255)
	for y := 0; y < Chip8DisplayH; y++ {
		for x := 0; x < Chip8DisplayW; x++ {
			if e.chip8.GetPixel(x, y) == PixelOn {
				_ = e.renderer.FillRect(&sdl.Rect{
					X: int32(x * DisplayScale),
					Y: int32(y * DisplayScale),
					W: DisplayScale,
					H: DisplayScale,
				})
			}
		}
	}
}

func (e *Emulator) pollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			e.running = false
		case *sdl.KeyboardEvent:
			switch ev.Type {
			case sdl.KEYDOWN:
				if i, ok := scanCode2Key[ev.Keysym.Scancode]; ok {
					e.chip8.SetKey(i, KeyDown)
					continue
				}

				switch ev.Keysym.Scancode {
				case sdl.SCANCODE_SPACE:
					if e.stepMode {
						e.step()
					} else {
						e.stepMode = true
					}
				case sdl.SCANCODE_RETURN:
					e.stepMode = false
				case sdl.SCANCODE_Z:
					e.reset()
				}
			case sdl.KEYUP:
				if i, ok := scanCode2Key[ev.Keysym.Scancode]; ok {
					e.chip8.SetKey(i, KeyUp)
				}
			}
		case *sdl.WindowEvent:
			switch ev.Event {
			case sdl.WINDOWEVENT_FOCUS_LOST:
				e.focus = false
			case sdl.WINDOWEVENT_FOCUS_GAINED:
				e.focus = true
			}
		}
	}
}

func (e *Emulator) updateSound() {
	if e.chip8.SoundTimer() == 0 {
		return
	}

	samples := make([]byte, 4*AudioSamples)
	for i := 0; i < len(samples); i += 4 {
		// sin wave
		f := 2.0 * math.Pi / 180.0 * float64(360*i/AudioSamples)
		f = math.Sin(f)
		binary.LittleEndian.PutUint32(samples[i:], math.Float32bits(float32(f)))
	}

	if err := sdl.QueueAudio(e.audio, samples); err != nil {
		e.logger.Warn("Queueing audio failed", log.Err(err))
	}
}

func (e *Emulator) drawDebugInfo() {
	_ = e.renderer.SetDrawColor(32, 32, 32, 255)
	_ = e.renderer.FillRect(&sdl.Rect{X: 0, Y: EmulatorH, W: EmulatorW, H: InformationH})

	// draw opcodes history
	for i, s := range e.chip8.History() {
		e.drawText(s, 0, EmulatorH+i*FontSize)
	}

	// draw v registers
	offsetX := EmulatorW/2 + 48
	for i := 0; i < 16; i++ {
		e.drawText(fmt.Sprintf("V%X = %02X", i, e.chip8.Register(i)), offsetX, EmulatorH+i*FontSize)
	}

	// draw other registers
	c := e.chip8
	offsetX = EmulatorW - FontSize*9
	e.drawText(fmt.Sprintf("DT = %02X", c.DelayTimer()), offsetX, EmulatorH+FontSize*0)
	e.drawText(fmt.Sprintf("ST = %02X", c.SoundTimer()), offsetX, EmulatorH+FontSize*1)
	e.drawText(fmt.Sprintf("SP = %02X", c.SP()), offsetX, EmulatorH+FontSize*2)
	e.drawText(fmt.Sprintf(" I = %04X", c.Index()), offsetX, EmulatorH+FontSize*3)

	// draw key inputs
	rows := [4][4]int{
		{0x1, 0x2, 0x3, 0xc},
		{0x4, 0x5, 0x6, 0xd},
		{0x7, 0x8, 0x9, 0xe},
		{0xa, 0x0, 0xb, 0xf},
	}
	for r, row := range rows {
		prefix := "     "
		if r == 0 {
			prefix = "KEYS "
		}
		s := prefix
		for _, k := range row {
			s += fmt.Sprintf("%d", c.GetKey(k))
		}
		e.drawText(s, offsetX, EmulatorH+FontSize*(5+r))
	}

	if c.Waiting() {
		e.drawText("WAIT KEY", offsetX, EmulatorH+FontSize*10)
	}
}

func (e *Emulator) drawText(s string, x, y int) {
	for i, v := range []byte(s) {
		v -= byte(' ')
		fx := FontSize * (int32(v) % FontPerW)
		fy := FontSize * (int32(v) / FontPerW)
		_ = e.renderer.Copy(e.font,
			&sdl.Rect{X: fx, Y: fy, W: FontSize, H: FontSize},
			&sdl.Rect{X: int32(x + i*FontSize), Y: int32(y), W: FontSize, H: FontSize})
	}
}
