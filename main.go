package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
	e "github.com/tuboc/chip8vm/emulator"
)

var filename = flag.String("f", "", "chip8 image file path, a file dialog is shown when empty")
var stepMode = flag.Bool("s", false, "start with stepMode")
var frequency = flag.Int("hz", e.DefaultFrequency, "instructions per second")
var skipInvalid = flag.Bool("skip-invalid", false, "skip invalid opcodes instead of halting")
var fontPath = flag.String("font", "image/font.png", "font image of the debug panel")
var debug = flag.Bool("debug", false, "enable debug logging")
var quiet = flag.Bool("q", false, "quiet mode")

func init() {
	runtime.LockOSThread()
}

func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func selectFile() (string, error) {
	if *filename != "" {
		return *filename, nil
	}
	return dialog.File().
		Title("Open CHIP-8 program").
		Filter("CHIP-8 programs", "ch8", "c8").
		Filter("All files", "*").
		Load()
}

func main() {
	flag.Parse()
	logger := createLogger(*debug, *quiet)

	path, err := selectFile()
	if err != nil {
		logger.Error("No program selected", log.Err(err))
		os.Exit(1)
	}

	cfg := e.Config{Logger: logger}
	if *skipInvalid {
		cfg.InvalidOpcode = e.SkipInvalid
	}

	chip8, err := e.LoadFile(path, cfg)
	if err != nil {
		logger.Error("Loading program failed", log.Err(err))
		os.Exit(1)
	}
	logger.Info("Program loaded",
		log.String("file", path),
		log.String("invalid_opcodes", cfg.InvalidOpcode.String()))

	emu, err := e.NewEmulator(chip8, e.Options{
		StepMode:  *stepMode,
		Frequency: *frequency,
		FontPath:  *fontPath,
	}, logger)
	if err != nil {
		logger.Error("Initializing emulator failed", log.Err(err))
		os.Exit(1)
	}
	defer emu.Close()

	emu.Run()
}
