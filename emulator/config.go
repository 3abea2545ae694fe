package emulator

import (
	"math/rand"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// InvalidOpcodePolicy selects what Step does with an instruction word that
// is not part of the instruction set.
type InvalidOpcodePolicy int

const (
	// HaltOnInvalid stops the machine and returns an error wrapping
	// ErrInvalidOpcode.
	HaltOnInvalid InvalidOpcodePolicy = iota
	// SkipInvalid logs the instruction and continues with the next one.
	SkipInvalid
)

func (p InvalidOpcodePolicy) String() string {
	switch p {
	case HaltOnInvalid:
		return "halt"
	case SkipInvalid:
		return "skip"
	default:
		return "unknown"
	}
}

// Config contains the options of a machine. The zero value is usable.
type Config struct {
	Logger        *log.Logger
	InvalidOpcode InvalidOpcodePolicy

	// Rand is the source of the random instruction, seeded from the clock
	// when nil.
	Rand *rand.Rand

	// Now returns the wall-clock time used to advance the timers.
	Now func() time.Time
}

func (cfg Config) withDefaults() Config {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithConfig(log.DefaultConfig())
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return cfg
}
