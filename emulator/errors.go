package emulator

import (
	"errors"
	"fmt"
)

var (
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrMemoryOutOfBounds = errors.New("memory access out of bounds")
	ErrInvalidOpcode     = errors.New("invalid opcode")
	ErrProgramTooLarge   = errors.New("program too large")
)

// LoadError is returned when a program image can not be read or does not
// fit into memory.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("loading program: %v", e.Err)
	}
	return fmt.Sprintf("loading program %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// MemoryError describes an access of Length bytes at Address that does not
// fit into memory.
type MemoryError struct {
	Address uint16
	Length  int
}

func (e *MemoryError) Error() string {
	return fmt.Sprintf("%v: %d bytes at %03X", ErrMemoryOutOfBounds, e.Length, e.Address)
}

func (e *MemoryError) Unwrap() error {
	return ErrMemoryOutOfBounds
}

// OpcodeError wraps every error that halts the machine with the program
// counter and instruction word it happened at.
type OpcodeError struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("pc %03X opcode %04X: %v", e.PC, e.Opcode, e.Err)
}

func (e *OpcodeError) Unwrap() error {
	return e.Err
}
