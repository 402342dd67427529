package cpu

import (
	"fmt"

	"github.com/croakmoor/dotmatrix/internal/interrupts"
	"github.com/croakmoor/dotmatrix/internal/mmu"
	"github.com/croakmoor/dotmatrix/internal/types"
)

const (
	// ClockSpeed is the clock speed of the CPU, in T-cycles per second.
	ClockSpeed = 4194304
)

type mode = uint8

const (
	// ModeNormal is the normal fetch-execute CPU mode.
	ModeNormal mode = iota
	// ModeHalt suspends fetching until an interrupt is requested,
	// enabled or not.
	ModeHalt
	// ModeStop suspends the CPU until a joypad interrupt is requested.
	ModeStop
	// ModeHaltBug makes the next fetch read the same byte twice.
	ModeHaltBug
)

// InvalidOpcodeError is reported by Step when a reserved opcode byte
// is fetched. There is no defined behaviour to fall back on, so the
// session cannot meaningfully continue.
type InvalidOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e InvalidOpcodeError) Error() string {
	return fmt.Sprintf("invalid opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

// CPU fetches and executes instructions against the bus, one Step at
// a time, and accounts the cycles each step consumes.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	mmu *mmu.MMU
	IRQ *interrupts.Service

	// ime is the master interrupt enable. It gates dispatch only;
	// requests accumulate in the IRQ service regardless.
	ime bool
	// imePending defers the effect of EI until after the following
	// instruction has executed.
	imePending bool

	Debug           bool
	DebugBreakpoint bool

	currentTick uint8
	mode        mode
}

// NewCPU creates a new CPU instance with the given MMU.
// The MMU is used to read and write to the memory.
func NewCPU(mmu *mmu.MMU, irq *interrupts.Service) *CPU {
	c := &CPU{
		Registers: Registers{},
		mmu:       mmu,
		IRQ:       irq,
	}
	// create register pairs
	c.BC = &RegisterPair{&c.B, &c.C}
	c.DE = &RegisterPair{&c.D, &c.E}
	c.HL = &RegisterPair{&c.H, &c.L}
	c.AF = &RegisterPair{&c.A, &c.F}

	return c
}

// Step executes one unit of work: a single instruction, one
// interrupt dispatch sequence, or one halted no-op tick. It returns
// the number of T-cycles that unit consumed, so the host can advance
// peripheral timing in lock-step.
func (c *CPU) Step() (uint8, error) {
	// reset tick counter
	c.currentTick = 0

	// a requested interrupt wakes a halted CPU even when masked or
	// when the IME is clear; dispatch below still requires both
	switch c.mode {
	case ModeHalt:
		if c.IRQ.Requested() {
			c.mode = ModeNormal
		} else {
			c.tickCycle()
			return c.currentTick, nil
		}
	case ModeStop:
		if c.IRQ.Flag&interrupts.JoypadFlag != 0 {
			c.mode = ModeNormal
		} else {
			c.tickCycle()
			return c.currentTick, nil
		}
	}

	// dispatch is its own fixed-cost unit of work, checked before the
	// next fetch
	if c.ime && c.IRQ.HasPending() {
		c.executeInterrupt()
		return c.currentTick, nil
	}

	// EI takes effect after the instruction that follows it
	if c.imePending {
		c.imePending = false
		c.ime = true
	}

	opcode := c.readInstruction()
	opcodeAddr := c.PC - 1
	if c.mode == ModeHaltBug {
		// the fetch following HALT reads its byte twice
		c.PC--
		c.mode = ModeNormal
	}

	instruction := InstructionSet[opcode]
	if opcode == 0xCB {
		instruction = InstructionSetCB[c.readOperand()]
	}
	if instruction.fn == nil {
		return c.currentTick, InvalidOpcodeError{Opcode: opcode, PC: opcodeAddr}
	}

	// execute the instruction
	instruction.fn(c)

	// check for debug
	if c.Debug && instruction.name == "LD B, B" {
		c.DebugBreakpoint = true
	}

	return c.currentTick, nil
}

// executeInterrupt jumps to the vector of the highest-priority
// pending interrupt, pushing PC and clearing the IME. The sequence
// costs 20 T-cycles. The push of the high PC byte can land on IE, so
// the vector is resolved between the two stack writes.
func (c *CPU) executeInterrupt() {
	// save the high byte of the PC
	c.SP--
	c.writeByte(c.SP, uint8(c.PC>>8))

	vector := c.IRQ.Vector()

	// save the low byte of the PC
	c.SP--
	c.writeByte(c.SP, uint8(c.PC&0xFF))

	// jump to the interrupt vector and disable IME
	c.PC = vector
	c.ime = false

	c.tickCycle()
	c.tickCycle()
	c.tickCycle()
}

// InterruptsEnabled reports whether the master interrupt enable is
// set.
func (c *CPU) InterruptsEnabled() bool {
	return c.ime
}

// tickCycle advances the cycle clock by one M-cycle (4 T-cycles).
// Peripherals are not ticked here; the host advances them with the
// count returned from Step.
func (c *CPU) tickCycle() {
	c.currentTick += 4
}

// readInstruction reads the next instruction from memory.
func (c *CPU) readInstruction() uint8 {
	c.tickCycle()
	value := c.mmu.Read(c.PC)
	c.PC++
	return value
}

// readOperand reads the next operand from memory. The same as
// readInstruction, but will allow future optimizations.
func (c *CPU) readOperand() uint8 {
	c.tickCycle()
	value := c.mmu.Read(c.PC)
	c.PC++
	return value
}

// readByte reads a byte from memory.
func (c *CPU) readByte(addr uint16) uint8 {
	c.tickCycle()
	return c.mmu.Read(addr)
}

// writeByte writes the given value to the given address.
func (c *CPU) writeByte(addr uint16, val uint8) {
	c.tickCycle()
	c.mmu.Write(addr, val)
}

var _ types.Stater = (*CPU)(nil)

// Load implements the types.Stater interface.
func (c *CPU) Load(s *types.State) {
	c.A = s.Read8()
	c.F = s.Read8()
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.mode = s.Read8()
	c.ime = s.ReadBool()
	c.imePending = s.ReadBool()
	c.IRQ.Load(s)
}

// Save implements the types.Stater interface.
func (c *CPU) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(c.F)
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.Write8(c.mode)
	s.WriteBool(c.ime)
	s.WriteBool(c.imePending)
	c.IRQ.Save(s)
}
