package cpu

import (
	"errors"
	"testing"

	"github.com/croakmoor/dotmatrix/internal/cartridge"
	"github.com/croakmoor/dotmatrix/internal/interrupts"
	"github.com/croakmoor/dotmatrix/internal/mmu"
)

var (
	cpu *CPU
)

// newTestCPU wires a CPU to a real bus backed by a plain 32kB ROM
// cartridge. PC starts in work RAM so tests can stage opcode and
// operand bytes there, SP in HRAM.
func newTestCPU() *CPU {
	cart, err := cartridge.New(make([]byte, 0x8000))
	if err != nil {
		panic(err)
	}
	irq := interrupts.NewService()
	c := NewCPU(mmu.NewMMU(cart, irq), irq)
	c.PC = 0xC000
	c.SP = 0xFFFE
	return c
}

func testInstruction(t *testing.T, name string, opcode uint8, f func(t *testing.T, instruction Instruction)) {
	// reset CPU
	cpu = newTestCPU()

	t.Run(name, func(t *testing.T) {
		f(t, InstructionSet[opcode])
	})
}

func testInstructionCB(t *testing.T, name string, opcode uint8, f func(t *testing.T, instruction Instruction)) {
	// reset CPU
	cpu = newTestCPU()

	t.Run(name, func(t *testing.T) {
		f(t, InstructionSetCB[opcode])
	})
}

// execute stages the operand bytes at PC and invokes the instruction
// directly, bypassing the opcode fetch.
func execute(instruction Instruction, operands ...uint8) {
	for i, operand := range operands {
		cpu.mmu.Write(cpu.PC+uint16(i), operand)
	}
	instruction.fn(cpu)
}

// step stages a full instruction at 0xC000 and executes one Step,
// returning the T-cycles it consumed.
func step(t *testing.T, opcode uint8, operands ...uint8) uint8 {
	t.Helper()
	cpu.PC = 0xC000
	cpu.mmu.Write(cpu.PC, opcode)
	for i, operand := range operands {
		cpu.mmu.Write(cpu.PC+1+uint16(i), operand)
	}
	ticks, err := cpu.Step()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return ticks
}

// conditionFlags returns an F value under which the given conditional
// opcode does (or does not) take its branch.
func conditionFlags(opcode uint8, met bool) uint8 {
	both := uint8(1<<FlagZero | 1<<FlagCarry)
	switch opcode {
	case 0x20, 0x30, 0xC0, 0xC2, 0xC4, 0xD0, 0xD2, 0xD4: // NZ and NC forms
		if met {
			return 0
		}
		return both
	default: // Z and C forms
		if met {
			return both
		}
		return 0
	}
}

func TestInstruction_Timing(t *testing.T) {
	// cycles consumed per opcode, in M-cycles, measured over a full
	// Step so the opcode fetch is included. Conditional instructions
	// are listed at their branch-not-taken cost. A zero marks the
	// opcodes that cannot be measured this way: STOP and HALT leave
	// the fetch loop, 0xCB dispatches into the second table and the
	// reserved opcodes fail the Step entirely.
	timings := []uint8{
		1, 3, 2, 2, 1, 1, 2, 1, 5, 2, 2, 2, 1, 1, 2, 1,
		0, 3, 2, 2, 1, 1, 2, 1, 3, 2, 2, 2, 1, 1, 2, 1,
		2, 3, 2, 2, 1, 1, 2, 1, 2, 2, 2, 2, 1, 1, 2, 1,
		2, 3, 2, 2, 3, 3, 3, 1, 2, 2, 2, 2, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		2, 2, 2, 2, 2, 2, 0, 2, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		2, 3, 3, 4, 3, 4, 2, 4, 2, 4, 3, 0, 3, 6, 2, 4,
		2, 3, 3, 0, 3, 4, 2, 4, 2, 4, 3, 0, 3, 0, 2, 4,
		3, 3, 2, 0, 0, 4, 2, 4, 4, 1, 4, 0, 0, 0, 2, 4,
		3, 3, 2, 1, 0, 4, 2, 4, 3, 2, 4, 1, 0, 0, 2, 4,
	}

	// branch-taken costs of the conditional opcodes
	taken := map[uint8]uint8{
		0x20: 3, 0x28: 3, 0x30: 3, 0x38: 3, // JR cc, r8
		0xC0: 5, 0xC8: 5, 0xD0: 5, 0xD8: 5, // RET cc
		0xC2: 4, 0xCA: 4, 0xD2: 4, 0xDA: 4, // JP cc, a16
		0xC4: 6, 0xCC: 6, 0xD4: 6, 0xDC: 6, // CALL cc, a16
	}

	for i, timing := range timings {
		if timing == 0 {
			continue
		}
		opcode := uint8(i)

		testInstruction(t, InstructionSet[opcode].Name(), opcode, func(t *testing.T, instruction Instruction) {
			if _, conditional := taken[opcode]; conditional {
				cpu.F = conditionFlags(opcode, false)
			}
			if ticks := step(t, opcode, 0x00, 0x00); ticks != timing*4 {
				t.Errorf("expected %d cycles, got %d", timing*4, ticks)
			}
		})
	}

	for opcode, timing := range taken {
		opcode, timing := opcode, timing
		testInstruction(t, InstructionSet[opcode].Name()+" taken", opcode, func(t *testing.T, instruction Instruction) {
			cpu.F = conditionFlags(opcode, true)
			if ticks := step(t, opcode, 0x00, 0x00); ticks != timing*4 {
				t.Errorf("expected %d cycles, got %d", timing*4, ticks)
			}
		})
	}

	cbTimings := []uint8{
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 3, 2, 2, 2, 2, 2, 2, 2, 3, 2,
		2, 2, 2, 2, 2, 2, 3, 2, 2, 2, 2, 2, 2, 2, 3, 2,
		2, 2, 2, 2, 2, 2, 3, 2, 2, 2, 2, 2, 2, 2, 3, 2,
		2, 2, 2, 2, 2, 2, 3, 2, 2, 2, 2, 2, 2, 2, 3, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
	}

	for i, timing := range cbTimings {
		opcode := uint8(i)

		testInstructionCB(t, InstructionSetCB[opcode].Name(), opcode, func(t *testing.T, instruction Instruction) {
			if ticks := step(t, 0xCB, opcode); ticks != timing*4 {
				t.Errorf("expected %d cycles, got %d", timing*4, ticks)
			}
		})
	}
}

func TestInstruction_Reserved(t *testing.T) {
	for _, opcode := range reservedOpcodes {
		opcode := opcode
		testInstruction(t, InvalidOpcodeError{Opcode: opcode, PC: 0xC000}.Error(), opcode, func(t *testing.T, instruction Instruction) {
			if instruction.fn != nil {
				t.Fatalf("expected opcode 0x%02X to be undefined", opcode)
			}

			cpu.mmu.Write(0xC000, opcode)
			_, err := cpu.Step()
			if err == nil {
				t.Fatal("expected an error, got nil")
			}

			var invalid InvalidOpcodeError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected an InvalidOpcodeError, got %T", err)
			}
			if invalid.Opcode != opcode {
				t.Errorf("expected opcode 0x%02X, got 0x%02X", opcode, invalid.Opcode)
			}
			if invalid.PC != 0xC000 {
				t.Errorf("expected PC 0xC000, got 0x%04X", invalid.PC)
			}
		})
	}
}

func TestInstruction_Names(t *testing.T) {
	// every non-reserved opcode carries a mnemonic and a function
	reserved := make(map[uint8]bool)
	for _, opcode := range reservedOpcodes {
		reserved[opcode] = true
	}

	for i := 0; i < 256; i++ {
		opcode := uint8(i)
		if reserved[opcode] {
			if InstructionSet[opcode].fn != nil {
				t.Errorf("expected opcode 0x%02X to be undefined", opcode)
			}
			continue
		}
		if InstructionSet[opcode].fn == nil {
			t.Errorf("opcode 0x%02X has no function", opcode)
		}
		if InstructionSet[opcode].Name() == "" {
			t.Errorf("opcode 0x%02X has no name", opcode)
		}
	}

	for i := 0; i < 256; i++ {
		if InstructionSetCB[uint8(i)].fn == nil {
			t.Errorf("CB opcode 0x%02X has no function", i)
		}
	}
}
