package cpu

import "testing"

func TestInstruction_Load(t *testing.T) {
	// 0x02 - LD (BC), A - Load A into address pointed to by BC
	testInstruction(t, "LD (BC), A", 0x02, func(t *testing.T, instruction Instruction) {
		cpu.A = 0x42
		cpu.BC.SetUint16(0xC234)

		execute(instruction)

		if cpu.mmu.Read(0xC234) != 0x42 {
			t.Errorf("expected 0x42 at 0xC234, got 0x%02X", cpu.mmu.Read(0xC234))
		}
	})
	// 0x0A - LD A, (BC) - Load value pointed to by BC into A
	testInstruction(t, "LD A, (BC)", 0x0A, func(t *testing.T, instruction Instruction) {
		cpu.BC.SetUint16(0xC234)
		cpu.mmu.Write(0xC234, 0x42)

		execute(instruction)

		if cpu.A != 0x42 {
			t.Errorf("expected 0x42 in A, got 0x%02X", cpu.A)
		}
	})
	// 0x12 - LD (DE), A - Load A into address pointed to by DE
	testInstruction(t, "LD (DE), A", 0x12, func(t *testing.T, instruction Instruction) {
		cpu.A = 0x42
		cpu.DE.SetUint16(0xC234)

		execute(instruction)

		if cpu.mmu.Read(0xC234) != 0x42 {
			t.Errorf("expected 0x42 at 0xC234, got 0x%02X", cpu.mmu.Read(0xC234))
		}
	})
	// 0x1A - LD A, (DE) - Load value pointed to by DE into A
	testInstruction(t, "LD A, (DE)", 0x1A, func(t *testing.T, instruction Instruction) {
		cpu.DE.SetUint16(0xC234)
		cpu.mmu.Write(0xC234, 0x42)

		execute(instruction)

		if cpu.A != 0x42 {
			t.Errorf("expected 0x42 in A, got 0x%02X", cpu.A)
		}
	})
	// 0x22 - LD (HL+), A - Load A into address pointed to by HL, then increment HL
	testInstruction(t, "LD (HL+), A", 0x22, func(t *testing.T, instruction Instruction) {
		cpu.A = 0x42
		cpu.HL.SetUint16(0xC234)

		execute(instruction)

		if cpu.mmu.Read(0xC234) != 0x42 {
			t.Errorf("expected 0x42 at 0xC234, got 0x%02X", cpu.mmu.Read(0xC234))
		}
		if cpu.HL.Uint16() != 0xC235 {
			t.Errorf("expected HL to be 0xC235, got 0x%04X", cpu.HL.Uint16())
		}
	})
	// 0x2A - LD A, (HL+) - Load value pointed to by HL into A, then increment HL
	testInstruction(t, "LD A, (HL+)", 0x2A, func(t *testing.T, instruction Instruction) {
		cpu.HL.SetUint16(0xC234)
		cpu.mmu.Write(0xC234, 0x42)

		execute(instruction)

		if cpu.A != 0x42 {
			t.Errorf("expected 0x42 in A, got 0x%02X", cpu.A)
		}
		if cpu.HL.Uint16() != 0xC235 {
			t.Errorf("expected HL to be 0xC235, got 0x%04X", cpu.HL.Uint16())
		}
	})
	// 0x32 - LD (HL-), A - Load A into address pointed to by HL, then decrement HL
	testInstruction(t, "LD (HL-), A", 0x32, func(t *testing.T, instruction Instruction) {
		cpu.A = 0x42
		cpu.HL.SetUint16(0xC234)

		execute(instruction)

		if cpu.mmu.Read(0xC234) != 0x42 {
			t.Errorf("expected 0x42 at 0xC234, got 0x%02X", cpu.mmu.Read(0xC234))
		}
		if cpu.HL.Uint16() != 0xC233 {
			t.Errorf("expected HL to be 0xC233, got 0x%04X", cpu.HL.Uint16())
		}
	})
	// 0x36 - LD (HL), d8 - Load 8-bit immediate value into address pointed to by HL
	testInstruction(t, "LD (HL), d8", 0x36, func(t *testing.T, instruction Instruction) {
		cpu.HL.SetUint16(0xC234)

		execute(instruction, 0x42)

		if cpu.mmu.Read(0xC234) != 0x42 {
			t.Errorf("expected 0x42 at 0xC234, got 0x%02X", cpu.mmu.Read(0xC234))
		}
	})
	// 0x3A - LD A, (HL-) - Load value pointed to by HL into A, then decrement HL
	testInstruction(t, "LD A, (HL-)", 0x3A, func(t *testing.T, instruction Instruction) {
		cpu.HL.SetUint16(0xC234)
		cpu.mmu.Write(0xC234, 0x42)

		execute(instruction)

		if cpu.A != 0x42 {
			t.Errorf("expected 0x42 in A, got 0x%02X", cpu.A)
		}
		if cpu.HL.Uint16() != 0xC233 {
			t.Errorf("expected HL to be 0xC233, got 0x%04X", cpu.HL.Uint16())
		}
	})

	// 0x06, 0x0E ... 0x3E - LD r, d8
	for i, opcode := range []uint8{0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x36, 0x3E} {
		if opcode == 0x36 {
			continue // covered above, (HL) is not a register
		}
		index := uint8(i)
		testInstruction(t, "LD "+registerNameMap[index]+", d8", opcode, func(t *testing.T, instruction Instruction) {
			execute(instruction, 0x42)

			if *cpu.registerPointer(index) != 0x42 {
				t.Errorf("expected 0x42, got 0x%02X", *cpu.registerPointer(index))
			}
		})
	}

	// 0x40 - 0x7F - LD r, r
	for to := uint8(0); to < 8; to++ {
		for from := uint8(0); from < 8; from++ {
			if to == 6 || from == 6 {
				continue
			}
			to, from := to, from
			opcode := 0x40 + to*8 + from
			testInstruction(t, InstructionSet[opcode].Name(), opcode, func(t *testing.T, instruction Instruction) {
				*cpu.registerPointer(from) = 0x42

				execute(instruction)

				if *cpu.registerPointer(to) != 0x42 {
					t.Errorf("expected 0x42, got 0x%02X", *cpu.registerPointer(to))
				}
			})
		}
	}

	// 0x46, 0x4E ... 0x7E - LD r, (HL)
	for i := uint8(0); i < 8; i++ {
		if i == 6 {
			continue
		}
		index := i
		opcode := 0x46 + i*8
		testInstruction(t, InstructionSet[opcode].Name(), opcode, func(t *testing.T, instruction Instruction) {
			cpu.HL.SetUint16(0xC234)
			cpu.mmu.Write(0xC234, 0x42)

			execute(instruction)

			if *cpu.registerPointer(index) != 0x42 {
				t.Errorf("expected 0x42, got 0x%02X", *cpu.registerPointer(index))
			}
		})
	}

	// 0x70 - 0x77 - LD (HL), r
	for i := uint8(0); i < 8; i++ {
		if i == 6 {
			continue
		}
		index := i
		opcode := 0x70 + i
		testInstruction(t, InstructionSet[opcode].Name(), opcode, func(t *testing.T, instruction Instruction) {
			// H and L feed the address as well as the value
			cpu.HL.SetUint16(0xC234)
			want := uint8(0x42)
			switch index {
			case 4:
				want = 0xC2
			case 5:
				want = 0x34
			default:
				*cpu.registerPointer(index) = 0x42
			}

			execute(instruction)

			if cpu.mmu.Read(0xC234) != want {
				t.Errorf("expected 0x%02X at 0xC234, got 0x%02X", want, cpu.mmu.Read(0xC234))
			}
		})
	}

	// 0xE0 - LDH (a8), A - Load A into 0xFF00 + 8-bit immediate
	testInstruction(t, "LDH (a8), A", 0xE0, func(t *testing.T, instruction Instruction) {
		cpu.A = 0x42

		execute(instruction, 0x80) // 0xFF80, HRAM

		if cpu.mmu.Read(0xFF80) != 0x42 {
			t.Errorf("expected 0x42 at 0xFF80, got 0x%02X", cpu.mmu.Read(0xFF80))
		}
	})
	// 0xE2 - LD (C), A - Load A into 0xFF00 + C
	testInstruction(t, "LD (C), A", 0xE2, func(t *testing.T, instruction Instruction) {
		cpu.A = 0x42
		cpu.C = 0x80

		execute(instruction)

		if cpu.mmu.Read(0xFF80) != 0x42 {
			t.Errorf("expected 0x42 at 0xFF80, got 0x%02X", cpu.mmu.Read(0xFF80))
		}
	})
	// 0xEA - LD (a16), A - Load A into 16-bit immediate address
	testInstruction(t, "LD (a16), A", 0xEA, func(t *testing.T, instruction Instruction) {
		cpu.A = 0x42

		execute(instruction, 0x34, 0xC2)

		if cpu.mmu.Read(0xC234) != 0x42 {
			t.Errorf("expected 0x42 at 0xC234, got 0x%02X", cpu.mmu.Read(0xC234))
		}
	})
	// 0xF0 - LDH A, (a8) - Load value at 0xFF00 + 8-bit immediate into A
	testInstruction(t, "LDH A, (a8)", 0xF0, func(t *testing.T, instruction Instruction) {
		cpu.mmu.Write(0xFF80, 0x42)

		execute(instruction, 0x80)

		if cpu.A != 0x42 {
			t.Errorf("expected 0x42 in A, got 0x%02X", cpu.A)
		}
	})
	// 0xF2 - LD A, (C) - Load value at 0xFF00 + C into A
	testInstruction(t, "LD A, (C)", 0xF2, func(t *testing.T, instruction Instruction) {
		cpu.C = 0x80
		cpu.mmu.Write(0xFF80, 0x42)

		execute(instruction)

		if cpu.A != 0x42 {
			t.Errorf("expected 0x42 in A, got 0x%02X", cpu.A)
		}
	})
	// 0xFA - LD A, (a16) - Load value at 16-bit immediate address into A
	testInstruction(t, "LD A, (a16)", 0xFA, func(t *testing.T, instruction Instruction) {
		cpu.mmu.Write(0xC234, 0x42)

		execute(instruction, 0x34, 0xC2)

		if cpu.A != 0x42 {
			t.Errorf("expected 0x42 in A, got 0x%02X", cpu.A)
		}
	})
}

func TestInstruction_16BitLoad(t *testing.T) {
	values := []uint16{0x0000, 0x1234, 0x8000, 0xFFFF}

	// 0x01 - LD BC, d16
	testInstruction(t, "LD BC, d16", 0x01, func(t *testing.T, instruction Instruction) {
		for _, v := range values {
			cpu.PC = 0xC000
			execute(instruction, uint8(v), uint8(v>>8))
			if cpu.BC.Uint16() != v {
				t.Errorf("expected BC to be 0x%04X, got 0x%04X", v, cpu.BC.Uint16())
			}
		}
	})
	// 0x11 - LD DE, d16
	testInstruction(t, "LD DE, d16", 0x11, func(t *testing.T, instruction Instruction) {
		for _, v := range values {
			cpu.PC = 0xC000
			execute(instruction, uint8(v), uint8(v>>8))
			if cpu.DE.Uint16() != v {
				t.Errorf("expected DE to be 0x%04X, got 0x%04X", v, cpu.DE.Uint16())
			}
		}
	})
	// 0x21 - LD HL, d16
	testInstruction(t, "LD HL, d16", 0x21, func(t *testing.T, instruction Instruction) {
		for _, v := range values {
			cpu.PC = 0xC000
			execute(instruction, uint8(v), uint8(v>>8))
			if cpu.HL.Uint16() != v {
				t.Errorf("expected HL to be 0x%04X, got 0x%04X", v, cpu.HL.Uint16())
			}
		}
	})
	// 0x31 - LD SP, d16
	testInstruction(t, "LD SP, d16", 0x31, func(t *testing.T, instruction Instruction) {
		for _, v := range values {
			cpu.PC = 0xC000
			execute(instruction, uint8(v), uint8(v>>8))
			if cpu.SP != v {
				t.Errorf("expected SP to be 0x%04X, got 0x%04X", v, cpu.SP)
			}
		}
	})
	// 0x08 - LD (a16), SP - Store SP at the 16-bit immediate address
	testInstruction(t, "LD (a16), SP", 0x08, func(t *testing.T, instruction Instruction) {
		cpu.SP = 0x1234

		execute(instruction, 0x34, 0xC2) // store at 0xC234

		if cpu.mmu.Read(0xC234) != 0x34 {
			t.Errorf("expected 0x34 at 0xC234, got 0x%02X", cpu.mmu.Read(0xC234))
		}
		if cpu.mmu.Read(0xC235) != 0x12 {
			t.Errorf("expected 0x12 at 0xC235, got 0x%02X", cpu.mmu.Read(0xC235))
		}
	})
	// 0xF8 - LD HL, SP+r8 - Load SP plus signed immediate into HL
	testInstruction(t, "LD HL, SP+r8", 0xF8, func(t *testing.T, instruction Instruction) {
		cpu.SP = 0xC000

		execute(instruction, 0x05)

		if cpu.HL.Uint16() != 0xC005 {
			t.Errorf("expected HL to be 0xC005, got 0x%04X", cpu.HL.Uint16())
		}
		if cpu.F != 0 {
			t.Errorf("expected no flags, got 0x%02X", cpu.F)
		}

		// negative offsets subtract
		t.Run("Negative", func(t *testing.T) {
			cpu.PC = 0xC000
			cpu.SP = 0xC000

			execute(instruction, 0xFE) // -2

			if cpu.HL.Uint16() != 0xBFFE {
				t.Errorf("expected HL to be 0xBFFE, got 0x%04X", cpu.HL.Uint16())
			}
		})

		// the flags come from the low byte of the addition
		t.Run("Carries", func(t *testing.T) {
			cpu.PC = 0xC000
			cpu.SP = 0x00FF

			execute(instruction, 0x01)

			if cpu.HL.Uint16() != 0x0100 {
				t.Errorf("expected HL to be 0x0100, got 0x%04X", cpu.HL.Uint16())
			}
			if !cpu.isFlagsSet(FlagHalfCarry, FlagCarry) {
				t.Errorf("expected H and C to be set, got 0x%02X", cpu.F)
			}
			if cpu.isFlagSet(FlagZero) || cpu.isFlagSet(FlagSubtract) {
				t.Errorf("expected Z and N to be reset, got 0x%02X", cpu.F)
			}
		})
	})
	// 0xF9 - LD SP, HL
	testInstruction(t, "LD SP, HL", 0xF9, func(t *testing.T, instruction Instruction) {
		cpu.HL.SetUint16(0xC234)

		execute(instruction)

		if cpu.SP != 0xC234 {
			t.Errorf("expected SP to be 0xC234, got 0x%04X", cpu.SP)
		}
	})

	// 0xC1, 0xD1, 0xE1 - POP rr
	for _, pop := range []struct {
		opcode uint8
		pair   func() uint16
	}{
		{0xC1, func() uint16 { return cpu.BC.Uint16() }},
		{0xD1, func() uint16 { return cpu.DE.Uint16() }},
		{0xE1, func() uint16 { return cpu.HL.Uint16() }},
	} {
		pop := pop
		testInstruction(t, InstructionSet[pop.opcode].Name(), pop.opcode, func(t *testing.T, instruction Instruction) {
			cpu.SP = 0xFFFC
			cpu.mmu.Write(0xFFFC, 0x34)
			cpu.mmu.Write(0xFFFD, 0x12)

			execute(instruction)

			if pop.pair() != 0x1234 {
				t.Errorf("expected 0x1234, got 0x%04X", pop.pair())
			}
			if cpu.SP != 0xFFFE {
				t.Errorf("expected SP to be 0xFFFE, got 0x%04X", cpu.SP)
			}
		})
	}
	// 0xF1 - POP AF - the lower nibble of F doesn't exist
	testInstruction(t, "POP AF", 0xF1, func(t *testing.T, instruction Instruction) {
		cpu.SP = 0xFFFC
		cpu.mmu.Write(0xFFFC, 0xFF)
		cpu.mmu.Write(0xFFFD, 0x12)

		execute(instruction)

		if cpu.A != 0x12 {
			t.Errorf("expected A to be 0x12, got 0x%02X", cpu.A)
		}
		if cpu.F != 0xF0 {
			t.Errorf("expected F to be 0xF0, got 0x%02X", cpu.F)
		}
	})

	// 0xC5, 0xD5, 0xE5, 0xF5 - PUSH rr
	for _, push := range []struct {
		opcode uint8
		load   func(uint16)
	}{
		{0xC5, func(v uint16) { cpu.BC.SetUint16(v) }},
		{0xD5, func(v uint16) { cpu.DE.SetUint16(v) }},
		{0xE5, func(v uint16) { cpu.HL.SetUint16(v) }},
		{0xF5, func(v uint16) { cpu.A = uint8(v >> 8); cpu.F = uint8(v) & 0xF0 }},
	} {
		push := push
		testInstruction(t, InstructionSet[push.opcode].Name(), push.opcode, func(t *testing.T, instruction Instruction) {
			cpu.SP = 0xFFFE
			push.load(0x12B0)

			execute(instruction)

			if cpu.SP != 0xFFFC {
				t.Errorf("expected SP to be 0xFFFC, got 0x%04X", cpu.SP)
			}
			if cpu.mmu.Read(0xFFFD) != 0x12 {
				t.Errorf("expected 0x12 at 0xFFFD, got 0x%02X", cpu.mmu.Read(0xFFFD))
			}
			if cpu.mmu.Read(0xFFFC) != 0xB0 {
				t.Errorf("expected 0xB0 at 0xFFFC, got 0x%02X", cpu.mmu.Read(0xFFFC))
			}
		})
	}
}
