package cpu

// Instruction is a single entry in the instruction table.
type Instruction struct {
	name string     // name of the instruction
	fn   func(*CPU) // fn called when executing the instruction
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

// InstructionSet holds the 256 base instructions. The reserved
// opcodes are left undefined so that fetching one surfaces an
// InvalidOpcodeError instead of a guessed substitute.
var InstructionSet [256]Instruction

// InstructionSetCB holds the 256 CB-prefixed instructions.
var InstructionSetCB [256]Instruction

// DefineInstruction defines the instruction in the InstructionSet,
// with the provided opcode.
func DefineInstruction(opcode uint8, name string, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{
		name: name,
		fn:   fn,
	}
}

// DefineInstructionCB defines the instruction in the
// InstructionSetCB, with the provided opcode.
func DefineInstructionCB(opcode uint8, name string, fn func(*CPU)) {
	InstructionSetCB[opcode] = Instruction{
		name: name,
		fn:   fn,
	}
}

// reservedOpcodes is the fixed set of base opcodes with no defined
// behaviour.
var reservedOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

func init() {
	DefineInstruction(0x00, "NOP", func(c *CPU) {})
	DefineInstruction(0x10, "STOP", func(c *CPU) { c.mode = ModeStop })
	DefineInstruction(0x27, "DAA", func(c *CPU) {
		if !c.isFlagSet(FlagSubtract) {
			if c.isFlagSet(FlagCarry) || c.A > 0x99 {
				c.A += 0x60
				c.setFlag(FlagCarry)
			}
			if c.isFlagSet(FlagHalfCarry) || c.A&0xF > 0x9 {
				c.A += 0x06
				c.clearFlag(FlagHalfCarry)
			}
		} else if c.isFlagSet(FlagCarry) && c.isFlagSet(FlagHalfCarry) {
			c.A += 0x9A
			c.clearFlag(FlagHalfCarry)
		} else if c.isFlagSet(FlagCarry) {
			c.A += 0xA0
		} else if c.isFlagSet(FlagHalfCarry) {
			c.A += 0xFA
			c.clearFlag(FlagHalfCarry)
		}
		c.shouldZeroFlag(c.A)
	})
	DefineInstruction(0x2F, "CPL", func(c *CPU) {
		c.A = 0xFF ^ c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
	})
	DefineInstruction(0x37, "SCF", func(c *CPU) {
		c.setFlag(FlagCarry)
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
	})
	DefineInstruction(0x3F, "CCF", func(c *CPU) {
		if c.isFlagSet(FlagCarry) {
			c.clearFlag(FlagCarry)
		} else {
			c.setFlag(FlagCarry)
		}
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
	})
	DefineInstruction(0x76, "HALT", func(c *CPU) {
		// halting with IME clear and an interrupt already pending
		// triggers the halt bug instead
		if !c.ime && c.IRQ.HasPending() {
			c.mode = ModeHaltBug
		} else {
			c.mode = ModeHalt
		}
	})
	DefineInstruction(0xF3, "DI", func(c *CPU) { c.ime = false })
	DefineInstruction(0xFB, "EI", func(c *CPU) { c.imePending = true })
}
