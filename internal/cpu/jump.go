package cpu

import (
	"fmt"
)

// pushStack pushes a 16 bit value onto the stack. The stack grows
// downward and the high byte is written first.
func (c *CPU) pushStack(value uint16) {
	c.tickCycle()
	c.SP--
	c.writeByte(c.SP, uint8(value>>8))
	c.SP--
	c.writeByte(c.SP, uint8(value&0xFF))
}

// popStack pops a 16 bit value off the stack.
func (c *CPU) popStack() uint16 {
	lower := uint16(c.readByte(c.SP))
	c.SP++
	upper := uint16(c.readByte(c.SP)) << 8
	c.SP++
	return lower | upper
}

// call reads a 16-bit address from the operand bytes and, if the
// condition holds, pushes the address of the next instruction onto
// the stack and jumps to that address.
//
//	CALL cc, nn
//	cc = NZ, Z, NC, C (always true for the unconditional form)
//	nn = 16-bit immediate value
func (c *CPU) call(condition bool) {
	low := c.readOperand()
	high := c.readOperand()
	if condition {
		c.pushStack(c.PC)
		c.PC = uint16(high)<<8 | uint16(low)
	}
}

// jumpRelative reads a signed offset from the operand byte and, if
// the condition holds, adds it to PC.
//
//	JR cc, e
//	cc = NZ, Z, NC, C (always true for the unconditional form)
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelative(condition bool) {
	offset := c.readOperand()
	if condition {
		c.PC = uint16(int32(c.PC) + int32(int8(offset)))
		c.tickCycle()
	}
}

// jumpAbsolute reads a 16-bit address from the operand bytes and, if
// the condition holds, jumps to that address.
//
//	JP cc, nn
//	cc = NZ, Z, NC, C (always true for the unconditional form)
//	nn = 16-bit immediate value
func (c *CPU) jumpAbsolute(condition bool) {
	low := c.readOperand()
	high := c.readOperand()
	if condition {
		c.PC = uint16(high)<<8 | uint16(low)
		c.tickCycle()
	}
}

// ret pops the top two bytes off the stack and jumps to that address.
//
//	RET
func (c *CPU) ret() {
	c.PC = c.popStack()
	c.tickCycle()
}

// retConditional pops the top two bytes off the stack and jumps to
// that address if the given condition is true.
//
//	RET cc
//	cc = NZ, Z, NC, C
func (c *CPU) retConditional(condition bool) {
	c.tickCycle()
	if condition {
		c.ret()
	}
}

func init() {
	DefineInstruction(0x18, "JR r8", func(c *CPU) { c.jumpRelative(true) })
	DefineInstruction(0x20, "JR NZ, r8", func(c *CPU) { c.jumpRelative(!c.isFlagSet(FlagZero)) })
	DefineInstruction(0x28, "JR Z, r8", func(c *CPU) { c.jumpRelative(c.isFlagSet(FlagZero)) })
	DefineInstruction(0x30, "JR NC, r8", func(c *CPU) { c.jumpRelative(!c.isFlagSet(FlagCarry)) })
	DefineInstruction(0x38, "JR C, r8", func(c *CPU) { c.jumpRelative(c.isFlagSet(FlagCarry)) })
	DefineInstruction(0xC0, "RET NZ", func(c *CPU) { c.retConditional(!c.isFlagSet(FlagZero)) })
	DefineInstruction(0xC2, "JP NZ, a16", func(c *CPU) { c.jumpAbsolute(!c.isFlagSet(FlagZero)) })
	DefineInstruction(0xC3, "JP a16", func(c *CPU) { c.jumpAbsolute(true) })
	DefineInstruction(0xC4, "CALL NZ, a16", func(c *CPU) { c.call(!c.isFlagSet(FlagZero)) })
	DefineInstruction(0xC8, "RET Z", func(c *CPU) { c.retConditional(c.isFlagSet(FlagZero)) })
	DefineInstruction(0xC9, "RET", func(c *CPU) { c.ret() })
	DefineInstruction(0xCA, "JP Z, a16", func(c *CPU) { c.jumpAbsolute(c.isFlagSet(FlagZero)) })
	DefineInstruction(0xCC, "CALL Z, a16", func(c *CPU) { c.call(c.isFlagSet(FlagZero)) })
	DefineInstruction(0xCD, "CALL a16", func(c *CPU) { c.call(true) })
	DefineInstruction(0xD0, "RET NC", func(c *CPU) { c.retConditional(!c.isFlagSet(FlagCarry)) })
	DefineInstruction(0xD2, "JP NC, a16", func(c *CPU) { c.jumpAbsolute(!c.isFlagSet(FlagCarry)) })
	DefineInstruction(0xD4, "CALL NC, a16", func(c *CPU) { c.call(!c.isFlagSet(FlagCarry)) })
	DefineInstruction(0xD8, "RET C", func(c *CPU) { c.retConditional(c.isFlagSet(FlagCarry)) })
	DefineInstruction(0xD9, "RETI", func(c *CPU) {
		// unlike EI, RETI enables the IME without delay
		c.ret()
		c.ime = true
	})
	DefineInstruction(0xDA, "JP C, a16", func(c *CPU) { c.jumpAbsolute(c.isFlagSet(FlagCarry)) })
	DefineInstruction(0xDC, "CALL C, a16", func(c *CPU) { c.call(c.isFlagSet(FlagCarry)) })
	DefineInstruction(0xE9, "JP HL", func(c *CPU) { c.PC = c.HL.Uint16() })

	generateRSTInstructions()
}

// generateRSTInstructions generates the 8 RST instructions.
func generateRSTInstructions() {
	for i := uint8(0); i < 8; i++ {
		address := uint16(i) * 8
		DefineInstruction(0xC7+i*8, fmt.Sprintf("RST %02Xh", address), func(c *CPU) {
			c.pushStack(c.PC)
			c.PC = address
		})
	}
}
