package cpu

import (
	"fmt"
)

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
//
//	OR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
//
//	XOR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

// compare compares n to the A Register.
//
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if no borrow from bit 4.
//	C - Set if no borrow.
func (c *CPU) compare(n uint8) {
	c.setFlags(c.A-n == 0, true, n&0x0F > c.A&0x0F, n > c.A)
}

func init() {
	DefineInstruction(0xE6, "AND d8", func(c *CPU) { c.and(c.readOperand()) })
	DefineInstruction(0xEE, "XOR d8", func(c *CPU) { c.xor(c.readOperand()) })
	DefineInstruction(0xF6, "OR d8", func(c *CPU) { c.or(c.readOperand()) })
	DefineInstruction(0xFE, "CP d8", func(c *CPU) { c.compare(c.readOperand()) })

	generateLogicInstructions()
}

// generateLogicInstructions generates the register forms of the four
// logic operations on the A register.
//
// The instructions are generated in the following format:
//
//	0xA0 AND B
//	0xA1 AND C
//	....
//	0xBF CP A
func generateLogicInstructions() {
	ops := []struct {
		name string
		fn   func(*CPU, uint8)
	}{
		{"AND", func(c *CPU, value uint8) { c.and(value) }},
		{"XOR", func(c *CPU, value uint8) { c.xor(value) }},
		{"OR", func(c *CPU, value uint8) { c.or(value) }},
		{"CP", func(c *CPU, value uint8) { c.compare(value) }},
	}

	for i, op := range ops {
		opcode := 0xA0 + uint8(i)*8
		fn := op.fn

		for j := uint8(0); j < 8; j++ {
			if j == 6 {
				DefineInstruction(opcode+j, fmt.Sprintf("%s (HL)", op.name), func(c *CPU) {
					fn(c, c.readByte(c.HL.Uint16()))
				})
				continue
			}

			fromRegister := j
			DefineInstruction(opcode+j, fmt.Sprintf("%s %s", op.name, registerNameMap[fromRegister]), func(c *CPU) {
				fn(c, *c.registerPointer(fromRegister))
			})
		}
	}
}
